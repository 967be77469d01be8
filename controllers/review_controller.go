package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Firmanhg/PAW-TUGAS3/models"
	"github.com/Firmanhg/PAW-TUGAS3/services"
)

type ReviewController struct {
	service *services.AnalysisService
}

func NewReviewController(service *services.AnalysisService) *ReviewController {
	return &ReviewController{
		service: service,
	}
}

// AnalyzeReview 处理评论分析请求
func (rc *ReviewController) AnalyzeReview(ctx *gin.Context) {
	var req models.AnalyzeReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.AnalyzeReviewResponse{
			Success: false,
			Error:   "Invalid request: " + err.Error(),
		})
		return
	}

	review, err := rc.service.AnalyzeReview(ctx.Request.Context(), req.Text())
	if err != nil {
		status := http.StatusInternalServerError
		message := err.Error()
		switch {
		case errors.Is(err, services.ErrEmptyReviewText):
			status = http.StatusBadRequest
			message = "Field 'review_text' is required"
		case errors.Is(err, services.ErrUpstream):
			status = http.StatusBadGateway
		}
		ctx.JSON(status, models.AnalyzeReviewResponse{
			Success: false,
			Error:   message,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.AnalyzeReviewResponse{
		Success: true,
		Data:    review,
	})
}

// ListReviews 返回全部评论记录
func (rc *ReviewController) ListReviews(ctx *gin.Context) {
	reviews, err := rc.service.ListReviews(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.AnalyzeReviewResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, models.ListReviewsResponse{
		Success: true,
		Count:   len(reviews),
		Data:    reviews,
	})
}
