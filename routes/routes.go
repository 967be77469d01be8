package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Firmanhg/PAW-TUGAS3/controllers"
	"github.com/Firmanhg/PAW-TUGAS3/services"
)

// RegisterRoutes 注册路由
func RegisterRoutes(r *gin.Engine, service *services.AnalysisService) {
	reviewController := controllers.NewReviewController(service)

	api := r.Group("/api")
	{
		api.POST("/analyze-review", reviewController.AnalyzeReview)
		api.GET("/reviews", reviewController.ListReviews)
	}

	// 前端静态页面
	r.Static("/static", "./static")
	r.StaticFile("/", "./static/index.html")

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
