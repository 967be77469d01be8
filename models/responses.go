package models

// AnalyzeReviewResponse 单条分析结果响应结构体
type AnalyzeReviewResponse struct {
	Success bool    `json:"success"`
	Data    *Review `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// ListReviewsResponse 评论列表响应结构体
type ListReviewsResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Data    []Review `json:"data"`
}
