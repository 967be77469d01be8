package models

// AnalyzeReviewRequest 评论分析请求结构体
// 兼容旧客户端的 content 字段
type AnalyzeReviewRequest struct {
	ReviewText string `json:"review_text"`
	Content    string `json:"content"`
}

// Text 返回有效的评论文本，仅在 review_text 缺失时退回 content
func (r *AnalyzeReviewRequest) Text() string {
	if r.ReviewText != "" {
		return r.ReviewText
	}
	return r.Content
}
