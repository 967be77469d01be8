package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Firmanhg/PAW-TUGAS3/config"
	"github.com/Firmanhg/PAW-TUGAS3/models"
)

var (
	// ErrEmptyReviewText 评论文本为空，在调用任何外部服务之前返回
	ErrEmptyReviewText = errors.New("review text is empty")
	// ErrUpstream 分类或提取服务调用失败
	ErrUpstream = errors.New("upstream analysis failed")
	// ErrStore 数据库读写失败
	ErrStore = errors.New("store operation failed")
)

// AnalysisService 编排情感分类、关键点提取与持久化
type AnalysisService struct {
	classifier Classifier
	extractor  KeyPointExtractor
	db         *gorm.DB
	timeout    time.Duration
}

func NewAnalysisService(classifier Classifier, extractor KeyPointExtractor, db *gorm.DB, timeout time.Duration) *AnalysisService {
	return &AnalysisService{
		classifier: classifier,
		extractor:  extractor,
		db:         db,
		timeout:    timeout,
	}
}

// AnalyzeReview 分析一条评论并持久化结果
// 任一外部调用失败时整个操作失败，不会写入部分结果
func (s *AnalysisService) AnalyzeReview(ctx context.Context, text string) (*models.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyReviewText
	}

	// 两次外部调用共用同一个截止时间
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	label, score, err := s.classifier.Classify(ctx, text)
	if err != nil {
		config.Logger.Errorw("情感分类失败", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	keyPoints, err := s.extractor.ExtractKeyPoints(ctx, text)
	if err != nil {
		config.Logger.Errorw("关键点提取失败", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	review := &models.Review{
		ReviewText: text,
		Sentiment:  NormalizeSentiment(label),
		Confidence: FormatConfidence(score),
		KeyPoints:  keyPoints,
	}

	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		config.Logger.Errorw("保存评论记录失败", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return review, nil
}

// ListReviews 返回全部评论记录，按id倒序（最新在前，顺序稳定）
func (s *AnalysisService) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&reviews).Error; err != nil {
		config.Logger.Errorw("查询评论记录失败", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return reviews, nil
}

// NormalizeSentiment 将分类器返回的标签归一化为三个枚举值之一
// 无法识别的标签一律归为neutral
func NormalizeSentiment(label string) string {
	label = strings.ToLower(label)
	switch {
	case strings.Contains(label, "pos"):
		return models.SentimentPositive
	case strings.Contains(label, "neg"):
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// FormatConfidence 将分类器得分格式化为百分比字符串，如0.9987 -> "99.87%"
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}
