package models

import (
	"time"
)

// 情感枚举值，分类结果只会落在这三个值之内
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Review 一条已分析的评论记录，创建后不再修改
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReviewText string    `json:"review_text" gorm:"type:text;not null"`
	Sentiment  string    `json:"sentiment" gorm:"type:varchar(20);not null"`
	Confidence string    `json:"confidence" gorm:"type:varchar(20)"`
	KeyPoints  string    `json:"key_points" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
