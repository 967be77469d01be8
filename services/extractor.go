package services

import (
	"context"
	"strings"
)

// KeyPointExtractor 关键点提取能力的抽象，便于替换实现或在测试中打桩
type KeyPointExtractor interface {
	ExtractKeyPoints(ctx context.Context, text string) (string, error)
}

const maxKeyPoints = 5

// SentenceExtractor 本地兜底实现：取评论的前几个句子作为要点
// 未配置Gemini API Key时使用
type SentenceExtractor struct{}

func NewSentenceExtractor() *SentenceExtractor {
	return &SentenceExtractor{}
}

func (e *SentenceExtractor) ExtractKeyPoints(_ context.Context, text string) (string, error) {
	sentences := splitSentences(text)

	var sb strings.Builder
	count := 0
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if count > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(s)
		count++
		if count >= maxKeyPoints {
			break
		}
	}

	return sb.String(), nil
}

// splitSentences 按句末标点切分文本，标点保留在句子末尾
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(strings.TrimSpace(text))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// 连续标点归入同一句
			for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
				i++
				current.WriteRune(runes[i])
			}
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}
