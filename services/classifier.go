package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/jonreiter/govader"

	"github.com/Firmanhg/PAW-TUGAS3/models"
)

// Classifier 情感分类能力的抽象，便于替换实现或在测试中打桩
type Classifier interface {
	Classify(ctx context.Context, text string) (label string, score float64, err error)
}

// RemoteClassifier 调用远程情感分析服务（HuggingFace推理端点风格）
type RemoteClassifier struct {
	endpoint string
	client   *http.Client
}

func NewRemoteClassifier(endpoint string, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type sentimentRequest struct {
	Text string `json:"text"`
}

type sentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (rc *RemoteClassifier) Classify(ctx context.Context, text string) (string, float64, error) {
	body, err := json.Marshal(sentimentRequest{Text: text})
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal sentiment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("failed to build sentiment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("sentiment service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", 0, fmt.Errorf("sentiment service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result sentimentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("failed to decode sentiment response: %w", err)
	}
	if result.Label == "" {
		return "", 0, fmt.Errorf("sentiment service returned empty label")
	}

	return result.Label, result.Score, nil
}

// VaderClassifier 本地VADER情感分析器，无需任何外部配置
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Classify 根据复合得分判定情感，阈值±0.20
func (vc *VaderClassifier) Classify(_ context.Context, text string) (string, float64, error) {
	sentiment := vc.analyzer.PolarityScores(text)
	compound := sentiment.Compound

	var label string
	switch {
	case compound >= 0.20:
		label = models.SentimentPositive
	case compound <= -0.20:
		label = models.SentimentNegative
	default:
		label = models.SentimentNeutral
	}

	// 置信度：正负情感取复合得分的幅度，中性取其补值
	score := math.Abs(compound)
	if label == models.SentimentNeutral {
		score = 1 - score
	}

	return label, score, nil
}
