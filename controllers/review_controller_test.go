package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Firmanhg/PAW-TUGAS3/config"
	"github.com/Firmanhg/PAW-TUGAS3/models"
	"github.com/Firmanhg/PAW-TUGAS3/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
	os.Exit(m.Run())
}

type stubClassifier struct {
	label string
	score float64
	err   error
}

func (s *stubClassifier) Classify(_ context.Context, _ string) (string, float64, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	return s.label, s.score, nil
}

type stubExtractor struct {
	keyPoints string
	err       error
}

func (s *stubExtractor) ExtractKeyPoints(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.keyPoints, nil
}

func newTestRouter(t *testing.T, classifier services.Classifier, extractor services.KeyPointExtractor) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Review{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	service := services.NewAnalysisService(classifier, extractor, db, time.Minute)
	rc := NewReviewController(service)

	r := gin.New()
	r.POST("/api/analyze-review", rc.AnalyzeReview)
	r.GET("/api/reviews", rc.ListReviews)
	return r
}

func postAnalyze(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-review", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getReviews(t *testing.T, r *gin.Engine) models.ListReviewsResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/reviews status: got %d, want 200", w.Code)
	}
	var resp models.ListReviewsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	return resp
}

func TestAnalyzeReviewEndpointSuccess(t *testing.T) {
	r := newTestRouter(t,
		&stubClassifier{label: "positive", score: 0.9987},
		&stubExtractor{keyPoints: "- Produk bagus\n- Pengiriman cepat"})

	w := postAnalyze(r, `{"review_text":"Produk bagus, pengiriman cepat!"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp models.AnalyzeReviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success: got false, error: %s", resp.Error)
	}
	if resp.Data == nil {
		t.Fatal("data missing from success envelope")
	}
	if resp.Data.ReviewText != "Produk bagus, pengiriman cepat!" {
		t.Errorf("review_text: got %q", resp.Data.ReviewText)
	}
	if resp.Data.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment: got %q, want %q", resp.Data.Sentiment, models.SentimentPositive)
	}
	if resp.Data.Confidence != "99.87%" {
		t.Errorf("confidence: got %q, want %q", resp.Data.Confidence, "99.87%")
	}
	if resp.Data.ID == 0 {
		t.Error("id not assigned")
	}
}

func TestAnalyzeReviewEndpointEmptyText(t *testing.T) {
	r := newTestRouter(t,
		&stubClassifier{label: "positive", score: 0.9},
		&stubExtractor{keyPoints: "- x"})

	for _, body := range []string{`{"review_text":""}`, `{"review_text":"   "}`, `{}`} {
		w := postAnalyze(r, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status got %d, want 400", body, w.Code)
		}
		var resp models.AnalyzeReviewResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Success {
			t.Errorf("body %s: success should be false", body)
		}
		if resp.Error == "" {
			t.Errorf("body %s: error message missing", body)
		}
	}

	// 校验失败的请求不会产生记录
	list := getReviews(t, r)
	if list.Count != 0 {
		t.Errorf("count after rejected requests: got %d, want 0", list.Count)
	}
}

func TestAnalyzeReviewEndpointWhitespaceTextIgnoresContent(t *testing.T) {
	r := newTestRouter(t,
		&stubClassifier{label: "positive", score: 0.9},
		&stubExtractor{keyPoints: "- x"})

	// review_text 为空白时不退回 content，直接按校验失败处理
	w := postAnalyze(r, `{"review_text":"   ","content":"Enak banget!"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}

	list := getReviews(t, r)
	if list.Count != 0 {
		t.Errorf("count: got %d, want 0", list.Count)
	}
}

func TestAnalyzeReviewEndpointInvalidJSON(t *testing.T) {
	r := newTestRouter(t,
		&stubClassifier{label: "positive", score: 0.9},
		&stubExtractor{keyPoints: "- x"})

	w := postAnalyze(r, `not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
}

func TestAnalyzeReviewEndpointUpstreamError(t *testing.T) {
	r := newTestRouter(t,
		&stubClassifier{err: errors.New("model unreachable")},
		&stubExtractor{keyPoints: "- x"})

	w := postAnalyze(r, `{"review_text":"Makanannya enak."}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", w.Code)
	}
	var resp models.AnalyzeReviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("error envelope: success=%v, error=%q", resp.Success, resp.Error)
	}

	list := getReviews(t, r)
	if list.Count != 0 {
		t.Errorf("count after upstream failure: got %d, want 0", list.Count)
	}
}

func TestAnalyzeReviewEndpointContentAlias(t *testing.T) {
	r := newTestRouter(t,
		&stubClassifier{label: "positive", score: 0.9},
		&stubExtractor{keyPoints: "- Enak"})

	w := postAnalyze(r, `{"content":"Enak banget!"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body: %s", w.Code, w.Body.String())
	}
	var resp models.AnalyzeReviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data == nil || resp.Data.ReviewText != "Enak banget!" {
		t.Errorf("content alias not honored: %+v", resp.Data)
	}
}

func TestListReviewsEndpoint(t *testing.T) {
	r := newTestRouter(t,
		&stubClassifier{label: "negative", score: 0.75},
		&stubExtractor{keyPoints: "- x"})

	list := getReviews(t, r)
	if !list.Success || list.Count != 0 || len(list.Data) != 0 {
		t.Fatalf("empty list: got success=%v count=%d len=%d", list.Success, list.Count, len(list.Data))
	}

	for _, body := range []string{
		`{"review_text":"Ulasan pertama."}`,
		`{"review_text":"Ulasan kedua."}`,
	} {
		if w := postAnalyze(r, body); w.Code != http.StatusOK {
			t.Fatalf("POST %s: status %d", body, w.Code)
		}
	}

	list = getReviews(t, r)
	if list.Count != 2 || len(list.Data) != 2 {
		t.Fatalf("count: got %d (len %d), want 2", list.Count, len(list.Data))
	}
	if list.Data[0].ID == list.Data[1].ID {
		t.Error("ids must be distinct")
	}
	// 最新的记录排在最前面
	if list.Data[0].ReviewText != "Ulasan kedua." {
		t.Errorf("newest first: got %q", list.Data[0].ReviewText)
	}
	for _, review := range list.Data {
		if review.CreatedAt.IsZero() {
			t.Errorf("review %d: created_at missing", review.ID)
		}
	}
}
