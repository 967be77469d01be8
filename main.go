package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Firmanhg/PAW-TUGAS3/config"
	"github.com/Firmanhg/PAW-TUGAS3/middleware"
	"github.com/Firmanhg/PAW-TUGAS3/routes"
	"github.com/Firmanhg/PAW-TUGAS3/services"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 初始化数据库
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
	}
	config.Logger.Infow("数据库初始化完成", "driver", conf.DBDriver, "dsn", conf.DBDSN)

	timeout := time.Duration(conf.AITimeoutSeconds) * time.Second

	// 初始化情感分类器
	var classifier services.Classifier
	if conf.SentimentAPIEndpoint != "" {
		classifier = services.NewRemoteClassifier(conf.SentimentAPIEndpoint, timeout)
		config.Logger.Infow("使用远程情感分析服务", "endpoint", conf.SentimentAPIEndpoint)
	} else {
		classifier = services.NewVaderClassifier()
		config.Logger.Infow("未配置情感分析服务，使用本地VADER分析器")
	}

	// 初始化关键点提取器
	var extractor services.KeyPointExtractor
	if conf.GeminiAPIKey != "" {
		geminiExtractor, err := services.NewGeminiExtractor(conf.GeminiAPIKey, conf.GeminiModel)
		if err != nil {
			log.Fatalf("无法初始化Gemini客户端: %v", err)
		}
		extractor = geminiExtractor
		config.Logger.Infow("使用Gemini提取关键点", "model", conf.GeminiModel)
	} else {
		extractor = services.NewSentenceExtractor()
		config.Logger.Infow("未配置GEMINI_API_KEY，使用本地句子提取兜底")
	}

	// 创建AnalysisService
	analysisService := services.NewAnalysisService(classifier, extractor, config.DB, timeout)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.New()

	// 设置中间件
	middleware.SetupMiddleware(r)

	// 注册路由
	routes.RegisterRoutes(r, analysisService)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		log.Printf("启动服务器，监听端口: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	log.Println("服务器已关闭")
}
