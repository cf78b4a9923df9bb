package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"resume-screener/internal/config"
	"resume-screener/internal/handlers"
	"resume-screener/internal/logger"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database connected")

	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)

	geminiService, err := services.NewGeminiService(
		context.Background(),
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize gemini client", zap.Error(err))
	}
	zlog.Info("gemini client initialized", zap.String("model", cfg.Gemini.Model))

	extractor := services.NewTextExtractor(zlog)
	fetcher := services.NewPDFFetcher(zlog)
	normalizer := services.NewResponseNormalizer(zlog)
	analyzer := services.NewResumeAnalyzer(geminiService, normalizer, zlog)
	skillExtractor := services.NewSkillExtractor(geminiService, zlog)

	analyzeHandler := handlers.NewAnalyzeHandler(
		jobRepo,
		candidateRepo,
		analysisRepo,
		extractor,
		analyzer,
		zlog,
	)
	skillsHandler := handlers.NewSkillsHandler(fetcher, extractor, skillExtractor, zlog)
	diagnosticsHandler := handlers.NewDiagnosticsHandler(jobRepo, geminiService, zlog)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.Upload.MaxBodySize,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Post("/analyze-resumes", analyzeHandler.HandleAnalyzeResumes)
	app.Post("/extract-skills", skillsHandler.HandleExtractSkills)
	app.Post("/extract-skills-from-pdf", skillsHandler.HandleExtractSkillsFromPDF)
	app.Post("/test-ai", diagnosticsHandler.HandleTestAI)
	app.Get("/health", diagnosticsHandler.HandleHealth)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /analyze-resumes",
				"POST /extract-skills",
				"POST /extract-skills-from-pdf",
				"POST /test-ai",
				"GET /health",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
