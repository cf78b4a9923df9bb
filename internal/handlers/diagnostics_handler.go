package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type DiagnosticsHandler struct {
	jobRepo   repositories.JobRepository
	generator services.ContentGenerator
	logger    *zap.Logger
}

func NewDiagnosticsHandler(
	jobRepo repositories.JobRepository,
	generator services.ContentGenerator,
	logger *zap.Logger,
) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		jobRepo:   jobRepo,
		generator: generator,
		logger:    logger,
	}
}

// HandleTestAI handles POST /test-ai. Diagnostic only: echoes a raw model
// reply without any normalization.
func (h *DiagnosticsHandler) HandleTestAI(c *fiber.Ctx) error {
	req := models.TestAIRequest{Text: "Hello, test."}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
			})
		}
		if req.Text == "" {
			req.Text = "Hello, test."
		}
	}

	prompt := services.NewPromptBuilder().BuildEchoPrompt(req.Text)

	reply, err := h.generator.GenerateText(c.UserContext(), prompt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "success",
		"response": reply,
	})
}

// HandleHealth handles GET /health, probing database and model reachability.
func (h *DiagnosticsHandler) HandleHealth(c *fiber.Ctx) error {
	resp := models.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		AIService: "connected",
		Timestamp: time.Now().UTC(),
	}

	if err := h.jobRepo.Ping(c.UserContext()); err != nil {
		h.logger.Warn("database health probe failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		resp.Error = err.Error()
	}

	if _, err := h.generator.GenerateText(c.UserContext(), "Hi"); err != nil {
		h.logger.Warn("ai health probe failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.AIService = "error"
		resp.Error = err.Error()
	}

	status := fiber.StatusOK
	if resp.Status != "healthy" {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(resp)
}
