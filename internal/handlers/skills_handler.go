package handlers

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"resume-screener/internal/models"
	"resume-screener/internal/services"
)

// maxSkillTextChars caps text extracted from a downloaded PDF before it is
// embedded in the skill-extraction prompt.
const maxSkillTextChars = 30000

type SkillsHandler struct {
	fetcher   services.PDFFetcher
	extractor services.TextExtractor
	skills    services.SkillExtractor
	logger    *zap.Logger
}

func NewSkillsHandler(
	fetcher services.PDFFetcher,
	extractor services.TextExtractor,
	skills services.SkillExtractor,
	logger *zap.Logger,
) *SkillsHandler {
	return &SkillsHandler{
		fetcher:   fetcher,
		extractor: extractor,
		skills:    skills,
		logger:    logger,
	}
}

// HandleExtractSkills handles POST /extract-skills.
func (h *SkillsHandler) HandleExtractSkills(c *fiber.Ctx) error {
	var req models.ExtractSkillsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	skills, err := h.skills.ExtractSkills(c.UserContext(), req.JobDescription)
	if err != nil {
		h.logger.Error("skill extraction failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.SkillsResponse{TechnicalSkills: skills})
}

// HandleExtractSkillsFromPDF handles POST /extract-skills-from-pdf.
func (h *SkillsHandler) HandleExtractSkillsFromPDF(c *fiber.Ctx) error {
	var req models.ExtractSkillsFromPDFRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.PDFURL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pdf_url is required",
		})
	}

	data, err := h.fetcher.FetchPDF(req.PDFURL)
	if err != nil {
		var downloadErr *services.DownloadError
		if errors.As(err, &downloadErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": downloadErr.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	text, err := h.extractor.Extract(data, "document.pdf")
	if err != nil {
		h.logger.Warn("pdf extraction failed", zap.String("url", req.PDFURL), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Hard cap, no ellipsis marker: text_length in the response metadata
	// reflects the exact number of characters sent to the model.
	truncated := utf8.RuneCountInString(text) > maxSkillTextChars
	if truncated {
		text = capRunes(text, maxSkillTextChars)
	}

	skills, err := h.skills.ExtractSkills(c.UserContext(), text)
	if err != nil {
		h.logger.Error("skill extraction failed", zap.String("url", req.PDFURL), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.SkillsResponse{
		TechnicalSkills: skills,
		Metadata: &models.SkillsMetadata{
			PDFURL:     req.PDFURL,
			TextLength: utf8.RuneCountInString(text),
			Truncated:  truncated,
		},
	})
}
