package handlers

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type AnalyzeHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	analysisRepo  repositories.AnalysisRepository
	extractor     services.TextExtractor
	analyzer      services.ResumeAnalyzer
	logger        *zap.Logger
}

func NewAnalyzeHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	analysisRepo repositories.AnalysisRepository,
	extractor services.TextExtractor,
	analyzer services.ResumeAnalyzer,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		analysisRepo:  analysisRepo,
		extractor:     extractor,
		analyzer:      analyzer,
		logger:        logger,
	}
}

// HandleAnalyzeResumes handles POST /analyze-resumes. Files are processed
// sequentially; a failure on one file degrades to a per-file error entry and
// the batch continues.
func (h *AnalyzeHandler) HandleAnalyzeResumes(c *fiber.Ctx) error {
	jobTitle := c.FormValue("jobTitle")
	jobDescription := c.FormValue("jobDescription")
	if jobTitle == "" || jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing job title or description",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume files uploaded",
		})
	}

	// Every candidate depends on a job identifier, so a failure here is
	// fatal for the whole request.
	now := time.Now().UTC()
	job := &models.Job{
		ID:             uuid.New(),
		Title:          jobTitle,
		Description:    jobDescription,
		RequiredSkills: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.jobRepo.Create(job); err != nil {
		h.logger.Error("failed to create job record", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error creating job",
		})
	}

	results := make([]models.AnalysisPayload, 0, len(files))
	for _, file := range files {
		if file.Filename == "" || !allowedFile(file.Filename) {
			continue
		}

		candidateName := displayNameFromFilename(file.Filename)

		data, err := readUpload(file)
		if err != nil {
			h.logger.Error("failed to read uploaded file",
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			results = append(results, models.AnalysisPayload{
				CandidateName: candidateName,
				MatchScore:    0,
				Error:         "failed to read uploaded file",
			})
			continue
		}

		resumeText, err := h.extractor.Extract(data, file.Filename)
		if err != nil {
			h.logger.Warn("extraction failed",
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			results = append(results, models.AnalysisPayload{
				CandidateName: candidateName,
				MatchScore:    0,
				Error:         err.Error(),
			})
			continue
		}

		candidateID := h.persistCandidate(job.ID, candidateName, file.Filename, resumeText)

		analysis := h.analyzer.Analyze(c.UserContext(), jobDescription, resumeText, candidateName)

		if !analysis.IsError() && candidateID != uuid.Nil {
			h.persistAnalysis(job.ID, candidateID, &analysis)
		}

		results = append(results, analysis)
	}

	// Descending by score; ties keep original file order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return c.JSON(models.AnalyzeResponse{
		JobID:           job.ID.String(),
		JobTitle:        jobTitle,
		TotalCandidates: len(results),
		Results:         results,
		Timestamp:       time.Now().UTC(),
	})
}

// persistCandidate stores the candidate record, returning uuid.Nil when the
// write fails. Persistence failures degrade gracefully: the batch entry
// still reflects the analysis.
func (h *AnalyzeHandler) persistCandidate(jobID uuid.UUID, name, filename, resumeText string) uuid.UUID {
	candidate := &models.Candidate{
		ID:         uuid.New(),
		JobID:      jobID,
		Name:       name,
		Filename:   filename,
		ResumeText: capRunes(resumeText, models.MaxStoredResumeChars),
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		h.logger.Error("failed to persist candidate",
			zap.String("candidate", name),
			zap.Error(err),
		)
		return uuid.Nil
	}

	return candidate.ID
}

func (h *AnalyzeHandler) persistAnalysis(jobID, candidateID uuid.UUID, analysis *models.AnalysisPayload) {
	record := &models.AnalysisRecord{
		ID:              uuid.New(),
		JobID:           jobID,
		CandidateID:     candidateID,
		MatchScore:      analysis.MatchScore,
		ExperienceYears: analysis.ExperienceYears,
		MatchingSkills:  analysis.MatchingSkills,
		MissingSkills:   analysis.MissingSkills,
		Strengths:       analysis.Strengths,
		Weaknesses:      analysis.Weaknesses,
		Recommendation:  analysis.Recommendation,
		Summary:         analysis.Summary,
		CreatedAt:       time.Now().UTC(),
	}

	if err := h.analysisRepo.Create(record); err != nil {
		h.logger.Error("failed to persist analysis result",
			zap.String("candidate", analysis.CandidateName),
			zap.Error(err),
		)
	}
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

func allowedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

// displayNameFromFilename derives a candidate display name: extension
// stripped, underscores and hyphens replaced by spaces, words capitalized.
func displayNameFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func capRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
