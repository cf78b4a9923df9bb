package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"resume-screener/internal/models"
)

const (
	// minInputChars guards against texts too short to analyze meaningfully.
	minInputChars = 50

	// Token-budget caps applied to the texts embedded in the prompt. A
	// deliberate, lossy control, not an error condition.
	maxPromptResumeChars         = 15000
	maxPromptJobDescriptionChars = 8000
)

// ResumeAnalyzer runs one synchronous resume-versus-job-description
// evaluation. It never returns a Go error: every failure is folded into an
// error payload so batch processing can continue.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, jobDescription, resumeText, candidateName string) models.AnalysisPayload
}

type resumeAnalyzer struct {
	generator     ContentGenerator
	normalizer    ResponseNormalizer
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewResumeAnalyzer(generator ContentGenerator, normalizer ResponseNormalizer, logger *zap.Logger) ResumeAnalyzer {
	return &resumeAnalyzer{
		generator:     generator,
		normalizer:    normalizer,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

func (a *resumeAnalyzer) Analyze(ctx context.Context, jobDescription, resumeText, candidateName string) models.AnalysisPayload {
	if utf8.RuneCountInString(resumeText) < minInputChars {
		return errorPayload(candidateName, "Resume text too short")
	}
	if utf8.RuneCountInString(jobDescription) < minInputChars {
		return errorPayload(candidateName, "Job description too short")
	}

	resumeText = TruncateText(resumeText, maxPromptResumeChars)
	jobDescription = TruncateText(jobDescription, maxPromptJobDescriptionChars)

	prompt := a.promptBuilder.BuildResumeAnalysisPrompt(jobDescription, resumeText, candidateName)

	a.logger.Debug("analyzing resume",
		zap.String("candidate", candidateName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		a.logger.Error("model invocation failed",
			zap.String("candidate", candidateName),
			zap.Error(err),
		)
		return errorPayload(candidateName, fmt.Sprintf("Analysis failed: %v", err))
	}

	return a.normalizer.Normalize(raw, candidateName)
}

func errorPayload(candidateName, message string) models.AnalysisPayload {
	return models.AnalysisPayload{
		CandidateName: candidateName,
		MatchScore:    0,
		Error:         message,
	}
}

// TruncateText cuts s to at most max characters, appending an ellipsis
// marker when text was dropped.
func TruncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
