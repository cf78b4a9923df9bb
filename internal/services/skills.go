package services

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

// SkillExtractor asks the model to enumerate the technical skills present in
// a text. Unlike resume analysis there is no fallback: an unparseable reply
// is a hard error surfaced to the caller.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

type skillExtractor struct {
	generator     ContentGenerator
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewSkillExtractor(generator ContentGenerator, logger *zap.Logger) SkillExtractor {
	return &skillExtractor{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

func (s *skillExtractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	prompt := s.promptBuilder.BuildSkillExtractionPrompt(text)

	s.logger.Debug("extracting skills", zap.Int("text_length", utf8.RuneCountInString(text)))

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("skill extraction failed: %w", err)
	}

	var parsed struct {
		TechnicalSkills []string `json:"technical_skills"`
	}
	if err := json.Unmarshal([]byte(StripMarkdownFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse skill extraction response: %w", err)
	}

	if parsed.TechnicalSkills == nil {
		parsed.TechnicalSkills = []string{}
	}

	return parsed.TechnicalSkills, nil
}
