package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"resume-screener/internal/models"
)

const (
	defaultMatchScore = 50
	defaultSummary    = "Analysis completed"
)

// StripMarkdownFences removes a leading and/or trailing markdown code fence
// marker (```json or ```) from a model reply. Stripping an already-unfenced
// body is a no-op, so the function is idempotent.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	for _, fence := range []string{"```json", "```"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, fence))
		s = strings.TrimSpace(strings.TrimSuffix(s, fence))
	}
	return s
}

// ResponseNormalizer turns a raw model reply into a validated,
// schema-conformant analysis payload. It never fails: an unparseable reply
// yields a synthetic fallback payload that is itself valid and persistable.
type ResponseNormalizer interface {
	Normalize(raw, candidateName string) models.AnalysisPayload
}

type responseNormalizer struct {
	logger *zap.Logger
}

func NewResponseNormalizer(logger *zap.Logger) ResponseNormalizer {
	return &responseNormalizer{logger: logger}
}

func (n *responseNormalizer) Normalize(raw, candidateName string) models.AnalysisPayload {
	text := StripMarkdownFences(raw)

	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil || fields == nil {
		// fields is nil when the reply is the literal "null": valid JSON,
		// but not an object.
		n.logger.Error("model reply is not a JSON object, using fallback analysis",
			zap.String("candidate", candidateName),
			zap.Error(err),
		)
		return fallbackPayload(candidateName)
	}

	// Each field is validated independently; one bad field never fails the
	// whole result.
	return models.AnalysisPayload{
		CandidateName:   candidateName,
		MatchScore:      coerceScore(fields["match_score"]),
		ExperienceYears: coerceExperience(fields["experience_years"]),
		MatchingSkills:  coerceStringSlice(fields["matching_skills"]),
		MissingSkills:   coerceStringSlice(fields["missing_skills"]),
		Strengths:       coerceStringSlice(fields["strengths"]),
		Weaknesses:      coerceStringSlice(fields["weaknesses"]),
		Recommendation:  coerceRecommendation(fields["recommendation"]),
		Summary:         coerceSummary(fields["summary"]),
	}
}

func fallbackPayload(candidateName string) models.AnalysisPayload {
	return models.AnalysisPayload{
		CandidateName:   candidateName,
		MatchScore:      defaultMatchScore,
		ExperienceYears: 0,
		MatchingSkills:  []string{},
		MissingSkills:   []string{},
		Strengths:       []string{"Analysis completed"},
		Weaknesses:      []string{"Unable to parse detailed analysis"},
		Recommendation:  string(models.RecommendationReview),
		Summary:         "Analysis completed but parsing failed",
		Error:           "JSON parsing failed, using fallback analysis",
	}
}

func coerceScore(v any) int {
	if score, ok := v.(float64); ok && score >= 0 && score <= 100 {
		return int(score)
	}
	return defaultMatchScore
}

func coerceExperience(v any) int {
	if years, ok := v.(float64); ok && years >= 0 {
		return int(years)
	}
	return 0
}

func coerceRecommendation(v any) string {
	if rec, ok := v.(string); ok && models.ValidRecommendation(rec) {
		return rec
	}
	return string(models.RecommendationReview)
}

// coerceStringSlice keeps any sequence value, stringifying non-string
// elements rather than rejecting them. Anything that is not a sequence
// defaults to empty.
func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func coerceSummary(v any) string {
	if summary, ok := v.(string); ok {
		return summary
	}
	return defaultSummary
}
