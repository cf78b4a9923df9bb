package models

import "time"

// AnalysisPayload is one per-candidate entry in the batch response. It is
// either a fully normalized analysis or an error entry carrying only the
// candidate name, the error text and a zero score.
type AnalysisPayload struct {
	CandidateName   string   `json:"candidate_name"`
	MatchScore      int      `json:"match_score"`
	ExperienceYears int      `json:"experience_years"`
	MatchingSkills  []string `json:"matching_skills,omitempty"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	Recommendation  string   `json:"recommendation,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// IsError reports whether the payload is an error entry rather than a
// normalized analysis. The parse-failure fallback is NOT an error entry.
func (p *AnalysisPayload) IsError() bool {
	return p.Error != "" && p.Recommendation == ""
}

type AnalyzeResponse struct {
	JobID           string            `json:"job_id"`
	JobTitle        string            `json:"job_title"`
	TotalCandidates int               `json:"total_candidates"`
	Results         []AnalysisPayload `json:"results"`
	Timestamp       time.Time         `json:"timestamp"`
}

type ExtractSkillsRequest struct {
	JobDescription string `json:"job_description"`
}

type ExtractSkillsFromPDFRequest struct {
	PDFURL string `json:"pdf_url"`
}

type SkillsResponse struct {
	TechnicalSkills []string        `json:"technical_skills"`
	Metadata        *SkillsMetadata `json:"metadata,omitempty"`
}

type SkillsMetadata struct {
	PDFURL     string `json:"pdf_url"`
	TextLength int    `json:"text_length"`
	Truncated  bool   `json:"truncated"`
}

type TestAIRequest struct {
	Text string `json:"text"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	AIService string    `json:"ai_service"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}
