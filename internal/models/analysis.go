package models

import (
	"time"

	"github.com/google/uuid"
)

type Recommendation string

const (
	RecommendationQualified    Recommendation = "qualified"
	RecommendationReview       Recommendation = "review"
	RecommendationNotQualified Recommendation = "not_qualified"
)

// ValidRecommendation reports whether r is one of the three allowed verdicts.
func ValidRecommendation(r string) bool {
	switch Recommendation(r) {
	case RecommendationQualified, RecommendationReview, RecommendationNotQualified:
		return true
	}
	return false
}

// AnalysisRecord is the persisted form of one candidate analysis. Written
// once, never updated. MatchScore is guaranteed to be within [0,100] and
// Recommendation one of the enumerated verdicts before a write is attempted.
type AnalysisRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID           uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	CandidateID     uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	MatchScore      int       `gorm:"not null" json:"match_score"`
	ExperienceYears int       `gorm:"not null" json:"experience_years"`
	MatchingSkills  []string  `gorm:"serializer:json" json:"matching_skills"`
	MissingSkills   []string  `gorm:"serializer:json" json:"missing_skills"`
	Strengths       []string  `gorm:"serializer:json" json:"strengths"`
	Weaknesses      []string  `gorm:"serializer:json" json:"weaknesses"`
	Recommendation  string    `gorm:"type:text;not null" json:"recommendation"`
	Summary         string    `gorm:"type:text" json:"summary"`
	CreatedAt       time.Time `gorm:"type:timestamptz" json:"created_at"`

	Job       Job       `gorm:"foreignKey:JobID" json:"-"`
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_results"
}
