package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxStoredResumeChars caps resume_text before persistence. Independent of
// the prompt truncation limit.
const MaxStoredResumeChars = 50000

type Candidate struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID      uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	Filename   string    `gorm:"type:text" json:"filename"`
	ResumeText string    `gorm:"type:text" json:"resume_text"`
	CreatedAt  time.Time `gorm:"type:timestamptz" json:"created_at"`

	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
