package models

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title          string    `gorm:"type:text;not null" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	RequiredSkills []string  `gorm:"serializer:json" json:"required_skills"`
	CreatedAt      time.Time `gorm:"type:timestamptz" json:"created_at"`
	UpdatedAt      time.Time `gorm:"type:timestamptz" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
