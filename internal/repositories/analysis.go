package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"resume-screener/internal/models"
)

type AnalysisRepository interface {
	Create(record *models.AnalysisRecord) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(record *models.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis result: %w", err)
	}
	return nil
}
