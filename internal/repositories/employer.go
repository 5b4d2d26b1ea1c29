package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

type EmployerRepository interface {
	Create(employer *models.Employer) error
	FindByID(id uuid.UUID) (*models.Employer, error)
}

type employerRepository struct {
	db *gorm.DB
}

func NewEmployerRepository(db *gorm.DB) EmployerRepository {
	return &employerRepository{db: db}
}

// Create implements EmployerRepository.
func (r *employerRepository) Create(employer *models.Employer) error {
	if err := r.db.Create(employer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create employer: %w", err)
	}
	return nil
}

// FindByID implements EmployerRepository.
func (r *employerRepository) FindByID(id uuid.UUID) (*models.Employer, error) {
	var employer models.Employer
	if err := r.db.Where("id = ?", id).First(&employer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("employer not found")
		}
		return nil, fmt.Errorf("failed to find employer: %w", err)
	}
	return &employer, nil
}
