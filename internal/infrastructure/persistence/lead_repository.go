package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeadRepository implements ledger.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

func preloadHistory(db *gorm.DB) *gorm.DB {
	return db.Order("comment_date ASC, created_at ASC")
}

// FindByID finds a lead with its feedback history
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).
		Preload("History", preloadHistory).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("lead")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindNotFinal lists leads whose flag is still false, newest first
func (r *GormLeadRepository) FindNotFinal(ctx context.Context, flag ledger.FinalFlag) ([]ledger.Lead, error) {
	column, err := finalColumn(flag)
	if err != nil {
		return nil, err
	}
	var leadModels []models.LeadModel
	if err := r.db.WithContext(ctx).
		Preload("History", preloadHistory).
		Where(column+" = ?", false).
		Order("created_at DESC").
		Find(&leadModels).Error; err != nil {
		return nil, err
	}
	leads := make([]ledger.Lead, len(leadModels))
	for i := range leadModels {
		leads[i] = *leadModels[i].ToDomain()
	}
	return leads, nil
}

// SetFinal writes one final flag
func (r *GormLeadRepository) SetFinal(ctx context.Context, id uuid.UUID, flag ledger.FinalFlag, value bool) error {
	column, err := finalColumn(flag)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&models.LeadModel{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("lead")
	}
	return nil
}

func finalColumn(flag ledger.FinalFlag) (string, error) {
	switch flag {
	case ledger.FinalFlagPayout:
		return "final_payout", nil
	case ledger.FinalFlagInvoice:
		return "final_invoice", nil
	}
	return "", shared.NewValidationError("flag", "is not a final flag")
}

// GormAdvisorRepository implements ledger.AdvisorRepository using GORM
type GormAdvisorRepository struct {
	db *gorm.DB
}

// NewGormAdvisorRepository creates a new GormAdvisorRepository
func NewGormAdvisorRepository(db *gorm.DB) *GormAdvisorRepository {
	return &GormAdvisorRepository{db: db}
}

// FindByID finds an advisor
func (r *GormAdvisorRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Advisor, error) {
	var model models.AdvisorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("advisor")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var (
	_ ledger.LeadRepository    = (*GormLeadRepository)(nil)
	_ ledger.AdvisorRepository = (*GormAdvisorRepository)(nil)
)
