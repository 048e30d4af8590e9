package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAdvisorPayoutRepository implements ledger.AdvisorPayoutRepository using GORM
type GormAdvisorPayoutRepository struct {
	db *gorm.DB
}

// NewGormAdvisorPayoutRepository creates a new GormAdvisorPayoutRepository
func NewGormAdvisorPayoutRepository(db *gorm.DB) *GormAdvisorPayoutRepository {
	return &GormAdvisorPayoutRepository{db: db}
}

// FindByID finds a payout by ID
func (r *GormAdvisorPayoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AdvisorPayout, error) {
	var model models.AdvisorPayoutModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("advisor payout")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLeadAndAdvisor finds the payout of one advisor on one lead
func (r *GormAdvisorPayoutRepository) FindByLeadAndAdvisor(ctx context.Context, leadID, advisorID uuid.UUID) (*ledger.AdvisorPayout, error) {
	var model models.AdvisorPayoutModel
	if err := r.db.WithContext(ctx).
		Where("lead_id = ? AND advisor_id = ?", leadID, advisorID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("advisor payout")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsFinalForLead reports whether any payout of the lead is final
func (r *GormAdvisorPayoutRepository) ExistsFinalForLead(ctx context.Context, leadID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AdvisorPayoutModel{}).
		Where("lead_id = ? AND final_payout = ?", leadID, true).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new payout
func (r *GormAdvisorPayoutRepository) Create(ctx context.Context, payout *ledger.AdvisorPayout) error {
	model := models.AdvisorPayoutModelFromDomain(payout)
	return TranslateError(r.db.WithContext(ctx).Create(model).Error)
}

// SaveWithLock updates a payout if its stored version is still Version-1
func (r *GormAdvisorPayoutRepository) SaveWithLock(ctx context.Context, payout *ledger.AdvisorPayout) error {
	model := models.AdvisorPayoutModelFromDomain(payout)
	result := r.db.WithContext(ctx).
		Model(&models.AdvisorPayoutModel{}).
		Where("id = ? AND version = ?", payout.ID, payout.Version-1).
		Updates(model.UpdateColumns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict, "Advisor payout was modified by another transaction")
	}
	return nil
}

// Delete removes a payout
func (r *GormAdvisorPayoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AdvisorPayoutModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("advisor payout")
	}
	return nil
}

// GormPayableRepository implements ledger.PayableRepository using GORM
type GormPayableRepository struct {
	db *gorm.DB
}

// NewGormPayableRepository creates a new GormPayableRepository
func NewGormPayableRepository(db *gorm.DB) *GormPayableRepository {
	return &GormPayableRepository{db: db}
}

// FindByID finds a payable by ID
func (r *GormPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payable, error) {
	var model models.PayableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("payable")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// bucketSum is one row of a paid-per-bucket aggregation
type bucketSum struct {
	PaymentAgainst string
	Total          decimal.Decimal
}

// SumPaidByBucket sums paid amounts of a payout grouped by paymentAgainst
func (r *GormPayableRepository) SumPaidByBucket(ctx context.Context, payoutID uuid.UUID) (ledger.PaidTotals, error) {
	var rows []bucketSum
	if err := r.db.WithContext(ctx).
		Model(&models.PayableModel{}).
		Select("payment_against, COALESCE(SUM(paid_amount), 0) AS total").
		Where("payout_id = ?", payoutID).
		Group("payment_against").
		Scan(&rows).Error; err != nil {
		return ledger.PaidTotals{}, err
	}
	totals := ledger.PaidTotals{Principal: decimal.Zero, GST: decimal.Zero}
	for _, row := range rows {
		totals = totals.Add(ledger.PaymentAgainst(row.PaymentAgainst), row.Total)
	}
	return totals, nil
}

// Create inserts a payable
func (r *GormPayableRepository) Create(ctx context.Context, payable *ledger.Payable) error {
	return TranslateError(r.db.WithContext(ctx).Create(models.PayableModelFromDomain(payable)).Error)
}

// Save updates a payable
func (r *GormPayableRepository) Save(ctx context.Context, payable *ledger.Payable) error {
	model := models.PayableModelFromDomain(payable)
	result := r.db.WithContext(ctx).
		Model(&models.PayableModel{}).
		Where("id = ?", payable.ID).
		Updates(model.UpdateColumns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("payable")
	}
	return nil
}

// Delete removes a payable
func (r *GormPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PayableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("payable")
	}
	return nil
}

// DeleteByPayout removes every payable of a payout
func (r *GormPayableRepository) DeleteByPayout(ctx context.Context, payoutID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PayableModel{}, "payout_id = ?", payoutID).Error
}

var (
	_ ledger.AdvisorPayoutRepository = (*GormAdvisorPayoutRepository)(nil)
	_ ledger.PayableRepository       = (*GormPayableRepository)(nil)
)
