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

// GormInvoiceMasterRepository implements ledger.InvoiceMasterRepository using GORM
type GormInvoiceMasterRepository struct {
	db *gorm.DB
}

// NewGormInvoiceMasterRepository creates a new GormInvoiceMasterRepository
func NewGormInvoiceMasterRepository(db *gorm.DB) *GormInvoiceMasterRepository {
	return &GormInvoiceMasterRepository{db: db}
}

func (r *GormInvoiceMasterRepository) findOne(ctx context.Context, query string, arg interface{}) (*ledger.InvoiceMaster, error) {
	var model models.InvoiceMasterModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("invoice master")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds a master by ID
func (r *GormInvoiceMasterRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.InvoiceMaster, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByLead finds the master of a lead
func (r *GormInvoiceMasterRepository) FindByLead(ctx context.Context, leadID uuid.UUID) (*ledger.InvoiceMaster, error) {
	return r.findOne(ctx, "lead_id = ?", leadID)
}

// Create inserts a new master
func (r *GormInvoiceMasterRepository) Create(ctx context.Context, master *ledger.InvoiceMaster) error {
	return TranslateError(r.db.WithContext(ctx).Create(models.InvoiceMasterModelFromDomain(master)).Error)
}

// SaveWithLock updates a master if its stored version is still Version-1
func (r *GormInvoiceMasterRepository) SaveWithLock(ctx context.Context, master *ledger.InvoiceMaster) error {
	model := models.InvoiceMasterModelFromDomain(master)
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceMasterModel{}).
		Where("id = ? AND version = ?", master.ID, master.Version-1).
		Updates(model.UpdateColumns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict, "Invoice master was modified by another transaction")
	}
	return nil
}

// Delete removes a master
func (r *GormInvoiceMasterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceMasterModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("invoice master")
	}
	return nil
}

// GormInvoiceRepository implements ledger.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("invoice")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsFinalForLead reports whether any invoice of the lead is final
func (r *GormInvoiceRepository) ExistsFinalForLead(ctx context.Context, leadID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("lead_id = ? AND final_invoice = ?", leadID, true).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts an invoice
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *ledger.Invoice) error {
	return TranslateError(r.db.WithContext(ctx).Create(models.InvoiceModelFromDomain(invoice)).Error)
}

// Save updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", invoice.ID).
		Updates(model.UpdateColumns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("invoice")
	}
	return nil
}

// Delete removes an invoice
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("invoice")
	}
	return nil
}

// GormReceivableRepository implements ledger.ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByID finds a receivable by ID
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("receivable")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a receivable
func (r *GormReceivableRepository) Create(ctx context.Context, receivable *ledger.Receivable) error {
	return TranslateError(r.db.WithContext(ctx).Create(models.ReceivableModelFromDomain(receivable)).Error)
}

// Save updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *ledger.Receivable) error {
	model := models.ReceivableModelFromDomain(receivable)
	result := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Where("id = ?", receivable.ID).
		Updates(model.UpdateColumns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("receivable")
	}
	return nil
}

// Delete removes a receivable
func (r *GormReceivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReceivableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("receivable")
	}
	return nil
}

// DeleteByMaster removes every receivable of a master
func (r *GormReceivableRepository) DeleteByMaster(ctx context.Context, masterID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ReceivableModel{}, "invoice_master_id = ?", masterID).Error
}

var (
	_ ledger.InvoiceMasterRepository = (*GormInvoiceMasterRepository)(nil)
	_ ledger.InvoiceRepository       = (*GormInvoiceRepository)(nil)
	_ ledger.ReceivableRepository    = (*GormReceivableRepository)(nil)
)
