package persistence

import (
	"context"

	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every repository handed to fn shares one transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. It commits when fn returns
// nil and rolls back otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories builds repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Leads() ledger.LeadRepository {
	return NewGormLeadRepository(r.tx)
}

func (r *gormTransactionalRepositories) Advisors() ledger.AdvisorRepository {
	return NewGormAdvisorRepository(r.tx)
}

func (r *gormTransactionalRepositories) Payouts() ledger.AdvisorPayoutRepository {
	return NewGormAdvisorPayoutRepository(r.tx)
}

func (r *gormTransactionalRepositories) Payables() ledger.PayableRepository {
	return NewGormPayableRepository(r.tx)
}

func (r *gormTransactionalRepositories) InvoiceMasters() ledger.InvoiceMasterRepository {
	return NewGormInvoiceMasterRepository(r.tx)
}

func (r *gormTransactionalRepositories) Invoices() ledger.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) Receivables() ledger.ReceivableRepository {
	return NewGormReceivableRepository(r.tx)
}

var (
	_ appledger.TransactionScope          = (*GormTransactionScope)(nil)
	_ appledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
