package ledger

import (
	"context"

	"github.com/leadcrm/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repositories.
// All repository operations made through the repositories handed to fn are
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the ledger repositories within a
// transaction. Every repository shares the same underlying transaction.
//
// The payout side of a lead (AdvisorPayout plus its Payables) and the invoice
// side (InvoiceMaster plus Invoices and Receivables) are each written as one
// unit; Leads is touched only by the status propagation step and Advisors is
// read-only.
type TransactionalRepositories interface {
	Leads() ledger.LeadRepository
	Advisors() ledger.AdvisorRepository
	Payouts() ledger.AdvisorPayoutRepository
	Payables() ledger.PayableRepository
	InvoiceMasters() ledger.InvoiceMasterRepository
	Invoices() ledger.InvoiceRepository
	Receivables() ledger.ReceivableRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	leads          ledger.LeadRepository
	advisors       ledger.AdvisorRepository
	payouts        ledger.AdvisorPayoutRepository
	payables       ledger.PayableRepository
	invoiceMasters ledger.InvoiceMasterRepository
	invoices       ledger.InvoiceRepository
	receivables    ledger.ReceivableRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	leads ledger.LeadRepository,
	advisors ledger.AdvisorRepository,
	payouts ledger.AdvisorPayoutRepository,
	payables ledger.PayableRepository,
	invoiceMasters ledger.InvoiceMasterRepository,
	invoices ledger.InvoiceRepository,
	receivables ledger.ReceivableRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		leads:          leads,
		advisors:       advisors,
		payouts:        payouts,
		payables:       payables,
		invoiceMasters: invoiceMasters,
		invoices:       invoices,
		receivables:    receivables,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Leads() ledger.LeadRepository            { return s.leads }
func (s *NoOpTransactionScope) Advisors() ledger.AdvisorRepository      { return s.advisors }
func (s *NoOpTransactionScope) Payouts() ledger.AdvisorPayoutRepository { return s.payouts }
func (s *NoOpTransactionScope) Payables() ledger.PayableRepository      { return s.payables }
func (s *NoOpTransactionScope) InvoiceMasters() ledger.InvoiceMasterRepository {
	return s.invoiceMasters
}
func (s *NoOpTransactionScope) Invoices() ledger.InvoiceRepository       { return s.invoices }
func (s *NoOpTransactionScope) Receivables() ledger.ReceivableRepository { return s.receivables }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
