package ledger

import (
	"context"

	"github.com/google/uuid"
)

// LeadRepository reads leads and writes their derived final flags
type LeadRepository interface {
	// FindByID finds a lead with its feedback history
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)

	// FindNotFinal lists leads whose flag is still false, newest first, with history loaded
	FindNotFinal(ctx context.Context, flag FinalFlag) ([]Lead, error)

	// SetFinal writes one final flag
	SetFinal(ctx context.Context, id uuid.UUID, flag FinalFlag, value bool) error
}

// AdvisorRepository reads the advisor directory
type AdvisorRepository interface {
	// FindByID finds an advisor
	FindByID(ctx context.Context, id uuid.UUID) (*Advisor, error)
}

// AdvisorPayoutRepository defines the persistence of payout aggregates
type AdvisorPayoutRepository interface {
	// FindByID finds a payout by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AdvisorPayout, error)

	// FindByLeadAndAdvisor finds the payout of one advisor on one lead
	FindByLeadAndAdvisor(ctx context.Context, leadID, advisorID uuid.UUID) (*AdvisorPayout, error)

	// ExistsFinalForLead reports whether any payout of the lead is final
	ExistsFinalForLead(ctx context.Context, leadID uuid.UUID) (bool, error)

	// Create inserts a new payout
	Create(ctx context.Context, payout *AdvisorPayout) error

	// SaveWithLock updates a payout if its stored version is still Version-1
	SaveWithLock(ctx context.Context, payout *AdvisorPayout) error

	// Delete removes a payout
	Delete(ctx context.Context, id uuid.UUID) error
}

// PayableRepository defines the persistence of payout installments
type PayableRepository interface {
	// FindByID finds a payable by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payable, error)

	// SumPaidByBucket sums paid amounts of a payout grouped by paymentAgainst
	SumPaidByBucket(ctx context.Context, payoutID uuid.UUID) (PaidTotals, error)

	// Create inserts a payable
	Create(ctx context.Context, payable *Payable) error

	// Save updates a payable
	Save(ctx context.Context, payable *Payable) error

	// Delete removes a payable
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPayout removes every payable of a payout
	DeleteByPayout(ctx context.Context, payoutID uuid.UUID) error
}

// InvoiceMasterRepository defines the persistence of invoice-master aggregates
type InvoiceMasterRepository interface {
	// FindByID finds a master by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceMaster, error)

	// FindByLead finds the master of a lead
	FindByLead(ctx context.Context, leadID uuid.UUID) (*InvoiceMaster, error)

	// Create inserts a new master
	Create(ctx context.Context, master *InvoiceMaster) error

	// SaveWithLock updates a master if its stored version is still Version-1
	SaveWithLock(ctx context.Context, master *InvoiceMaster) error

	// Delete removes a master
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository defines the persistence of invoices
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// ExistsFinalForLead reports whether any invoice of the lead is final
	ExistsFinalForLead(ctx context.Context, leadID uuid.UUID) (bool, error)

	// Create inserts an invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Save updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReceivableRepository defines the persistence of invoice installments
type ReceivableRepository interface {
	// FindByID finds a receivable by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)

	// Create inserts a receivable
	Create(ctx context.Context, receivable *Receivable) error

	// Save updates a receivable
	Save(ctx context.Context, receivable *Receivable) error

	// Delete removes a receivable
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByMaster removes every receivable of a master
	DeleteByMaster(ctx context.Context, masterID uuid.UUID) error
}

// LedgerQueryRepository serves the joined read paths. It never mutates.
type LedgerQueryRepository interface {
	// ListPayouts lists payouts joined with lead and advisor
	ListPayouts(ctx context.Context, filter LedgerFilter) ([]PayoutView, int64, error)

	// GetPayout loads one payout view
	GetPayout(ctx context.Context, id uuid.UUID) (*PayoutView, error)

	// LeadsWithOpenPayouts lists leads holding a payout with an unpaid balance
	LeadsWithOpenPayouts(ctx context.Context) ([]LeadOption, error)

	// AdvisorsForLead lists advisors holding a payout on the lead
	AdvisorsForLead(ctx context.Context, leadID uuid.UUID) ([]PayoutAdvisorOption, error)

	// ListPayables lists payables joined with lead and advisor
	ListPayables(ctx context.Context, filter LedgerFilter) ([]PayableView, int64, error)

	// GetPayable loads one payable view
	GetPayable(ctx context.Context, id uuid.UUID) (*PayableView, error)

	// AdvisorPayables lists every payable of an advisor matching the filter, unpaged
	AdvisorPayables(ctx context.Context, filter StatementFilter) ([]PayableView, error)

	// ListInvoices lists invoices joined with lead
	ListInvoices(ctx context.Context, filter LedgerFilter) ([]InvoiceView, int64, error)

	// GetInvoice loads one invoice view
	GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error)

	// LeadsWithOpenInvoices lists leads whose master still has a balance
	LeadsWithOpenInvoices(ctx context.Context) ([]LeadOption, error)

	// ListReceivables lists receivables joined with lead
	ListReceivables(ctx context.Context, filter LedgerFilter) ([]ReceivableView, int64, error)

	// GetReceivable loads one receivable view
	GetReceivable(ctx context.Context, id uuid.UUID) (*ReceivableView, error)
}
