package handler

import (
	"context"

	"github.com/google/uuid"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
)

// PayoutService is the advisor payout use case surface used by PayoutHandler
type PayoutService interface {
	Create(ctx context.Context, actorID uuid.UUID, in appledger.CreatePayoutInput) (*appledger.PayoutResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdatePayoutInput) (*appledger.PayoutResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*appledger.PayoutResponse, error)
	List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.PayoutResponse, int64, error)
	DisbursedUnpaidLeads(ctx context.Context) ([]appledger.LeadOptionResponse, error)
}

// PayableService is the advisor payment use case surface used by PayableHandler
type PayableService interface {
	Create(ctx context.Context, actorID uuid.UUID, in appledger.CreatePayableInput) (*appledger.PayableResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdatePayableInput) (*appledger.PayableResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*appledger.PayableResponse, error)
	List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.PayableResponse, int64, error)
	LeadsWithOpenPayouts(ctx context.Context) ([]appledger.LeadOptionResponse, error)
	AdvisorsForLead(ctx context.Context, leadID uuid.UUID) ([]appledger.AdvisorOptionResponse, error)
	AdvisorStatement(ctx context.Context, advisorID uuid.UUID, filter appledger.StatementListFilter) (*appledger.StatementResponse, error)
}

// InvoiceService is the bank invoice use case surface used by InvoiceHandler
type InvoiceService interface {
	Create(ctx context.Context, actorID uuid.UUID, in appledger.CreateInvoiceInput) (*appledger.InvoiceResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdateInvoiceInput) (*appledger.InvoiceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*appledger.InvoiceResponse, error)
	List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.InvoiceResponse, int64, error)
	DisbursedLeadsWithoutInvoice(ctx context.Context) ([]appledger.LeadOptionResponse, error)
}

// ReceivableService is the bank receipt use case surface used by ReceivableHandler
type ReceivableService interface {
	Create(ctx context.Context, actorID uuid.UUID, in appledger.CreateReceivableInput) (*appledger.ReceivableResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdateReceivableInput) (*appledger.ReceivableResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*appledger.ReceivableResponse, error)
	List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.ReceivableResponse, int64, error)
	LeadsWithOpenInvoices(ctx context.Context) ([]appledger.LeadOptionResponse, error)
	InvoiceMasterByLead(ctx context.Context, leadID uuid.UUID) (*appledger.InvoiceMasterResponse, error)
}

var (
	_ PayoutService     = (*appledger.PayoutService)(nil)
	_ PayableService    = (*appledger.PayableService)(nil)
	_ InvoiceService    = (*appledger.InvoiceService)(nil)
	_ ReceivableService = (*appledger.ReceivableService)(nil)
)
