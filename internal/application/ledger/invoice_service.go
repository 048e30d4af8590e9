package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceService manages invoices and the per-lead invoice master they roll
// up into, with finalInvoice kept in sync on the lead.
type InvoiceService struct {
	unitOfWork
	invoices ledger.InvoiceRepository
	leads    ledger.LeadRepository
	queries  ledger.LedgerQueryRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	scope TransactionScope,
	invoices ledger.InvoiceRepository,
	leads ledger.LeadRepository,
	queries ledger.LedgerQueryRepository,
	opts ...ServiceOption,
) *InvoiceService {
	return &InvoiceService{
		unitOfWork: applyOptions(scope, opts),
		invoices:   invoices,
		leads:      leads,
		queries:    queries,
	}
}

// Create adds an invoice to the lead's master, opening the master on the
// lead's first invoice
func (s *InvoiceService) Create(ctx context.Context, actorID uuid.UUID, in CreateInvoiceInput) (*InvoiceResponse, error) {
	var created *ledger.Invoice
	err := s.run(ctx, InvoiceLedgerKey(in.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		lead, err := repos.Leads().FindByID(ctx, in.LeadID)
		if err != nil {
			return err
		}
		if lead.FinalInvoice {
			return shared.NewBadRequestError("lead already has a final invoice")
		}

		invoice, err := ledger.NewInvoice(in.LeadID, in.terms(), actorID)
		if err != nil {
			return err
		}

		master, err := repos.InvoiceMasters().FindByLead(ctx, in.LeadID)
		isNew := false
		switch {
		case errors.Is(err, shared.ErrNotFound):
			master = ledger.NewInvoiceMaster(in.LeadID)
			isNew = true
		case err != nil:
			return err
		}

		if err := master.AddInvoice(invoice); err != nil {
			return err
		}
		if isNew {
			err = repos.InvoiceMasters().Create(ctx, master)
		} else {
			err = repos.InvoiceMasters().SaveWithLock(ctx, master)
		}
		if err != nil {
			return err
		}
		if err := repos.Invoices().Create(ctx, invoice); err != nil {
			return err
		}
		events.drain(master)
		created = invoice
		return s.syncFinalInvoice(ctx, repos, in.LeadID, events)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", created.ID.String()),
		zap.String("invoice_master_id", created.InvoiceMasterID.String()),
		zap.String("lead_id", created.LeadID.String()),
		zap.String("net_receivable_amount", created.NetReceivableAmount.String()),
	)
	return s.Get(ctx, created.ID)
}

// Update re-prices an invoice and swaps its contribution on the master
func (s *InvoiceService) Update(ctx context.Context, actorID, id uuid.UUID, in UpdateInvoiceInput) (*InvoiceResponse, error) {
	current, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.run(ctx, InvoiceLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		invoice, err := repos.Invoices().FindByID(ctx, id)
		if err != nil {
			return err
		}
		master, err := repos.InvoiceMasters().FindByID(ctx, invoice.InvoiceMasterID)
		if err != nil {
			return err
		}
		if err := master.ReviseInvoice(invoice, in.apply(invoice.Terms()), actorID); err != nil {
			return err
		}
		if err := repos.InvoiceMasters().SaveWithLock(ctx, master); err != nil {
			return err
		}
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}
		events.drain(master)
		return s.syncFinalInvoice(ctx, repos, invoice.LeadID, events)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice updated", zap.String("invoice_id", id.String()))
	return s.Get(ctx, id)
}

// Delete removes an invoice. A master left with no amounts at all is
// deleted with it.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return err
	}

	masterDeleted := false
	err = s.run(ctx, InvoiceLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		invoice, err := repos.Invoices().FindByID(ctx, id)
		if err != nil {
			return err
		}
		master, err := repos.InvoiceMasters().FindByID(ctx, invoice.InvoiceMasterID)
		if err != nil {
			return err
		}
		if err := master.RemoveInvoice(invoice); err != nil {
			return err
		}
		if err := repos.Invoices().Delete(ctx, invoice.ID); err != nil {
			return err
		}
		if master.IsEmpty() {
			if err := repos.Receivables().DeleteByMaster(ctx, master.ID); err != nil {
				return err
			}
			if err := repos.InvoiceMasters().Delete(ctx, master.ID); err != nil {
				return err
			}
			masterDeleted = true
		} else if err := repos.InvoiceMasters().SaveWithLock(ctx, master); err != nil {
			return err
		}
		events.drain(master)
		return s.syncFinalInvoice(ctx, repos, invoice.LeadID, events)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Invoice deleted",
		zap.String("invoice_id", id.String()),
		zap.String("lead_id", current.LeadID.String()),
		zap.Bool("master_deleted", masterDeleted),
	)
	return nil
}

// Get returns one invoice with its lead
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	view, err := s.queries.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(view)
	return &resp, nil
}

// List lists invoices, newest first
func (s *InvoiceService) List(ctx context.Context, filter LedgerListFilter) ([]InvoiceResponse, int64, error) {
	views, total, err := s.queries.ListInvoices(ctx, filter.toDomain())
	if err != nil {
		return nil, 0, err
	}
	out := make([]InvoiceResponse, len(views))
	for i := range views {
		out[i] = toInvoiceResponse(&views[i])
	}
	return out, total, nil
}

// DisbursedLeadsWithoutInvoice lists disbursed leads with no final invoice yet
func (s *InvoiceService) DisbursedLeadsWithoutInvoice(ctx context.Context) ([]LeadOptionResponse, error) {
	return disbursedLeads(ctx, s.leads, ledger.FinalFlagInvoice)
}
