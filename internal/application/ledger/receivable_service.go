package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReceivableService records money received from banks against invoice masters
type ReceivableService struct {
	unitOfWork
	masters     ledger.InvoiceMasterRepository
	receivables ledger.ReceivableRepository
	queries     ledger.LedgerQueryRepository
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(
	scope TransactionScope,
	masters ledger.InvoiceMasterRepository,
	receivables ledger.ReceivableRepository,
	queries ledger.LedgerQueryRepository,
	opts ...ServiceOption,
) *ReceivableService {
	return &ReceivableService{
		unitOfWork:  applyOptions(scope, opts),
		masters:     masters,
		receivables: receivables,
		queries:     queries,
	}
}

// Create records a receipt against one bucket of an invoice master
func (s *ReceivableService) Create(ctx context.Context, actorID uuid.UUID, in CreateReceivableInput) (*ReceivableResponse, error) {
	current, err := s.masters.FindByID(ctx, in.InvoiceMasterID)
	if err != nil {
		return nil, err
	}

	var created *ledger.Receivable
	err = s.run(ctx, InvoiceLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		master, err := repos.InvoiceMasters().FindByID(ctx, in.InvoiceMasterID)
		if err != nil {
			return err
		}
		receivable, err := master.RecordReceivable(in.details(), actorID)
		if err != nil {
			return err
		}
		if err := repos.Receivables().Create(ctx, receivable); err != nil {
			return err
		}
		if err := repos.InvoiceMasters().SaveWithLock(ctx, master); err != nil {
			return err
		}
		events.drain(master)
		created = receivable
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Receivable recorded",
		zap.String("receivable_id", created.ID.String()),
		zap.String("invoice_master_id", created.InvoiceMasterID.String()),
		zap.String("payment_against", created.PaymentAgainst.String()),
		zap.String("received_amount", created.SettledAmount.String()),
	)
	return s.Get(ctx, created.ID)
}

// Update revises a receipt and moves the difference through the master bucket
func (s *ReceivableService) Update(ctx context.Context, actorID, id uuid.UUID, in UpdateReceivableInput) (*ReceivableResponse, error) {
	current, err := s.receivables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.run(ctx, InvoiceLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		receivable, err := repos.Receivables().FindByID(ctx, id)
		if err != nil {
			return err
		}
		master, err := repos.InvoiceMasters().FindByID(ctx, receivable.InvoiceMasterID)
		if err != nil {
			return err
		}
		if err := master.ReviseReceivable(receivable, in.details(&receivable.Installment), actorID); err != nil {
			return err
		}
		if err := repos.Receivables().Save(ctx, receivable); err != nil {
			return err
		}
		if err := repos.InvoiceMasters().SaveWithLock(ctx, master); err != nil {
			return err
		}
		events.drain(master)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Receivable revised", zap.String("receivable_id", id.String()))
	return s.Get(ctx, id)
}

// Delete removes a receipt and gives its amount back to the master bucket
func (s *ReceivableService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.receivables.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.run(ctx, InvoiceLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		receivable, err := repos.Receivables().FindByID(ctx, id)
		if err != nil {
			return err
		}
		master, err := repos.InvoiceMasters().FindByID(ctx, receivable.InvoiceMasterID)
		if err != nil {
			return err
		}
		if err := master.ReverseReceivable(receivable); err != nil {
			return err
		}
		if err := repos.Receivables().Delete(ctx, receivable.ID); err != nil {
			return err
		}
		if err := repos.InvoiceMasters().SaveWithLock(ctx, master); err != nil {
			return err
		}
		events.drain(master)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Receivable deleted",
		zap.String("receivable_id", id.String()),
		zap.String("invoice_master_id", current.InvoiceMasterID.String()),
	)
	return nil
}

// Get returns one receipt with the bucket total it was received into
func (s *ReceivableService) Get(ctx context.Context, id uuid.UUID) (*ReceivableResponse, error) {
	view, err := s.queries.GetReceivable(ctx, id)
	if err != nil {
		return nil, err
	}
	master, err := s.masters.FindByID(ctx, view.Receivable.InvoiceMasterID)
	if err != nil {
		return nil, err
	}
	remaining, err := master.RemainingFor(view.Receivable.PaymentAgainst)
	if err != nil {
		return nil, err
	}

	resp := toReceivableResponse(view)
	total := view.Receivable.SettledAmount.Add(remaining)
	resp.TotalAmount = &total
	return &resp, nil
}

// List lists receipts, newest first
func (s *ReceivableService) List(ctx context.Context, filter LedgerListFilter) ([]ReceivableResponse, int64, error) {
	views, total, err := s.queries.ListReceivables(ctx, filter.toDomain())
	if err != nil {
		return nil, 0, err
	}
	out := make([]ReceivableResponse, len(views))
	for i := range views {
		out[i] = toReceivableResponse(&views[i])
	}
	return out, total, nil
}

// LeadsWithOpenInvoices lists leads whose bank still owes something
func (s *ReceivableService) LeadsWithOpenInvoices(ctx context.Context) ([]LeadOptionResponse, error) {
	leads, err := s.queries.LeadsWithOpenInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return toLeadOptions(leads), nil
}

// InvoiceMasterByLead returns the invoice totals of a lead
func (s *ReceivableService) InvoiceMasterByLead(ctx context.Context, leadID uuid.UUID) (*InvoiceMasterResponse, error) {
	if leadID == uuid.Nil {
		return nil, shared.NewValidationError("leadId", "is required")
	}
	master, err := s.masters.FindByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceMasterResponse(master)
	return &resp, nil
}
