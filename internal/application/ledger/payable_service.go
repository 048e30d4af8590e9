package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PayableService records payments made to advisors against their payouts
type PayableService struct {
	unitOfWork
	payouts  ledger.AdvisorPayoutRepository
	payables ledger.PayableRepository
	queries  ledger.LedgerQueryRepository
}

// NewPayableService creates a new PayableService
func NewPayableService(
	scope TransactionScope,
	payouts ledger.AdvisorPayoutRepository,
	payables ledger.PayableRepository,
	queries ledger.LedgerQueryRepository,
	opts ...ServiceOption,
) *PayableService {
	return &PayableService{
		unitOfWork: applyOptions(scope, opts),
		payouts:    payouts,
		payables:   payables,
		queries:    queries,
	}
}

// Create records a payment against one bucket of a payout. The payout is
// re-read inside the transaction so the amount is checked against the
// balance as of the lock.
func (s *PayableService) Create(ctx context.Context, actorID uuid.UUID, in CreatePayableInput) (*PayableResponse, error) {
	current, err := s.payouts.FindByID(ctx, in.PayoutID)
	if err != nil {
		return nil, err
	}

	var created *ledger.Payable
	err = s.run(ctx, PayoutLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		payout, err := repos.Payouts().FindByID(ctx, in.PayoutID)
		if err != nil {
			return err
		}
		payable, err := payout.RecordPayable(in.details(), actorID)
		if err != nil {
			return err
		}
		if err := repos.Payables().Create(ctx, payable); err != nil {
			return err
		}
		if err := repos.Payouts().SaveWithLock(ctx, payout); err != nil {
			return err
		}
		events.drain(payout)
		created = payable
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payable recorded",
		zap.String("payable_id", created.ID.String()),
		zap.String("payout_id", created.PayoutID.String()),
		zap.String("payment_against", created.PaymentAgainst.String()),
		zap.String("paid_amount", created.SettledAmount.String()),
	)
	return s.Get(ctx, created.ID)
}

// Update revises the paid amount of a payment and moves the difference
// through the payout bucket
func (s *PayableService) Update(ctx context.Context, actorID, id uuid.UUID, in UpdatePayableInput) (*PayableResponse, error) {
	current, err := s.payables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.run(ctx, PayoutLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		payable, err := repos.Payables().FindByID(ctx, id)
		if err != nil {
			return err
		}
		payout, err := repos.Payouts().FindByID(ctx, payable.PayoutID)
		if err != nil {
			return err
		}
		if err := payout.RevisePayable(payable, in.details(&payable.Installment), actorID); err != nil {
			return err
		}
		if err := repos.Payables().Save(ctx, payable); err != nil {
			return err
		}
		if err := repos.Payouts().SaveWithLock(ctx, payout); err != nil {
			return err
		}
		events.drain(payout)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payable revised", zap.String("payable_id", id.String()))
	return s.Get(ctx, id)
}

// Delete removes a payment and gives its amount back to the payout bucket
func (s *PayableService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.payables.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.run(ctx, PayoutLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		payable, err := repos.Payables().FindByID(ctx, id)
		if err != nil {
			return err
		}
		payout, err := repos.Payouts().FindByID(ctx, payable.PayoutID)
		if err != nil {
			return err
		}
		if err := payout.ReversePayable(payable); err != nil {
			return err
		}
		if err := repos.Payables().Delete(ctx, payable.ID); err != nil {
			return err
		}
		if err := repos.Payouts().SaveWithLock(ctx, payout); err != nil {
			return err
		}
		events.drain(payout)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Payable deleted",
		zap.String("payable_id", id.String()),
		zap.String("payout_id", current.PayoutID.String()),
	)
	return nil
}

// Get returns one payment with the bucket total it was paid from
func (s *PayableService) Get(ctx context.Context, id uuid.UUID) (*PayableResponse, error) {
	view, err := s.queries.GetPayable(ctx, id)
	if err != nil {
		return nil, err
	}
	payout, err := s.payouts.FindByID(ctx, view.Payable.PayoutID)
	if err != nil {
		return nil, err
	}
	remaining, err := payout.RemainingFor(view.Payable.PaymentAgainst)
	if err != nil {
		return nil, err
	}

	resp := toPayableResponse(view)
	total := view.Payable.SettledAmount.Add(remaining)
	resp.TotalAmount = &total
	return &resp, nil
}

// List lists payments, newest first
func (s *PayableService) List(ctx context.Context, filter LedgerListFilter) ([]PayableResponse, int64, error) {
	views, total, err := s.queries.ListPayables(ctx, filter.toDomain())
	if err != nil {
		return nil, 0, err
	}
	out := make([]PayableResponse, len(views))
	for i := range views {
		out[i] = toPayableResponse(&views[i])
	}
	return out, total, nil
}

// LeadsWithOpenPayouts lists leads that still owe an advisor something
func (s *PayableService) LeadsWithOpenPayouts(ctx context.Context) ([]LeadOptionResponse, error) {
	leads, err := s.queries.LeadsWithOpenPayouts(ctx)
	if err != nil {
		return nil, err
	}
	return toLeadOptions(leads), nil
}

// AdvisorsForLead lists the advisors holding a payout on the lead
func (s *PayableService) AdvisorsForLead(ctx context.Context, leadID uuid.UUID) ([]AdvisorOptionResponse, error) {
	if leadID == uuid.Nil {
		return nil, shared.NewValidationError("leadId", "is required")
	}
	options, err := s.queries.AdvisorsForLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]AdvisorOptionResponse, len(options))
	for i, o := range options {
		out[i] = AdvisorOptionResponse{
			AdvisorPayoutID: o.AdvisorPayoutID,
			AdvisorID:       o.AdvisorID,
			Name:            o.Name,
		}
	}
	return out, nil
}

// AdvisorStatement is the advisor's own view of what was paid and what is
// pending. Stats and counts cover every matching line; only Payables is paged.
func (s *PayableService) AdvisorStatement(ctx context.Context, advisorID uuid.UUID, filter StatementListFilter) (*StatementResponse, error) {
	if advisorID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeForbidden, "advisor statement is only available to advisors")
	}
	rows, err := s.queries.AdvisorPayables(ctx, ledger.StatementFilter{
		AdvisorID:   advisorID,
		ProductType: filter.ProductType,
		FromDate:    filter.FromDate,
		ToDate:      endOfDay(filter.ToDate),
	})
	if err != nil {
		return nil, err
	}

	lines, stats := ledger.BuildStatement(rows, ledger.SettlementStatus(filter.PaymentStatus))
	page := pageFilter(filter.Page, filter.Limit)
	start := min(page.Offset(), len(lines))
	end := min(start+page.PageSize, len(lines))

	resp := &StatementResponse{
		Payables: make([]PayableResponse, 0, end-start),
		Stats: StatementStatsResponse{
			TotalDisbursal: stats.TotalDisbursal,
			TotalPayout:    stats.TotalPayout,
			PaidAmount:     stats.PaidAmount,
			PendingAmount:  stats.PendingAmount,
		},
		TotalCount: int64(len(lines)),
		TotalPages: max((len(lines)+page.PageSize-1)/page.PageSize, 1),
		Page:       page.Page,
		Limit:      page.PageSize,
	}
	for i := start; i < end; i++ {
		resp.Payables = append(resp.Payables, toPayableResponse(&lines[i].PayableView))
	}
	return resp, nil
}
