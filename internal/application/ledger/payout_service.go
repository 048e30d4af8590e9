package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PayoutService manages advisor payouts: pricing, re-pricing and deletion,
// with finalPayout kept in sync on the lead.
type PayoutService struct {
	unitOfWork
	payouts ledger.AdvisorPayoutRepository
	leads   ledger.LeadRepository
	queries ledger.LedgerQueryRepository
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(
	scope TransactionScope,
	payouts ledger.AdvisorPayoutRepository,
	leads ledger.LeadRepository,
	queries ledger.LedgerQueryRepository,
	opts ...ServiceOption,
) *PayoutService {
	return &PayoutService{
		unitOfWork: applyOptions(scope, opts),
		payouts:    payouts,
		leads:      leads,
		queries:    queries,
	}
}

// Create opens the payout of an advisor on a lead
func (s *PayoutService) Create(ctx context.Context, actorID uuid.UUID, in CreatePayoutInput) (*PayoutResponse, error) {
	var created *ledger.AdvisorPayout
	err := s.run(ctx, PayoutLedgerKey(in.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		lead, err := repos.Leads().FindByID(ctx, in.LeadID)
		if err != nil {
			return err
		}
		if lead.FinalPayout {
			return shared.NewBadRequestError("lead already has a final payout")
		}
		if _, err := repos.Advisors().FindByID(ctx, in.AdvisorID); err != nil {
			return err
		}

		existing, err := repos.Payouts().FindByLeadAndAdvisor(ctx, in.LeadID, in.AdvisorID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewDomainError(shared.CodeAlreadyExists, "payout already exists for this lead and advisor")
		}

		payout, err := ledger.NewAdvisorPayout(in.LeadID, in.AdvisorID, in.terms(), actorID)
		if err != nil {
			return err
		}
		if err := repos.Payouts().Create(ctx, payout); err != nil {
			return err
		}
		events.drain(payout)
		created = payout
		return s.syncFinalPayout(ctx, repos, payout.LeadID, events)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Advisor payout created",
		zap.String("payout_id", created.ID.String()),
		zap.String("lead_id", created.LeadID.String()),
		zap.String("advisor_id", created.AdvisorID.String()),
		zap.String("net_payable_amount", created.NetPayableAmount.String()),
	)
	return s.Get(ctx, created.ID)
}

// Update re-prices a payout from the merged inputs. Payments already made
// must still fit in the new buckets.
func (s *PayoutService) Update(ctx context.Context, actorID, id uuid.UUID, in UpdatePayoutInput) (*PayoutResponse, error) {
	current, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.run(ctx, PayoutLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		payout, err := repos.Payouts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		paid, err := repos.Payables().SumPaidByBucket(ctx, payout.ID)
		if err != nil {
			return err
		}
		if err := payout.Reprice(in.apply(payout.Terms()), paid, actorID); err != nil {
			return err
		}
		if err := repos.Payouts().SaveWithLock(ctx, payout); err != nil {
			return err
		}
		events.drain(payout)
		return s.syncFinalPayout(ctx, repos, payout.LeadID, events)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Advisor payout updated", zap.String("payout_id", id.String()))
	return s.Get(ctx, id)
}

// Delete removes a payout together with its payables
func (s *PayoutService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.run(ctx, PayoutLedgerKey(current.LeadID), func(repos TransactionalRepositories, events *pendingEvents) error {
		payout, err := repos.Payouts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Payables().DeleteByPayout(ctx, payout.ID); err != nil {
			return err
		}
		if err := repos.Payouts().Delete(ctx, payout.ID); err != nil {
			return err
		}
		payout.MarkDeleted()
		events.drain(payout)
		return s.syncFinalPayout(ctx, repos, payout.LeadID, events)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Advisor payout deleted",
		zap.String("payout_id", id.String()),
		zap.String("lead_id", current.LeadID.String()),
	)
	return nil
}

// Get returns one payout with its lead and advisor
func (s *PayoutService) Get(ctx context.Context, id uuid.UUID) (*PayoutResponse, error) {
	view, err := s.queries.GetPayout(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPayoutResponse(view)
	return &resp, nil
}

// List lists payouts, newest first
func (s *PayoutService) List(ctx context.Context, filter LedgerListFilter) ([]PayoutResponse, int64, error) {
	views, total, err := s.queries.ListPayouts(ctx, filter.toDomain())
	if err != nil {
		return nil, 0, err
	}
	out := make([]PayoutResponse, len(views))
	for i := range views {
		out[i] = toPayoutResponse(&views[i])
	}
	return out, total, nil
}

// DisbursedUnpaidLeads lists disbursed leads that have no final payout yet
func (s *PayoutService) DisbursedUnpaidLeads(ctx context.Context) ([]LeadOptionResponse, error) {
	return disbursedLeads(ctx, s.leads, ledger.FinalFlagPayout)
}

// disbursedLeads lists leads whose flag is still false and whose latest
// feedback is "Loan Disbursed".
func disbursedLeads(ctx context.Context, leads ledger.LeadRepository, flag ledger.FinalFlag) ([]LeadOptionResponse, error) {
	candidates, err := leads.FindNotFinal(ctx, flag)
	if err != nil {
		return nil, err
	}
	out := make([]LeadOptionResponse, 0, len(candidates))
	for i := range candidates {
		lead := &candidates[i]
		if !lead.IsDisbursed() {
			continue
		}
		out = append(out, LeadOptionResponse{ID: lead.ID, DisplayName: lead.DisplayName()})
	}
	return out, nil
}
