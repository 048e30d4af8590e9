package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
)

// StatusPropagator keeps a lead's finalPayout and finalInvoice flags equal to
// the OR of the flags on its payouts and invoices. It is called as the last
// step of every payout or invoice write, inside the same transaction, and
// always re-scans the siblings instead of copying the touched record's flag.
type StatusPropagator struct{}

// NewStatusPropagator creates a StatusPropagator
func NewStatusPropagator() *StatusPropagator {
	return &StatusPropagator{}
}

// SyncFinalPayout re-derives lead.finalPayout. It returns an event only when
// the stored flag actually changed.
func (p *StatusPropagator) SyncFinalPayout(ctx context.Context, repos TransactionalRepositories, leadID uuid.UUID) (*ledger.LeadFinalFlagChangedEvent, error) {
	final, err := repos.Payouts().ExistsFinalForLead(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("scan final payouts: %w", err)
	}
	return p.sync(ctx, repos, leadID, ledger.FinalFlagPayout, final)
}

// SyncFinalInvoice re-derives lead.finalInvoice.
func (p *StatusPropagator) SyncFinalInvoice(ctx context.Context, repos TransactionalRepositories, leadID uuid.UUID) (*ledger.LeadFinalFlagChangedEvent, error) {
	final, err := repos.Invoices().ExistsFinalForLead(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("scan final invoices: %w", err)
	}
	return p.sync(ctx, repos, leadID, ledger.FinalFlagInvoice, final)
}

func (p *StatusPropagator) sync(ctx context.Context, repos TransactionalRepositories, leadID uuid.UUID, flag ledger.FinalFlag, final bool) (*ledger.LeadFinalFlagChangedEvent, error) {
	lead, err := repos.Leads().FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Final(flag) == final {
		return nil, nil
	}
	if err := repos.Leads().SetFinal(ctx, leadID, flag, final); err != nil {
		return nil, fmt.Errorf("set lead %s: %w", flag, err)
	}
	return ledger.NewLeadFinalFlagChangedEvent(leadID, flag, final), nil
}
