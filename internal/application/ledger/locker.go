package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AggregateLocker serializes writers of the same ledger aggregate across
// requests (and, when backed by Redis, across instances).
type AggregateLocker interface {
	// Acquire blocks until key is held. The returned release func must be
	// called exactly once. A lock that cannot be obtained in time fails with
	// a CONCURRENCY_CONFLICT domain error.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// PayoutLedgerKey guards every payout and payable of a lead. Scoping the lock
// to the lead instead of the single payout also serializes the finalPayout
// re-scan of sibling payouts.
func PayoutLedgerKey(leadID uuid.UUID) string {
	return fmt.Sprintf("ledger:payout:lead:%s", leadID)
}

// InvoiceLedgerKey guards the invoice master of a lead with its invoices and
// receivables.
func InvoiceLedgerKey(leadID uuid.UUID) string {
	return fmt.Sprintf("ledger:invoice:lead:%s", leadID)
}

// NoOpLocker grants every lock immediately. For tests and single-writer tools.
type NoOpLocker struct{}

// Acquire implements AggregateLocker
func (NoOpLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
