package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// pendingEvents collects domain events raised inside a unit of work. They are
// published only after the transaction commits.
type pendingEvents struct {
	events []shared.DomainEvent
}

// drain moves the aggregate's pending events into the buffer.
func (p *pendingEvents) drain(agg shared.AggregateRoot) {
	p.events = append(p.events, agg.GetDomainEvents()...)
	agg.ClearDomainEvents()
}

// flagChanged records a propagation result; nil means the flag was already
// correct.
func (p *pendingEvents) flagChanged(event *ledger.LeadFinalFlagChangedEvent) {
	if event == nil {
		return
	}
	p.events = append(p.events, event)
}

// unitOfWork is embedded by every ledger write service: lock the lead's
// ledger, run fn in one transaction, then publish what fn raised.
type unitOfWork struct {
	scope      TransactionScope
	locker     AggregateLocker
	publisher  shared.EventPublisher
	propagator *StatusPropagator
	logger     *zap.Logger
}

func newUnitOfWork(scope TransactionScope, locker AggregateLocker, logger *zap.Logger) unitOfWork {
	if locker == nil {
		locker = NoOpLocker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return unitOfWork{
		scope:      scope,
		locker:     locker,
		propagator: NewStatusPropagator(),
		logger:     logger,
	}
}

func (u *unitOfWork) run(ctx context.Context, lockKey string, fn func(repos TransactionalRepositories, events *pendingEvents) error) error {
	release, err := u.locker.Acquire(ctx, lockKey)
	if err != nil {
		return err
	}
	defer release()

	events := &pendingEvents{}
	if err := u.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return fn(repos, events)
	}); err != nil {
		return err
	}

	u.publish(ctx, events.events)
	return nil
}

// publish hands committed events to the bus. A failing handler never undoes
// the committed write, it is only logged.
func (u *unitOfWork) publish(ctx context.Context, events []shared.DomainEvent) {
	if u.publisher == nil || len(events) == 0 {
		return
	}
	if err := u.publisher.Publish(ctx, events...); err != nil {
		u.logger.Warn("Failed to publish ledger events",
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}

func (u *unitOfWork) syncFinalPayout(ctx context.Context, repos TransactionalRepositories, leadID uuid.UUID, events *pendingEvents) error {
	changed, err := u.propagator.SyncFinalPayout(ctx, repos, leadID)
	if err != nil {
		return err
	}
	events.flagChanged(changed)
	return nil
}

func (u *unitOfWork) syncFinalInvoice(ctx context.Context, repos TransactionalRepositories, leadID uuid.UUID, events *pendingEvents) error {
	changed, err := u.propagator.SyncFinalInvoice(ctx, repos, leadID)
	if err != nil {
		return err
	}
	events.flagChanged(changed)
	return nil
}
