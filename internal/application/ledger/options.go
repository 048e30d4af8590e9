package ledger

import (
	"github.com/leadcrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ServiceOption configures the write path shared by the ledger services
type ServiceOption func(*unitOfWork)

// WithEventPublisher publishes committed ledger events to publisher
func WithEventPublisher(publisher shared.EventPublisher) ServiceOption {
	return func(u *unitOfWork) {
		u.publisher = publisher
	}
}

// WithAggregateLocker serializes writers through locker instead of the
// no-op locker
func WithAggregateLocker(locker AggregateLocker) ServiceOption {
	return func(u *unitOfWork) {
		if locker != nil {
			u.locker = locker
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(u *unitOfWork) {
		if logger != nil {
			u.logger = logger
		}
	}
}

func applyOptions(scope TransactionScope, opts []ServiceOption) unitOfWork {
	u := newUnitOfWork(scope, nil, nil)
	for _, opt := range opts {
		opt(&u)
	}
	return u
}
