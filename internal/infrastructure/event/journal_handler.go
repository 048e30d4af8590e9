package event

import (
	"context"

	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// JournalHandler writes one structured log line per committed ledger
// event, so every balance movement can be traced back to a request.
type JournalHandler struct {
	logger *zap.Logger
}

// NewJournalHandler creates a JournalHandler
func NewJournalHandler(log *zap.Logger) *JournalHandler {
	return &JournalHandler{logger: log.Named("ledger.journal")}
}

// EventTypes implements shared.EventHandler
func (h *JournalHandler) EventTypes() []string {
	return nil
}

// Handle implements shared.EventHandler
func (h *JournalHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("lead_id", event.LeadID().String()),
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if userID := logger.GetUserID(ctx); userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}

	switch e := event.(type) {
	case *ledger.PayoutEvent:
		fields = append(fields,
			zap.String("advisor_id", e.AdvisorID.String()),
			zap.Stringer("net_payable_amount", e.NetPayableAmount),
			zap.Stringer("remaining_payable_amount", e.RemainingPayableAmount),
		)
	case *ledger.InstallmentEvent:
		fields = append(fields,
			zap.String("installment_id", e.InstallmentID.String()),
			zap.String("payment_against", string(e.PaymentAgainst)),
			zap.Stringer("amount", e.Amount),
			zap.Stringer("delta", e.Delta),
		)
	case *ledger.InvoiceEvent:
		fields = append(fields,
			zap.String("invoice_no", e.InvoiceNo),
			zap.Stringer("receivable_amount", e.ReceivableAmount),
			zap.Stringer("remaining_receivable_amount", e.RemainingReceivableAmount),
		)
	case *ledger.LeadFinalFlagChangedEvent:
		fields = append(fields,
			zap.String("flag", string(e.Flag)),
			zap.Bool("value", e.Value),
		)
	}

	h.logger.Info("ledger event", fields...)
	return nil
}

var _ shared.EventHandler = (*JournalHandler)(nil)
