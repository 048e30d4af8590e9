package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter is nil")

// LedgerMetrics turns committed ledger events into OTel instruments. It is
// subscribed to the event bus like any other handler.
type LedgerMetrics struct {
	payoutEvents      metric.Int64Counter
	invoiceEvents     metric.Int64Counter
	installmentEvents metric.Int64Counter
	settledAmount     metric.Float64UpDownCounter
	finalFlagChanges  metric.Int64Counter
}

// NewLedgerMetrics registers the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &LedgerMetrics{}
	var err error
	if m.payoutEvents, err = meter.Int64Counter("ledger_payout_events_total",
		metric.WithDescription("Advisor payouts created, re-priced or deleted"),
		metric.WithUnit("{events}")); err != nil {
		return nil, fmt.Errorf("create payout counter: %w", err)
	}
	if m.invoiceEvents, err = meter.Int64Counter("ledger_invoice_events_total",
		metric.WithDescription("Invoices added, revised or removed"),
		metric.WithUnit("{events}")); err != nil {
		return nil, fmt.Errorf("create invoice counter: %w", err)
	}
	if m.installmentEvents, err = meter.Int64Counter("ledger_installment_events_total",
		metric.WithDescription("Payables and receivables recorded, revised or reversed"),
		metric.WithUnit("{events}")); err != nil {
		return nil, fmt.Errorf("create installment counter: %w", err)
	}
	if m.settledAmount, err = meter.Float64UpDownCounter("ledger_settled_amount",
		metric.WithDescription("Net amount settled through payables and receivables"),
		metric.WithUnit("{INR}")); err != nil {
		return nil, fmt.Errorf("create settled amount counter: %w", err)
	}
	if m.finalFlagChanges, err = meter.Int64Counter("ledger_final_flag_changes_total",
		metric.WithDescription("Lead finalPayout and finalInvoice flips"),
		metric.WithUnit("{changes}")); err != nil {
		return nil, fmt.Errorf("create final flag counter: %w", err)
	}
	return m, nil
}

// EventTypes implements shared.EventHandler. All ledger events are counted.
func (m *LedgerMetrics) EventTypes() []string {
	return nil
}

// Handle implements shared.EventHandler
func (m *LedgerMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	eventAttr := attribute.String("event", event.EventType())

	switch e := event.(type) {
	case *ledger.PayoutEvent:
		m.payoutEvents.Add(ctx, 1, metric.WithAttributes(eventAttr))
	case *ledger.InvoiceEvent:
		m.invoiceEvents.Add(ctx, 1, metric.WithAttributes(eventAttr))
	case *ledger.InstallmentEvent:
		attrs := metric.WithAttributes(
			eventAttr,
			attribute.String("aggregate_type", e.AggregateType()),
			attribute.String("payment_against", string(e.PaymentAgainst)),
		)
		m.installmentEvents.Add(ctx, 1, attrs)
		m.settledAmount.Add(ctx, e.Delta.InexactFloat64(), attrs)
	case *ledger.LeadFinalFlagChangedEvent:
		m.finalFlagChanges.Add(ctx, 1, metric.WithAttributes(
			attribute.String("flag", string(e.Flag)),
			attribute.Bool("value", e.Value),
		))
	}
	return nil
}

var _ shared.EventHandler = (*LedgerMetrics)(nil)
