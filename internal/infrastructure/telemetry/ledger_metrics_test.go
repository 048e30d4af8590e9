package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*LedgerMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewLedgerMetrics(provider.Meter("ledger-test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewLedgerMetrics_NilMeter(t *testing.T) {
	_, err := NewLedgerMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestLedgerMetrics_Handle(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	leadID := uuid.New()
	payoutID := uuid.New()

	installment := &ledger.Installment{
		PaymentAgainst: ledger.PaymentAgainst("Payout"),
		SettledAmount:  decimal.NewFromInt(500),
	}
	installment.ID = uuid.New()

	require.NoError(t, m.Handle(ctx, ledger.NewInstallmentRecordedEvent(ledger.AggregateTypePayout, payoutID, leadID, installment)))
	require.NoError(t, m.Handle(ctx, ledger.NewInstallmentRevisedEvent(ledger.AggregateTypePayout, payoutID, leadID, installment, decimal.NewFromInt(-200))))
	require.NoError(t, m.Handle(ctx, ledger.NewLeadFinalFlagChangedEvent(leadID, ledger.FinalFlagPayout, true)))

	metrics := collect(t, reader)

	installments, ok := metrics["ledger_installment_events_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var count int64
	for _, dp := range installments.DataPoints {
		count += dp.Value
	}
	assert.Equal(t, int64(2), count)

	settled, ok := metrics["ledger_settled_amount"].Data.(metricdata.Sum[float64])
	require.True(t, ok)
	var total float64
	for _, dp := range settled.DataPoints {
		total += dp.Value
	}
	assert.InDelta(t, 300, total, 0.0001)

	flags, ok := metrics["ledger_final_flag_changes_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, flags.DataPoints, 1)
	assert.Equal(t, int64(1), flags.DataPoints[0].Value)

	_, seen := metrics["ledger_payout_events_total"]
	assert.False(t, seen, "no payout events were handled")
}

func TestLedgerMetrics_EventTypes(t *testing.T) {
	m, _ := newTestMetrics(t)
	assert.Empty(t, m.EventTypes())
}
