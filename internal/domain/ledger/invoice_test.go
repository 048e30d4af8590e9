package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invoiceTerms builds terms whose receivable contribution (payout-tds) equals
// payout when tds is zero.
func invoiceTerms(payout, gstPercent string) InvoiceTerms {
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return InvoiceTerms{
		PricingTerms: PricingTerms{
			DisbursalAmount: dec("0"),
			PayoutAmount:    decPtr(payout),
			GSTPercent:      dec(gstPercent),
			InvoiceNo:       "INV-" + payout,
			InvoiceDate:     &date,
		},
	}
}

func newInvoice(t *testing.T, leadID uuid.UUID, payout, gstPercent string) *Invoice {
	t.Helper()
	inv, err := NewInvoice(leadID, invoiceTerms(payout, gstPercent), uuid.New())
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	terms := InvoiceTerms{
		PricingTerms: PricingTerms{
			DisbursalAmount: dec("100000"),
			PayoutPercent:   dec("5"),
			TDSPercent:      dec("10"),
			GSTPercent:      dec("18"),
			InvoiceNo:       "INV-001",
			InvoiceDate:     &date,
		},
		FinalInvoice: true,
	}
	inv, err := NewInvoice(uuid.New(), terms, uuid.New())
	require.NoError(t, err)

	assertDecimal(t, "5000", inv.PayoutAmount)
	assertDecimal(t, "500", inv.TDSAmount)
	assertDecimal(t, "900", inv.GSTAmount)
	assertDecimal(t, "5400", inv.NetReceivableAmount)
	assert.True(t, inv.FinalInvoice)
	assert.Equal(t, date, inv.InvoiceDate)

	c := inv.Contribution()
	assertDecimal(t, "4500", c.Receivable)
	assertDecimal(t, "900", c.GST)
}

func TestNewInvoice_Validation(t *testing.T) {
	t.Run("missing invoice number", func(t *testing.T) {
		terms := invoiceTerms("1000", "0")
		terms.InvoiceNo = "  "
		_, err := NewInvoice(uuid.New(), terms, uuid.New())
		requireCode(t, err, shared.CodeValidation)
	})
	t.Run("missing invoice date", func(t *testing.T) {
		terms := invoiceTerms("1000", "0")
		terms.InvoiceDate = nil
		_, err := NewInvoice(uuid.New(), terms, uuid.New())
		requireCode(t, err, shared.CodeValidation)
	})
	t.Run("missing lead", func(t *testing.T) {
		_, err := NewInvoice(uuid.Nil, invoiceTerms("1000", "0"), uuid.New())
		requireCode(t, err, shared.CodeValidation)
	})
	t.Run("gst percent out of range", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), invoiceTerms("1000", "101"), uuid.New())
		requireCode(t, err, shared.CodeValidation)
	})
}

func TestInvoiceMaster_Accumulates(t *testing.T) {
	leadID := uuid.New()
	m := NewInvoiceMaster(leadID)

	first := newInvoice(t, leadID, "1000", "18")
	second := newInvoice(t, leadID, "500", "18")
	require.NoError(t, m.AddInvoice(first))
	require.NoError(t, m.AddInvoice(second))

	assert.Equal(t, m.ID, first.InvoiceMasterID)
	assertDecimal(t, "1500", m.InvoiceReceivableAmount)
	assertDecimal(t, "270", m.InvoiceGSTAmount)
	assertDecimal(t, "1500", m.RemainingReceivableAmount)
	assertDecimal(t, "270", m.RemainingGSTAmount)

	require.NoError(t, m.RemoveInvoice(first))
	assertDecimal(t, "500", m.InvoiceReceivableAmount)
	assertDecimal(t, "90", m.InvoiceGSTAmount)
	assert.False(t, m.IsEmpty())

	require.NoError(t, m.RemoveInvoice(second))
	assert.True(t, m.IsEmpty())
	assert.False(t, m.HasOpenBalance())
}

func TestInvoiceMaster_AddInvoice_RejectsOtherLead(t *testing.T) {
	m := NewInvoiceMaster(uuid.New())
	err := m.AddInvoice(newInvoice(t, uuid.New(), "1000", "0"))
	requireCode(t, err, shared.CodeValidation)
}

func TestInvoiceMaster_ReviseInvoice(t *testing.T) {
	leadID := uuid.New()

	t.Run("delta replaces old contribution", func(t *testing.T) {
		m := NewInvoiceMaster(leadID)
		a := newInvoice(t, leadID, "1000", "10")
		b := newInvoice(t, leadID, "500", "10")
		require.NoError(t, m.AddInvoice(a))
		require.NoError(t, m.AddInvoice(b))

		require.NoError(t, m.ReviseInvoice(a, invoiceTerms("1200", "10"), uuid.New()))
		assertDecimal(t, "1700", m.InvoiceReceivableAmount)
		assertDecimal(t, "170", m.InvoiceGSTAmount)
		assertDecimal(t, "1700", m.RemainingReceivableAmount)
		assertDecimal(t, "170", m.RemainingGSTAmount)
		assertDecimal(t, "1200", a.PayoutAmount)
	})

	t.Run("receipts keep their share", func(t *testing.T) {
		m := NewInvoiceMaster(leadID)
		a := newInvoice(t, leadID, "1000", "0")
		require.NoError(t, m.AddInvoice(a))
		_, err := m.RecordReceivable(InstallmentDetails{
			PaymentAgainst: PaymentAgainstReceivable,
			Amount:         dec("600"),
			SettledOn:      time.Now(),
		}, uuid.New())
		require.NoError(t, err)

		require.NoError(t, m.ReviseInvoice(a, invoiceTerms("800", "0"), uuid.New()))
		assertDecimal(t, "800", m.InvoiceReceivableAmount)
		assertDecimal(t, "200", m.RemainingReceivableAmount)

		err = m.ReviseInvoice(a, invoiceTerms("500", "0"), uuid.New())
		requireCode(t, err, shared.CodeBusinessRule)
		assertDecimal(t, "800", m.InvoiceReceivableAmount)
		assertDecimal(t, "800", a.PayoutAmount)
	})
}

func TestInvoiceMaster_RemoveInvoice_WithReceipts(t *testing.T) {
	leadID := uuid.New()
	m := NewInvoiceMaster(leadID)
	a := newInvoice(t, leadID, "1000", "0")
	b := newInvoice(t, leadID, "300", "0")
	require.NoError(t, m.AddInvoice(a))
	require.NoError(t, m.AddInvoice(b))
	_, err := m.RecordReceivable(InstallmentDetails{
		PaymentAgainst: PaymentAgainstReceivable,
		Amount:         dec("900"),
		SettledOn:      time.Now(),
	}, uuid.New())
	require.NoError(t, err)

	err = m.RemoveInvoice(a)
	requireCode(t, err, shared.CodeBusinessRule)
	assertDecimal(t, "1300", m.InvoiceReceivableAmount)
	assertDecimal(t, "400", m.RemainingReceivableAmount)

	require.NoError(t, m.RemoveInvoice(b))
	assertDecimal(t, "1000", m.InvoiceReceivableAmount)
	assertDecimal(t, "100", m.RemainingReceivableAmount)
}

func TestInvoiceMaster_Receivables(t *testing.T) {
	leadID := uuid.New()
	m := NewInvoiceMaster(leadID)
	require.NoError(t, m.AddInvoice(newInvoice(t, leadID, "1000", "18")))

	r, err := m.RecordReceivable(InstallmentDetails{
		PaymentAgainst: PaymentAgainstGST,
		Amount:         dec("80"),
		SettledOn:      time.Now(),
	}, uuid.New())
	require.NoError(t, err)
	assertDecimal(t, "180", r.DueAmount)
	assertDecimal(t, "100", r.BalanceAmount)
	assertDecimal(t, "100", m.RemainingGSTAmount)
	assert.Equal(t, m.ID, r.InvoiceMasterID)

	_, err = m.RecordReceivable(InstallmentDetails{
		PaymentAgainst: PaymentAgainstPayable,
		Amount:         dec("1"),
		SettledOn:      time.Now(),
	}, uuid.New())
	requireCode(t, err, shared.CodeValidation)

	_, err = m.RecordReceivable(InstallmentDetails{
		PaymentAgainst: PaymentAgainstReceivable,
		Amount:         dec("1000.01"),
		SettledOn:      time.Now(),
	}, uuid.New())
	requireCode(t, err, shared.CodeBusinessRule)

	require.NoError(t, m.ReviseReceivable(r, InstallmentDetails{Amount: dec("180")}, uuid.New()))
	assertDecimal(t, "0", m.RemainingGSTAmount)
	assert.Equal(t, SettlementPaid, r.Status())

	require.NoError(t, m.ReverseReceivable(r))
	assertDecimal(t, "180", m.RemainingGSTAmount)
	assertDecimal(t, "1000", m.RemainingReceivableAmount)
}
