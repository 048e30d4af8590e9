package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BankerSnapshot copies the disbursing banker's contact details onto a ledger
// record so that reports keep showing who handled the case even after the
// banker directory changes.
type BankerSnapshot struct {
	BankerID    *uuid.UUID
	BankName    string
	BankerName  string
	Email       string
	Designation string
	Mobile      string
	StateName   string
	CityName    string
}

// PricingTerms are the inputs shared by payouts and invoices.
type PricingTerms struct {
	DisbursalAmount decimal.Decimal
	DisbursalDate   *time.Time
	PayoutPercent   decimal.Decimal
	PayoutAmount    *decimal.Decimal
	TDSPercent      decimal.Decimal
	TDSAmount       *decimal.Decimal
	GSTPercent      decimal.Decimal
	InvoiceNo       string
	InvoiceDate     *time.Time
	ProcessedByID   *uuid.UUID
	Remarks         string
	Banker          BankerSnapshot
}

func (t PricingTerms) feeInput(gstApplicable bool) FeeInput {
	return FeeInput{
		DisbursalAmount: t.DisbursalAmount,
		PayoutPercent:   t.PayoutPercent,
		PayoutAmount:    t.PayoutAmount,
		TDSPercent:      t.TDSPercent,
		TDSAmount:       t.TDSAmount,
		GSTApplicable:   gstApplicable,
		GSTPercent:      t.GSTPercent,
	}
}

// withStoredAmounts pins stored amounts that were entered explicitly, that is
// amounts the percents do not derive.
func (t PricingTerms) withStoredAmounts(payout, tds decimal.Decimal) PricingTerms {
	if !PercentOf(t.DisbursalAmount, t.PayoutPercent).Equal(payout) {
		p := payout
		t.PayoutAmount = &p
	}
	if !PercentOf(payout, t.TDSPercent).Equal(tds) {
		x := tds
		t.TDSAmount = &x
	}
	return t
}

// PayoutTerms are the editable inputs of an AdvisorPayout.
type PayoutTerms struct {
	PricingTerms
	GSTApplicable bool
	FinalPayout   bool
}

// InvoiceTerms are the editable inputs of an Invoice.
type InvoiceTerms struct {
	PricingTerms
	FinalInvoice bool
}

func (t InvoiceTerms) validate() error {
	if strings.TrimSpace(t.InvoiceNo) == "" {
		return shared.NewValidationError("invoiceNo", "is required")
	}
	if t.InvoiceDate == nil || t.InvoiceDate.IsZero() {
		return shared.NewValidationError("invoiceDate", "is required")
	}
	return nil
}

func requireID(field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return shared.NewValidationError(field, "is required")
	}
	return nil
}
