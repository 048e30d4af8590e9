package ledger

import (
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every computed amount is rounded to.
const MoneyScale = 2

var (
	hundred    = decimal.NewFromInt(100)
	maxPercent = hundred
)

// FeeInput carries the figures a payout or invoice is priced from.
// PayoutAmount and TDSAmount are optional explicit overrides; when nil the
// amount is derived from the matching percent.
type FeeInput struct {
	DisbursalAmount decimal.Decimal
	PayoutPercent   decimal.Decimal
	PayoutAmount    *decimal.Decimal
	TDSPercent      decimal.Decimal
	TDSAmount       *decimal.Decimal
	GSTApplicable   bool
	GSTPercent      decimal.Decimal
}

// FeeBreakdown is the result of pricing a FeeInput.
type FeeBreakdown struct {
	PayoutAmount decimal.Decimal
	TDSAmount    decimal.Decimal
	GSTAmount    decimal.Decimal
	NetAmount    decimal.Decimal
}

// PrincipalAmount is the part of the fee settled outside the GST bucket
// (payout less TDS). It seeds the remaining payable/receivable bucket.
func (b FeeBreakdown) PrincipalAmount() decimal.Decimal {
	return b.PayoutAmount.Sub(b.TDSAmount)
}

// Validate checks the percent and money bounds of the input.
func (in FeeInput) Validate() error {
	if in.DisbursalAmount.IsNegative() {
		return shared.NewValidationError("disbursalAmount", "must not be negative")
	}
	percents := []struct {
		field string
		value decimal.Decimal
	}{
		{"payoutPercent", in.PayoutPercent},
		{"tdsPercent", in.TDSPercent},
		{"gstPercent", in.GSTPercent},
	}
	for _, p := range percents {
		if p.value.IsNegative() || p.value.GreaterThan(maxPercent) {
			return shared.NewValidationError(p.field, "must be between 0 and 100")
		}
	}
	if in.PayoutAmount != nil && in.PayoutAmount.IsNegative() {
		return shared.NewValidationError("payoutAmount", "must not be negative")
	}
	if in.TDSAmount != nil && in.TDSAmount.IsNegative() {
		return shared.NewValidationError("tdsAmount", "must not be negative")
	}
	return nil
}

// CalculateFees prices a payout. GST is only charged when GSTApplicable is set.
func CalculateFees(in FeeInput) (FeeBreakdown, error) {
	if err := in.Validate(); err != nil {
		return FeeBreakdown{}, err
	}

	payout := PercentOf(in.DisbursalAmount, in.PayoutPercent)
	if in.PayoutAmount != nil {
		payout = in.PayoutAmount.Round(MoneyScale)
	}

	tds := PercentOf(payout, in.TDSPercent)
	if in.TDSAmount != nil {
		tds = in.TDSAmount.Round(MoneyScale)
	}
	if tds.GreaterThan(payout) {
		return FeeBreakdown{}, shared.NewValidationError("tdsAmount", "must not exceed payoutAmount")
	}

	gst := decimal.Zero
	if in.GSTApplicable {
		gst = PercentOf(payout, in.GSTPercent)
	}

	return FeeBreakdown{
		PayoutAmount: payout,
		TDSAmount:    tds,
		GSTAmount:    gst,
		NetAmount:    payout.Sub(tds).Add(gst),
	}, nil
}

// CalculateInvoiceFees prices an invoice. Invoices always carry GST.
func CalculateInvoiceFees(in FeeInput) (FeeBreakdown, error) {
	in.GSTApplicable = true
	return CalculateFees(in)
}

// PercentOf returns base * percent / 100 rounded to MoneyScale.
func PercentOf(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(hundred).Round(MoneyScale)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
