package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentAgainst names the bucket of an aggregate an installment settles.
type PaymentAgainst string

const (
	PaymentAgainstPayable    PaymentAgainst = "payableAmount"
	PaymentAgainstReceivable PaymentAgainst = "receivableAmount"
	PaymentAgainstGST        PaymentAgainst = "gstPayment"
)

// String returns the string representation of PaymentAgainst
func (p PaymentAgainst) String() string {
	return string(p)
}

// IsGST reports whether the installment targets the GST bucket
func (p PaymentAgainst) IsGST() bool {
	return p == PaymentAgainstGST
}

// ValidForPayout reports whether p is a payout bucket
func (p PaymentAgainst) ValidForPayout() bool {
	return p == PaymentAgainstPayable || p == PaymentAgainstGST
}

// ValidForInvoice reports whether p is an invoice-master bucket
func (p PaymentAgainst) ValidForInvoice() bool {
	return p == PaymentAgainstReceivable || p == PaymentAgainstGST
}

// PaidTotals is the sum of recorded installments per bucket.
type PaidTotals struct {
	Principal decimal.Decimal
	GST       decimal.Decimal
}

// Add accumulates amount into the bucket named by against.
func (t PaidTotals) Add(against PaymentAgainst, amount decimal.Decimal) PaidTotals {
	if against.IsGST() {
		t.GST = t.GST.Add(amount)
	} else {
		t.Principal = t.Principal.Add(amount)
	}
	return t
}

// Installment is one partial payment recorded against a bucket of a ledger
// aggregate. DueAmount is the bucket's remaining balance at the moment the
// installment was recorded; it is kept as an owned value so later edits of
// the aggregate never rewrite payment history.
type Installment struct {
	shared.BaseEntity
	shared.Audit
	LeadID         uuid.UUID
	PaymentAgainst PaymentAgainst
	DueAmount      decimal.Decimal
	SettledAmount  decimal.Decimal
	BalanceAmount  decimal.Decimal
	SettledOn      time.Time
	RefNo          string
	Remarks        string
}

// InstallmentDetails carries the caller supplied part of an installment.
type InstallmentDetails struct {
	PaymentAgainst PaymentAgainst
	Amount         decimal.Decimal
	SettledOn      time.Time
	RefNo          string
	Remarks        string
}

func (d InstallmentDetails) validate(amountField, dateField string) error {
	if d.Amount.IsNegative() {
		return shared.NewValidationError(amountField, "must not be negative")
	}
	if d.SettledOn.IsZero() {
		return shared.NewValidationError(dateField, "is required")
	}
	return nil
}

func newInstallment(leadID uuid.UUID, d InstallmentDetails, due decimal.Decimal, actorID uuid.UUID) Installment {
	return Installment{
		BaseEntity:     shared.NewBaseEntity(),
		Audit:          shared.NewAudit(actorID),
		LeadID:         leadID,
		PaymentAgainst: d.PaymentAgainst,
		DueAmount:      due,
		SettledAmount:  d.Amount,
		BalanceAmount:  floorZero(due.Sub(d.Amount)),
		SettledOn:      d.SettledOn,
		RefNo:          d.RefNo,
		Remarks:        d.Remarks,
	}
}

// revisionDelta validates a new settled amount and returns new-old. The new
// amount may not exceed the snapshot taken when the installment was recorded.
func (i *Installment) revisionDelta(d InstallmentDetails, amountField, exceedMsg string) (decimal.Decimal, error) {
	if d.Amount.IsNegative() {
		return decimal.Zero, shared.NewValidationError(amountField, "must not be negative")
	}
	if d.Amount.GreaterThan(i.DueAmount) {
		return decimal.Zero, shared.NewBusinessRuleError(exceedMsg)
	}
	return d.Amount.Sub(i.SettledAmount), nil
}

func (i *Installment) applyRevision(d InstallmentDetails, actorID uuid.UUID) {
	i.SettledAmount = d.Amount
	i.BalanceAmount = floorZero(i.DueAmount.Sub(d.Amount))
	if !d.SettledOn.IsZero() {
		i.SettledOn = d.SettledOn
	}
	i.RefNo = d.RefNo
	i.Remarks = d.Remarks
	i.Stamp(actorID)
	i.Touch()
}

// SettlementStatus is the advisor-facing state of an installment.
type SettlementStatus string

const (
	SettlementPending SettlementStatus = "Pending"
	SettlementPaid    SettlementStatus = "Paid"
)

// IsValid checks if the status is a known SettlementStatus
func (s SettlementStatus) IsValid() bool {
	return s == SettlementPending || s == SettlementPaid
}

func statusOf(i *Installment) SettlementStatus {
	if i.DueAmount.GreaterThan(i.SettledAmount) {
		return SettlementPending
	}
	return SettlementPaid
}

// settle removes amount from *remaining, rejecting anything that would
// overdraw it.
func settle(remaining *decimal.Decimal, amount decimal.Decimal, exceedMsg string) error {
	if amount.IsNegative() {
		return shared.NewValidationError("amount", "must not be negative")
	}
	if amount.GreaterThan(*remaining) {
		return shared.NewBusinessRuleError(exceedMsg)
	}
	*remaining = floorZero(remaining.Sub(amount))
	return nil
}

// adjust applies a signed delta: positive diffs consume the bucket and are
// checked like settle, negative diffs give capacity back.
func adjust(remaining *decimal.Decimal, diff decimal.Decimal, exceedMsg string) error {
	if diff.IsPositive() {
		return settle(remaining, diff, exceedMsg)
	}
	*remaining = floorZero(remaining.Sub(diff))
	return nil
}
