package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	msgExceedsPayable = "paid amount exceeds payable amount"
	msgExceedsGST     = "paid amount exceeds gst amount"
)

// AdvisorPayout is the commission owed to one advisor for one lead.
// RemainingPayableAmount tracks payout-tds still unpaid and RemainingGSTAmount
// the GST still unpaid; both stay non-negative.
type AdvisorPayout struct {
	shared.BaseAggregateRoot
	shared.Audit
	LeadID                 uuid.UUID
	AdvisorID              uuid.UUID
	DisbursalAmount        decimal.Decimal
	DisbursalDate          *time.Time
	PayoutPercent          decimal.Decimal
	PayoutAmount           decimal.Decimal
	TDSPercent             decimal.Decimal
	TDSAmount              decimal.Decimal
	GSTApplicable          bool
	GSTPercent             decimal.Decimal
	GSTAmount              decimal.Decimal
	NetPayableAmount       decimal.Decimal
	RemainingPayableAmount decimal.Decimal
	RemainingGSTAmount     decimal.Decimal
	InvoiceNo              string
	InvoiceDate            *time.Time
	ProcessedByID          *uuid.UUID
	FinalPayout            bool
	Remarks                string
	Banker                 BankerSnapshot
}

// NewAdvisorPayout prices a payout and opens both buckets in full.
func NewAdvisorPayout(leadID, advisorID uuid.UUID, terms PayoutTerms, actorID uuid.UUID) (*AdvisorPayout, error) {
	if err := requireID("leadId", leadID); err != nil {
		return nil, err
	}
	if err := requireID("advisorId", advisorID); err != nil {
		return nil, err
	}
	fees, err := CalculateFees(terms.feeInput(terms.GSTApplicable))
	if err != nil {
		return nil, err
	}

	p := &AdvisorPayout{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Audit:             shared.NewAudit(actorID),
		LeadID:            leadID,
		AdvisorID:         advisorID,
	}
	p.applyTerms(terms, fees)
	p.RemainingPayableAmount = fees.PrincipalAmount()
	p.RemainingGSTAmount = fees.GSTAmount

	p.AddDomainEvent(NewPayoutCreatedEvent(p))
	return p, nil
}

// Terms returns the payout's current inputs. Amounts the percents derive are
// left unset so re-pricing derives them again; explicit amounts are kept.
func (p *AdvisorPayout) Terms() PayoutTerms {
	return PayoutTerms{
		PricingTerms: PricingTerms{
			DisbursalAmount: p.DisbursalAmount,
			DisbursalDate:   p.DisbursalDate,
			PayoutPercent:   p.PayoutPercent,
			TDSPercent:      p.TDSPercent,
			GSTPercent:      p.GSTPercent,
			InvoiceNo:       p.InvoiceNo,
			InvoiceDate:     p.InvoiceDate,
			ProcessedByID:   p.ProcessedByID,
			Remarks:         p.Remarks,
			Banker:          p.Banker,
		}.withStoredAmounts(p.PayoutAmount, p.TDSAmount),
		GSTApplicable: p.GSTApplicable,
		FinalPayout:   p.FinalPayout,
	}
}

// PayableBucket is the total of the non-GST bucket (payout less TDS).
func (p *AdvisorPayout) PayableBucket() decimal.Decimal {
	return p.PayoutAmount.Sub(p.TDSAmount)
}

// Reprice recomputes every derived amount from terms. Amounts already paid are
// fixed history: a new bucket smaller than what was paid into it is rejected
// and the payout is left untouched.
func (p *AdvisorPayout) Reprice(terms PayoutTerms, paid PaidTotals, actorID uuid.UUID) error {
	fees, err := CalculateFees(terms.feeInput(terms.GSTApplicable))
	if err != nil {
		return err
	}
	if fees.PrincipalAmount().LessThan(paid.Principal) {
		return shared.NewBusinessRuleError("payable amount cannot be less than the amount already paid")
	}
	if fees.GSTAmount.LessThan(paid.GST) {
		return shared.NewBusinessRuleError("gst amount cannot be less than the gst already paid")
	}

	p.applyTerms(terms, fees)
	p.RemainingPayableAmount = floorZero(fees.PrincipalAmount().Sub(paid.Principal))
	p.RemainingGSTAmount = floorZero(fees.GSTAmount.Sub(paid.GST))
	p.Stamp(actorID)
	p.IncrementVersion()

	p.AddDomainEvent(NewPayoutRepricedEvent(p))
	return nil
}

// RemainingFor returns the unpaid balance of the bucket.
func (p *AdvisorPayout) RemainingFor(against PaymentAgainst) (decimal.Decimal, error) {
	if !against.ValidForPayout() {
		return decimal.Zero, shared.NewValidationError("paymentAgainst", "must be payableAmount or gstPayment")
	}
	if against.IsGST() {
		return p.RemainingGSTAmount, nil
	}
	return p.RemainingPayableAmount, nil
}

// RecordPayable settles part of a bucket. The payable's due amount is the
// bucket balance read from this (freshly loaded) payout.
func (p *AdvisorPayout) RecordPayable(d InstallmentDetails, actorID uuid.UUID) (*Payable, error) {
	if err := d.validate("paidAmount", "paidDate"); err != nil {
		return nil, err
	}
	due, err := p.RemainingFor(d.PaymentAgainst)
	if err != nil {
		return nil, err
	}
	if err := settle(p.bucket(d.PaymentAgainst), d.Amount, exceedMessage(d.PaymentAgainst)); err != nil {
		return nil, err
	}
	p.IncrementVersion()

	payable := &Payable{
		Installment: newInstallment(p.LeadID, d, due, actorID),
		PayoutID:    p.ID,
		AdvisorID:   p.AdvisorID,
	}
	p.AddDomainEvent(NewInstallmentRecordedEvent(AggregateTypePayout, p.ID, p.LeadID, &payable.Installment))
	return payable, nil
}

// RevisePayable changes the paid amount of an existing payable and moves the
// difference through the matching bucket.
func (p *AdvisorPayout) RevisePayable(payable *Payable, d InstallmentDetails, actorID uuid.UUID) error {
	if payable.PayoutID != p.ID {
		return shared.NewValidationError("payoutId", "does not own this payable")
	}
	msg := exceedMessage(payable.PaymentAgainst)
	diff, err := payable.revisionDelta(d, "paidAmount", msg)
	if err != nil {
		return err
	}
	if err := adjust(p.bucket(payable.PaymentAgainst), diff, msg); err != nil {
		return err
	}
	payable.applyRevision(d, actorID)
	p.IncrementVersion()
	p.AddDomainEvent(NewInstallmentRevisedEvent(AggregateTypePayout, p.ID, p.LeadID, &payable.Installment, diff))
	return nil
}

// ReversePayable gives the payable's paid amount back to its bucket.
func (p *AdvisorPayout) ReversePayable(payable *Payable) error {
	if payable.PayoutID != p.ID {
		return shared.NewValidationError("payoutId", "does not own this payable")
	}
	b := p.bucket(payable.PaymentAgainst)
	*b = b.Add(payable.SettledAmount)
	p.IncrementVersion()
	p.AddDomainEvent(NewInstallmentReversedEvent(AggregateTypePayout, p.ID, p.LeadID, &payable.Installment))
	return nil
}

// MarkDeleted records the deletion event before the row is removed.
func (p *AdvisorPayout) MarkDeleted() {
	p.AddDomainEvent(NewPayoutDeletedEvent(p))
}

func (p *AdvisorPayout) bucket(against PaymentAgainst) *decimal.Decimal {
	if against.IsGST() {
		return &p.RemainingGSTAmount
	}
	return &p.RemainingPayableAmount
}

func (p *AdvisorPayout) applyTerms(terms PayoutTerms, fees FeeBreakdown) {
	p.DisbursalAmount = terms.DisbursalAmount
	p.DisbursalDate = terms.DisbursalDate
	p.PayoutPercent = terms.PayoutPercent
	p.TDSPercent = terms.TDSPercent
	p.GSTApplicable = terms.GSTApplicable
	p.GSTPercent = terms.GSTPercent
	p.PayoutAmount = fees.PayoutAmount
	p.TDSAmount = fees.TDSAmount
	p.GSTAmount = fees.GSTAmount
	p.NetPayableAmount = fees.NetAmount
	p.InvoiceNo = terms.InvoiceNo
	p.InvoiceDate = terms.InvoiceDate
	p.ProcessedByID = terms.ProcessedByID
	p.FinalPayout = terms.FinalPayout
	p.Remarks = terms.Remarks
	p.Banker = terms.Banker
}

func exceedMessage(against PaymentAgainst) string {
	if against.IsGST() {
		return msgExceedsGST
	}
	return msgExceedsPayable
}

// Payable is an installment paid to the advisor against a payout bucket.
type Payable struct {
	Installment
	PayoutID  uuid.UUID
	AdvisorID uuid.UUID
}

// Status reports Pending while the snapshot is not fully paid.
func (p *Payable) Status() SettlementStatus {
	return statusOf(&p.Installment)
}
