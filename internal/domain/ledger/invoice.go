package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	msgExceedsReceivable    = "received amount exceeds receivable amount"
	msgExceedsReceivableGST = "received amount exceeds gst amount"
	msgReceiptsExceedTotals = "amounts already received exceed the revised invoice amounts"
)

// Contribution is what one invoice adds to its lead's master.
type Contribution struct {
	Receivable decimal.Decimal
	GST        decimal.Decimal
}

// Invoice bills the disbursing bank for one lead. Several invoices may exist
// per lead; their sums live on the lead's InvoiceMaster.
type Invoice struct {
	shared.BaseEntity
	shared.Audit
	InvoiceMasterID     uuid.UUID
	LeadID              uuid.UUID
	DisbursalAmount     decimal.Decimal
	DisbursalDate       *time.Time
	PayoutPercent       decimal.Decimal
	PayoutAmount        decimal.Decimal
	TDSPercent          decimal.Decimal
	TDSAmount           decimal.Decimal
	GSTPercent          decimal.Decimal
	GSTAmount           decimal.Decimal
	NetReceivableAmount decimal.Decimal
	InvoiceNo           string
	InvoiceDate         time.Time
	ProcessedByID       *uuid.UUID
	FinalInvoice        bool
	Remarks             string
	Banker              BankerSnapshot
}

// NewInvoice prices an invoice. It is not attached to a master until
// InvoiceMaster.AddInvoice is called.
func NewInvoice(leadID uuid.UUID, terms InvoiceTerms, actorID uuid.UUID) (*Invoice, error) {
	if err := requireID("leadId", leadID); err != nil {
		return nil, err
	}
	if err := terms.validate(); err != nil {
		return nil, err
	}
	fees, err := CalculateInvoiceFees(terms.feeInput(true))
	if err != nil {
		return nil, err
	}
	inv := &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		Audit:      shared.NewAudit(actorID),
		LeadID:     leadID,
	}
	inv.applyTerms(terms, fees)
	return inv, nil
}

// Terms returns the invoice's current inputs; see AdvisorPayout.Terms.
func (inv *Invoice) Terms() InvoiceTerms {
	date := inv.InvoiceDate
	return InvoiceTerms{
		PricingTerms: PricingTerms{
			DisbursalAmount: inv.DisbursalAmount,
			DisbursalDate:   inv.DisbursalDate,
			PayoutPercent:   inv.PayoutPercent,
			TDSPercent:      inv.TDSPercent,
			GSTPercent:      inv.GSTPercent,
			InvoiceNo:       inv.InvoiceNo,
			InvoiceDate:     &date,
			ProcessedByID:   inv.ProcessedByID,
			Remarks:         inv.Remarks,
			Banker:          inv.Banker,
		}.withStoredAmounts(inv.PayoutAmount, inv.TDSAmount),
		FinalInvoice: inv.FinalInvoice,
	}
}

// Contribution returns the amounts this invoice adds to its master.
func (inv *Invoice) Contribution() Contribution {
	return Contribution{
		Receivable: inv.PayoutAmount.Sub(inv.TDSAmount),
		GST:        inv.GSTAmount,
	}
}

func (inv *Invoice) applyTerms(terms InvoiceTerms, fees FeeBreakdown) {
	inv.DisbursalAmount = terms.DisbursalAmount
	inv.DisbursalDate = terms.DisbursalDate
	inv.PayoutPercent = terms.PayoutPercent
	inv.TDSPercent = terms.TDSPercent
	inv.GSTPercent = terms.GSTPercent
	inv.PayoutAmount = fees.PayoutAmount
	inv.TDSAmount = fees.TDSAmount
	inv.GSTAmount = fees.GSTAmount
	inv.NetReceivableAmount = fees.NetAmount
	inv.InvoiceNo = terms.InvoiceNo
	inv.InvoiceDate = *terms.InvoiceDate
	inv.ProcessedByID = terms.ProcessedByID
	inv.FinalInvoice = terms.FinalInvoice
	inv.Remarks = terms.Remarks
	inv.Banker = terms.Banker
}

// InvoiceMaster accumulates every invoice of one lead and tracks what is
// still to be received against the sums.
type InvoiceMaster struct {
	shared.BaseAggregateRoot
	LeadID                    uuid.UUID
	InvoiceReceivableAmount   decimal.Decimal
	InvoiceGSTAmount          decimal.Decimal
	RemainingReceivableAmount decimal.Decimal
	RemainingGSTAmount        decimal.Decimal
}

// NewInvoiceMaster opens an empty master for a lead.
func NewInvoiceMaster(leadID uuid.UUID) *InvoiceMaster {
	return &InvoiceMaster{
		BaseAggregateRoot:         shared.NewBaseAggregateRoot(),
		LeadID:                    leadID,
		InvoiceReceivableAmount:   decimal.Zero,
		InvoiceGSTAmount:          decimal.Zero,
		RemainingReceivableAmount: decimal.Zero,
		RemainingGSTAmount:        decimal.Zero,
	}
}

// AddInvoice attaches inv to the master and adds its contribution to both
// the totals and the remaining balances.
func (m *InvoiceMaster) AddInvoice(inv *Invoice) error {
	if inv.LeadID != m.LeadID {
		return shared.NewValidationError("leadId", "does not match the invoice master")
	}
	c := inv.Contribution()
	inv.InvoiceMasterID = m.ID
	m.InvoiceReceivableAmount = m.InvoiceReceivableAmount.Add(c.Receivable)
	m.InvoiceGSTAmount = m.InvoiceGSTAmount.Add(c.GST)
	m.RemainingReceivableAmount = m.RemainingReceivableAmount.Add(c.Receivable)
	m.RemainingGSTAmount = m.RemainingGSTAmount.Add(c.GST)
	m.IncrementVersion()
	m.AddDomainEvent(NewInvoiceChangedEvent(EventTypeInvoiceAdded, m, inv))
	return nil
}

// ReviseInvoice re-prices inv and swaps its old contribution for the new one.
// Receipts already recorded must still fit inside the revised buckets.
func (m *InvoiceMaster) ReviseInvoice(inv *Invoice, terms InvoiceTerms, actorID uuid.UUID) error {
	if inv.InvoiceMasterID != m.ID {
		return shared.NewValidationError("invoiceMasterId", "does not own this invoice")
	}
	if err := terms.validate(); err != nil {
		return err
	}
	fees, err := CalculateInvoiceFees(terms.feeInput(true))
	if err != nil {
		return err
	}

	old := inv.Contribution()
	next := Contribution{Receivable: fees.PrincipalAmount(), GST: fees.GSTAmount}
	remainingReceivable := m.RemainingReceivableAmount.Sub(old.Receivable).Add(next.Receivable)
	remainingGST := m.RemainingGSTAmount.Sub(old.GST).Add(next.GST)
	if remainingReceivable.IsNegative() || remainingGST.IsNegative() {
		return shared.NewBusinessRuleError(msgReceiptsExceedTotals)
	}

	m.InvoiceReceivableAmount = floorZero(m.InvoiceReceivableAmount.Sub(old.Receivable).Add(next.Receivable))
	m.InvoiceGSTAmount = floorZero(m.InvoiceGSTAmount.Sub(old.GST).Add(next.GST))
	m.RemainingReceivableAmount = remainingReceivable
	m.RemainingGSTAmount = remainingGST
	m.IncrementVersion()

	inv.applyTerms(terms, fees)
	inv.Stamp(actorID)
	inv.Touch()
	m.AddDomainEvent(NewInvoiceChangedEvent(EventTypeInvoiceRevised, m, inv))
	return nil
}

// RemoveInvoice subtracts inv's contribution. It fails when receipts already
// recorded would leave a negative balance.
func (m *InvoiceMaster) RemoveInvoice(inv *Invoice) error {
	if inv.InvoiceMasterID != m.ID {
		return shared.NewValidationError("invoiceMasterId", "does not own this invoice")
	}
	c := inv.Contribution()
	remainingReceivable := m.RemainingReceivableAmount.Sub(c.Receivable)
	remainingGST := m.RemainingGSTAmount.Sub(c.GST)
	if remainingReceivable.IsNegative() || remainingGST.IsNegative() {
		return shared.NewBusinessRuleError("amounts already received exceed what would remain after deleting this invoice")
	}

	m.InvoiceReceivableAmount = floorZero(m.InvoiceReceivableAmount.Sub(c.Receivable))
	m.InvoiceGSTAmount = floorZero(m.InvoiceGSTAmount.Sub(c.GST))
	m.RemainingReceivableAmount = remainingReceivable
	m.RemainingGSTAmount = remainingGST
	m.IncrementVersion()
	m.AddDomainEvent(NewInvoiceChangedEvent(EventTypeInvoiceRemoved, m, inv))
	return nil
}

// IsEmpty reports whether all four tracked amounts are exactly zero; an empty
// master is deleted rather than kept.
func (m *InvoiceMaster) IsEmpty() bool {
	return m.InvoiceReceivableAmount.IsZero() &&
		m.InvoiceGSTAmount.IsZero() &&
		m.RemainingReceivableAmount.IsZero() &&
		m.RemainingGSTAmount.IsZero()
}

// HasOpenBalance reports whether anything is still to be received.
func (m *InvoiceMaster) HasOpenBalance() bool {
	return m.RemainingReceivableAmount.IsPositive() || m.RemainingGSTAmount.IsPositive()
}

// RemainingFor returns the unreceived balance of the bucket.
func (m *InvoiceMaster) RemainingFor(against PaymentAgainst) (decimal.Decimal, error) {
	if !against.ValidForInvoice() {
		return decimal.Zero, shared.NewValidationError("paymentAgainst", "must be receivableAmount or gstPayment")
	}
	if against.IsGST() {
		return m.RemainingGSTAmount, nil
	}
	return m.RemainingReceivableAmount, nil
}

// RecordReceivable settles part of a bucket against the freshly loaded master.
func (m *InvoiceMaster) RecordReceivable(d InstallmentDetails, actorID uuid.UUID) (*Receivable, error) {
	if err := d.validate("receivedAmount", "receivedDate"); err != nil {
		return nil, err
	}
	due, err := m.RemainingFor(d.PaymentAgainst)
	if err != nil {
		return nil, err
	}
	if err := settle(m.bucket(d.PaymentAgainst), d.Amount, receiptExceedMessage(d.PaymentAgainst)); err != nil {
		return nil, err
	}
	m.IncrementVersion()

	r := &Receivable{
		Installment:     newInstallment(m.LeadID, d, due, actorID),
		InvoiceMasterID: m.ID,
	}
	m.AddDomainEvent(NewInstallmentRecordedEvent(AggregateTypeInvoiceMaster, m.ID, m.LeadID, &r.Installment))
	return r, nil
}

// ReviseReceivable changes the received amount of a receivable and moves the
// difference through the matching bucket.
func (m *InvoiceMaster) ReviseReceivable(r *Receivable, d InstallmentDetails, actorID uuid.UUID) error {
	if r.InvoiceMasterID != m.ID {
		return shared.NewValidationError("invoiceMasterId", "does not own this receivable")
	}
	msg := receiptExceedMessage(r.PaymentAgainst)
	diff, err := r.revisionDelta(d, "receivedAmount", msg)
	if err != nil {
		return err
	}
	if err := adjust(m.bucket(r.PaymentAgainst), diff, msg); err != nil {
		return err
	}
	r.applyRevision(d, actorID)
	m.IncrementVersion()
	m.AddDomainEvent(NewInstallmentRevisedEvent(AggregateTypeInvoiceMaster, m.ID, m.LeadID, &r.Installment, diff))
	return nil
}

// ReverseReceivable gives the received amount back to its bucket.
func (m *InvoiceMaster) ReverseReceivable(r *Receivable) error {
	if r.InvoiceMasterID != m.ID {
		return shared.NewValidationError("invoiceMasterId", "does not own this receivable")
	}
	b := m.bucket(r.PaymentAgainst)
	*b = b.Add(r.SettledAmount)
	m.IncrementVersion()
	m.AddDomainEvent(NewInstallmentReversedEvent(AggregateTypeInvoiceMaster, m.ID, m.LeadID, &r.Installment))
	return nil
}

func (m *InvoiceMaster) bucket(against PaymentAgainst) *decimal.Decimal {
	if against.IsGST() {
		return &m.RemainingGSTAmount
	}
	return &m.RemainingReceivableAmount
}

func receiptExceedMessage(against PaymentAgainst) string {
	if against.IsGST() {
		return msgExceedsReceivableGST
	}
	return msgExceedsReceivable
}

// Receivable is an installment received against an invoice-master bucket.
type Receivable struct {
	Installment
	InvoiceMasterID uuid.UUID
}

// Status reports Pending while the snapshot is not fully received.
func (r *Receivable) Status() SettlementStatus {
	return statusOf(&r.Installment)
}
