package ledger

import (
	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type names
const (
	AggregateTypePayout        = "AdvisorPayout"
	AggregateTypeInvoiceMaster = "InvoiceMaster"
	AggregateTypeLead          = "Lead"
)

// Event type names
const (
	EventTypePayoutCreated        = "PayoutCreated"
	EventTypePayoutRepriced       = "PayoutRepriced"
	EventTypePayoutDeleted        = "PayoutDeleted"
	EventTypeInstallmentRecorded  = "InstallmentRecorded"
	EventTypeInstallmentRevised   = "InstallmentRevised"
	EventTypeInstallmentReversed  = "InstallmentReversed"
	EventTypeInvoiceAdded         = "InvoiceAdded"
	EventTypeInvoiceRevised       = "InvoiceRevised"
	EventTypeInvoiceRemoved       = "InvoiceRemoved"
	EventTypeLeadFinalFlagChanged = "LeadFinalFlagChanged"
)

// PayoutEvent is raised when a payout is created, re-priced or deleted
type PayoutEvent struct {
	shared.BaseDomainEvent
	AdvisorID              uuid.UUID       `json:"advisor_id"`
	PayoutAmount           decimal.Decimal `json:"payout_amount"`
	NetPayableAmount       decimal.Decimal `json:"net_payable_amount"`
	RemainingPayableAmount decimal.Decimal `json:"remaining_payable_amount"`
	RemainingGSTAmount     decimal.Decimal `json:"remaining_gst_amount"`
	FinalPayout            bool            `json:"final_payout"`
}

func newPayoutEvent(eventType string, p *AdvisorPayout) *PayoutEvent {
	return &PayoutEvent{
		BaseDomainEvent:        shared.NewBaseDomainEvent(eventType, AggregateTypePayout, p.ID, p.LeadID),
		AdvisorID:              p.AdvisorID,
		PayoutAmount:           p.PayoutAmount,
		NetPayableAmount:       p.NetPayableAmount,
		RemainingPayableAmount: p.RemainingPayableAmount,
		RemainingGSTAmount:     p.RemainingGSTAmount,
		FinalPayout:            p.FinalPayout,
	}
}

// NewPayoutCreatedEvent creates a PayoutCreated event
func NewPayoutCreatedEvent(p *AdvisorPayout) *PayoutEvent {
	return newPayoutEvent(EventTypePayoutCreated, p)
}

// NewPayoutRepricedEvent creates a PayoutRepriced event
func NewPayoutRepricedEvent(p *AdvisorPayout) *PayoutEvent {
	return newPayoutEvent(EventTypePayoutRepriced, p)
}

// NewPayoutDeletedEvent creates a PayoutDeleted event
func NewPayoutDeletedEvent(p *AdvisorPayout) *PayoutEvent {
	return newPayoutEvent(EventTypePayoutDeleted, p)
}

// InstallmentEvent is raised when a payable or receivable is recorded,
// revised or reversed
type InstallmentEvent struct {
	shared.BaseDomainEvent
	InstallmentID  uuid.UUID       `json:"installment_id"`
	PaymentAgainst PaymentAgainst  `json:"payment_against"`
	Amount         decimal.Decimal `json:"amount"`
	Delta          decimal.Decimal `json:"delta"`
}

// NewInstallmentRecordedEvent creates an InstallmentRecorded event
func NewInstallmentRecordedEvent(aggType string, aggID, leadID uuid.UUID, i *Installment) *InstallmentEvent {
	return &InstallmentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstallmentRecorded, aggType, aggID, leadID),
		InstallmentID:   i.ID,
		PaymentAgainst:  i.PaymentAgainst,
		Amount:          i.SettledAmount,
		Delta:           i.SettledAmount,
	}
}

// NewInstallmentRevisedEvent creates an InstallmentRevised event
func NewInstallmentRevisedEvent(aggType string, aggID, leadID uuid.UUID, i *Installment, delta decimal.Decimal) *InstallmentEvent {
	return &InstallmentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstallmentRevised, aggType, aggID, leadID),
		InstallmentID:   i.ID,
		PaymentAgainst:  i.PaymentAgainst,
		Amount:          i.SettledAmount,
		Delta:           delta,
	}
}

// NewInstallmentReversedEvent creates an InstallmentReversed event
func NewInstallmentReversedEvent(aggType string, aggID, leadID uuid.UUID, i *Installment) *InstallmentEvent {
	return &InstallmentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInstallmentReversed, aggType, aggID, leadID),
		InstallmentID:   i.ID,
		PaymentAgainst:  i.PaymentAgainst,
		Amount:          i.SettledAmount,
		Delta:           i.SettledAmount.Neg(),
	}
}

// InvoiceEvent is raised when an invoice is added to, revised in or removed
// from its master
type InvoiceEvent struct {
	shared.BaseDomainEvent
	InvoiceID                 uuid.UUID       `json:"invoice_id"`
	InvoiceNo                 string          `json:"invoice_no"`
	ReceivableAmount          decimal.Decimal `json:"receivable_amount"`
	GSTAmount                 decimal.Decimal `json:"gst_amount"`
	InvoiceReceivableAmount   decimal.Decimal `json:"invoice_receivable_amount"`
	RemainingReceivableAmount decimal.Decimal `json:"remaining_receivable_amount"`
}

// NewInvoiceChangedEvent creates an invoice event of the given type
func NewInvoiceChangedEvent(eventType string, m *InvoiceMaster, inv *Invoice) *InvoiceEvent {
	c := inv.Contribution()
	return &InvoiceEvent{
		BaseDomainEvent:           shared.NewBaseDomainEvent(eventType, AggregateTypeInvoiceMaster, m.ID, m.LeadID),
		InvoiceID:                 inv.ID,
		InvoiceNo:                 inv.InvoiceNo,
		ReceivableAmount:          c.Receivable,
		GSTAmount:                 c.GST,
		InvoiceReceivableAmount:   m.InvoiceReceivableAmount,
		RemainingReceivableAmount: m.RemainingReceivableAmount,
	}
}

// LeadFinalFlagChangedEvent is raised when propagation flips a lead's
// finalPayout or finalInvoice flag
type LeadFinalFlagChangedEvent struct {
	shared.BaseDomainEvent
	Flag  FinalFlag `json:"flag"`
	Value bool      `json:"value"`
}

// NewLeadFinalFlagChangedEvent creates a LeadFinalFlagChanged event
func NewLeadFinalFlagChangedEvent(leadID uuid.UUID, flag FinalFlag, value bool) *LeadFinalFlagChangedEvent {
	return &LeadFinalFlagChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadFinalFlagChanged, AggregateTypeLead, leadID, leadID),
		Flag:            flag,
		Value:           value,
	}
}
