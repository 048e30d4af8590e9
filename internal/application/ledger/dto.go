package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===================== Inputs =====================

// BankerInput is the banker snapshot copied onto a payout or invoice
type BankerInput struct {
	BankerID    *uuid.UUID `json:"banker_id"`
	BankName    string     `json:"bank_name"`
	BankerName  string     `json:"banker_name"`
	Email       string     `json:"banker_email" binding:"omitempty,email"`
	Designation string     `json:"banker_designation"`
	Mobile      string     `json:"banker_mobile"`
	StateName   string     `json:"state_name"`
	CityName    string     `json:"city_name"`
}

func (b BankerInput) snapshot() ledger.BankerSnapshot {
	return ledger.BankerSnapshot{
		BankerID:    b.BankerID,
		BankName:    b.BankName,
		BankerName:  b.BankerName,
		Email:       b.Email,
		Designation: b.Designation,
		Mobile:      b.Mobile,
		StateName:   b.StateName,
		CityName:    b.CityName,
	}
}

// PricingInput carries the pricing fields shared by payouts and invoices.
// PayoutAmount and TDSAmount override the values derived from the percents.
type PricingInput struct {
	DisbursalAmount decimal.Decimal  `json:"disbursal_amount" binding:"decimal_gte0"`
	DisbursalDate   *time.Time       `json:"disbursal_date"`
	PayoutPercent   decimal.Decimal  `json:"payout_percent" binding:"percent"`
	PayoutAmount    *decimal.Decimal `json:"payout_amount" binding:"omitempty,decimal_gte0"`
	TDSPercent      decimal.Decimal  `json:"tds_percent" binding:"percent"`
	TDSAmount       *decimal.Decimal `json:"tds_amount" binding:"omitempty,decimal_gte0"`
	GSTPercent      decimal.Decimal  `json:"gst_percent" binding:"percent"`
	InvoiceNo       string           `json:"invoice_no" binding:"max=100"`
	InvoiceDate     *time.Time       `json:"invoice_date"`
	ProcessedByID   *uuid.UUID       `json:"processed_by_id"`
	Remarks         string           `json:"remarks" binding:"max=2000"`
	Banker          BankerInput      `json:"banker"`
}

func (in PricingInput) terms() ledger.PricingTerms {
	return ledger.PricingTerms{
		DisbursalAmount: in.DisbursalAmount,
		DisbursalDate:   in.DisbursalDate,
		PayoutPercent:   in.PayoutPercent,
		PayoutAmount:    in.PayoutAmount,
		TDSPercent:      in.TDSPercent,
		TDSAmount:       in.TDSAmount,
		GSTPercent:      in.GSTPercent,
		InvoiceNo:       in.InvoiceNo,
		InvoiceDate:     in.InvoiceDate,
		ProcessedByID:   in.ProcessedByID,
		Remarks:         in.Remarks,
		Banker:          in.Banker.snapshot(),
	}
}

// PricingPatch is a partial PricingInput; nil fields keep the stored value.
type PricingPatch struct {
	DisbursalAmount *decimal.Decimal `json:"disbursal_amount" binding:"omitempty,decimal_gte0"`
	DisbursalDate   *time.Time       `json:"disbursal_date"`
	PayoutPercent   *decimal.Decimal `json:"payout_percent" binding:"omitempty,percent"`
	PayoutAmount    *decimal.Decimal `json:"payout_amount" binding:"omitempty,decimal_gte0"`
	TDSPercent      *decimal.Decimal `json:"tds_percent" binding:"omitempty,percent"`
	TDSAmount       *decimal.Decimal `json:"tds_amount" binding:"omitempty,decimal_gte0"`
	GSTPercent      *decimal.Decimal `json:"gst_percent" binding:"omitempty,percent"`
	InvoiceNo       *string          `json:"invoice_no" binding:"omitempty,max=100"`
	InvoiceDate     *time.Time       `json:"invoice_date"`
	ProcessedByID   *uuid.UUID       `json:"processed_by_id"`
	Remarks         *string          `json:"remarks" binding:"omitempty,max=2000"`
	Banker          *BankerInput     `json:"banker"`
}

// apply merges the patch into t. Changing an input of a derived amount drops
// a stored explicit value for it unless the patch sets a new one.
func (p PricingPatch) apply(t *ledger.PricingTerms) {
	payoutInputs := p.DisbursalAmount != nil || p.PayoutPercent != nil
	if payoutInputs && p.PayoutAmount == nil {
		t.PayoutAmount = nil
	}
	if (payoutInputs || p.PayoutAmount != nil || p.TDSPercent != nil) && p.TDSAmount == nil {
		t.TDSAmount = nil
	}
	if p.DisbursalAmount != nil {
		t.DisbursalAmount = *p.DisbursalAmount
	}
	if p.DisbursalDate != nil {
		t.DisbursalDate = p.DisbursalDate
	}
	if p.PayoutPercent != nil {
		t.PayoutPercent = *p.PayoutPercent
	}
	if p.PayoutAmount != nil {
		t.PayoutAmount = p.PayoutAmount
	}
	if p.TDSPercent != nil {
		t.TDSPercent = *p.TDSPercent
	}
	if p.TDSAmount != nil {
		t.TDSAmount = p.TDSAmount
	}
	if p.GSTPercent != nil {
		t.GSTPercent = *p.GSTPercent
	}
	if p.InvoiceNo != nil {
		t.InvoiceNo = *p.InvoiceNo
	}
	if p.InvoiceDate != nil {
		t.InvoiceDate = p.InvoiceDate
	}
	if p.ProcessedByID != nil {
		t.ProcessedByID = p.ProcessedByID
	}
	if p.Remarks != nil {
		t.Remarks = *p.Remarks
	}
	if p.Banker != nil {
		t.Banker = p.Banker.snapshot()
	}
}

// CreatePayoutInput opens the payout of one advisor on one lead
type CreatePayoutInput struct {
	PricingInput
	LeadID        uuid.UUID `json:"lead_id" binding:"required"`
	AdvisorID     uuid.UUID `json:"advisor_id" binding:"required"`
	GSTApplicable bool      `json:"gst_applicable"`
	FinalPayout   bool      `json:"final_payout"`
}

func (in CreatePayoutInput) terms() ledger.PayoutTerms {
	return ledger.PayoutTerms{
		PricingTerms:  in.PricingInput.terms(),
		GSTApplicable: in.GSTApplicable,
		FinalPayout:   in.FinalPayout,
	}
}

// UpdatePayoutInput re-prices a payout
type UpdatePayoutInput struct {
	PricingPatch
	GSTApplicable *bool `json:"gst_applicable"`
	FinalPayout   *bool `json:"final_payout"`
}

func (in UpdatePayoutInput) apply(t ledger.PayoutTerms) ledger.PayoutTerms {
	in.PricingPatch.apply(&t.PricingTerms)
	if in.GSTApplicable != nil {
		t.GSTApplicable = *in.GSTApplicable
	}
	if in.FinalPayout != nil {
		t.FinalPayout = *in.FinalPayout
	}
	return t
}

// CreateInvoiceInput bills the bank for a lead
type CreateInvoiceInput struct {
	PricingInput
	LeadID       uuid.UUID `json:"lead_id" binding:"required"`
	FinalInvoice bool      `json:"final_invoice"`
}

func (in CreateInvoiceInput) terms() ledger.InvoiceTerms {
	return ledger.InvoiceTerms{
		PricingTerms: in.PricingInput.terms(),
		FinalInvoice: in.FinalInvoice,
	}
}

// UpdateInvoiceInput re-prices an invoice
type UpdateInvoiceInput struct {
	PricingPatch
	FinalInvoice *bool `json:"final_invoice"`
}

func (in UpdateInvoiceInput) apply(t ledger.InvoiceTerms) ledger.InvoiceTerms {
	in.PricingPatch.apply(&t.PricingTerms)
	if in.FinalInvoice != nil {
		t.FinalInvoice = *in.FinalInvoice
	}
	return t
}

// CreatePayableInput records a payment to an advisor
type CreatePayableInput struct {
	PayoutID       uuid.UUID       `json:"payout_id" binding:"required"`
	PaymentAgainst string          `json:"payment_against" binding:"required,oneof=payableAmount gstPayment"`
	PaidAmount     decimal.Decimal `json:"paid_amount" binding:"decimal_gte0"`
	PaidDate       time.Time       `json:"paid_date" binding:"required"`
	RefNo          string          `json:"ref_no" binding:"max=100"`
	Remarks        string          `json:"remarks" binding:"max=2000"`
}

func (in CreatePayableInput) details() ledger.InstallmentDetails {
	return ledger.InstallmentDetails{
		PaymentAgainst: ledger.PaymentAgainst(in.PaymentAgainst),
		Amount:         in.PaidAmount,
		SettledOn:      in.PaidDate,
		RefNo:          in.RefNo,
		Remarks:        in.Remarks,
	}
}

// UpdatePayableInput revises a payment; nil fields keep the stored value
type UpdatePayableInput struct {
	PaidAmount *decimal.Decimal `json:"paid_amount" binding:"omitempty,decimal_gte0"`
	PaidDate   *time.Time       `json:"paid_date"`
	RefNo      *string          `json:"ref_no" binding:"omitempty,max=100"`
	Remarks    *string          `json:"remarks" binding:"omitempty,max=2000"`
}

func (in UpdatePayableInput) details(current *ledger.Installment) ledger.InstallmentDetails {
	return patchInstallment(current, in.PaidAmount, in.PaidDate, in.RefNo, in.Remarks)
}

// CreateReceivableInput records money received from the bank
type CreateReceivableInput struct {
	InvoiceMasterID uuid.UUID       `json:"invoice_master_id" binding:"required"`
	PaymentAgainst  string          `json:"payment_against" binding:"required,oneof=receivableAmount gstPayment"`
	ReceivedAmount  decimal.Decimal `json:"received_amount" binding:"decimal_gte0"`
	ReceivedDate    time.Time       `json:"received_date" binding:"required"`
	RefNo           string          `json:"ref_no" binding:"max=100"`
	Remarks         string          `json:"remarks" binding:"max=2000"`
}

func (in CreateReceivableInput) details() ledger.InstallmentDetails {
	return ledger.InstallmentDetails{
		PaymentAgainst: ledger.PaymentAgainst(in.PaymentAgainst),
		Amount:         in.ReceivedAmount,
		SettledOn:      in.ReceivedDate,
		RefNo:          in.RefNo,
		Remarks:        in.Remarks,
	}
}

// UpdateReceivableInput revises a receipt; nil fields keep the stored value
type UpdateReceivableInput struct {
	ReceivedAmount *decimal.Decimal `json:"received_amount" binding:"omitempty,decimal_gte0"`
	ReceivedDate   *time.Time       `json:"received_date"`
	RefNo          *string          `json:"ref_no" binding:"omitempty,max=100"`
	Remarks        *string          `json:"remarks" binding:"omitempty,max=2000"`
}

func (in UpdateReceivableInput) details(current *ledger.Installment) ledger.InstallmentDetails {
	return patchInstallment(current, in.ReceivedAmount, in.ReceivedDate, in.RefNo, in.Remarks)
}

func patchInstallment(current *ledger.Installment, amount *decimal.Decimal, date *time.Time, refNo, remarks *string) ledger.InstallmentDetails {
	d := ledger.InstallmentDetails{
		PaymentAgainst: current.PaymentAgainst,
		Amount:         current.SettledAmount,
		SettledOn:      current.SettledOn,
		RefNo:          current.RefNo,
		Remarks:        current.Remarks,
	}
	if amount != nil {
		d.Amount = *amount
	}
	if date != nil {
		d.SettledOn = *date
	}
	if refNo != nil {
		d.RefNo = *refNo
	}
	if remarks != nil {
		d.Remarks = *remarks
	}
	return d
}

// LedgerListFilter defines the query string of every ledger listing
type LedgerListFilter struct {
	ProductType string     `form:"productType"`
	AdvisorName string     `form:"advisorName"`
	ClientName  string     `form:"clientName"`
	FromDate    *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate      *time.Time `form:"toDate" time_format:"2006-01-02"`
	Page        int        `form:"page"`
	Limit       int        `form:"limit"`
}

func (f LedgerListFilter) toDomain() ledger.LedgerFilter {
	out := ledger.LedgerFilter{
		Filter:      pageFilter(f.Page, f.Limit),
		ProductType: f.ProductType,
		AdvisorName: f.AdvisorName,
		ClientName:  f.ClientName,
		FromDate:    f.FromDate,
		ToDate:      endOfDay(f.ToDate),
	}
	return out
}

// StatementListFilter narrows the advisor statement
type StatementListFilter struct {
	ProductType   string     `form:"productType"`
	PaymentStatus string     `form:"paymentStatus" binding:"omitempty,oneof=Pending Paid"`
	FromDate      *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate        *time.Time `form:"toDate" time_format:"2006-01-02"`
	Page          int        `form:"page"`
	Limit         int        `form:"limit"`
}

func pageFilter(page, limit int) shared.Filter {
	f := shared.DefaultFilter()
	f.Page = page
	f.PageSize = limit
	return f.Normalize()
}

// endOfDay makes a date-only upper bound inclusive of that whole day.
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &end
}

// ===================== Responses =====================

// BankerResponse is the banker snapshot of a ledger record
type BankerResponse struct {
	BankerID    *uuid.UUID `json:"banker_id,omitempty"`
	BankName    string     `json:"bank_name"`
	BankerName  string     `json:"banker_name"`
	Email       string     `json:"banker_email"`
	Designation string     `json:"banker_designation"`
	Mobile      string     `json:"banker_mobile"`
	StateName   string     `json:"state_name"`
	CityName    string     `json:"city_name"`
}

func toBankerResponse(b ledger.BankerSnapshot) BankerResponse {
	return BankerResponse{
		BankerID:    b.BankerID,
		BankName:    b.BankName,
		BankerName:  b.BankerName,
		Email:       b.Email,
		Designation: b.Designation,
		Mobile:      b.Mobile,
		StateName:   b.StateName,
		CityName:    b.CityName,
	}
}

// LeadResponse is the lead shown next to a ledger row
type LeadResponse struct {
	ID                    uuid.UUID       `json:"id"`
	LeadNo                string          `json:"lead_no"`
	ClientName            string          `json:"client_name"`
	ProductType           string          `json:"product_type"`
	LoanRequirementAmount decimal.Decimal `json:"loan_requirement_amount"`
	DisplayName           string          `json:"display_name"`
}

func toLeadResponse(l ledger.LeadSummary) LeadResponse {
	return LeadResponse{
		ID:                    l.ID,
		LeadNo:                l.LeadNo,
		ClientName:            l.ClientName,
		ProductType:           string(l.ProductType),
		LoanRequirementAmount: l.LoanRequirementAmount,
		DisplayName:           l.DisplayName(),
	}
}

// PayoutResponse represents an advisor payout in API responses
type PayoutResponse struct {
	ID                     uuid.UUID       `json:"id"`
	LeadID                 uuid.UUID       `json:"lead_id"`
	AdvisorID              uuid.UUID       `json:"advisor_id"`
	AdvisorName            string          `json:"advisor_name"`
	AdvisorDisplayName     string          `json:"advisor_display_name"`
	Lead                   LeadResponse    `json:"lead"`
	DisbursalAmount        decimal.Decimal `json:"disbursal_amount"`
	DisbursalDate          *time.Time      `json:"disbursal_date,omitempty"`
	PayoutPercent          decimal.Decimal `json:"payout_percent"`
	PayoutAmount           decimal.Decimal `json:"payout_amount"`
	TDSPercent             decimal.Decimal `json:"tds_percent"`
	TDSAmount              decimal.Decimal `json:"tds_amount"`
	GSTApplicable          bool            `json:"gst_applicable"`
	GSTPercent             decimal.Decimal `json:"gst_percent"`
	GSTAmount              decimal.Decimal `json:"gst_amount"`
	NetPayableAmount       decimal.Decimal `json:"net_payable_amount"`
	RemainingPayableAmount decimal.Decimal `json:"remaining_payable_amount"`
	RemainingGSTAmount     decimal.Decimal `json:"remaining_gst_amount"`
	InvoiceNo              string          `json:"invoice_no,omitempty"`
	InvoiceDate            *time.Time      `json:"invoice_date,omitempty"`
	ProcessedByID          *uuid.UUID      `json:"processed_by_id,omitempty"`
	FinalPayout            bool            `json:"final_payout"`
	Remarks                string          `json:"remarks,omitempty"`
	Banker                 BankerResponse  `json:"banker"`
	CreatedBy              uuid.UUID       `json:"created_by"`
	UpdatedBy              uuid.UUID       `json:"updated_by"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
	Version                int             `json:"version"`
}

func toPayoutResponse(v *ledger.PayoutView) PayoutResponse {
	p := &v.Payout
	return PayoutResponse{
		ID:                     p.ID,
		LeadID:                 p.LeadID,
		AdvisorID:              p.AdvisorID,
		AdvisorName:            v.Advisor.Name,
		AdvisorDisplayName:     v.Advisor.DisplayName(),
		Lead:                   toLeadResponse(v.Lead),
		DisbursalAmount:        p.DisbursalAmount,
		DisbursalDate:          p.DisbursalDate,
		PayoutPercent:          p.PayoutPercent,
		PayoutAmount:           p.PayoutAmount,
		TDSPercent:             p.TDSPercent,
		TDSAmount:              p.TDSAmount,
		GSTApplicable:          p.GSTApplicable,
		GSTPercent:             p.GSTPercent,
		GSTAmount:              p.GSTAmount,
		NetPayableAmount:       p.NetPayableAmount,
		RemainingPayableAmount: p.RemainingPayableAmount,
		RemainingGSTAmount:     p.RemainingGSTAmount,
		InvoiceNo:              p.InvoiceNo,
		InvoiceDate:            p.InvoiceDate,
		ProcessedByID:          p.ProcessedByID,
		FinalPayout:            p.FinalPayout,
		Remarks:                p.Remarks,
		Banker:                 toBankerResponse(p.Banker),
		CreatedBy:              p.CreatedBy,
		UpdatedBy:              p.UpdatedBy,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
		Version:                p.Version,
	}
}

// InstallmentResponse holds the fields shared by payables and receivables
type InstallmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	LeadID         uuid.UUID       `json:"lead_id"`
	Lead           LeadResponse    `json:"lead"`
	PaymentAgainst string          `json:"payment_against"`
	BalanceAmount  decimal.Decimal `json:"balance_amount"`
	Status         string          `json:"status"`
	RefNo          string          `json:"ref_no,omitempty"`
	Remarks        string          `json:"remarks,omitempty"`
	CreatedBy      uuid.UUID       `json:"created_by"`
	UpdatedBy      uuid.UUID       `json:"updated_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toInstallmentResponse(i *ledger.Installment, lead ledger.LeadSummary, status ledger.SettlementStatus) InstallmentResponse {
	return InstallmentResponse{
		ID:             i.ID,
		LeadID:         i.LeadID,
		Lead:           toLeadResponse(lead),
		PaymentAgainst: i.PaymentAgainst.String(),
		BalanceAmount:  i.BalanceAmount,
		Status:         string(status),
		RefNo:          i.RefNo,
		Remarks:        i.Remarks,
		CreatedBy:      i.CreatedBy,
		UpdatedBy:      i.UpdatedBy,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// PayableResponse represents a payment to an advisor in API responses.
// TotalAmount is only set on single reads: the paid amount plus what is
// still open in the same bucket of the payout.
type PayableResponse struct {
	InstallmentResponse
	PayoutID           uuid.UUID        `json:"payout_id"`
	AdvisorID          uuid.UUID        `json:"advisor_id"`
	AdvisorName        string           `json:"advisor_name"`
	AdvisorDisplayName string           `json:"advisor_display_name"`
	PayableAmount      decimal.Decimal  `json:"payable_amount"`
	PaidAmount         decimal.Decimal  `json:"paid_amount"`
	PaidDate           time.Time        `json:"paid_date"`
	TotalAmount        *decimal.Decimal `json:"total_amount,omitempty"`
}

func toPayableResponse(v *ledger.PayableView) PayableResponse {
	p := &v.Payable
	return PayableResponse{
		InstallmentResponse: toInstallmentResponse(&p.Installment, v.Lead, p.Status()),
		PayoutID:            p.PayoutID,
		AdvisorID:           p.AdvisorID,
		AdvisorName:         v.Advisor.Name,
		AdvisorDisplayName:  v.Advisor.DisplayName(),
		PayableAmount:       p.DueAmount,
		PaidAmount:          p.SettledAmount,
		PaidDate:            p.SettledOn,
	}
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                  uuid.UUID       `json:"id"`
	InvoiceMasterID     uuid.UUID       `json:"invoice_master_id"`
	LeadID              uuid.UUID       `json:"lead_id"`
	Lead                LeadResponse    `json:"lead"`
	DisbursalAmount     decimal.Decimal `json:"disbursal_amount"`
	DisbursalDate       *time.Time      `json:"disbursal_date,omitempty"`
	PayoutPercent       decimal.Decimal `json:"payout_percent"`
	PayoutAmount        decimal.Decimal `json:"payout_amount"`
	TDSPercent          decimal.Decimal `json:"tds_percent"`
	TDSAmount           decimal.Decimal `json:"tds_amount"`
	GSTPercent          decimal.Decimal `json:"gst_percent"`
	GSTAmount           decimal.Decimal `json:"gst_amount"`
	NetReceivableAmount decimal.Decimal `json:"net_receivable_amount"`
	InvoiceNo           string          `json:"invoice_no"`
	InvoiceDate         time.Time       `json:"invoice_date"`
	ProcessedByID       *uuid.UUID      `json:"processed_by_id,omitempty"`
	FinalInvoice        bool            `json:"final_invoice"`
	Remarks             string          `json:"remarks,omitempty"`
	Banker              BankerResponse  `json:"banker"`
	CreatedBy           uuid.UUID       `json:"created_by"`
	UpdatedBy           uuid.UUID       `json:"updated_by"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func toInvoiceResponse(v *ledger.InvoiceView) InvoiceResponse {
	inv := &v.Invoice
	return InvoiceResponse{
		ID:                  inv.ID,
		InvoiceMasterID:     inv.InvoiceMasterID,
		LeadID:              inv.LeadID,
		Lead:                toLeadResponse(v.Lead),
		DisbursalAmount:     inv.DisbursalAmount,
		DisbursalDate:       inv.DisbursalDate,
		PayoutPercent:       inv.PayoutPercent,
		PayoutAmount:        inv.PayoutAmount,
		TDSPercent:          inv.TDSPercent,
		TDSAmount:           inv.TDSAmount,
		GSTPercent:          inv.GSTPercent,
		GSTAmount:           inv.GSTAmount,
		NetReceivableAmount: inv.NetReceivableAmount,
		InvoiceNo:           inv.InvoiceNo,
		InvoiceDate:         inv.InvoiceDate,
		ProcessedByID:       inv.ProcessedByID,
		FinalInvoice:        inv.FinalInvoice,
		Remarks:             inv.Remarks,
		Banker:              toBankerResponse(inv.Banker),
		CreatedBy:           inv.CreatedBy,
		UpdatedBy:           inv.UpdatedBy,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
	}
}

// InvoiceMasterResponse represents the per-lead invoice totals
type InvoiceMasterResponse struct {
	ID                        uuid.UUID       `json:"id"`
	LeadID                    uuid.UUID       `json:"lead_id"`
	InvoiceReceivableAmount   decimal.Decimal `json:"invoice_receivable_amount"`
	InvoiceGSTAmount          decimal.Decimal `json:"invoice_gst_amount"`
	RemainingReceivableAmount decimal.Decimal `json:"remaining_receivable_amount"`
	RemainingGSTAmount        decimal.Decimal `json:"remaining_gst_amount"`
	Version                   int             `json:"version"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

func toInvoiceMasterResponse(m *ledger.InvoiceMaster) InvoiceMasterResponse {
	return InvoiceMasterResponse{
		ID:                        m.ID,
		LeadID:                    m.LeadID,
		InvoiceReceivableAmount:   m.InvoiceReceivableAmount,
		InvoiceGSTAmount:          m.InvoiceGSTAmount,
		RemainingReceivableAmount: m.RemainingReceivableAmount,
		RemainingGSTAmount:        m.RemainingGSTAmount,
		Version:                   m.Version,
		UpdatedAt:                 m.UpdatedAt,
	}
}

// ReceivableResponse represents money received from the bank
type ReceivableResponse struct {
	InstallmentResponse
	InvoiceMasterID  uuid.UUID        `json:"invoice_master_id"`
	ReceivableAmount decimal.Decimal  `json:"receivable_amount"`
	ReceivedAmount   decimal.Decimal  `json:"received_amount"`
	ReceivedDate     time.Time        `json:"received_date"`
	TotalAmount      *decimal.Decimal `json:"total_amount,omitempty"`
}

func toReceivableResponse(v *ledger.ReceivableView) ReceivableResponse {
	r := &v.Receivable
	return ReceivableResponse{
		InstallmentResponse: toInstallmentResponse(&r.Installment, v.Lead, r.Status()),
		InvoiceMasterID:     r.InvoiceMasterID,
		ReceivableAmount:    r.DueAmount,
		ReceivedAmount:      r.SettledAmount,
		ReceivedDate:        r.SettledOn,
	}
}

// LeadOptionResponse is a lead offered in a picker
type LeadOptionResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

func toLeadOptions(leads []ledger.LeadOption) []LeadOptionResponse {
	out := make([]LeadOptionResponse, len(leads))
	for i, l := range leads {
		out[i] = LeadOptionResponse{ID: l.ID, DisplayName: l.DisplayName}
	}
	return out
}

// AdvisorOptionResponse is an advisor holding a payout on a lead
type AdvisorOptionResponse struct {
	AdvisorPayoutID uuid.UUID `json:"advisor_payout_id"`
	AdvisorID       uuid.UUID `json:"advisor_id"`
	Name            string    `json:"name"`
}

// StatementStatsResponse sums an advisor statement
type StatementStatsResponse struct {
	TotalDisbursal decimal.Decimal `json:"total_disbursal"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
}

// StatementResponse is the advisor's own payout statement
type StatementResponse struct {
	Payables   []PayableResponse      `json:"payables"`
	Stats      StatementStatsResponse `json:"stats"`
	TotalCount int64                  `json:"total_count"`
	TotalPages int                    `json:"total_pages"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}
