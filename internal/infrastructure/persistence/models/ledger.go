package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// LeadModel is the persistence model for leads. The ledger reads it and
// writes only final_payout and final_invoice.
type LeadModel struct {
	BaseModel
	LeadNo                string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientName            string             `gorm:"type:varchar(200);not null"`
	MobileNo              string             `gorm:"type:varchar(20)"`
	ProductType           string             `gorm:"type:varchar(50);not null;index"`
	AdvisorID             *uuid.UUID         `gorm:"type:uuid;index"`
	LoanRequirementAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	FinalPayout           bool               `gorm:"not null;default:false"`
	FinalInvoice          bool               `gorm:"not null;default:false"`
	History               []LeadHistoryModel `gorm:"foreignKey:LeadID;references:ID"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead
func (m *LeadModel) ToDomain() *ledger.Lead {
	lead := &ledger.Lead{
		BaseEntity:            m.BaseModel.ToDomain(),
		LeadNo:                m.LeadNo,
		ClientName:            m.ClientName,
		MobileNo:              m.MobileNo,
		ProductType:           ledger.ProductType(m.ProductType),
		AdvisorID:             m.AdvisorID,
		LoanRequirementAmount: m.LoanRequirementAmount,
		FinalPayout:           m.FinalPayout,
		FinalInvoice:          m.FinalInvoice,
		History:               make([]ledger.LeadHistoryEntry, len(m.History)),
	}
	for i, h := range m.History {
		lead.History[i] = ledger.LeadHistoryEntry{
			Feedback:    h.Feedback,
			CommentBy:   h.CommentBy,
			CommentDate: h.CommentDate,
			Remarks:     h.Remarks,
		}
	}
	return lead
}

// Summary converts the model to the lead summary shown on ledger rows
func (m *LeadModel) Summary() ledger.LeadSummary {
	return ledger.LeadSummary{
		ID:                    m.ID,
		LeadNo:                m.LeadNo,
		ClientName:            m.ClientName,
		ProductType:           ledger.ProductType(m.ProductType),
		LoanRequirementAmount: m.LoanRequirementAmount,
	}
}

// LeadHistoryModel is one feedback step of a lead. Rows are ordered by
// comment_date, then created_at.
type LeadHistoryModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	LeadID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Feedback    string     `gorm:"type:varchar(100);not null"`
	CommentBy   *uuid.UUID `gorm:"type:uuid"`
	CommentDate time.Time  `gorm:"not null"`
	Remarks     string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LeadHistoryModel) TableName() string {
	return "lead_history"
}

// AdvisorModel is the persistence model of the advisor directory
type AdvisorModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	AdvisorCode string `gorm:"type:varchar(50);index"`
}

// TableName returns the table name for GORM
func (AdvisorModel) TableName() string {
	return "advisors"
}

// ToDomain converts the persistence model to a domain Advisor
func (m *AdvisorModel) ToDomain() *ledger.Advisor {
	return &ledger.Advisor{ID: m.ID, Name: m.Name, AdvisorCode: m.AdvisorCode}
}

// BankerSnapshotModel is embedded in payout and invoice rows
type BankerSnapshotModel struct {
	BankerID          *uuid.UUID `gorm:"type:uuid"`
	BankName          string     `gorm:"type:varchar(200)"`
	BankerName        string     `gorm:"type:varchar(200)"`
	BankerEmail       string     `gorm:"type:varchar(200)"`
	BankerDesignation string     `gorm:"type:varchar(100)"`
	BankerMobile      string     `gorm:"type:varchar(20)"`
	StateName         string     `gorm:"type:varchar(100)"`
	CityName          string     `gorm:"type:varchar(100)"`
}

func bankerFromDomain(b ledger.BankerSnapshot) BankerSnapshotModel {
	return BankerSnapshotModel{
		BankerID:          b.BankerID,
		BankName:          b.BankName,
		BankerName:        b.BankerName,
		BankerEmail:       b.Email,
		BankerDesignation: b.Designation,
		BankerMobile:      b.Mobile,
		StateName:         b.StateName,
		CityName:          b.CityName,
	}
}

func (m BankerSnapshotModel) toDomain() ledger.BankerSnapshot {
	return ledger.BankerSnapshot{
		BankerID:    m.BankerID,
		BankName:    m.BankName,
		BankerName:  m.BankerName,
		Email:       m.BankerEmail,
		Designation: m.BankerDesignation,
		Mobile:      m.BankerMobile,
		StateName:   m.StateName,
		CityName:    m.CityName,
	}
}

// AdvisorPayoutModel is the persistence model for the AdvisorPayout aggregate root.
type AdvisorPayoutModel struct {
	AggregateModel
	AuditModel
	LeadID                 uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_payout_lead_advisor,priority:1"`
	AdvisorID              uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_payout_lead_advisor,priority:2;index"`
	DisbursalAmount        decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	DisbursalDate          *time.Time          `gorm:"type:date"`
	PayoutPercent          decimal.Decimal     `gorm:"type:decimal(7,4);not null"`
	PayoutAmount           decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	TDSPercent             decimal.Decimal     `gorm:"column:tds_percent;type:decimal(7,4);not null"`
	TDSAmount              decimal.Decimal     `gorm:"column:tds_amount;type:decimal(18,4);not null"`
	GSTApplicable          bool                `gorm:"column:gst_applicable;not null;default:false"`
	GSTPercent             decimal.Decimal     `gorm:"column:gst_percent;type:decimal(7,4);not null"`
	GSTAmount              decimal.Decimal     `gorm:"column:gst_amount;type:decimal(18,4);not null"`
	NetPayableAmount       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	RemainingPayableAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	RemainingGSTAmount     decimal.Decimal     `gorm:"column:remaining_gst_amount;type:decimal(18,4);not null"`
	InvoiceNo              string              `gorm:"type:varchar(100)"`
	InvoiceDate            *time.Time          `gorm:"type:date"`
	ProcessedByID          *uuid.UUID          `gorm:"type:uuid"`
	FinalPayout            bool                `gorm:"not null;default:false;index"`
	Remarks                string              `gorm:"type:text"`
	Banker                 BankerSnapshotModel `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (AdvisorPayoutModel) TableName() string {
	return "advisor_payouts"
}

// ToDomain converts the persistence model to a domain AdvisorPayout
func (m *AdvisorPayoutModel) ToDomain() *ledger.AdvisorPayout {
	return &ledger.AdvisorPayout{
		BaseAggregateRoot:      m.ToDomainAggregateRoot(),
		Audit:                  m.AuditModel.ToDomain(),
		LeadID:                 m.LeadID,
		AdvisorID:              m.AdvisorID,
		DisbursalAmount:        m.DisbursalAmount,
		DisbursalDate:          m.DisbursalDate,
		PayoutPercent:          m.PayoutPercent,
		PayoutAmount:           m.PayoutAmount,
		TDSPercent:             m.TDSPercent,
		TDSAmount:              m.TDSAmount,
		GSTApplicable:          m.GSTApplicable,
		GSTPercent:             m.GSTPercent,
		GSTAmount:              m.GSTAmount,
		NetPayableAmount:       m.NetPayableAmount,
		RemainingPayableAmount: m.RemainingPayableAmount,
		RemainingGSTAmount:     m.RemainingGSTAmount,
		InvoiceNo:              m.InvoiceNo,
		InvoiceDate:            m.InvoiceDate,
		ProcessedByID:          m.ProcessedByID,
		FinalPayout:            m.FinalPayout,
		Remarks:                m.Remarks,
		Banker:                 m.Banker.toDomain(),
	}
}

// FromDomain populates the persistence model from a domain AdvisorPayout
func (m *AdvisorPayoutModel) FromDomain(p *ledger.AdvisorPayout) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.AuditModel = AuditModelFromDomain(p.Audit)
	m.LeadID = p.LeadID
	m.AdvisorID = p.AdvisorID
	m.DisbursalAmount = p.DisbursalAmount
	m.DisbursalDate = p.DisbursalDate
	m.PayoutPercent = p.PayoutPercent
	m.PayoutAmount = p.PayoutAmount
	m.TDSPercent = p.TDSPercent
	m.TDSAmount = p.TDSAmount
	m.GSTApplicable = p.GSTApplicable
	m.GSTPercent = p.GSTPercent
	m.GSTAmount = p.GSTAmount
	m.NetPayableAmount = p.NetPayableAmount
	m.RemainingPayableAmount = p.RemainingPayableAmount
	m.RemainingGSTAmount = p.RemainingGSTAmount
	m.InvoiceNo = p.InvoiceNo
	m.InvoiceDate = p.InvoiceDate
	m.ProcessedByID = p.ProcessedByID
	m.FinalPayout = p.FinalPayout
	m.Remarks = p.Remarks
	m.Banker = bankerFromDomain(p.Banker)
}

// UpdateColumns lists every mutable column. Updates with a map writes zero
// values and false flags, which a struct update would skip.
func (m *AdvisorPayoutModel) UpdateColumns() map[string]interface{} {
	return map[string]interface{}{
		"disbursal_amount":         m.DisbursalAmount,
		"disbursal_date":           m.DisbursalDate,
		"payout_percent":           m.PayoutPercent,
		"payout_amount":            m.PayoutAmount,
		"tds_percent":              m.TDSPercent,
		"tds_amount":               m.TDSAmount,
		"gst_applicable":           m.GSTApplicable,
		"gst_percent":              m.GSTPercent,
		"gst_amount":               m.GSTAmount,
		"net_payable_amount":       m.NetPayableAmount,
		"remaining_payable_amount": m.RemainingPayableAmount,
		"remaining_gst_amount":     m.RemainingGSTAmount,
		"invoice_no":               m.InvoiceNo,
		"invoice_date":             m.InvoiceDate,
		"processed_by_id":          m.ProcessedByID,
		"final_payout":             m.FinalPayout,
		"remarks":                  m.Remarks,
		"banker_id":                m.Banker.BankerID,
		"bank_name":                m.Banker.BankName,
		"banker_name":              m.Banker.BankerName,
		"banker_email":             m.Banker.BankerEmail,
		"banker_designation":       m.Banker.BankerDesignation,
		"banker_mobile":            m.Banker.BankerMobile,
		"state_name":               m.Banker.StateName,
		"city_name":                m.Banker.CityName,
		"updated_by":               m.UpdatedBy,
		"version":                  m.Version,
		"updated_at":               m.UpdatedAt,
	}
}

// AdvisorPayoutModelFromDomain creates a new persistence model from a domain AdvisorPayout
func AdvisorPayoutModelFromDomain(p *ledger.AdvisorPayout) *AdvisorPayoutModel {
	m := &AdvisorPayoutModel{}
	m.FromDomain(p)
	return m
}

// InstallmentModel holds the columns shared by payables and receivables.
// The amount and date columns differ per table and live on the concrete models.
type InstallmentModel struct {
	BaseModel
	AuditModel
	LeadID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentAgainst string          `gorm:"type:varchar(30);not null"`
	BalanceAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RefNo          string          `gorm:"type:varchar(100)"`
	Remarks        string          `gorm:"type:text"`
}

func (m *InstallmentModel) toDomain(due, settled decimal.Decimal, settledOn time.Time) ledger.Installment {
	return ledger.Installment{
		BaseEntity:     m.BaseModel.ToDomain(),
		Audit:          m.AuditModel.ToDomain(),
		LeadID:         m.LeadID,
		PaymentAgainst: ledger.PaymentAgainst(m.PaymentAgainst),
		DueAmount:      due,
		SettledAmount:  settled,
		BalanceAmount:  m.BalanceAmount,
		SettledOn:      settledOn,
		RefNo:          m.RefNo,
		Remarks:        m.Remarks,
	}
}

func installmentFromDomain(i *ledger.Installment) InstallmentModel {
	m := InstallmentModel{
		AuditModel:     AuditModelFromDomain(i.Audit),
		LeadID:         i.LeadID,
		PaymentAgainst: i.PaymentAgainst.String(),
		BalanceAmount:  i.BalanceAmount,
		RefNo:          i.RefNo,
		Remarks:        i.Remarks,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// PayableModel is the persistence model of a payment made to an advisor
type PayableModel struct {
	InstallmentModel
	PayoutID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	AdvisorID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayableAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidDate      time.Time       `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (PayableModel) TableName() string {
	return "payables"
}

// ToDomain converts the persistence model to a domain Payable
func (m *PayableModel) ToDomain() *ledger.Payable {
	return &ledger.Payable{
		Installment: m.toDomain(m.PayableAmount, m.PaidAmount, m.PaidDate),
		PayoutID:    m.PayoutID,
		AdvisorID:   m.AdvisorID,
	}
}

// PayableModelFromDomain creates a persistence model from a domain Payable
func PayableModelFromDomain(p *ledger.Payable) *PayableModel {
	return &PayableModel{
		InstallmentModel: installmentFromDomain(&p.Installment),
		PayoutID:         p.PayoutID,
		AdvisorID:        p.AdvisorID,
		PayableAmount:    p.DueAmount,
		PaidAmount:       p.SettledAmount,
		PaidDate:         p.SettledOn,
	}
}

// UpdateColumns lists the columns a payable revision may change
func (m *PayableModel) UpdateColumns() map[string]interface{} {
	return map[string]interface{}{
		"paid_amount":    m.PaidAmount,
		"paid_date":      m.PaidDate,
		"balance_amount": m.BalanceAmount,
		"ref_no":         m.RefNo,
		"remarks":        m.Remarks,
		"updated_by":     m.UpdatedBy,
		"updated_at":     m.UpdatedAt,
	}
}

// InvoiceMasterModel is the persistence model for the InvoiceMaster aggregate root.
type InvoiceMasterModel struct {
	AggregateModel
	LeadID                    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceReceivableAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InvoiceGSTAmount          decimal.Decimal `gorm:"column:invoice_gst_amount;type:decimal(18,4);not null;default:0"`
	RemainingReceivableAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingGSTAmount        decimal.Decimal `gorm:"column:remaining_gst_amount;type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceMasterModel) TableName() string {
	return "invoice_masters"
}

// ToDomain converts the persistence model to a domain InvoiceMaster
func (m *InvoiceMasterModel) ToDomain() *ledger.InvoiceMaster {
	return &ledger.InvoiceMaster{
		BaseAggregateRoot:         m.ToDomainAggregateRoot(),
		LeadID:                    m.LeadID,
		InvoiceReceivableAmount:   m.InvoiceReceivableAmount,
		InvoiceGSTAmount:          m.InvoiceGSTAmount,
		RemainingReceivableAmount: m.RemainingReceivableAmount,
		RemainingGSTAmount:        m.RemainingGSTAmount,
	}
}

// InvoiceMasterModelFromDomain creates a persistence model from a domain InvoiceMaster
func InvoiceMasterModelFromDomain(im *ledger.InvoiceMaster) *InvoiceMasterModel {
	m := &InvoiceMasterModel{
		LeadID:                    im.LeadID,
		InvoiceReceivableAmount:   im.InvoiceReceivableAmount,
		InvoiceGSTAmount:          im.InvoiceGSTAmount,
		RemainingReceivableAmount: im.RemainingReceivableAmount,
		RemainingGSTAmount:        im.RemainingGSTAmount,
	}
	m.FromDomainAggregateRoot(im.BaseAggregateRoot)
	return m
}

// UpdateColumns lists every mutable column of the master
func (m *InvoiceMasterModel) UpdateColumns() map[string]interface{} {
	return map[string]interface{}{
		"invoice_receivable_amount":   m.InvoiceReceivableAmount,
		"invoice_gst_amount":          m.InvoiceGSTAmount,
		"remaining_receivable_amount": m.RemainingReceivableAmount,
		"remaining_gst_amount":        m.RemainingGSTAmount,
		"version":                     m.Version,
		"updated_at":                  m.UpdatedAt,
	}
}

// InvoiceModel is the persistence model of one invoice
type InvoiceModel struct {
	BaseModel
	AuditModel
	InvoiceMasterID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	LeadID              uuid.UUID           `gorm:"type:uuid;not null;index"`
	DisbursalAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	DisbursalDate       *time.Time          `gorm:"type:date"`
	PayoutPercent       decimal.Decimal     `gorm:"type:decimal(7,4);not null"`
	PayoutAmount        decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	TDSPercent          decimal.Decimal     `gorm:"column:tds_percent;type:decimal(7,4);not null"`
	TDSAmount           decimal.Decimal     `gorm:"column:tds_amount;type:decimal(18,4);not null"`
	GSTPercent          decimal.Decimal     `gorm:"column:gst_percent;type:decimal(7,4);not null"`
	GSTAmount           decimal.Decimal     `gorm:"column:gst_amount;type:decimal(18,4);not null"`
	NetReceivableAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	InvoiceNo           string              `gorm:"type:varchar(100);not null"`
	InvoiceDate         time.Time           `gorm:"type:date;not null"`
	ProcessedByID       *uuid.UUID          `gorm:"type:uuid"`
	FinalInvoice        bool                `gorm:"not null;default:false;index"`
	Remarks             string              `gorm:"type:text"`
	Banker              BankerSnapshotModel `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *ledger.Invoice {
	return &ledger.Invoice{
		BaseEntity:          m.BaseModel.ToDomain(),
		Audit:               m.AuditModel.ToDomain(),
		InvoiceMasterID:     m.InvoiceMasterID,
		LeadID:              m.LeadID,
		DisbursalAmount:     m.DisbursalAmount,
		DisbursalDate:       m.DisbursalDate,
		PayoutPercent:       m.PayoutPercent,
		PayoutAmount:        m.PayoutAmount,
		TDSPercent:          m.TDSPercent,
		TDSAmount:           m.TDSAmount,
		GSTPercent:          m.GSTPercent,
		GSTAmount:           m.GSTAmount,
		NetReceivableAmount: m.NetReceivableAmount,
		InvoiceNo:           m.InvoiceNo,
		InvoiceDate:         m.InvoiceDate,
		ProcessedByID:       m.ProcessedByID,
		FinalInvoice:        m.FinalInvoice,
		Remarks:             m.Remarks,
		Banker:              m.Banker.toDomain(),
	}
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *ledger.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		AuditModel:          AuditModelFromDomain(inv.Audit),
		InvoiceMasterID:     inv.InvoiceMasterID,
		LeadID:              inv.LeadID,
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
		Banker:              bankerFromDomain(inv.Banker),
	}
	m.FromDomainBaseEntity(inv.BaseEntity)
	return m
}

// UpdateColumns lists every mutable column of an invoice
func (m *InvoiceModel) UpdateColumns() map[string]interface{} {
	return map[string]interface{}{
		"disbursal_amount":      m.DisbursalAmount,
		"disbursal_date":        m.DisbursalDate,
		"payout_percent":        m.PayoutPercent,
		"payout_amount":         m.PayoutAmount,
		"tds_percent":           m.TDSPercent,
		"tds_amount":            m.TDSAmount,
		"gst_percent":           m.GSTPercent,
		"gst_amount":            m.GSTAmount,
		"net_receivable_amount": m.NetReceivableAmount,
		"invoice_no":            m.InvoiceNo,
		"invoice_date":          m.InvoiceDate,
		"processed_by_id":       m.ProcessedByID,
		"final_invoice":         m.FinalInvoice,
		"remarks":               m.Remarks,
		"banker_id":             m.Banker.BankerID,
		"bank_name":             m.Banker.BankName,
		"banker_name":           m.Banker.BankerName,
		"banker_email":          m.Banker.BankerEmail,
		"banker_designation":    m.Banker.BankerDesignation,
		"banker_mobile":         m.Banker.BankerMobile,
		"state_name":            m.Banker.StateName,
		"city_name":             m.Banker.CityName,
		"updated_by":            m.UpdatedBy,
		"updated_at":            m.UpdatedAt,
	}
}

// ReceivableModel is the persistence model of money received from a bank
type ReceivableModel struct {
	InstallmentModel
	InvoiceMasterID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceivableAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedDate     time.Time       `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable
func (m *ReceivableModel) ToDomain() *ledger.Receivable {
	return &ledger.Receivable{
		Installment:     m.toDomain(m.ReceivableAmount, m.ReceivedAmount, m.ReceivedDate),
		InvoiceMasterID: m.InvoiceMasterID,
	}
}

// ReceivableModelFromDomain creates a persistence model from a domain Receivable
func ReceivableModelFromDomain(r *ledger.Receivable) *ReceivableModel {
	return &ReceivableModel{
		InstallmentModel: installmentFromDomain(&r.Installment),
		InvoiceMasterID:  r.InvoiceMasterID,
		ReceivableAmount: r.DueAmount,
		ReceivedAmount:   r.SettledAmount,
		ReceivedDate:     r.SettledOn,
	}
}

// UpdateColumns lists the columns a receivable revision may change
func (m *ReceivableModel) UpdateColumns() map[string]interface{} {
	return map[string]interface{}{
		"received_amount": m.ReceivedAmount,
		"received_date":   m.ReceivedDate,
		"balance_amount":  m.BalanceAmount,
		"ref_no":          m.RefNo,
		"remarks":         m.Remarks,
		"updated_by":      m.UpdatedBy,
		"updated_at":      m.UpdatedAt,
	}
}

// LedgerModels lists every model the ledger migrates in tests
func LedgerModels() []interface{} {
	return []interface{}{
		&LeadModel{},
		&LeadHistoryModel{},
		&AdvisorModel{},
		&AdvisorPayoutModel{},
		&PayableModel{},
		&InvoiceMasterModel{},
		&InvoiceModel{},
		&ReceivableModel{},
	}
}
