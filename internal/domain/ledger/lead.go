package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FeedbackLoanDisbursed is the pipeline feedback that makes a lead billable.
const FeedbackLoanDisbursed = "Loan Disbursed"

// ProductType is the kind of product a lead applied for
type ProductType string

const (
	ProductInstantLoan         ProductType = "Instant Loan"
	ProductPersonalLoan        ProductType = "Personal Loan"
	ProductBusinessLoan        ProductType = "Business Loan"
	ProductHomeLoan            ProductType = "Home Loan"
	ProductLoanAgainstProperty ProductType = "Loan Against Property"
	ProductCarLoan             ProductType = "Car Loan"
	ProductUsedCarLoan         ProductType = "Used Car Loan"
	ProductInsurance           ProductType = "Insurance"
	ProductPrivateFunding      ProductType = "Private Funding"
	ProductServices            ProductType = "Services"
	ProductCreditCard          ProductType = "Credit Card"
)

// IsValid checks if the product type is known
func (p ProductType) IsValid() bool {
	switch p {
	case ProductInstantLoan, ProductPersonalLoan, ProductBusinessLoan, ProductHomeLoan,
		ProductLoanAgainstProperty, ProductCarLoan, ProductUsedCarLoan, ProductInsurance,
		ProductPrivateFunding, ProductServices, ProductCreditCard:
		return true
	}
	return false
}

// FinalFlag names one of the two derived completion flags on a lead
type FinalFlag string

const (
	FinalFlagPayout  FinalFlag = "finalPayout"
	FinalFlagInvoice FinalFlag = "finalInvoice"
)

// LeadHistoryEntry is one feedback step in a lead's pipeline
type LeadHistoryEntry struct {
	Feedback    string
	CommentBy   *uuid.UUID
	CommentDate time.Time
	Remarks     string
}

// Lead is the applicant record that owns payouts and invoices. The ledger
// only reads it, apart from the two final flags it keeps in sync.
type Lead struct {
	shared.BaseEntity
	LeadNo                string
	ClientName            string
	MobileNo              string
	ProductType           ProductType
	AdvisorID             *uuid.UUID
	LoanRequirementAmount decimal.Decimal
	FinalPayout           bool
	FinalInvoice          bool
	History               []LeadHistoryEntry
}

// LastFeedback returns the latest pipeline feedback, or "" for a new lead.
func (l *Lead) LastFeedback() string {
	if len(l.History) == 0 {
		return ""
	}
	return l.History[len(l.History)-1].Feedback
}

// IsDisbursed reports whether the latest feedback marks the loan disbursed.
func (l *Lead) IsDisbursed() bool {
	return l.LastFeedback() == FeedbackLoanDisbursed
}

// DisplayName renders "<leadNo> - <clientName>".
func (l *Lead) DisplayName() string {
	return fmt.Sprintf("%s - %s", l.LeadNo, l.ClientName)
}

// Final returns the current value of flag.
func (l *Lead) Final(flag FinalFlag) bool {
	if flag == FinalFlagInvoice {
		return l.FinalInvoice
	}
	return l.FinalPayout
}

// Advisor is the directory entry of a referral advisor
type Advisor struct {
	ID          uuid.UUID
	Name        string
	AdvisorCode string
}

// DisplayName renders "<name> - <advisorCode>".
func (a *Advisor) DisplayName() string {
	if a.AdvisorCode == "" {
		return a.Name
	}
	return fmt.Sprintf("%s - %s", a.Name, a.AdvisorCode)
}
