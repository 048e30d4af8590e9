package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerFilter defines the filters shared by ledger listings. Text filters
// match case-insensitively on substrings; the date range applies to the
// record's creation time.
type LedgerFilter struct {
	shared.Filter
	ProductType string
	AdvisorName string
	ClientName  string
	FromDate    *time.Time
	ToDate      *time.Time
	AdvisorID   *uuid.UUID
	LeadID      *uuid.UUID
}

// StatementFilter selects the payables of an advisor's own statement.
// Settlement status is derived per row, so status filtering and paging
// happen after BuildStatement.
type StatementFilter struct {
	AdvisorID   uuid.UUID
	ProductType string
	FromDate    *time.Time
	ToDate      *time.Time
}

// LeadSummary is the slice of a lead shown next to ledger rows
type LeadSummary struct {
	ID                    uuid.UUID
	LeadNo                string
	ClientName            string
	ProductType           ProductType
	LoanRequirementAmount decimal.Decimal
}

// DisplayName renders "<leadNo> - <clientName>".
func (l LeadSummary) DisplayName() string {
	lead := Lead{LeadNo: l.LeadNo, ClientName: l.ClientName}
	return lead.DisplayName()
}

// PayoutView is a payout joined with its lead and advisor
type PayoutView struct {
	Payout  AdvisorPayout
	Lead    LeadSummary
	Advisor Advisor
}

// PayableView is a payable joined with its lead and advisor
type PayableView struct {
	Payable Payable
	Lead    LeadSummary
	Advisor Advisor
}

// InvoiceView is an invoice joined with its lead
type InvoiceView struct {
	Invoice Invoice
	Lead    LeadSummary
}

// ReceivableView is a receivable joined with its lead
type ReceivableView struct {
	Receivable Receivable
	Lead       LeadSummary
}

// LeadOption is a lead offered in a picker
type LeadOption struct {
	ID          uuid.UUID
	DisplayName string
}

// PayoutAdvisorOption is an advisor holding a payout on a lead
type PayoutAdvisorOption struct {
	AdvisorPayoutID uuid.UUID
	AdvisorID       uuid.UUID
	Name            string
}

// StatementStats sums an advisor statement
type StatementStats struct {
	TotalDisbursal decimal.Decimal
	TotalPayout    decimal.Decimal
	PaidAmount     decimal.Decimal
	PendingAmount  decimal.Decimal
}

// StatementLine is one payable in an advisor statement
type StatementLine struct {
	PayableView
	Status SettlementStatus
}

// BuildStatement derives each line's status, drops lines not matching the
// wanted status (empty keeps all) and sums the rest.
func BuildStatement(rows []PayableView, wanted SettlementStatus) ([]StatementLine, StatementStats) {
	stats := StatementStats{
		TotalDisbursal: decimal.Zero,
		TotalPayout:    decimal.Zero,
		PaidAmount:     decimal.Zero,
		PendingAmount:  decimal.Zero,
	}
	lines := make([]StatementLine, 0, len(rows))
	for _, row := range rows {
		status := row.Payable.Status()
		if wanted != "" && status != wanted {
			continue
		}
		lines = append(lines, StatementLine{PayableView: row, Status: status})

		due := row.Payable.DueAmount
		paid := row.Payable.SettledAmount
		stats.TotalDisbursal = stats.TotalDisbursal.Add(row.Lead.LoanRequirementAmount)
		stats.TotalPayout = stats.TotalPayout.Add(due)
		stats.PaidAmount = stats.PaidAmount.Add(paid)
		stats.PendingAmount = stats.PendingAmount.Add(due.Sub(paid))
	}
	return lines, stats
}
