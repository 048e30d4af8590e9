// Package export renders ledger listings as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks written here
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "2006-01-02"

// Column describes one sheet column: its header and how to read the cell
// from a row.
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) any
}

// WriteSheet streams rows into a single-sheet workbook on w
func WriteSheet[T any](w io.Writer, sheet string, columns []Column[T], rows []T) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = excelize.Cell{StyleID: bold, Value: col.Header}
		if col.Width > 0 {
			if err := sw.SetColWidth(i+1, i+1, col.Width); err != nil {
				return fmt.Errorf("set column width: %w", err)
			}
		}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range rows {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = col.Value(row)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// amount renders a decimal as a number cell rounded to paise
func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// PayoutColumns is the advisor payout export layout
var PayoutColumns = []Column[appledger.PayoutResponse]{
	{Header: "Lead No", Width: 14, Value: func(p appledger.PayoutResponse) any { return p.Lead.LeadNo }},
	{Header: "Client Name", Width: 24, Value: func(p appledger.PayoutResponse) any { return p.Lead.ClientName }},
	{Header: "Product Type", Width: 16, Value: func(p appledger.PayoutResponse) any { return p.Lead.ProductType }},
	{Header: "Advisor", Width: 24, Value: func(p appledger.PayoutResponse) any { return p.AdvisorDisplayName }},
	{Header: "Bank", Width: 20, Value: func(p appledger.PayoutResponse) any { return p.Banker.BankName }},
	{Header: "Disbursal Amount", Width: 16, Value: func(p appledger.PayoutResponse) any { return amount(p.DisbursalAmount) }},
	{Header: "Disbursal Date", Width: 14, Value: func(p appledger.PayoutResponse) any { return date(p.DisbursalDate) }},
	{Header: "Payout %", Value: func(p appledger.PayoutResponse) any { return amount(p.PayoutPercent) }},
	{Header: "Payout Amount", Width: 14, Value: func(p appledger.PayoutResponse) any { return amount(p.PayoutAmount) }},
	{Header: "TDS %", Value: func(p appledger.PayoutResponse) any { return amount(p.TDSPercent) }},
	{Header: "TDS Amount", Width: 14, Value: func(p appledger.PayoutResponse) any { return amount(p.TDSAmount) }},
	{Header: "GST Applicable", Value: func(p appledger.PayoutResponse) any { return yesNo(p.GSTApplicable) }},
	{Header: "GST Amount", Width: 14, Value: func(p appledger.PayoutResponse) any { return amount(p.GSTAmount) }},
	{Header: "Net Payable", Width: 14, Value: func(p appledger.PayoutResponse) any { return amount(p.NetPayableAmount) }},
	{Header: "Remaining Payable", Width: 16, Value: func(p appledger.PayoutResponse) any { return amount(p.RemainingPayableAmount) }},
	{Header: "Remaining GST", Width: 14, Value: func(p appledger.PayoutResponse) any { return amount(p.RemainingGSTAmount) }},
	{Header: "Invoice No", Width: 14, Value: func(p appledger.PayoutResponse) any { return p.InvoiceNo }},
	{Header: "Final", Value: func(p appledger.PayoutResponse) any { return yesNo(p.FinalPayout) }},
	{Header: "Remarks", Width: 30, Value: func(p appledger.PayoutResponse) any { return p.Remarks }},
}

// InvoiceColumns is the invoice export layout
var InvoiceColumns = []Column[appledger.InvoiceResponse]{
	{Header: "Lead No", Width: 14, Value: func(i appledger.InvoiceResponse) any { return i.Lead.LeadNo }},
	{Header: "Client Name", Width: 24, Value: func(i appledger.InvoiceResponse) any { return i.Lead.ClientName }},
	{Header: "Product Type", Width: 16, Value: func(i appledger.InvoiceResponse) any { return i.Lead.ProductType }},
	{Header: "Bank", Width: 20, Value: func(i appledger.InvoiceResponse) any { return i.Banker.BankName }},
	{Header: "Invoice No", Width: 14, Value: func(i appledger.InvoiceResponse) any { return i.InvoiceNo }},
	{Header: "Invoice Date", Width: 14, Value: func(i appledger.InvoiceResponse) any { return date(&i.InvoiceDate) }},
	{Header: "Disbursal Amount", Width: 16, Value: func(i appledger.InvoiceResponse) any { return amount(i.DisbursalAmount) }},
	{Header: "Disbursal Date", Width: 14, Value: func(i appledger.InvoiceResponse) any { return date(i.DisbursalDate) }},
	{Header: "Payout %", Value: func(i appledger.InvoiceResponse) any { return amount(i.PayoutPercent) }},
	{Header: "Payout Amount", Width: 14, Value: func(i appledger.InvoiceResponse) any { return amount(i.PayoutAmount) }},
	{Header: "TDS Amount", Width: 14, Value: func(i appledger.InvoiceResponse) any { return amount(i.TDSAmount) }},
	{Header: "GST Amount", Width: 14, Value: func(i appledger.InvoiceResponse) any { return amount(i.GSTAmount) }},
	{Header: "Net Receivable", Width: 16, Value: func(i appledger.InvoiceResponse) any { return amount(i.NetReceivableAmount) }},
	{Header: "Final", Value: func(i appledger.InvoiceResponse) any { return yesNo(i.FinalInvoice) }},
	{Header: "Remarks", Width: 30, Value: func(i appledger.InvoiceResponse) any { return i.Remarks }},
}
