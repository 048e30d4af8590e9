package persistence

import "strings"

// sortableColumns whitelists the columns each ledger listing may be ordered
// by. Anything else falls back to created_at.
var sortableColumns = map[string]map[string]bool{
	"advisor_payouts": columnSet("disbursal_date", "disbursal_amount", "payout_amount", "net_payable_amount", "remaining_payable_amount"),
	"payables":        columnSet("paid_date", "paid_amount", "payable_amount", "balance_amount"),
	"invoices":        columnSet("invoice_date", "invoice_no", "disbursal_amount", "net_receivable_amount"),
	"receivables":     columnSet("received_date", "received_amount", "receivable_amount", "balance_amount"),
}

func columnSet(extra ...string) map[string]bool {
	set := map[string]bool{"created_at": true, "updated_at": true, "lead_id": true}
	for _, c := range extra {
		set[c] = true
	}
	return set
}

// orderClause renders a qualified ORDER BY for table. The id tiebreaker keeps
// paging stable when many rows share a sort value.
func orderClause(table, orderBy, orderDir string) string {
	column := strings.TrimSpace(orderBy)
	if !sortableColumns[table][column] {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		dir = "ASC"
	}
	return table + "." + column + " " + dir + ", " + table + ".id " + dir
}
