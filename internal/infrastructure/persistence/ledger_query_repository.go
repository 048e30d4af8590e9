package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerQueryRepository serves the joined ledger read paths. Rows are
// filtered through joins on leads and advisors, then the lead summaries and
// advisors of the page are loaded in one query each.
type GormLedgerQueryRepository struct {
	db *gorm.DB
}

// NewGormLedgerQueryRepository creates a new GormLedgerQueryRepository
func NewGormLedgerQueryRepository(db *gorm.DB) *GormLedgerQueryRepository {
	return &GormLedgerQueryRepository{db: db}
}

// ledgerFilterScope applies the shared ledger filters to a query on table.
// withAdvisor says whether table carries an advisor_id to filter by name.
func ledgerFilterScope(table string, filter ledger.LedgerFilter, withAdvisor bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN leads ON leads.id = " + table + ".lead_id")
		if filter.ProductType != "" {
			db = db.Where(`LOWER(leads.product_type) LIKE ? ESCAPE '\'`, likePattern(filter.ProductType))
		}
		if filter.ClientName != "" {
			db = db.Where(`LOWER(leads.client_name) LIKE ? ESCAPE '\'`, likePattern(filter.ClientName))
		}
		if withAdvisor {
			if filter.AdvisorName != "" {
				db = db.Joins("JOIN advisors ON advisors.id = "+table+".advisor_id").
					Where(`LOWER(advisors.name) LIKE ? ESCAPE '\'`, likePattern(filter.AdvisorName))
			}
			if filter.AdvisorID != nil {
				db = db.Where(table+".advisor_id = ?", *filter.AdvisorID)
			}
		}
		if filter.LeadID != nil {
			db = db.Where(table+".lead_id = ?", *filter.LeadID)
		}
		if filter.FromDate != nil {
			db = db.Where(table+".created_at >= ?", *filter.FromDate)
		}
		if filter.ToDate != nil {
			db = db.Where(table+".created_at <= ?", *filter.ToDate)
		}
		return db
	}
}

// likePattern builds a case-insensitive substring pattern.
func likePattern(s string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// pageScope orders and pages a filtered query.
func pageScope(table string, f shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		f = f.Normalize()
		return db.Order(orderClause(table, f.OrderBy, f.OrderDir)).
			Offset(f.Offset()).
			Limit(f.PageSize)
	}
}

// list counts the filtered rows, then loads the requested page into dest.
func (r *GormLedgerQueryRepository) list(ctx context.Context, model interface{}, table string, filter ledger.LedgerFilter, withAdvisor bool, dest interface{}) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Scopes(ledgerFilterScope(table, filter, withAdvisor)).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).
		Model(model).
		Select(table+".*").
		Scopes(ledgerFilterScope(table, filter, withAdvisor), pageScope(table, filter.Filter)).
		Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormLedgerQueryRepository) leadSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ledger.LeadSummary, error) {
	out := make(map[uuid.UUID]ledger.LeadSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var leadModels []models.LeadModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&leadModels).Error; err != nil {
		return nil, err
	}
	for i := range leadModels {
		out[leadModels[i].ID] = leadModels[i].Summary()
	}
	return out, nil
}

func (r *GormLedgerQueryRepository) advisors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ledger.Advisor, error) {
	out := make(map[uuid.UUID]ledger.Advisor, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var advisorModels []models.AdvisorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&advisorModels).Error; err != nil {
		return nil, err
	}
	for i := range advisorModels {
		out[advisorModels[i].ID] = *advisorModels[i].ToDomain()
	}
	return out, nil
}

// uniqueIDs collects the distinct ids picked from n rows.
func uniqueIDs(n int, pick func(i int) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, n)
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		id := pick(i)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (r *GormLedgerQueryRepository) payoutViews(ctx context.Context, rows []models.AdvisorPayoutModel) ([]ledger.PayoutView, error) {
	leads, err := r.leadSummaries(ctx, uniqueIDs(len(rows), func(i int) uuid.UUID { return rows[i].LeadID }))
	if err != nil {
		return nil, err
	}
	advisors, err := r.advisors(ctx, uniqueIDs(len(rows), func(i int) uuid.UUID { return rows[i].AdvisorID }))
	if err != nil {
		return nil, err
	}
	views := make([]ledger.PayoutView, len(rows))
	for i := range rows {
		views[i] = ledger.PayoutView{
			Payout:  *rows[i].ToDomain(),
			Lead:    leads[rows[i].LeadID],
			Advisor: advisors[rows[i].AdvisorID],
		}
	}
	return views, nil
}

func (r *GormLedgerQueryRepository) payableViews(ctx context.Context, rows []models.PayableModel) ([]ledger.PayableView, error) {
	leads, err := r.leadSummaries(ctx, uniqueIDs(len(rows), func(i int) uuid.UUID { return rows[i].LeadID }))
	if err != nil {
		return nil, err
	}
	advisors, err := r.advisors(ctx, uniqueIDs(len(rows), func(i int) uuid.UUID { return rows[i].AdvisorID }))
	if err != nil {
		return nil, err
	}
	views := make([]ledger.PayableView, len(rows))
	for i := range rows {
		views[i] = ledger.PayableView{
			Payable: *rows[i].ToDomain(),
			Lead:    leads[rows[i].LeadID],
			Advisor: advisors[rows[i].AdvisorID],
		}
	}
	return views, nil
}

func (r *GormLedgerQueryRepository) invoiceViews(ctx context.Context, rows []models.InvoiceModel) ([]ledger.InvoiceView, error) {
	leads, err := r.leadSummaries(ctx, uniqueIDs(len(rows), func(i int) uuid.UUID { return rows[i].LeadID }))
	if err != nil {
		return nil, err
	}
	views := make([]ledger.InvoiceView, len(rows))
	for i := range rows {
		views[i] = ledger.InvoiceView{Invoice: *rows[i].ToDomain(), Lead: leads[rows[i].LeadID]}
	}
	return views, nil
}

func (r *GormLedgerQueryRepository) receivableViews(ctx context.Context, rows []models.ReceivableModel) ([]ledger.ReceivableView, error) {
	leads, err := r.leadSummaries(ctx, uniqueIDs(len(rows), func(i int) uuid.UUID { return rows[i].LeadID }))
	if err != nil {
		return nil, err
	}
	views := make([]ledger.ReceivableView, len(rows))
	for i := range rows {
		views[i] = ledger.ReceivableView{Receivable: *rows[i].ToDomain(), Lead: leads[rows[i].LeadID]}
	}
	return views, nil
}

// ListPayouts lists payouts joined with lead and advisor
func (r *GormLedgerQueryRepository) ListPayouts(ctx context.Context, filter ledger.LedgerFilter) ([]ledger.PayoutView, int64, error) {
	var rows []models.AdvisorPayoutModel
	total, err := r.list(ctx, &models.AdvisorPayoutModel{}, "advisor_payouts", filter, true, &rows)
	if err != nil {
		return nil, 0, err
	}
	views, err := r.payoutViews(ctx, rows)
	return views, total, err
}

// GetPayout loads one payout view
func (r *GormLedgerQueryRepository) GetPayout(ctx context.Context, id uuid.UUID) (*ledger.PayoutView, error) {
	var model models.AdvisorPayoutModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "advisor payout")
	}
	views, err := r.payoutViews(ctx, []models.AdvisorPayoutModel{model})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// LeadsWithOpenPayouts lists leads holding a payout with an unpaid balance
func (r *GormLedgerQueryRepository) LeadsWithOpenPayouts(ctx context.Context) ([]ledger.LeadOption, error) {
	open := r.db.Model(&models.AdvisorPayoutModel{}).
		Select("lead_id").
		Where("remaining_payable_amount > 0 OR remaining_gst_amount > 0")
	return r.leadOptions(ctx, open)
}

// LeadsWithOpenInvoices lists leads whose master still has a balance
func (r *GormLedgerQueryRepository) LeadsWithOpenInvoices(ctx context.Context) ([]ledger.LeadOption, error) {
	open := r.db.Model(&models.InvoiceMasterModel{}).
		Select("lead_id").
		Where("remaining_receivable_amount > 0 OR remaining_gst_amount > 0")
	return r.leadOptions(ctx, open)
}

func (r *GormLedgerQueryRepository) leadOptions(ctx context.Context, leadIDs *gorm.DB) ([]ledger.LeadOption, error) {
	var leadModels []models.LeadModel
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", leadIDs).
		Order("created_at DESC").
		Find(&leadModels).Error; err != nil {
		return nil, err
	}
	options := make([]ledger.LeadOption, len(leadModels))
	for i := range leadModels {
		options[i] = ledger.LeadOption{ID: leadModels[i].ID, DisplayName: leadModels[i].Summary().DisplayName()}
	}
	return options, nil
}

// advisorOptionRow is one row of the advisors-for-lead join
type advisorOptionRow struct {
	PayoutID  uuid.UUID
	AdvisorID uuid.UUID
	Name      string
}

// AdvisorsForLead lists advisors holding a payout on the lead
func (r *GormLedgerQueryRepository) AdvisorsForLead(ctx context.Context, leadID uuid.UUID) ([]ledger.PayoutAdvisorOption, error) {
	var rows []advisorOptionRow
	if err := r.db.WithContext(ctx).
		Model(&models.AdvisorPayoutModel{}).
		Select("advisor_payouts.id AS payout_id, advisor_payouts.advisor_id AS advisor_id, advisors.name AS name").
		Joins("JOIN advisors ON advisors.id = advisor_payouts.advisor_id").
		Where("advisor_payouts.lead_id = ?", leadID).
		Order("advisors.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	options := make([]ledger.PayoutAdvisorOption, len(rows))
	for i, row := range rows {
		options[i] = ledger.PayoutAdvisorOption{AdvisorPayoutID: row.PayoutID, AdvisorID: row.AdvisorID, Name: row.Name}
	}
	return options, nil
}

// ListPayables lists payables joined with lead and advisor
func (r *GormLedgerQueryRepository) ListPayables(ctx context.Context, filter ledger.LedgerFilter) ([]ledger.PayableView, int64, error) {
	var rows []models.PayableModel
	total, err := r.list(ctx, &models.PayableModel{}, "payables", filter, true, &rows)
	if err != nil {
		return nil, 0, err
	}
	views, err := r.payableViews(ctx, rows)
	return views, total, err
}

// GetPayable loads one payable view
func (r *GormLedgerQueryRepository) GetPayable(ctx context.Context, id uuid.UUID) (*ledger.PayableView, error) {
	var model models.PayableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payable")
	}
	views, err := r.payableViews(ctx, []models.PayableModel{model})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// AdvisorPayables lists every payable of an advisor matching the filter, unpaged
func (r *GormLedgerQueryRepository) AdvisorPayables(ctx context.Context, filter ledger.StatementFilter) ([]ledger.PayableView, error) {
	scope := ledgerFilterScope("payables", ledger.LedgerFilter{
		ProductType: filter.ProductType,
		AdvisorID:   &filter.AdvisorID,
		FromDate:    filter.FromDate,
		ToDate:      filter.ToDate,
	}, true)
	var rows []models.PayableModel
	if err := r.db.WithContext(ctx).
		Model(&models.PayableModel{}).
		Select("payables.*").
		Scopes(scope).
		Order("payables.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.payableViews(ctx, rows)
}

// ListInvoices lists invoices joined with lead
func (r *GormLedgerQueryRepository) ListInvoices(ctx context.Context, filter ledger.LedgerFilter) ([]ledger.InvoiceView, int64, error) {
	var rows []models.InvoiceModel
	total, err := r.list(ctx, &models.InvoiceModel{}, "invoices", filter, false, &rows)
	if err != nil {
		return nil, 0, err
	}
	views, err := r.invoiceViews(ctx, rows)
	return views, total, err
}

// GetInvoice loads one invoice view
func (r *GormLedgerQueryRepository) GetInvoice(ctx context.Context, id uuid.UUID) (*ledger.InvoiceView, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "invoice")
	}
	views, err := r.invoiceViews(ctx, []models.InvoiceModel{model})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListReceivables lists receivables joined with lead
func (r *GormLedgerQueryRepository) ListReceivables(ctx context.Context, filter ledger.LedgerFilter) ([]ledger.ReceivableView, int64, error) {
	var rows []models.ReceivableModel
	total, err := r.list(ctx, &models.ReceivableModel{}, "receivables", filter, false, &rows)
	if err != nil {
		return nil, 0, err
	}
	views, err := r.receivableViews(ctx, rows)
	return views, total, err
}

// GetReceivable loads one receivable view
func (r *GormLedgerQueryRepository) GetReceivable(ctx context.Context, id uuid.UUID) (*ledger.ReceivableView, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "receivable")
	}
	views, err := r.receivableViews(ctx, []models.ReceivableModel{model})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// notFound maps gorm's missing-record error to a NOT_FOUND domain error.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource)
	}
	return err
}

var _ ledger.LedgerQueryRepository = (*GormLedgerQueryRepository)(nil)
