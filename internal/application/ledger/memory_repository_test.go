package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// In-memory ledger store
// =============================================================================

// memoryStore keeps copies of every record so that a mutation only becomes
// visible after it was saved, like a database row.
type memoryStore struct {
	mu          sync.Mutex
	leads       map[uuid.UUID]ledger.Lead
	advisors    map[uuid.UUID]ledger.Advisor
	payouts     map[uuid.UUID]ledger.AdvisorPayout
	payables    map[uuid.UUID]ledger.Payable
	masters     map[uuid.UUID]ledger.InvoiceMaster
	invoices    map[uuid.UUID]ledger.Invoice
	receivables map[uuid.UUID]ledger.Receivable
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		leads:       map[uuid.UUID]ledger.Lead{},
		advisors:    map[uuid.UUID]ledger.Advisor{},
		payouts:     map[uuid.UUID]ledger.AdvisorPayout{},
		payables:    map[uuid.UUID]ledger.Payable{},
		masters:     map[uuid.UUID]ledger.InvoiceMaster{},
		invoices:    map[uuid.UUID]ledger.Invoice{},
		receivables: map[uuid.UUID]ledger.Receivable{},
	}
}

func (s *memoryStore) scope() *NoOpTransactionScope {
	return NewNoOpTransactionScope(
		&memLeads{s}, &memAdvisors{s}, &memPayouts{s}, &memPayables{s},
		&memMasters{s}, &memInvoices{s}, &memReceivables{s},
	)
}

func (s *memoryStore) addLead(leadNo, client string, feedback ...string) ledger.Lead {
	lead := ledger.Lead{
		BaseEntity:            shared.NewBaseEntity(),
		LeadNo:                leadNo,
		ClientName:            client,
		ProductType:           ledger.ProductHomeLoan,
		LoanRequirementAmount: decimal.NewFromInt(100000),
	}
	for _, f := range feedback {
		lead.History = append(lead.History, ledger.LeadHistoryEntry{Feedback: f})
	}
	s.leads[lead.ID] = lead
	return lead
}

func (s *memoryStore) addAdvisor(name, code string) ledger.Advisor {
	a := ledger.Advisor{ID: uuid.New(), Name: name, AdvisorCode: code}
	s.advisors[a.ID] = a
	return a
}

func (s *memoryStore) payout(id uuid.UUID) ledger.AdvisorPayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payouts[id]
}

func (s *memoryStore) master(leadID uuid.UUID) (ledger.InvoiceMaster, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.masters {
		if m.LeadID == leadID {
			return m, true
		}
	}
	return ledger.InvoiceMaster{}, false
}

func (s *memoryStore) lead(id uuid.UUID) ledger.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leads[id]
}

func (s *memoryStore) summary(leadID uuid.UUID) ledger.LeadSummary {
	l := s.leads[leadID]
	return ledger.LeadSummary{
		ID:                    l.ID,
		LeadNo:                l.LeadNo,
		ClientName:            l.ClientName,
		ProductType:           l.ProductType,
		LoanRequirementAmount: l.LoanRequirementAmount,
	}
}

type memAdvisors struct{ s *memoryStore }

func (r *memAdvisors) FindByID(_ context.Context, id uuid.UUID) (*ledger.Advisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.advisors[id]
	if !ok {
		return nil, shared.NewNotFoundError("advisor")
	}
	return &a, nil
}

type memLeads struct{ s *memoryStore }

func (r *memLeads) FindByID(_ context.Context, id uuid.UUID) (*ledger.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leads[id]
	if !ok {
		return nil, shared.NewNotFoundError("lead")
	}
	return &l, nil
}

func (r *memLeads) FindNotFinal(_ context.Context, flag ledger.FinalFlag) ([]ledger.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []ledger.Lead{}
	for _, l := range r.s.leads {
		if !l.Final(flag) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeadNo < out[j].LeadNo })
	return out, nil
}

func (r *memLeads) SetFinal(_ context.Context, id uuid.UUID, flag ledger.FinalFlag, value bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l := r.s.leads[id]
	if flag == ledger.FinalFlagInvoice {
		l.FinalInvoice = value
	} else {
		l.FinalPayout = value
	}
	r.s.leads[id] = l
	return nil
}

type memPayouts struct{ s *memoryStore }

func (r *memPayouts) FindByID(_ context.Context, id uuid.UUID) (*ledger.AdvisorPayout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payouts[id]
	if !ok {
		return nil, shared.NewNotFoundError("advisor payout")
	}
	return &p, nil
}

func (r *memPayouts) FindByLeadAndAdvisor(_ context.Context, leadID, advisorID uuid.UUID) (*ledger.AdvisorPayout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payouts {
		if p.LeadID == leadID && p.AdvisorID == advisorID {
			return &p, nil
		}
	}
	return nil, shared.NewNotFoundError("advisor payout")
}

func (r *memPayouts) ExistsFinalForLead(_ context.Context, leadID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payouts {
		if p.LeadID == leadID && p.FinalPayout {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPayouts) Create(_ context.Context, p *ledger.AdvisorPayout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *p
	stored.ClearDomainEvents()
	r.s.payouts[p.ID] = stored
	return nil
}

func (r *memPayouts) SaveWithLock(_ context.Context, p *ledger.AdvisorPayout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.payouts[p.ID]
	if !ok || current.Version != p.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	stored := *p
	stored.ClearDomainEvents()
	r.s.payouts[p.ID] = stored
	return nil
}

func (r *memPayouts) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.payouts, id)
	return nil
}

type memPayables struct{ s *memoryStore }

func (r *memPayables) FindByID(_ context.Context, id uuid.UUID) (*ledger.Payable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payables[id]
	if !ok {
		return nil, shared.NewNotFoundError("payable")
	}
	return &p, nil
}

func (r *memPayables) SumPaidByBucket(_ context.Context, payoutID uuid.UUID) (ledger.PaidTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := ledger.PaidTotals{Principal: decimal.Zero, GST: decimal.Zero}
	for _, p := range r.s.payables {
		if p.PayoutID == payoutID {
			totals = totals.Add(p.PaymentAgainst, p.SettledAmount)
		}
	}
	return totals, nil
}

func (r *memPayables) Create(_ context.Context, p *ledger.Payable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payables[p.ID] = *p
	return nil
}

func (r *memPayables) Save(ctx context.Context, p *ledger.Payable) error {
	return r.Create(ctx, p)
}

func (r *memPayables) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.payables, id)
	return nil
}

func (r *memPayables) DeleteByPayout(_ context.Context, payoutID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.payables {
		if p.PayoutID == payoutID {
			delete(r.s.payables, id)
		}
	}
	return nil
}

type memMasters struct{ s *memoryStore }

func (r *memMasters) FindByID(_ context.Context, id uuid.UUID) (*ledger.InvoiceMaster, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.masters[id]
	if !ok {
		return nil, shared.NewNotFoundError("invoice master")
	}
	return &m, nil
}

func (r *memMasters) FindByLead(_ context.Context, leadID uuid.UUID) (*ledger.InvoiceMaster, error) {
	m, ok := r.s.master(leadID)
	if !ok {
		return nil, shared.NewNotFoundError("invoice master")
	}
	return &m, nil
}

func (r *memMasters) Create(_ context.Context, m *ledger.InvoiceMaster) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *m
	stored.ClearDomainEvents()
	r.s.masters[m.ID] = stored
	return nil
}

func (r *memMasters) SaveWithLock(_ context.Context, m *ledger.InvoiceMaster) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.masters[m.ID]
	if !ok || current.Version != m.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	stored := *m
	stored.ClearDomainEvents()
	r.s.masters[m.ID] = stored
	return nil
}

func (r *memMasters) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.masters, id)
	return nil
}

type memInvoices struct{ s *memoryStore }

func (r *memInvoices) FindByID(_ context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, shared.NewNotFoundError("invoice")
	}
	return &inv, nil
}

func (r *memInvoices) ExistsFinalForLead(_ context.Context, leadID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.LeadID == leadID && inv.FinalInvoice {
			return true, nil
		}
	}
	return false, nil
}

func (r *memInvoices) Create(_ context.Context, inv *ledger.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r *memInvoices) Save(ctx context.Context, inv *ledger.Invoice) error {
	return r.Create(ctx, inv)
}

func (r *memInvoices) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	return nil
}

type memReceivables struct{ s *memoryStore }

func (r *memReceivables) FindByID(_ context.Context, id uuid.UUID) (*ledger.Receivable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc, ok := r.s.receivables[id]
	if !ok {
		return nil, shared.NewNotFoundError("receivable")
	}
	return &rc, nil
}

func (r *memReceivables) Create(_ context.Context, rc *ledger.Receivable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.receivables[rc.ID] = *rc
	return nil
}

func (r *memReceivables) Save(ctx context.Context, rc *ledger.Receivable) error {
	return r.Create(ctx, rc)
}

func (r *memReceivables) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.receivables, id)
	return nil
}

func (r *memReceivables) DeleteByMaster(_ context.Context, masterID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, rc := range r.s.receivables {
		if rc.InvoiceMasterID == masterID {
			delete(r.s.receivables, id)
		}
	}
	return nil
}

// memQueries joins the store the way the SQL read model does, without
// filtering or paging.
type memQueries struct{ s *memoryStore }

func (q *memQueries) ListPayouts(_ context.Context, _ ledger.LedgerFilter) ([]ledger.PayoutView, int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []ledger.PayoutView{}
	for _, p := range q.s.payouts {
		out = append(out, ledger.PayoutView{Payout: p, Lead: q.s.summary(p.LeadID), Advisor: q.s.advisors[p.AdvisorID]})
	}
	return out, int64(len(out)), nil
}

func (q *memQueries) GetPayout(_ context.Context, id uuid.UUID) (*ledger.PayoutView, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	p, ok := q.s.payouts[id]
	if !ok {
		return nil, shared.NewNotFoundError("advisor payout")
	}
	return &ledger.PayoutView{Payout: p, Lead: q.s.summary(p.LeadID), Advisor: q.s.advisors[p.AdvisorID]}, nil
}

func (q *memQueries) LeadsWithOpenPayouts(_ context.Context) ([]ledger.LeadOption, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	seen := map[uuid.UUID]bool{}
	out := []ledger.LeadOption{}
	for _, p := range q.s.payouts {
		if seen[p.LeadID] || (!p.RemainingPayableAmount.IsPositive() && !p.RemainingGSTAmount.IsPositive()) {
			continue
		}
		seen[p.LeadID] = true
		out = append(out, ledger.LeadOption{ID: p.LeadID, DisplayName: q.s.summary(p.LeadID).DisplayName()})
	}
	return out, nil
}

func (q *memQueries) AdvisorsForLead(_ context.Context, leadID uuid.UUID) ([]ledger.PayoutAdvisorOption, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []ledger.PayoutAdvisorOption{}
	for _, p := range q.s.payouts {
		if p.LeadID == leadID {
			out = append(out, ledger.PayoutAdvisorOption{AdvisorPayoutID: p.ID, AdvisorID: p.AdvisorID, Name: q.s.advisors[p.AdvisorID].Name})
		}
	}
	return out, nil
}

func (q *memQueries) ListPayables(_ context.Context, _ ledger.LedgerFilter) ([]ledger.PayableView, int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []ledger.PayableView{}
	for _, p := range q.s.payables {
		out = append(out, ledger.PayableView{Payable: p, Lead: q.s.summary(p.LeadID), Advisor: q.s.advisors[p.AdvisorID]})
	}
	return out, int64(len(out)), nil
}

func (q *memQueries) GetPayable(_ context.Context, id uuid.UUID) (*ledger.PayableView, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	p, ok := q.s.payables[id]
	if !ok {
		return nil, shared.NewNotFoundError("payable")
	}
	return &ledger.PayableView{Payable: p, Lead: q.s.summary(p.LeadID), Advisor: q.s.advisors[p.AdvisorID]}, nil
}

func (q *memQueries) AdvisorPayables(_ context.Context, filter ledger.StatementFilter) ([]ledger.PayableView, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []ledger.PayableView{}
	for _, p := range q.s.payables {
		if p.AdvisorID == filter.AdvisorID {
			out = append(out, ledger.PayableView{Payable: p, Lead: q.s.summary(p.LeadID), Advisor: q.s.advisors[p.AdvisorID]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Payable, out[j].Payable
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return out, nil
}

func (q *memQueries) ListInvoices(_ context.Context, _ ledger.LedgerFilter) ([]ledger.InvoiceView, int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []ledger.InvoiceView{}
	for _, inv := range q.s.invoices {
		out = append(out, ledger.InvoiceView{Invoice: inv, Lead: q.s.summary(inv.LeadID)})
	}
	return out, int64(len(out)), nil
}

func (q *memQueries) GetInvoice(_ context.Context, id uuid.UUID) (*ledger.InvoiceView, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	inv, ok := q.s.invoices[id]
	if !ok {
		return nil, shared.NewNotFoundError("invoice")
	}
	return &ledger.InvoiceView{Invoice: inv, Lead: q.s.summary(inv.LeadID)}, nil
}

func (q *memQueries) LeadsWithOpenInvoices(_ context.Context) ([]ledger.LeadOption, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []ledger.LeadOption{}
	for _, m := range q.s.masters {
		if m.HasOpenBalance() {
			out = append(out, ledger.LeadOption{ID: m.LeadID, DisplayName: q.s.summary(m.LeadID).DisplayName()})
		}
	}
	return out, nil
}

func (q *memQueries) ListReceivables(_ context.Context, _ ledger.LedgerFilter) ([]ledger.ReceivableView, int64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	out := []ledger.ReceivableView{}
	for _, r := range q.s.receivables {
		out = append(out, ledger.ReceivableView{Receivable: r, Lead: q.s.summary(r.LeadID)})
	}
	return out, int64(len(out)), nil
}

func (q *memQueries) GetReceivable(_ context.Context, id uuid.UUID) (*ledger.ReceivableView, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	r, ok := q.s.receivables[id]
	if !ok {
		return nil, shared.NewNotFoundError("receivable")
	}
	return &ledger.ReceivableView{Receivable: r, Lead: q.s.summary(r.LeadID)}, nil
}

var (
	_ ledger.LeadRepository          = (*memLeads)(nil)
	_ ledger.AdvisorPayoutRepository = (*memPayouts)(nil)
	_ ledger.PayableRepository       = (*memPayables)(nil)
	_ ledger.InvoiceMasterRepository = (*memMasters)(nil)
	_ ledger.InvoiceRepository       = (*memInvoices)(nil)
	_ ledger.ReceivableRepository    = (*memReceivables)(nil)
	_ ledger.LedgerQueryRepository   = (*memQueries)(nil)
)

// =============================================================================
// Mocks
// =============================================================================

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockAggregateLocker is a mock AggregateLocker
type MockAggregateLocker struct {
	mock.Mock
}

func (m *MockAggregateLocker) Acquire(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// failingScope fails every transaction with err
type failingScope struct{ err error }

func (s failingScope) Execute(context.Context, func(TransactionalRepositories) error) error {
	return s.err
}
