package handler

import (
	"context"

	"github.com/google/uuid"
	appledger "github.com/leadcrm/backend/internal/application/ledger"
	"github.com/stretchr/testify/mock"
)

type MockPayoutService struct {
	mock.Mock
}

func (m *MockPayoutService) Create(ctx context.Context, actorID uuid.UUID, in appledger.CreatePayoutInput) (*appledger.PayoutResponse, error) {
	args := m.Called(ctx, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.PayoutResponse), args.Error(1)
}

func (m *MockPayoutService) Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdatePayoutInput) (*appledger.PayoutResponse, error) {
	args := m.Called(ctx, actorID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.PayoutResponse), args.Error(1)
}

func (m *MockPayoutService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPayoutService) Get(ctx context.Context, id uuid.UUID) (*appledger.PayoutResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.PayoutResponse), args.Error(1)
}

func (m *MockPayoutService) List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.PayoutResponse, int64, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]appledger.PayoutResponse)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutService) DisbursedUnpaidLeads(ctx context.Context) ([]appledger.LeadOptionResponse, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]appledger.LeadOptionResponse)
	return rows, args.Error(1)
}

type MockPayableService struct {
	mock.Mock
}

func (m *MockPayableService) Create(ctx context.Context, actorID uuid.UUID, in appledger.CreatePayableInput) (*appledger.PayableResponse, error) {
	args := m.Called(ctx, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.PayableResponse), args.Error(1)
}

func (m *MockPayableService) Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdatePayableInput) (*appledger.PayableResponse, error) {
	args := m.Called(ctx, actorID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.PayableResponse), args.Error(1)
}

func (m *MockPayableService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPayableService) Get(ctx context.Context, id uuid.UUID) (*appledger.PayableResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.PayableResponse), args.Error(1)
}

func (m *MockPayableService) List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.PayableResponse, int64, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]appledger.PayableResponse)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *MockPayableService) LeadsWithOpenPayouts(ctx context.Context) ([]appledger.LeadOptionResponse, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]appledger.LeadOptionResponse)
	return rows, args.Error(1)
}

func (m *MockPayableService) AdvisorsForLead(ctx context.Context, leadID uuid.UUID) ([]appledger.AdvisorOptionResponse, error) {
	args := m.Called(ctx, leadID)
	rows, _ := args.Get(0).([]appledger.AdvisorOptionResponse)
	return rows, args.Error(1)
}

func (m *MockPayableService) AdvisorStatement(ctx context.Context, advisorID uuid.UUID, filter appledger.StatementListFilter) (*appledger.StatementResponse, error) {
	args := m.Called(ctx, advisorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.StatementResponse), args.Error(1)
}

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Create(ctx context.Context, actorID uuid.UUID, in appledger.CreateInvoiceInput) (*appledger.InvoiceResponse, error) {
	args := m.Called(ctx, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.InvoiceResponse), args.Error(1)
}

func (m *MockInvoiceService) Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdateInvoiceInput) (*appledger.InvoiceResponse, error) {
	args := m.Called(ctx, actorID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.InvoiceResponse), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInvoiceService) Get(ctx context.Context, id uuid.UUID) (*appledger.InvoiceResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.InvoiceResponse), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.InvoiceResponse, int64, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]appledger.InvoiceResponse)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceService) DisbursedLeadsWithoutInvoice(ctx context.Context) ([]appledger.LeadOptionResponse, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]appledger.LeadOptionResponse)
	return rows, args.Error(1)
}

type MockReceivableService struct {
	mock.Mock
}

func (m *MockReceivableService) Create(ctx context.Context, actorID uuid.UUID, in appledger.CreateReceivableInput) (*appledger.ReceivableResponse, error) {
	args := m.Called(ctx, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.ReceivableResponse), args.Error(1)
}

func (m *MockReceivableService) Update(ctx context.Context, actorID, id uuid.UUID, in appledger.UpdateReceivableInput) (*appledger.ReceivableResponse, error) {
	args := m.Called(ctx, actorID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.ReceivableResponse), args.Error(1)
}

func (m *MockReceivableService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReceivableService) Get(ctx context.Context, id uuid.UUID) (*appledger.ReceivableResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.ReceivableResponse), args.Error(1)
}

func (m *MockReceivableService) List(ctx context.Context, filter appledger.LedgerListFilter) ([]appledger.ReceivableResponse, int64, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]appledger.ReceivableResponse)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *MockReceivableService) LeadsWithOpenInvoices(ctx context.Context) ([]appledger.LeadOptionResponse, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]appledger.LeadOptionResponse)
	return rows, args.Error(1)
}

func (m *MockReceivableService) InvoiceMasterByLead(ctx context.Context, leadID uuid.UUID) (*appledger.InvoiceMasterResponse, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.InvoiceMasterResponse), args.Error(1)
}

var (
	_ PayoutService     = (*MockPayoutService)(nil)
	_ PayableService    = (*MockPayableService)(nil)
	_ InvoiceService    = (*MockInvoiceService)(nil)
	_ ReceivableService = (*MockReceivableService)(nil)
)
