package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/ledger"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.LedgerModels()...))
	return db
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC)
}

// ledgerSeed is a small book: two leads, two advisors, one open and one
// settled payout, and an invoice master with a balance on the first lead.
type ledgerSeed struct {
	homeLead     models.LeadModel
	personalLead models.LeadModel
	ravi         models.AdvisorModel
	sunita       models.AdvisorModel
	openPayout   *ledger.AdvisorPayout
	paidPayout   *ledger.AdvisorPayout
	master       *ledger.InvoiceMaster
	invoice      *ledger.Invoice
}

func seedLedger(t *testing.T, db *gorm.DB) ledgerSeed {
	t.Helper()
	ctx := context.Background()

	var s ledgerSeed
	s.homeLead = models.LeadModel{
		BaseModel:   models.BaseModel{ID: uuid.New(), CreatedAt: day(1), UpdatedAt: day(1)},
		LeadNo:      "LD-1001",
		ClientName:  "Anil Mehta",
		ProductType: string(ledger.ProductHomeLoan),
		History: []models.LeadHistoryModel{
			{ID: uuid.New(), Feedback: ledger.FeedbackLoanDisbursed, CommentDate: day(3), CreatedAt: day(3)},
			{ID: uuid.New(), Feedback: "Login", CommentDate: day(2), CreatedAt: day(2)},
		},
		LoanRequirementAmount: dec(500000),
	}
	s.personalLead = models.LeadModel{
		BaseModel:             models.BaseModel{ID: uuid.New(), CreatedAt: day(5), UpdatedAt: day(5)},
		LeadNo:                "LD-1002",
		ClientName:            "Priya Shah",
		ProductType:           string(ledger.ProductPersonalLoan),
		LoanRequirementAmount: dec(200000),
	}
	require.NoError(t, db.Create(&s.homeLead).Error)
	require.NoError(t, db.Create(&s.personalLead).Error)

	s.ravi = models.AdvisorModel{BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: day(1), UpdatedAt: day(1)}, Name: "Ravi Kumar", AdvisorCode: "ADV-7"}
	s.sunita = models.AdvisorModel{BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: day(1), UpdatedAt: day(1)}, Name: "Sunita Rao"}
	require.NoError(t, db.Create(&s.ravi).Error)
	require.NoError(t, db.Create(&s.sunita).Error)

	payouts := NewGormAdvisorPayoutRepository(db)
	s.openPayout = payoutOn(s.homeLead.ID, s.ravi.ID, day(4), dec(1900))
	s.paidPayout = payoutOn(s.personalLead.ID, s.sunita.ID, day(6), decimal.Zero)
	require.NoError(t, payouts.Create(ctx, s.openPayout))
	require.NoError(t, payouts.Create(ctx, s.paidPayout))

	s.master = ledger.NewInvoiceMaster(s.homeLead.ID)
	s.master.InvoiceReceivableAmount = dec(9500)
	s.master.RemainingReceivableAmount = dec(4500)
	require.NoError(t, NewGormInvoiceMasterRepository(db).Create(ctx, s.master))

	s.invoice = &ledger.Invoice{
		BaseEntity:          shared.BaseEntity{ID: uuid.New(), CreatedAt: day(7), UpdatedAt: day(7)},
		InvoiceMasterID:     s.master.ID,
		LeadID:              s.homeLead.ID,
		DisbursalAmount:     dec(500000),
		PayoutPercent:       dec(2),
		PayoutAmount:        dec(10000),
		TDSPercent:          dec(5),
		TDSAmount:           dec(500),
		GSTPercent:          decimal.Zero,
		GSTAmount:           decimal.Zero,
		NetReceivableAmount: dec(9500),
		InvoiceNo:           "INV-1",
		InvoiceDate:         day(7),
	}
	require.NoError(t, NewGormInvoiceRepository(db).Create(ctx, s.invoice))
	return s
}

func payoutOn(leadID, advisorID uuid.UUID, createdAt time.Time, remaining decimal.Decimal) *ledger.AdvisorPayout {
	root := shared.NewBaseAggregateRoot()
	root.CreatedAt = createdAt
	root.UpdatedAt = createdAt
	return &ledger.AdvisorPayout{
		BaseAggregateRoot:      root,
		LeadID:                 leadID,
		AdvisorID:              advisorID,
		DisbursalAmount:        dec(100000),
		PayoutPercent:          dec(2),
		PayoutAmount:           dec(2000),
		TDSPercent:             dec(5),
		TDSAmount:              dec(100),
		GSTPercent:             decimal.Zero,
		GSTAmount:              decimal.Zero,
		NetPayableAmount:       dec(1900),
		RemainingPayableAmount: remaining,
		RemainingGSTAmount:     decimal.Zero,
		Banker:                 ledger.BankerSnapshot{BankName: "HDFC Bank"},
	}
}

func payableOn(p *ledger.AdvisorPayout, against ledger.PaymentAgainst, due, paid int64, createdAt time.Time) *ledger.Payable {
	return &ledger.Payable{
		Installment: ledger.Installment{
			BaseEntity:     shared.BaseEntity{ID: uuid.New(), CreatedAt: createdAt, UpdatedAt: createdAt},
			LeadID:         p.LeadID,
			PaymentAgainst: against,
			DueAmount:      dec(due),
			SettledAmount:  dec(paid),
			BalanceAmount:  dec(due - paid),
			SettledOn:      createdAt,
		},
		PayoutID:  p.ID,
		AdvisorID: p.AdvisorID,
	}
}

func TestLeadRepository(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	repo := NewGormLeadRepository(db)
	ctx := context.Background()

	t.Run("loads history in comment order", func(t *testing.T) {
		lead, err := repo.FindByID(ctx, s.homeLead.ID)
		require.NoError(t, err)
		require.Len(t, lead.History, 2)
		assert.Equal(t, "Login", lead.History[0].Feedback)
		assert.True(t, lead.IsDisbursed())
		assert.Equal(t, "LD-1001 - Anil Mehta", lead.DisplayName())
	})

	t.Run("missing lead is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("set final narrows not-final leads", func(t *testing.T) {
		require.NoError(t, repo.SetFinal(ctx, s.homeLead.ID, ledger.FinalFlagPayout, true))

		leads, err := repo.FindNotFinal(ctx, ledger.FinalFlagPayout)
		require.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, s.personalLead.ID, leads[0].ID)

		leads, err = repo.FindNotFinal(ctx, ledger.FinalFlagInvoice)
		require.NoError(t, err)
		require.Len(t, leads, 2)
		assert.Equal(t, s.personalLead.ID, leads[0].ID, "newest first")
	})

	t.Run("set final on a missing lead is not found", func(t *testing.T) {
		err := repo.SetFinal(ctx, uuid.New(), ledger.FinalFlagInvoice, true)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAdvisorRepository(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	repo := NewGormAdvisorRepository(db)
	ctx := context.Background()

	advisor, err := repo.FindByID(ctx, s.ravi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", advisor.Name)
	assert.Equal(t, "ADV-7", advisor.AdvisorCode)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAdvisorPayoutRepository(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	repo := NewGormAdvisorPayoutRepository(db)
	ctx := context.Background()

	t.Run("round trips amounts and banker", func(t *testing.T) {
		got, err := repo.FindByID(ctx, s.openPayout.ID)
		require.NoError(t, err)
		assert.True(t, got.NetPayableAmount.Equal(dec(1900)))
		assert.Equal(t, "HDFC Bank", got.Banker.BankName)
		assert.Equal(t, 1, got.Version)
	})

	t.Run("finds by lead and advisor", func(t *testing.T) {
		got, err := repo.FindByLeadAndAdvisor(ctx, s.homeLead.ID, s.ravi.ID)
		require.NoError(t, err)
		assert.Equal(t, s.openPayout.ID, got.ID)

		_, err = repo.FindByLeadAndAdvisor(ctx, s.homeLead.ID, s.sunita.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate lead and advisor already exists", func(t *testing.T) {
		err := repo.Create(ctx, payoutOn(s.homeLead.ID, s.ravi.ID, day(8), dec(1900)))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("save with lock writes false flags and bumps version", func(t *testing.T) {
		payout, err := repo.FindByID(ctx, s.paidPayout.ID)
		require.NoError(t, err)
		payout.FinalPayout = true
		payout.IncrementVersion()
		require.NoError(t, repo.SaveWithLock(ctx, payout))

		exists, err := repo.ExistsFinalForLead(ctx, s.personalLead.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		payout.FinalPayout = false
		payout.IncrementVersion()
		require.NoError(t, repo.SaveWithLock(ctx, payout))

		exists, err = repo.ExistsFinalForLead(ctx, s.personalLead.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		stale := *payout
		err = repo.SaveWithLock(ctx, &stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestPayableRepository(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	repo := NewGormPayableRepository(db)
	ctx := context.Background()

	first := payableOn(s.openPayout, ledger.PaymentAgainstPayable, 1900, 500, day(8))
	second := payableOn(s.openPayout, ledger.PaymentAgainstPayable, 1400, 400, day(9))
	gst := payableOn(s.openPayout, ledger.PaymentAgainstGST, 360, 60, day(9))
	for _, p := range []*ledger.Payable{first, second, gst} {
		require.NoError(t, repo.Create(ctx, p))
	}

	t.Run("sums paid amounts per bucket", func(t *testing.T) {
		totals, err := repo.SumPaidByBucket(ctx, s.openPayout.ID)
		require.NoError(t, err)
		assert.True(t, totals.Principal.Equal(dec(900)), totals.Principal.String())
		assert.True(t, totals.GST.Equal(dec(60)), totals.GST.String())
	})

	t.Run("save keeps the due snapshot", func(t *testing.T) {
		first.SettledAmount = dec(700)
		first.BalanceAmount = dec(1200)
		first.RefNo = "UTR-1"
		require.NoError(t, repo.Save(ctx, first))

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, got.DueAmount.Equal(dec(1900)))
		assert.True(t, got.SettledAmount.Equal(dec(700)))
		assert.Equal(t, "UTR-1", got.RefNo)
		assert.Equal(t, ledger.SettlementPending, got.Status())
	})

	t.Run("delete by payout clears every installment", func(t *testing.T) {
		require.NoError(t, repo.DeleteByPayout(ctx, s.openPayout.ID))

		totals, err := repo.SumPaidByBucket(ctx, s.openPayout.ID)
		require.NoError(t, err)
		assert.True(t, totals.Principal.IsZero())
		assert.ErrorIs(t, repo.Delete(ctx, first.ID), shared.ErrNotFound)
	})
}

func TestInvoiceRepositories(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	ctx := context.Background()
	masters := NewGormInvoiceMasterRepository(db)
	invoices := NewGormInvoiceRepository(db)
	receivables := NewGormReceivableRepository(db)

	t.Run("finds the master of a lead", func(t *testing.T) {
		got, err := masters.FindByLead(ctx, s.homeLead.ID)
		require.NoError(t, err)
		assert.Equal(t, s.master.ID, got.ID)
		assert.True(t, got.RemainingReceivableAmount.Equal(dec(4500)))

		_, err = masters.FindByLead(ctx, s.personalLead.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("one master per lead", func(t *testing.T) {
		err := masters.Create(ctx, ledger.NewInvoiceMaster(s.homeLead.ID))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("final invoice flag is visible to the lead scan", func(t *testing.T) {
		exists, err := invoices.ExistsFinalForLead(ctx, s.homeLead.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		s.invoice.FinalInvoice = true
		require.NoError(t, invoices.Save(ctx, s.invoice))

		exists, err = invoices.ExistsFinalForLead(ctx, s.homeLead.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete by master removes receipts", func(t *testing.T) {
		rc := &ledger.Receivable{
			Installment: ledger.Installment{
				BaseEntity:     shared.NewBaseEntity(),
				LeadID:         s.homeLead.ID,
				PaymentAgainst: ledger.PaymentAgainstReceivable,
				DueAmount:      dec(9500),
				SettledAmount:  dec(5000),
				BalanceAmount:  dec(4500),
				SettledOn:      day(10),
			},
			InvoiceMasterID: s.master.ID,
		}
		require.NoError(t, receivables.Create(ctx, rc))

		got, err := receivables.FindByID(ctx, rc.ID)
		require.NoError(t, err)
		assert.True(t, got.DueAmount.Equal(dec(9500)))

		require.NoError(t, receivables.DeleteByMaster(ctx, s.master.ID))
		_, err = receivables.FindByID(ctx, rc.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestLedgerQueryRepository_Payouts(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	repo := NewGormLedgerQueryRepository(db)
	ctx := context.Background()

	list := func(f ledger.LedgerFilter) ([]ledger.PayoutView, int64) {
		t.Helper()
		f.Filter = shared.DefaultFilter()
		views, total, err := repo.ListPayouts(ctx, f)
		require.NoError(t, err)
		return views, total
	}

	t.Run("lists newest first with lead and advisor", func(t *testing.T) {
		views, total := list(ledger.LedgerFilter{})
		assert.Equal(t, int64(2), total)
		require.Len(t, views, 2)
		assert.Equal(t, s.paidPayout.ID, views[0].Payout.ID)
		assert.Equal(t, "LD-1002 - Priya Shah", views[0].Lead.DisplayName())
		assert.Equal(t, "Sunita Rao", views[0].Advisor.Name)
	})

	t.Run("filters by product type", func(t *testing.T) {
		views, total := list(ledger.LedgerFilter{ProductType: string(ledger.ProductHomeLoan)})
		assert.Equal(t, int64(1), total)
		assert.Equal(t, s.openPayout.ID, views[0].Payout.ID)
	})

	t.Run("product type matches a case-insensitive fragment", func(t *testing.T) {
		views, total := list(ledger.LedgerFilter{ProductType: "home"})
		assert.Equal(t, int64(1), total)
		assert.Equal(t, s.openPayout.ID, views[0].Payout.ID)

		_, total = list(ledger.LedgerFilter{ProductType: "LOAN"})
		assert.Equal(t, int64(2), total)
	})

	t.Run("matches names case-insensitively", func(t *testing.T) {
		_, total := list(ledger.LedgerFilter{AdvisorName: "RAVI"})
		assert.Equal(t, int64(1), total)

		views, total := list(ledger.LedgerFilter{ClientName: "priya"})
		assert.Equal(t, int64(1), total)
		assert.Equal(t, s.paidPayout.ID, views[0].Payout.ID)

		_, total = list(ledger.LedgerFilter{ClientName: "%"})
		assert.Equal(t, int64(0), total, "wildcards are literal")
	})

	t.Run("filters by creation date", func(t *testing.T) {
		from, to := day(4), day(5)
		views, total := list(ledger.LedgerFilter{FromDate: &from, ToDate: &to})
		assert.Equal(t, int64(1), total)
		assert.Equal(t, s.openPayout.ID, views[0].Payout.ID)
	})

	t.Run("pages with the total of all matches", func(t *testing.T) {
		f := ledger.LedgerFilter{Filter: shared.Filter{Page: 2, PageSize: 1}}
		views, total, err := repo.ListPayouts(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, views, 1)
		assert.Equal(t, s.openPayout.ID, views[0].Payout.ID)
	})

	t.Run("get payout", func(t *testing.T) {
		view, err := repo.GetPayout(ctx, s.openPayout.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar - ADV-7", view.Advisor.DisplayName())

		_, err = repo.GetPayout(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("leads with open payouts skip settled ones", func(t *testing.T) {
		options, err := repo.LeadsWithOpenPayouts(ctx)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, s.homeLead.ID, options[0].ID)
		assert.Equal(t, "LD-1001 - Anil Mehta", options[0].DisplayName)
	})

	t.Run("advisors for lead", func(t *testing.T) {
		options, err := repo.AdvisorsForLead(ctx, s.homeLead.ID)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, s.openPayout.ID, options[0].AdvisorPayoutID)
		assert.Equal(t, s.ravi.ID, options[0].AdvisorID)
		assert.Equal(t, "Ravi Kumar", options[0].Name)
	})
}

func TestLedgerQueryRepository_Payables(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	repo := NewGormLedgerQueryRepository(db)
	payables := NewGormPayableRepository(db)
	ctx := context.Background()

	paid := payableOn(s.openPayout, ledger.PaymentAgainstPayable, 1900, 1900, day(8))
	partial := payableOn(s.paidPayout, ledger.PaymentAgainstPayable, 1900, 900, day(9))
	require.NoError(t, payables.Create(ctx, paid))
	require.NoError(t, payables.Create(ctx, partial))

	t.Run("lists payables with advisor filter", func(t *testing.T) {
		views, total, err := repo.ListPayables(ctx, ledger.LedgerFilter{Filter: shared.DefaultFilter(), AdvisorName: "sun"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, partial.ID, views[0].Payable.ID)
		assert.Equal(t, "Priya Shah", views[0].Lead.ClientName)
	})

	t.Run("advisor payables are scoped to the advisor", func(t *testing.T) {
		views, err := repo.AdvisorPayables(ctx, ledger.StatementFilter{AdvisorID: s.ravi.ID})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, paid.ID, views[0].Payable.ID)

		lines, stats := ledger.BuildStatement(views, "")
		require.Len(t, lines, 1)
		assert.Equal(t, ledger.SettlementPaid, lines[0].Status)
		assert.True(t, stats.TotalDisbursal.Equal(dec(500000)))
	})

	t.Run("advisor payables filter by product fragment", func(t *testing.T) {
		views, err := repo.AdvisorPayables(ctx, ledger.StatementFilter{AdvisorID: s.ravi.ID, ProductType: "Home"})
		require.NoError(t, err)
		assert.Len(t, views, 1)

		views, err = repo.AdvisorPayables(ctx, ledger.StatementFilter{AdvisorID: s.ravi.ID, ProductType: "personal"})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("get payable", func(t *testing.T) {
		view, err := repo.GetPayable(ctx, partial.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sunita Rao", view.Advisor.Name)
	})
}

func TestLedgerQueryRepository_Invoices(t *testing.T) {
	db := setupLedgerTestDB(t)
	s := seedLedger(t, db)
	repo := NewGormLedgerQueryRepository(db)
	ctx := context.Background()

	t.Run("lists invoices with lead", func(t *testing.T) {
		views, total, err := repo.ListInvoices(ctx, ledger.LedgerFilter{Filter: shared.DefaultFilter(), ClientName: "anil"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, s.invoice.ID, views[0].Invoice.ID)
		assert.Equal(t, "LD-1001", views[0].Lead.LeadNo)
	})

	t.Run("empty page for no matches", func(t *testing.T) {
		views, total, err := repo.ListInvoices(ctx, ledger.LedgerFilter{Filter: shared.DefaultFilter(), ProductType: string(ledger.ProductCarLoan)})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, views)
	})

	t.Run("leads with open invoices", func(t *testing.T) {
		options, err := repo.LeadsWithOpenInvoices(ctx)
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, s.homeLead.ID, options[0].ID)
	})

	t.Run("get invoice not found", func(t *testing.T) {
		_, err := repo.GetInvoice(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
