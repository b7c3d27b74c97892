package services

import (
	"math"
	"testing"
	"time"

	"gorm.io/gorm"

	"folio/internal/models"
	"folio/internal/testutil"
)

type holdingsTestEnv struct {
	db      *gorm.DB
	user    *models.User
	account *models.Account
	asset   *models.Asset
}

func setupHoldingsService(t *testing.T) (HoldingsServicer, *holdingsTestEnv) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	svc := NewHoldingsService(db, NewAccountService(db))

	user := testutil.CreateTestUser(t, db)
	return svc, &holdingsTestEnv{
		db:      db,
		user:    user,
		account: testutil.CreateTestAccount(t, db, user.ID),
		asset:   testutil.CreateTestAsset(t, db),
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestGetAccountHoldings(t *testing.T) {
	svc, env := setupHoldingsService(t)

	testutil.CreateTestTrade(t, env.db, env.user.ID, env.account.ID, env.asset.ID, day(1), models.TradeSideBuy, 10, 100, 1)
	testutil.CreateTestTrade(t, env.db, env.user.ID, env.account.ID, env.asset.ID, day(2), models.TradeSideSell, 4, 120, 1)

	result, err := svc.GetAccountHoldings(env.user.ID, env.account.ID)
	testutil.AssertNoError(t, err)

	if result.AccountID != env.account.ID {
		t.Errorf("expected account %s, got %s", env.account.ID, result.AccountID)
	}
	if len(result.Holdings) != 1 {
		t.Fatalf("expected 1 position, got %d", len(result.Holdings))
	}

	pos := result.Holdings[0]
	if pos.Symbol != env.asset.Symbol {
		t.Errorf("expected symbol %q from the joined asset, got %q", env.asset.Symbol, pos.Symbol)
	}
	if pos.Quantity != 6 {
		t.Errorf("expected quantity 6, got %v", pos.Quantity)
	}
	// Cost basis: (10*100+1) = 1001, avg 100.1. Sell realizes
	// (4*120-1) - 4*100.1 = 78.6.
	if math.Abs(pos.RealizedPnl-78.6) > 1e-9 {
		t.Errorf("expected realized P/L 78.6, got %v", pos.RealizedPnl)
	}
	if pos.CurrentPrice == nil || *pos.CurrentPrice != 120 {
		t.Errorf("expected current price 120, got %v", pos.CurrentPrice)
	}
}

func TestGetAccountHoldingsEmptyAccount(t *testing.T) {
	svc, env := setupHoldingsService(t)

	result, err := svc.GetAccountHoldings(env.user.ID, env.account.ID)
	testutil.AssertNoError(t, err)

	if result.Holdings == nil || len(result.Holdings) != 0 {
		t.Errorf("expected an empty (non-nil) holdings slice, got %v", result.Holdings)
	}
	if result.Totals.TotalQuantity != 0 || result.Totals.TotalMarketValue != 0 {
		t.Errorf("expected zero totals, got %+v", result.Totals)
	}
}

func TestGetAccountHoldingsOwnership(t *testing.T) {
	svc, env := setupHoldingsService(t)

	intruder := testutil.CreateTestUser(t, env.db)
	_, err := svc.GetAccountHoldings(intruder.ID, env.account.ID)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestGetAccountHoldingsReplayOrder(t *testing.T) {
	svc, env := setupHoldingsService(t)

	// Inserted newest-date first; replay must still process by date.
	testutil.CreateTestTrade(t, env.db, env.user.ID, env.account.ID, env.asset.ID, day(10), models.TradeSideSell, 10, 200, 0)
	testutil.CreateTestTrade(t, env.db, env.user.ID, env.account.ID, env.asset.ID, day(1), models.TradeSideBuy, 10, 100, 0)

	result, err := svc.GetAccountHoldings(env.user.ID, env.account.ID)
	testutil.AssertNoError(t, err)

	pos := result.Holdings[0]
	if pos.Quantity != 0 {
		t.Errorf("expected flat position, got quantity %v", pos.Quantity)
	}
	// Buy then sell realizes 1000, not the 0 a naive insertion-order replay
	// (sell from empty) would produce.
	if math.Abs(pos.RealizedPnl-1000) > 1e-9 {
		t.Errorf("expected realized P/L 1000, got %v", pos.RealizedPnl)
	}
}

func TestGetPortfolioSummary(t *testing.T) {
	svc, env := setupHoldingsService(t)

	second := testutil.CreateTestAccountWithCurrency(t, env.db, env.user.ID, "EUR")
	other := testutil.CreateTestAsset(t, env.db)

	testutil.CreateTestTrade(t, env.db, env.user.ID, env.account.ID, env.asset.ID, day(1), models.TradeSideBuy, 10, 100, 0)
	testutil.CreateTestTrade(t, env.db, env.user.ID, second.ID, other.ID, day(2), models.TradeSideBuy, 5, 40, 0)

	summary, err := svc.GetPortfolioSummary(env.user.ID)
	testutil.AssertNoError(t, err)

	if len(summary.Accounts) != 2 {
		t.Fatalf("expected 2 account summaries, got %d", len(summary.Accounts))
	}
	if summary.Accounts[0].Name != env.account.Name || summary.Accounts[0].Currency != "USD" {
		t.Errorf("expected joined account metadata, got %+v", summary.Accounts[0])
	}
	if summary.Accounts[1].Currency != "EUR" {
		t.Errorf("expected second account currency EUR, got %q", summary.Accounts[1].Currency)
	}
	if summary.Totals.TotalMarketValue != 1200 {
		t.Errorf("expected grand market value 1200, got %v", summary.Totals.TotalMarketValue)
	}
}

func TestGetPortfolioSummaryEmpty(t *testing.T) {
	svc, env := setupHoldingsService(t)

	summary, err := svc.GetPortfolioSummary(env.user.ID)
	testutil.AssertNoError(t, err)

	if summary.Accounts == nil || len(summary.Accounts) != 0 {
		t.Errorf("expected an empty (non-nil) accounts slice, got %v", summary.Accounts)
	}
}

func TestGetPortfolioSummaryIgnoresOtherUsers(t *testing.T) {
	svc, env := setupHoldingsService(t)

	other := testutil.CreateTestUser(t, env.db)
	otherAccount := testutil.CreateTestAccount(t, env.db, other.ID)
	testutil.CreateTestTrade(t, env.db, other.ID, otherAccount.ID, env.asset.ID, day(1), models.TradeSideBuy, 100, 100, 0)
	testutil.CreateTestTrade(t, env.db, env.user.ID, env.account.ID, env.asset.ID, day(1), models.TradeSideBuy, 1, 10, 0)

	summary, err := svc.GetPortfolioSummary(env.user.ID)
	testutil.AssertNoError(t, err)

	if len(summary.Accounts) != 1 {
		t.Fatalf("expected only the user's own account, got %d", len(summary.Accounts))
	}
	if summary.Totals.TotalMarketValue != 10 {
		t.Errorf("expected market value 10, got %v", summary.Totals.TotalMarketValue)
	}
}

func TestGetAssetPerformanceMergesAccounts(t *testing.T) {
	svc, env := setupHoldingsService(t)

	second := testutil.CreateTestAccount(t, env.db, env.user.ID)
	testutil.CreateTestTrade(t, env.db, env.user.ID, env.account.ID, env.asset.ID, day(1), models.TradeSideBuy, 10, 100, 0)
	testutil.CreateTestTrade(t, env.db, env.user.ID, second.ID, env.asset.ID, day(2), models.TradeSideBuy, 5, 200, 0)

	rows, err := svc.GetAssetPerformance(env.user.ID)
	testutil.AssertNoError(t, err)

	if len(rows) != 1 {
		t.Fatalf("expected 1 merged row, got %d", len(rows))
	}

	row := rows[0]
	if row.Quantity != 15 {
		t.Errorf("expected merged quantity 15, got %v", row.Quantity)
	}
	// 10*100 + 5*200 = 2000 cost across both accounts.
	if math.Abs(row.TotalCostBasis-2000) > 1e-9 {
		t.Errorf("expected total cost basis 2000, got %v", row.TotalCostBasis)
	}
	if row.TotalMarketValue == nil || *row.TotalMarketValue != 3000 {
		t.Errorf("expected market value 3000 at the last price, got %v", row.TotalMarketValue)
	}
}

func TestGetAssetPerformanceEmpty(t *testing.T) {
	svc, env := setupHoldingsService(t)

	rows, err := svc.GetAssetPerformance(env.user.ID)
	testutil.AssertNoError(t, err)

	if rows == nil || len(rows) != 0 {
		t.Errorf("expected an empty (non-nil) slice, got %v", rows)
	}
}
