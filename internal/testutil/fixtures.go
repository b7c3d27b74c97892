package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"folio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        fmt.Sprintf("user%d@test.com", nextID()),
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a brokerage account for the user.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithCurrency(t, db, userID, "USD")
}

// CreateTestAccountWithCurrency creates a brokerage account with the given currency.
func CreateTestAccountWithCurrency(t *testing.T, db *gorm.DB, userID, currency string) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     "BROKERAGE",
		Currency: currency,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestAsset creates an asset with a unique symbol.
func CreateTestAsset(t *testing.T, db *gorm.DB) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Symbol:    fmt.Sprintf("TST%d", nextID()),
		Name:      fmt.Sprintf("Test Asset %d", nextID()),
		AssetType: models.AssetTypeStock,
		Currency:  "USD",
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestTrade creates a trade with the given side, quantity, price and fee.
func CreateTestTrade(t *testing.T, db *gorm.DB, userID, accountID, assetID string, date time.Time, side models.TradeSide, quantity, price, fee float64) *models.Trade {
	t.Helper()

	trade := &models.Trade{
		UserID:    userID,
		AccountID: accountID,
		AssetID:   assetID,
		Date:      date,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Fee:       fee,
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to create test trade: %v", err)
	}
	return trade
}
