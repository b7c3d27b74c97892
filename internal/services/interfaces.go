package services

import (
	"time"

	"folio/internal/holdings"
	"folio/internal/models"
	"folio/internal/pagination"
)

// UserServicer defines user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AccountServicer defines account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name, accountType, currency string) (*models.Account, error)
	GetUserAccounts(userID string) ([]models.Account, error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID, name, accountType, currency string) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
}

// AssetServicer defines asset-related business logic.
type AssetServicer interface {
	CreateAsset(symbol, name string, assetType models.AssetType, currency string) (*models.Asset, error)
	ListAssets() ([]models.Asset, error)
	GetAssetByID(id string) (*models.Asset, error)
	UpsertBySymbol(symbol, name string, assetType models.AssetType, currency string) (*models.Asset, error)
}

// CreateTradeInput carries the fields needed to record a trade.
type CreateTradeInput struct {
	AccountID string
	AssetID   string
	Date      time.Time
	Side      models.TradeSide
	Quantity  float64
	Price     float64
	Fee       float64
}

// ImportTradeRow is one already-parsed row of a trade import. Assets are
// resolved by symbol and created on the fly when unknown.
type ImportTradeRow struct {
	Date      time.Time
	Symbol    string
	Name      string
	Side      models.TradeSide
	Quantity  float64
	Price     float64
	Fee       float64
	AssetType models.AssetType
	Currency  string
}

// TradeServicer defines trade-related business logic.
type TradeServicer interface {
	CreateTrade(userID string, input CreateTradeInput) (*models.Trade, error)
	GetUserTrades(userID, accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	GetTradeByID(userID, tradeID string) (*models.Trade, error)
	DeleteTrade(userID, tradeID string) error
	ImportTrades(userID, accountID string, rows []ImportTradeRow) ([]models.Trade, error)
}

// HoldingsServicer fetches trade history and derives position aggregates.
type HoldingsServicer interface {
	GetAccountHoldings(userID, accountID string) (*holdings.AccountHoldings, error)
	GetPortfolioSummary(userID string) (*holdings.PortfolioSummary, error)
	GetAssetPerformance(userID string) ([]holdings.AssetPerformance, error)
}
