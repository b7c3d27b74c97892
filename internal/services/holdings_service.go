package services

import (
	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/holdings"
	"folio/internal/models"
)

// holdingsService fetches trade history and delegates all computation to the
// holdings package. It holds no derived state: every call replays the full
// trade history of its scope.
type holdingsService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewHoldingsService creates a new HoldingsServicer.
func NewHoldingsService(db *gorm.DB, accountService AccountServicer) HoldingsServicer {
	return &holdingsService{db: db, accountService: accountService}
}

// fetchTrades loads trades in replay order with asset and account metadata
// joined. The secondary sort keys keep replay deterministic when several
// trades share a date.
func (s *holdingsService) fetchTrades(query *gorm.DB) ([]models.Trade, error) {
	var trades []models.Trade
	if err := query.
		Preload("Asset").Preload("Account").
		Order("date ASC, created_at ASC, id ASC").
		Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return trades, nil
}

// GetAccountHoldings returns the per-asset position breakdown of one account.
func (s *holdingsService) GetAccountHoldings(userID, accountID string) (*holdings.AccountHoldings, error) {
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}

	trades, err := s.fetchTrades(s.db.Where("user_id = ? AND account_id = ?", userID, accountID))
	if err != nil {
		return nil, err
	}

	result := holdings.ComputeAccountHoldings(accountID, trades)
	return &result, nil
}

// GetPortfolioSummary returns per-account totals plus grand totals over the
// user's whole trade history.
func (s *holdingsService) GetPortfolioSummary(userID string) (*holdings.PortfolioSummary, error) {
	trades, err := s.fetchTrades(s.db.Where("user_id = ?", userID))
	if err != nil {
		return nil, err
	}

	summary := holdings.ComputePortfolioSummary(trades)
	return &summary, nil
}

// GetAssetPerformance returns one combined row per asset the user has ever
// traded, merged across accounts.
func (s *holdingsService) GetAssetPerformance(userID string) ([]holdings.AssetPerformance, error) {
	trades, err := s.fetchTrades(s.db.Where("user_id = ?", userID))
	if err != nil {
		return nil, err
	}

	return holdings.ComputeAssetPerformance(trades), nil
}
