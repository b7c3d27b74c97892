package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/pagination"
)

// tradeService handles trade-related business logic.
type tradeService struct {
	db             *gorm.DB
	accountService AccountServicer
	assetService   AssetServicer
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(db *gorm.DB, accountService AccountServicer, assetService AssetServicer) TradeServicer {
	return &tradeService{db: db, accountService: accountService, assetService: assetService}
}

// CreateTrade records a trade after verifying account ownership and asset
// existence.
func (s *tradeService) CreateTrade(userID string, input CreateTradeInput) (*models.Trade, error) {
	if _, err := s.accountService.GetAccountByID(userID, input.AccountID); err != nil {
		return nil, err
	}
	if _, err := s.assetService.GetAssetByID(input.AssetID); err != nil {
		return nil, err
	}

	trade := &models.Trade{
		UserID:    userID,
		AccountID: input.AccountID,
		AssetID:   input.AssetID,
		Date:      input.Date,
		Side:      input.Side,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Fee:       input.Fee,
	}

	if err := s.db.Create(trade).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Preload("Asset").Preload("Account").First(trade, "id = ?", trade.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return trade, nil
}

// GetUserTrades returns the user's trades newest first, optionally filtered
// to one account.
func (s *tradeService) GetUserTrades(userID, accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	if accountID != "" {
		if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
			return nil, err
		}
	}

	page.Defaults()

	query := s.db.Model(&models.Trade{}).Where("user_id = ?", userID)
	if accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var trades []models.Trade
	if err := query.Preload("Asset").Preload("Account").
		Order("date DESC").
		Scopes(pagination.Paginate(page)).Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(trades, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTradeByID returns a trade if it belongs to the user.
func (s *tradeService) GetTradeByID(userID, tradeID string) (*models.Trade, error) {
	var trade models.Trade
	if err := s.db.Preload("Asset").Preload("Account").First(&trade, "id = ?", tradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTradeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if trade.UserID != userID {
		return nil, apperrors.ErrTradeNotFound
	}

	return &trade, nil
}

// DeleteTrade removes a trade. Positions are derived from the remaining
// history on the next read; there is no stored state to fix up.
func (s *tradeService) DeleteTrade(userID, tradeID string) error {
	trade, err := s.GetTradeByID(userID, tradeID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(trade).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ImportTrades bulk-creates trades from already-parsed rows, resolving each
// row's asset by symbol (creating unknown assets on the fly). Rows without a
// currency inherit the account's. The whole import is one transaction.
func (s *tradeService) ImportTrades(userID, accountID string, rows []ImportTradeRow) ([]models.Trade, error) {
	account, err := s.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyImport
	}

	created := make([]models.Trade, 0, len(rows))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			currency := row.Currency
			if currency == "" {
				currency = account.Currency
			}

			asset, assetErr := s.assetService.UpsertBySymbol(row.Symbol, row.Name, row.AssetType, currency)
			if assetErr != nil {
				return assetErr
			}

			trade := models.Trade{
				UserID:    userID,
				AccountID: accountID,
				AssetID:   asset.ID,
				Date:      row.Date,
				Side:      row.Side,
				Quantity:  row.Quantity,
				Price:     row.Price,
				Fee:       row.Fee,
			}
			if txErr := tx.Create(&trade).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}

			trade.Asset = *asset
			trade.Account = *account
			created = append(created, trade)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
