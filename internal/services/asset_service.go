package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/models"
)

// assetService handles asset-related business logic. Assets are shared
// reference data, not scoped to a user.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset registers a new asset. Symbols are stored uppercase and must
// be unique.
func (s *assetService) CreateAsset(symbol, name string, assetType models.AssetType, currency string) (*models.Asset, error) {
	symbol = strings.ToUpper(symbol)

	var count int64
	s.db.Model(&models.Asset{}).Where("symbol = ?", symbol).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateSymbol
	}

	asset := &models.Asset{
		Symbol:    symbol,
		Name:      name,
		AssetType: assetType,
		Currency:  currency,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// ListAssets returns all known assets ordered by symbol.
func (s *assetService) ListAssets() ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Order("symbol ASC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// GetAssetByID retrieves an asset by ID.
func (s *assetService) GetAssetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpsertBySymbol finds an asset by symbol or creates it, updating name, type
// and currency with any non-empty values supplied. Used by trade import,
// where rows reference assets by symbol only.
func (s *assetService) UpsertBySymbol(symbol, name string, assetType models.AssetType, currency string) (*models.Asset, error) {
	symbol = strings.ToUpper(symbol)

	var asset models.Asset
	err := s.db.Where("symbol = ?", symbol).First(&asset).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if name == "" {
			name = symbol
		}
		if assetType == "" {
			assetType = models.AssetTypeStock
		}
		asset = models.Asset{
			Symbol:    symbol,
			Name:      name,
			AssetType: assetType,
			Currency:  currency,
		}
		if err := s.db.Create(&asset).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &asset, nil
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if assetType != "" {
		updates["asset_type"] = assetType
	}
	if currency != "" && (asset.Currency == "" || currency != asset.Currency) {
		updates["currency"] = currency
	}
	if len(updates) > 0 {
		if err := s.db.Model(&asset).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &asset, nil
}
