package models

// AssetType represents the class of a tradable asset.
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeETF    AssetType = "ETF"
	AssetTypeBond   AssetType = "BOND"
	AssetTypeFund   AssetType = "FUND"
	AssetTypeCrypto AssetType = "CRYPTO"
)

// Asset represents a tradable instrument, identified by its symbol.
type Asset struct {
	Base
	Symbol    string    `gorm:"not null;uniqueIndex" json:"symbol"`
	Name      string    `gorm:"not null" json:"name"`
	AssetType AssetType `gorm:"not null;default:'STOCK'" json:"assetType"`
	Currency  string    `json:"currency,omitempty"`
}
