package models

import "time"

// TradeSide represents the direction of a trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Trade represents a single executed trade. Trades are immutable once
// recorded; they can only be created or deleted, never edited.
type Trade struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	AccountID string    `gorm:"type:uuid;not null;index" json:"accountId"`
	AssetID   string    `gorm:"type:uuid;not null;index" json:"assetId"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Side      TradeSide `gorm:"not null" json:"side"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Fee       float64   `gorm:"not null;default:0" json:"fee"`

	// Relationships
	Asset   Asset   `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
