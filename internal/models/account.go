package models

// Account represents a brokerage or investment account owned by a user.
// Positions are never stored on the account; they are recomputed from the
// trade history on every read.
type Account struct {
	Base
	UserID   string  `gorm:"type:uuid;not null;index" json:"userId"`
	Name     string  `gorm:"not null" json:"name"`
	Type     string  `gorm:"not null" json:"type"`
	Currency string  `gorm:"not null;default:'USD'" json:"currency"`
	Trades   []Trade `gorm:"foreignKey:AccountID" json:"trades,omitempty"`
}
