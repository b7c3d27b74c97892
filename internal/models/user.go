package models

// User represents a registered user.
type User struct {
	Base
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Accounts     []Account `gorm:"foreignKey:UserID" json:"accounts,omitempty"`
	Trades       []Trade   `gorm:"foreignKey:UserID" json:"trades,omitempty"`
}
