package account

import "time"

// Account is a locally managed identity. In production the identity provider
// is the remote API and this table stays empty; in dev and tests it backs both
// login and profile resolution.
type Account struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"column:first_name" json:"first_name"`
	LastName     string    `gorm:"column:last_name" json:"last_name"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Account) TableName() string { return "accounts" }
