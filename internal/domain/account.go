package domain

import (
	"time"
)

// Account is an API user. Password holds the bcrypt hash.
type Account struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"size:255" json:"name"`
	Email     string     `gorm:"size:255;uniqueIndex" json:"email"`
	Password  string     `gorm:"size:255" json:"-"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Account) TableName() string {
	return "accounts"
}

// AccessToken is an issued bearer token. Only the sha256 of the token is stored.
type AccessToken struct {
	ID         int64      `gorm:"primaryKey" json:"id,string"`
	AccountID  int64      `gorm:"index" json:"account_id"`
	Name       string     `gorm:"size:255" json:"name"`
	TokenHash  string     `gorm:"size:64;uniqueIndex" json:"-"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  time.Time  `gorm:"index" json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName Specify table name
func (AccessToken) TableName() string {
	return "access_tokens"
}
