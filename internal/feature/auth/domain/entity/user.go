// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// User represents a registered account.
// Role is fixed at creation; there is no operation that changes it.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Email is stored normalized (see NormalizeEmail), so the unique index is case-insensitive.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash. It is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	Address string `gorm:"size:400" json:"address"`

	Role Role `gorm:"size:16;not null;default:normal;index" json:"role"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserFilter holds optional case-insensitive substring filters for user listings.
// Empty fields are ignored.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}
