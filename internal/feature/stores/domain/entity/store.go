// Package entity defines the domain entities for the stores feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"

	authentity "store_rating/internal/feature/auth/domain/entity"
)

// AveragePlaces is the number of decimal places averages are rounded to.
const AveragePlaces = 2

// Store is a rateable business owned by exactly one user with role "store".
// The owner's role is checked at creation only.
type Store struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:255;not null"`
	Address string `gorm:"size:400"`
	OwnerID uint   `gorm:"not null;index"`

	Owner *authentity.User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is a store together with its derived average rating.
// AverageRating is nil when the store has no ratings.
type Summary struct {
	ID            uint
	Name          string
	Address       string
	OwnerID       uint
	AverageRating *decimal.Decimal
}

// RatingView is one rating on a store as seen by the store's owner.
type RatingView struct {
	ID       uint
	UserID   uint
	Rating   int
	UserName string
}

// RoundAverage converts a nullable AVG() result into a rounded average, or nil when absent.
func RoundAverage(avg decimal.NullDecimal) *decimal.Decimal {
	if !avg.Valid {
		return nil
	}
	d := avg.Decimal.Round(AveragePlaces)
	return &d
}
