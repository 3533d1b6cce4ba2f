// Package entity defines the domain entities for the ratings feature.
package entity

import (
	"time"

	authentity "store_rating/internal/feature/auth/domain/entity"
	storeentity "store_rating/internal/feature/stores/domain/entity"
)

// Score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one user's score for one store. (UserID, StoreID) is unique.
type Rating struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_ratings_user_store" json:"user_id"`
	StoreID uint `gorm:"not null;uniqueIndex:idx_ratings_user_store;index" json:"store_id"`
	Score   int  `gorm:"column:rating;not null;check:chk_ratings_score,rating >= 1 AND rating <= 5" json:"rating"`

	User  *authentity.User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Store *storeentity.Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ValidScore reports whether s is within MinScore..MaxScore.
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}

// Outcome tells whether a submission created a new rating or replaced an existing one.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeUpdated
)

// String returns the outcome label used in logs and the submissions metric.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// UserRating is a rating as listed for the user who submitted it.
type UserRating struct {
	StoreID uint
	Rating  int
}
