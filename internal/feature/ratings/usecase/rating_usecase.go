// Package usecase implements the rating engine: one rating per (user, store),
// upserted insert-first, with averages read fresh from storage.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"store_rating/internal/feature/ratings/domain/entity"
	storeentity "store_rating/internal/feature/stores/domain/entity"
)

// RatingRepository abstracts rating persistence.
type RatingRepository interface {
	// Insert adds a rating. It returns ErrRatingConflict when the pair is already rated
	// and ErrStoreNotFound when the store does not exist.
	Insert(ctx context.Context, r *entity.Rating) error
	// UpdateScore replaces the score of an existing rating and returns the updated row.
	UpdateScore(ctx context.Context, userID, storeID uint, score int) (*entity.Rating, error)
	AverageFor(ctx context.Context, storeID uint) (decimal.NullDecimal, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.UserRating, error)
}

// SubmissionRecorder counts rating submissions by outcome.
type SubmissionRecorder interface {
	ObserveSubmission(outcome string)
}

type ratingUsecase struct {
	ratings RatingRepository
	metrics SubmissionRecorder
}

// NewRatingUsecase builds the rating engine. metrics may be nil.
func NewRatingUsecase(ratings RatingRepository, metrics SubmissionRecorder) *ratingUsecase {
	return &ratingUsecase{ratings: ratings, metrics: metrics}
}

// Submit creates or replaces userID's rating of storeID.
// The insert is attempted first; on a uniqueness conflict the existing row is updated once.
func (u *ratingUsecase) Submit(ctx context.Context, userID, storeID uint, score int) (*entity.Rating, entity.Outcome, error) {
	if userID == 0 || storeID == 0 || !entity.ValidScore(score) {
		u.observe("invalid")
		return nil, 0, ErrInvalidScore
	}

	r := &entity.Rating{UserID: userID, StoreID: storeID, Score: score}
	err := u.ratings.Insert(ctx, r)
	if err == nil {
		u.observe(entity.OutcomeCreated.String())
		return r, entity.OutcomeCreated, nil
	}
	if !errors.Is(err, ErrRatingConflict) {
		u.observe("failed")
		return nil, 0, err
	}

	updated, err := u.ratings.UpdateScore(ctx, userID, storeID, score)
	if err != nil {
		u.observe("failed")
		return nil, 0, fmt.Errorf("update rating user=%d store=%d: %w", userID, storeID, err)
	}
	u.observe(entity.OutcomeUpdated.String())
	return updated, entity.OutcomeUpdated, nil
}

// AverageFor returns the store's average rounded to two places, or nil when it has no ratings.
func (u *ratingUsecase) AverageFor(ctx context.Context, storeID uint) (*decimal.Decimal, error) {
	avg, err := u.ratings.AverageFor(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return storeentity.RoundAverage(avg), nil
}

// RatingsByUser lists every rating the user has submitted.
func (u *ratingUsecase) RatingsByUser(ctx context.Context, userID uint) ([]entity.UserRating, error) {
	return u.ratings.ListByUser(ctx, userID)
}

func (u *ratingUsecase) observe(outcome string) {
	if u.metrics != nil {
		u.metrics.ObserveSubmission(outcome)
	}
}
