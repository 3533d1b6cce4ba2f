package usecase

import "errors"

var (
	// ErrInvalidScore is returned when a score is outside 1..5 or an id is zero.
	ErrInvalidScore = errors.New("rating must be 1-5")

	// ErrStoreNotFound is returned when the rated store does not exist.
	ErrStoreNotFound = errors.New("store not found")

	// ErrRatingConflict is returned by RatingRepository.Insert when the (user, store) pair already has a rating.
	ErrRatingConflict = errors.New("rating already exists")

	// ErrRatingNotFound is returned by RatingRepository.UpdateScore when no row matched.
	ErrRatingNotFound = errors.New("rating not found")
)
