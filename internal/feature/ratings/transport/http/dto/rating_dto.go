// Package dto defines data transfer objects for the ratings feature's HTTP transport layer.
package dto

import (
	"github.com/shopspring/decimal"

	"store_rating/internal/feature/ratings/domain/entity"
	storedto "store_rating/internal/feature/stores/transport/http/dto"
)

// SubmitRatingReq is the request body for POST /ratings.
// Rating is a pointer so that an explicit 0 reaches the range check instead of reading as missing.
type SubmitRatingReq struct {
	StoreID uint `json:"store_id" binding:"required"`
	Rating  *int `json:"rating" binding:"required"`
}

// SubmitRatingRes is returned by POST /ratings.
// AverageRating is the store's average after the write, or null when it could not be read.
type SubmitRatingRes struct {
	Message       string         `json:"message"`
	Rating        *entity.Rating `json:"rating"`
	AverageRating *string        `json:"average_rating"`
}

// NewSubmitRatingRes builds the POST /ratings response for a saved rating.
func NewSubmitRatingRes(r *entity.Rating, o entity.Outcome, avg *decimal.Decimal) SubmitRatingRes {
	return SubmitRatingRes{Message: SubmitMessage(o), Rating: r, AverageRating: storedto.FormatAverage(avg)}
}

// UserRatingRes is one entry of GET /user/ratings.
type UserRatingRes struct {
	StoreID uint `json:"store_id"`
	Rating  int  `json:"rating"`
}

// NewUserRatingResList converts a user's ratings into the GET /user/ratings body.
func NewUserRatingResList(list []entity.UserRating) []UserRatingRes {
	out := make([]UserRatingRes, 0, len(list))
	for _, r := range list {
		out = append(out, UserRatingRes{StoreID: r.StoreID, Rating: r.Rating})
	}
	return out
}

// SubmitMessage returns the response message for a submission outcome.
func SubmitMessage(o entity.Outcome) string {
	if o == entity.OutcomeUpdated {
		return "Rating updated"
	}
	return "Rating submitted"
}
