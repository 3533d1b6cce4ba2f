package dto

import (
	"github.com/shopspring/decimal"

	"store_rating/internal/feature/stores/domain/entity"
)

// StoreRes is a store with its average rating. AverageRating is null when unrated.
type StoreRes struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	AverageRating *string `json:"average_rating"`
}

// FormatAverage renders an average as a fixed two-decimal string, or nil.
func FormatAverage(avg *decimal.Decimal) *string {
	if avg == nil {
		return nil
	}
	s := avg.StringFixed(entity.AveragePlaces)
	return &s
}

// NewStoreRes converts a store summary into its response form.
func NewStoreRes(s entity.Summary) StoreRes {
	return StoreRes{
		ID:            s.ID,
		Name:          s.Name,
		Address:       s.Address,
		AverageRating: FormatAverage(s.AverageRating),
	}
}

// NewStoreResList converts summaries, returning an empty slice rather than nil.
func NewStoreResList(list []entity.Summary) []StoreRes {
	out := make([]StoreRes, 0, len(list))
	for _, s := range list {
		out = append(out, NewStoreRes(s))
	}
	return out
}

// DashboardRes is returned by GET /stores/dashboard.
type DashboardRes struct {
	Stores []StoreRes `json:"stores"`
}

// RatingViewRes is one rating on an owned store.
type RatingViewRes struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Rating   int    `json:"rating"`
	UserName string `json:"user_name"`
}

// RatingsRes is returned by GET /stores/:id/ratings.
type RatingsRes struct {
	Ratings []RatingViewRes `json:"ratings"`
}

// NewRatingsRes builds the GET /stores/:id/ratings body.
func NewRatingsRes(views []entity.RatingView) RatingsRes {
	out := make([]RatingViewRes, 0, len(views))
	for _, v := range views {
		out = append(out, RatingViewRes{ID: v.ID, UserID: v.UserID, Rating: v.Rating, UserName: v.UserName})
	}
	return RatingsRes{Ratings: out}
}

// CreatedStoreRes is the store echoed back by POST /admin/stores.
type CreatedStoreRes struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	OwnerID uint   `json:"owner_id"`
}

// CreateStoreRes is returned by POST /admin/stores.
type CreateStoreRes struct {
	Message string          `json:"message"`
	Store   CreatedStoreRes `json:"store"`
}

// NewCreateStoreRes builds the POST /admin/stores body for a created store.
func NewCreateStoreRes(s *entity.Store) CreateStoreRes {
	return CreateStoreRes{
		Message: "Store created successfully",
		Store:   CreatedStoreRes{ID: s.ID, Name: s.Name, Address: s.Address, OwnerID: s.OwnerID},
	}
}
