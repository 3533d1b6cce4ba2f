// Package handler はratingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"store_rating/internal/api"
	"store_rating/internal/feature/ratings/domain/entity"
	"store_rating/internal/feature/ratings/transport/http/dto"
	"store_rating/internal/feature/ratings/usecase"
	jwtmw "store_rating/internal/platform/jwt"
)

// RatingUsecase は評価操作のユースケースを定義します。
type RatingUsecase interface {
	Submit(ctx context.Context, userID, storeID uint, score int) (*entity.Rating, entity.Outcome, error)
	AverageFor(ctx context.Context, storeID uint) (*decimal.Decimal, error)
	RatingsByUser(ctx context.Context, userID uint) ([]entity.UserRating, error)
}

// RatingHandler は評価関連のHTTPリクエストを処理します。
type RatingHandler struct {
	ratings RatingUsecase
}

// NewRatingHandler はRatingHandlerを生成します。
func NewRatingHandler(ratings RatingUsecase) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Submit は評価の登録・更新を処理します。
// - store_id / rating 欠落は400、範囲外は400
// - 店舗が存在しない場合は404
// - 新規は "Rating submitted"、既存の上書きは "Rating updated"
// - 書き込み後の店舗平均を average_rating で返す。取得に失敗した場合は null
func (h *RatingHandler) Submit(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token missing"})
		return
	}

	var req dto.SubmitRatingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing store_id or rating"})
		return
	}

	rating, outcome, err := h.ratings.Submit(c.Request.Context(), claims.UserID, req.StoreID, *req.Rating)
	switch {
	case errors.Is(err, usecase.ErrInvalidScore):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Rating must be 1-5"})
		return
	case errors.Is(err, usecase.ErrStoreNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Store not found"})
		return
	case err != nil:
		slog.Error("rating submit failed", "error", err, "user_id", claims.UserID, "store_id", req.StoreID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		return
	}

	slog.Info("rating saved", "user_id", claims.UserID, "store_id", req.StoreID, "outcome", outcome.String())

	avg, err := h.ratings.AverageFor(c.Request.Context(), req.StoreID)
	if err != nil {
		slog.Warn("failed to read store average", "error", err, "store_id", req.StoreID)
		avg = nil
	}
	c.JSON(http.StatusOK, dto.NewSubmitRatingRes(rating, outcome, avg))
}

// ListMine はログインユーザーが付けた評価を返します。
func (h *RatingHandler) ListMine(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token missing"})
		return
	}

	list, err := h.ratings.RatingsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list user ratings", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRatingResList(list))
}
