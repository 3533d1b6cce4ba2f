// Package handler はstoresフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"store_rating/internal/api"
	"store_rating/internal/feature/stores/domain/entity"
	"store_rating/internal/feature/stores/transport/http/dto"
	"store_rating/internal/feature/stores/usecase"
	jwtmw "store_rating/internal/platform/jwt"
	"store_rating/internal/platform/validation"
)

// StoreUsecase は店舗操作のユースケースを定義します。
type StoreUsecase interface {
	ListAll(ctx context.Context, search string) ([]entity.Summary, error)
	ListOwnedBy(ctx context.Context, ownerID uint) ([]entity.Summary, error)
	ListRatingsFor(ctx context.Context, storeID, ownerID uint) ([]entity.RatingView, error)
	CreateStore(ctx context.Context, in usecase.CreateStoreInput) (*entity.Store, error)
}

// StoreHandler は店舗関連のHTTPリクエストを処理します。
type StoreHandler struct {
	stores StoreUsecase
}

// NewStoreHandler はStoreHandlerを生成します。
func NewStoreHandler(stores StoreUsecase) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// List は全店舗を平均評価付きで返します。?search= で店名・住所を絞り込みます。
func (h *StoreHandler) List(c *gin.Context) {
	list, err := h.stores.ListAll(c.Request.Context(), c.Query("search"))
	if err != nil {
		slog.Error("failed to list stores", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Error fetching stores"})
		return
	}
	c.JSON(http.StatusOK, dto.NewStoreResList(list))
}

// Dashboard はストアオーナー自身の店舗を返します。1件も無い場合は404です。
func (h *StoreHandler) Dashboard(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token missing"})
		return
	}

	list, err := h.stores.ListOwnedBy(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list owned stores", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Store not found"})
		return
	}
	c.JSON(http.StatusOK, dto.DashboardRes{Stores: dto.NewStoreResList(list)})
}

// Ratings は自分の店舗に付いた評価を評価者名付きで返します。
func (h *StoreHandler) Ratings(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token missing"})
		return
	}

	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid store id"})
		return
	}

	views, err := h.stores.ListRatingsFor(c.Request.Context(), uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Store not found"})
			return
		}
		slog.Error("failed to list store ratings", "error", err, "store_id", id, "user_id", claims.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewRatingsRes(views))
}

// Create は管理者による店舗登録を処理します。
// - オーナーが存在しない場合は404
// - オーナーのロールがstoreでない場合は400
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	store, err := h.stores.CreateStore(c.Request.Context(), usecase.CreateStoreInput{
		Name:    req.Name,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	switch {
	case errors.Is(err, usecase.ErrInvalidStore), errors.Is(err, usecase.ErrInvalidOwner):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrOwnerNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("failed to create store", "error", err, "owner_id", req.OwnerID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Error creating store"})
		return
	}

	slog.Info("store created", "store_id", store.ID, "owner_id", store.OwnerID)
	c.JSON(http.StatusCreated, dto.NewCreateStoreRes(store))
}
