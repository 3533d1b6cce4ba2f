// Package handler は管理者向けのHTTPハンドラーを提供します。
// ルーターで admin ロールに限定されている前提です。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating/internal/api"
	"store_rating/internal/feature/admin/domain/entity"
	"store_rating/internal/feature/admin/transport/http/dto"
	authentity "store_rating/internal/feature/auth/domain/entity"
	authhandler "store_rating/internal/feature/auth/transport/handler"
	authdto "store_rating/internal/feature/auth/transport/http/dto"
	authusecase "store_rating/internal/feature/auth/usecase"
	"store_rating/internal/platform/validation"
)

// AdminUsecase は管理者操作のユースケースを定義します。
type AdminUsecase interface {
	Dashboard(ctx context.Context) (*entity.Stats, error)
	ListUsers(ctx context.Context, f authentity.UserFilter) ([]authentity.User, error)
	ListStores(ctx context.Context) ([]entity.StoreWithOwner, error)
	AddUser(ctx context.Context, in authusecase.RegisterInput) (*authentity.User, error)
}

// AdminHandler は管理者向けのHTTPリクエストを処理します。
type AdminHandler struct {
	admin AdminUsecase
}

// NewAdminHandler はAdminHandlerを生成します。
func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Dashboard はユーザー数・店舗数・評価数とロール別人数を返します。
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		slog.Error("admin dashboard failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Error fetching dashboard data"})
		return
	}
	c.JSON(http.StatusOK, dto.NewDashboardRes(stats))
}

// ListUsers はユーザー一覧を返します。?name=&email=&address=&role= で部分一致検索します。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context(), authentity.UserFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Role:    c.Query("role"),
	})
	if err != nil {
		slog.Error("admin list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Error fetching users"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResList(users))
}

// ListStores は店舗一覧をオーナー名付きで返します。
func (h *AdminHandler) ListStores(c *gin.Context) {
	stores, err := h.admin.ListStores(c.Request.Context())
	if err != nil {
		slog.Error("admin list stores failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Error fetching stores"})
		return
	}
	c.JSON(http.StatusOK, dto.NewStoreResList(stores))
}

// AddUser は管理者によるユーザー追加を処理します。エラー対応はサインアップと同じです。
func (h *AdminHandler) AddUser(c *gin.Context) {
	var req authdto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	user, err := h.admin.AddUser(c.Request.Context(), authusecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		status, msg := authhandler.RegisterErrorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("admin add user failed", "error", err)
		}
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	slog.Info("user added by admin", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusOK, authdto.RegisterRes{Message: "User added successfully", User: authdto.NewUserRes(user)})
}
