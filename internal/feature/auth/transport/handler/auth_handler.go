// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating/internal/api"
	"store_rating/internal/feature/auth/domain/entity"
	"store_rating/internal/feature/auth/transport/http/dto"
	"store_rating/internal/feature/auth/usecase"
	jwtmw "store_rating/internal/platform/jwt"
	"store_rating/internal/platform/validation"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400
// - メール重複時は409
// - 成功時は200と登録ユーザーを返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		status, msg := RegisterErrorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("signup rejected", "error", err, "remote_addr", c.ClientIP())
		}
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "role", user.Role, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.RegisterRes{Message: "User registered successfully", User: dto.NewUserRes(user)})
}

// RegisterErrorStatus は登録処理のエラーをHTTPステータスとメッセージに変換します。
// 管理者によるユーザー追加でも同じ対応表を使います。
func RegisterErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, usecase.ErrInvalidUser), errors.Is(err, usecase.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Error registering user"
	}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 該当ユーザーなしは400、パスワード不一致は401
// - 成功時はトークン・ロール・ユーザーを返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		slog.Warn("login failed: unknown user", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "User not found"})
		return
	case errors.Is(err, usecase.ErrInvalidPassword):
		slog.Warn("login failed: invalid password", "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid password"})
		return
	case err != nil:
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Login failed"})
		return
	}

	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{
		Message: "Login successful",
		Token:   res.Token,
		Role:    res.User.Role.String(),
		User:    dto.NewUserRes(res.User),
	})
}

// Profile はトークンのユーザー情報を返します。
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token missing"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
			return
		}
		slog.Error("profile lookup failed", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdatePassword は現在のパスワードを確認した上でパスワードを変更します。
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Token missing"})
		return
	}

	var req dto.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Please provide both old and new passwords."})
		return
	}

	err := h.auth.UpdatePassword(c.Request.Context(), claims.UserID, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, usecase.ErrMissingPasswords):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Please provide both old and new passwords."})
	case errors.Is(err, usecase.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found."})
	case errors.Is(err, usecase.ErrInvalidPassword):
		slog.Warn("password update rejected", "user_id", claims.UserID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Old password is incorrect."})
	case err != nil:
		slog.Error("password update failed", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Server error"})
	default:
		slog.Info("password updated", "user_id", claims.UserID)
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated successfully."})
	}
}
