package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"store_rating/internal/feature/admin/domain/entity"
	authentity "store_rating/internal/feature/auth/domain/entity"
	authusecase "store_rating/internal/feature/auth/usecase"
	"store_rating/internal/platform/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type mockAdminUsecase struct {
	DashboardFunc  func() (*entity.Stats, error)
	ListUsersFunc  func(f authentity.UserFilter) ([]authentity.User, error)
	ListStoresFunc func() ([]entity.StoreWithOwner, error)
	AddUserFunc    func(in authusecase.RegisterInput) (*authentity.User, error)
}

func (m *mockAdminUsecase) Dashboard(context.Context) (*entity.Stats, error) {
	return m.DashboardFunc()
}

func (m *mockAdminUsecase) ListUsers(_ context.Context, f authentity.UserFilter) ([]authentity.User, error) {
	return m.ListUsersFunc(f)
}

func (m *mockAdminUsecase) ListStores(context.Context) ([]entity.StoreWithOwner, error) {
	return m.ListStoresFunc()
}

func (m *mockAdminUsecase) AddUser(_ context.Context, in authusecase.RegisterInput) (*authentity.User, error) {
	return m.AddUserFunc(in)
}

func newRouter(h *AdminHandler) *gin.Engine {
	r := gin.New()
	r.GET("/admin/dashboard", h.Dashboard)
	r.GET("/admin/users", h.ListUsers)
	r.POST("/admin/users", h.AddUser)
	r.GET("/admin/stores", h.ListStores)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminHandler_Dashboard(t *testing.T) {
	t.Run("success fills every role", func(t *testing.T) {
		h := NewAdminHandler(&mockAdminUsecase{DashboardFunc: func() (*entity.Stats, error) {
			return &entity.Stats{
				TotalUsers: 4, TotalStores: 2, TotalRatings: 6,
				RoleCounts: map[authentity.Role]int64{authentity.RoleNormal: 3, authentity.RoleAdmin: 1},
			}, nil
		}})
		w := do(newRouter(h), http.MethodGet, "/admin/dashboard", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"totalUsers":4,"totalStores":2,"totalRatings":6,
			"roleCounts":{"normal":3,"store":0,"admin":1}}`, w.Body.String())
	})

	t.Run("failure", func(t *testing.T) {
		h := NewAdminHandler(&mockAdminUsecase{DashboardFunc: func() (*entity.Stats, error) {
			return nil, errors.New("db down")
		}})
		w := do(newRouter(h), http.MethodGet, "/admin/dashboard", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Error fetching dashboard data"}`, w.Body.String())
	})
}

func TestAdminHandler_ListUsers(t *testing.T) {
	var got authentity.UserFilter
	h := NewAdminHandler(&mockAdminUsecase{ListUsersFunc: func(f authentity.UserFilter) ([]authentity.User, error) {
		got = f
		return []authentity.User{{ID: 1, Name: "Alice", Email: "a@x.com", Role: authentity.RoleNormal, Password: "hash"}}, nil
	}})

	w := do(newRouter(h), http.MethodGet, "/admin/users?name=ali&role=normal", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, authentity.UserFilter{Name: "ali", Role: "normal"}, got)
	assert.JSONEq(t, `[{"id":1,"name":"Alice","email":"a@x.com","role":"normal","address":""}]`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestAdminHandler_ListStores(t *testing.T) {
	h := NewAdminHandler(&mockAdminUsecase{ListStoresFunc: func() ([]entity.StoreWithOwner, error) {
		return []entity.StoreWithOwner{{ID: 1, Name: "Cafe", Address: "1 Main St", OwnerName: "Olivia"}}, nil
	}})
	w := do(newRouter(h), http.MethodGet, "/admin/stores", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Cafe","address":"1 Main St","owner_name":"Olivia"}]`, w.Body.String())
}

func TestAdminHandler_AddUser(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		addFunc        func(in authusecase.RegisterInput) (*authentity.User, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: gin.H{"name": "Sam", "email": "s@x.com", "password": "password123", "role": "store"},
			addFunc: func(in authusecase.RegisterInput) (*authentity.User, error) {
				return &authentity.User{ID: 5, Name: in.Name, Email: in.Email, Role: authentity.RoleStore}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"message":"User added successfully",
				"user":{"id":5,"name":"Sam","email":"s@x.com","role":"store","address":""}}`,
		},
		{
			name:           "invalid body",
			body:           gin.H{"name": "Sam", "email": "nope", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"email must be a valid email address"}`,
		},
		{
			name: "duplicate email",
			body: gin.H{"name": "Sam", "email": "s@x.com", "password": "password123"},
			addFunc: func(authusecase.RegisterInput) (*authentity.User, error) {
				return nil, authusecase.ErrEmailAlreadyExists
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Email already registered"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminHandler(&mockAdminUsecase{AddUserFunc: tt.addFunc})
			w := do(newRouter(h), http.MethodPost, "/admin/users", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
