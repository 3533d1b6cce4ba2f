package dto

import "store_rating/internal/feature/auth/domain/entity"

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

// NewUserRes builds the public view of u.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role.String(),
		Address: u.Address,
	}
}

// RegisterRes is returned by signup and admin add-user.
type RegisterRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}

// LoginRes is returned by a successful login.
type LoginRes struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	Role    string  `json:"role"`
	User    UserRes `json:"user"`
}
