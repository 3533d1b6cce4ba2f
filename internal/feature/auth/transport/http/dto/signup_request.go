// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for /signup and POST /admin/users.
// Role is optional; unknown values fall back to "normal".
type SignupReq struct {
	Name     string `json:"name" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Address  string `json:"address" binding:"max=400"`
	Role     string `json:"role"`
}
