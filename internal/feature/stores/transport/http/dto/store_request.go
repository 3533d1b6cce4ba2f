// Package dto defines data transfer objects for the stores feature's HTTP transport layer.
package dto

// CreateStoreReq is the request body for POST /admin/stores.
type CreateStoreReq struct {
	Name    string `json:"name" binding:"required,notblank,max=255"`
	Address string `json:"address" binding:"max=400"`
	OwnerID uint   `json:"owner_id" binding:"required,gt=0"`
}
