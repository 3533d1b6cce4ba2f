// Package dto defines data transfer objects for the admin feature's HTTP transport layer.
package dto

import (
	"store_rating/internal/feature/admin/domain/entity"
	authentity "store_rating/internal/feature/auth/domain/entity"
	authdto "store_rating/internal/feature/auth/transport/http/dto"
)

// DashboardRes is returned by GET /admin/dashboard.
type DashboardRes struct {
	TotalUsers   int64            `json:"totalUsers"`
	TotalStores  int64            `json:"totalStores"`
	TotalRatings int64            `json:"totalRatings"`
	RoleCounts   map[string]int64 `json:"roleCounts"`
}

// NewDashboardRes converts Stats into the dashboard body. Every role appears in roleCounts, zero included.
func NewDashboardRes(s *entity.Stats) DashboardRes {
	roles := make(map[string]int64, len(authentity.Roles()))
	for _, r := range authentity.Roles() {
		roles[r.String()] = s.RoleCounts[r]
	}
	return DashboardRes{
		TotalUsers:   s.TotalUsers,
		TotalStores:  s.TotalStores,
		TotalRatings: s.TotalRatings,
		RoleCounts:   roles,
	}
}

// StoreRes is one row of GET /admin/stores.
type StoreRes struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	OwnerName string `json:"owner_name"`
}

// NewStoreResList converts stores with owner names into the GET /admin/stores body.
func NewStoreResList(list []entity.StoreWithOwner) []StoreRes {
	out := make([]StoreRes, 0, len(list))
	for _, s := range list {
		out = append(out, StoreRes{ID: s.ID, Name: s.Name, Address: s.Address, OwnerName: s.OwnerName})
	}
	return out
}

// NewUserResList converts users into their public views.
func NewUserResList(users []authentity.User) []authdto.UserRes {
	out := make([]authdto.UserRes, 0, len(users))
	for i := range users {
		out = append(out, authdto.NewUserRes(&users[i]))
	}
	return out
}
