// Package entity defines the read models served to administrators.
package entity

import authentity "store_rating/internal/feature/auth/domain/entity"

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers   int64
	TotalStores  int64
	TotalRatings int64
	RoleCounts   map[authentity.Role]int64
}

// StoreWithOwner is a store listed together with its owner's name.
type StoreWithOwner struct {
	ID        uint
	Name      string
	Address   string
	OwnerName string
}
