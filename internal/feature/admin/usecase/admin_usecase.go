// Package usecase implements administrator reads and writes across users, stores and ratings.
package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"store_rating/internal/feature/admin/domain/entity"
	authentity "store_rating/internal/feature/auth/domain/entity"
	authusecase "store_rating/internal/feature/auth/usecase"
	storeentity "store_rating/internal/feature/stores/domain/entity"
)

// UserDirectory is the slice of user storage the admin views need.
type UserDirectory interface {
	List(ctx context.Context, f authentity.UserFilter) ([]authentity.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]authentity.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[authentity.Role]int64, error)
}

// StoreCatalog lists and counts stores.
type StoreCatalog interface {
	List(ctx context.Context) ([]storeentity.Store, error)
	Count(ctx context.Context) (int64, error)
}

// RatingCounter counts ratings.
type RatingCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Registrar creates accounts with the same rules as signup.
type Registrar interface {
	Register(ctx context.Context, in authusecase.RegisterInput) (*authentity.User, error)
}

type adminUsecase struct {
	users     UserDirectory
	stores    StoreCatalog
	ratings   RatingCounter
	registrar Registrar
}

// NewAdminUsecase builds the admin usecase. AddUser is delegated to registrar.
func NewAdminUsecase(users UserDirectory, stores StoreCatalog, ratings RatingCounter, registrar Registrar) *adminUsecase {
	return &adminUsecase{users: users, stores: stores, ratings: ratings, registrar: registrar}
}

// Dashboard gathers the totals concurrently. Any failing read fails the whole call.
func (u *adminUsecase) Dashboard(ctx context.Context) (*entity.Stats, error) {
	var stats entity.Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := u.users.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		stats.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		n, err := u.stores.Count(ctx)
		if err != nil {
			return fmt.Errorf("count stores: %w", err)
		}
		stats.TotalStores = n
		return nil
	})
	g.Go(func() error {
		n, err := u.ratings.Count(ctx)
		if err != nil {
			return fmt.Errorf("count ratings: %w", err)
		}
		stats.TotalRatings = n
		return nil
	})
	g.Go(func() error {
		counts, err := u.users.CountByRole(ctx)
		if err != nil {
			return fmt.Errorf("count roles: %w", err)
		}
		stats.RoleCounts = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers returns users matching every non-empty filter field.
func (u *adminUsecase) ListUsers(ctx context.Context, f authentity.UserFilter) ([]authentity.User, error) {
	return u.users.List(ctx, f)
}

// ListStores returns every store with its owner's name.
// Stores whose owner record is missing are skipped.
func (u *adminUsecase) ListStores(ctx context.Context) ([]entity.StoreWithOwner, error) {
	stores, err := u.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if len(stores) == 0 {
		return []entity.StoreWithOwner{}, nil
	}

	ids := make([]uint, 0, len(stores))
	seen := make(map[uint]struct{}, len(stores))
	for _, s := range stores {
		if _, ok := seen[s.OwnerID]; ok {
			continue
		}
		seen[s.OwnerID] = struct{}{}
		ids = append(ids, s.OwnerID)
	}

	owners, err := u.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup owners: %w", err)
	}
	names := make(map[uint]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.Name
	}

	out := make([]entity.StoreWithOwner, 0, len(stores))
	for _, s := range stores {
		name, ok := names[s.OwnerID]
		if !ok {
			continue
		}
		out = append(out, entity.StoreWithOwner{ID: s.ID, Name: s.Name, Address: s.Address, OwnerName: name})
	}
	return out, nil
}

// AddUser creates an account on behalf of an administrator.
func (u *adminUsecase) AddUser(ctx context.Context, in authusecase.RegisterInput) (*authentity.User, error) {
	return u.registrar.Register(ctx, in)
}
