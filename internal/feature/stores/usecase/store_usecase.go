// Package usecase implements the store registry: listings with averages,
// owner-scoped views and admin store creation.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authentity "store_rating/internal/feature/auth/domain/entity"
	authusecase "store_rating/internal/feature/auth/usecase"
	"store_rating/internal/feature/stores/domain/entity"
)

// StoreRepository abstracts store persistence.
type StoreRepository interface {
	Create(ctx context.Context, s *entity.Store) error
	// FindByID returns ErrStoreNotFound when the store does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Store, error)
	// ListWithAverage returns every store whose name or address contains search (empty matches all).
	ListWithAverage(ctx context.Context, search string) ([]entity.Summary, error)
	ListOwnedBy(ctx context.Context, ownerID uint) ([]entity.Summary, error)
	RatingsFor(ctx context.Context, storeID uint) ([]entity.RatingView, error)
}

// OwnerLookup resolves the user referenced as a store owner.
type OwnerLookup interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// CreateStoreInput is the input for CreateStore.
type CreateStoreInput struct {
	Name    string
	Address string
	OwnerID uint
}

type storeUsecase struct {
	stores StoreRepository
	owners OwnerLookup
}

// NewStoreUsecase builds the store registry over stores and the owner lookup used by CreateStore.
func NewStoreUsecase(stores StoreRepository, owners OwnerLookup) *storeUsecase {
	return &storeUsecase{stores: stores, owners: owners}
}

// ListAll returns all stores with their current average rating.
func (u *storeUsecase) ListAll(ctx context.Context, search string) ([]entity.Summary, error) {
	return u.stores.ListWithAverage(ctx, strings.TrimSpace(search))
}

// ListOwnedBy returns the caller's stores. An owner with no stores gets an empty slice.
func (u *storeUsecase) ListOwnedBy(ctx context.Context, ownerID uint) ([]entity.Summary, error) {
	return u.stores.ListOwnedBy(ctx, ownerID)
}

// ListRatingsFor returns the ratings on storeID after confirming ownerID owns it.
// A store owned by someone else is reported as ErrStoreNotFound.
func (u *storeUsecase) ListRatingsFor(ctx context.Context, storeID, ownerID uint) ([]entity.RatingView, error) {
	store, err := u.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != ownerID {
		return nil, ErrStoreNotFound
	}
	return u.stores.RatingsFor(ctx, storeID)
}

// CreateStore registers a new store. The owner must exist and hold role "store".
func (u *storeUsecase) CreateStore(ctx context.Context, in CreateStoreInput) (*entity.Store, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidStore
	}

	owner, err := u.owners.FindByID(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("lookup owner %d: %w", in.OwnerID, err)
	}
	if owner.Role != authentity.RoleStore {
		return nil, ErrInvalidOwner
	}

	store := &entity.Store{
		Name:    name,
		Address: strings.TrimSpace(in.Address),
		OwnerID: owner.ID,
	}
	if err := u.stores.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}
