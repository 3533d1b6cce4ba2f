package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_rating/internal/feature/admin/domain/entity"
	authentity "store_rating/internal/feature/auth/domain/entity"
	authusecase "store_rating/internal/feature/auth/usecase"
	storeentity "store_rating/internal/feature/stores/domain/entity"
)

type stubUsers struct {
	users    []authentity.User
	count    int64
	roles    map[authentity.Role]int64
	countErr error
	gotIDs   []uint
	filter   authentity.UserFilter
}

func (s *stubUsers) List(_ context.Context, f authentity.UserFilter) ([]authentity.User, error) {
	s.filter = f
	return s.users, nil
}

func (s *stubUsers) FindByIDs(_ context.Context, ids []uint) ([]authentity.User, error) {
	s.gotIDs = ids
	var out []authentity.User
	for _, u := range s.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (s *stubUsers) Count(context.Context) (int64, error) { return s.count, s.countErr }

func (s *stubUsers) CountByRole(context.Context) (map[authentity.Role]int64, error) {
	return s.roles, nil
}

type stubStores struct {
	stores []storeentity.Store
	err    error
}

func (s *stubStores) List(context.Context) ([]storeentity.Store, error) { return s.stores, s.err }
func (s *stubStores) Count(context.Context) (int64, error)              { return int64(len(s.stores)), s.err }

type stubRatings struct{ n int64 }

func (s stubRatings) Count(context.Context) (int64, error) { return s.n, nil }

type stubRegistrar struct {
	in authusecase.RegisterInput
}

func (s *stubRegistrar) Register(_ context.Context, in authusecase.RegisterInput) (*authentity.User, error) {
	s.in = in
	return &authentity.User{ID: 9, Name: in.Name, Email: in.Email, Role: authentity.ResolveRole(in.Role)}, nil
}

func TestAdminUsecase_Dashboard(t *testing.T) {
	roles := map[authentity.Role]int64{authentity.RoleNormal: 3, authentity.RoleStore: 1, authentity.RoleAdmin: 1}

	t.Run("gathers totals", func(t *testing.T) {
		users := &stubUsers{count: 5, roles: roles}
		stores := &stubStores{stores: []storeentity.Store{{ID: 1}, {ID: 2}}}
		uc := NewAdminUsecase(users, stores, stubRatings{n: 7}, nil)

		stats, err := uc.Dashboard(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{TotalUsers: 5, TotalStores: 2, TotalRatings: 7, RoleCounts: roles}, stats)
	})

	t.Run("any failing read fails the call", func(t *testing.T) {
		boom := errors.New("db down")
		users := &stubUsers{countErr: boom, roles: roles}
		uc := NewAdminUsecase(users, &stubStores{}, stubRatings{}, nil)

		_, err := uc.Dashboard(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestAdminUsecase_ListUsers(t *testing.T) {
	users := &stubUsers{users: []authentity.User{{ID: 1, Name: "Alice"}}}
	uc := NewAdminUsecase(users, &stubStores{}, stubRatings{}, nil)

	f := authentity.UserFilter{Name: "ali", Role: "normal"}
	got, err := uc.ListUsers(context.Background(), f)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, f, users.filter)
}

func TestAdminUsecase_ListStores(t *testing.T) {
	t.Run("joins owner names and skips orphaned stores", func(t *testing.T) {
		users := &stubUsers{users: []authentity.User{{ID: 10, Name: "Olivia"}}}
		stores := &stubStores{stores: []storeentity.Store{
			{ID: 1, Name: "Cafe", Address: "1 Main St", OwnerID: 10},
			{ID: 2, Name: "Ghost", OwnerID: 11},
			{ID: 3, Name: "Deli", OwnerID: 10},
		}}
		uc := NewAdminUsecase(users, stores, stubRatings{}, nil)

		got, err := uc.ListStores(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []entity.StoreWithOwner{
			{ID: 1, Name: "Cafe", Address: "1 Main St", OwnerName: "Olivia"},
			{ID: 3, Name: "Deli", OwnerName: "Olivia"},
		}, got)
		assert.ElementsMatch(t, []uint{10, 11}, users.gotIDs, "owner ids are looked up once each")
	})

	t.Run("no stores", func(t *testing.T) {
		users := &stubUsers{}
		uc := NewAdminUsecase(users, &stubStores{}, stubRatings{}, nil)

		got, err := uc.ListStores(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Nil(t, users.gotIDs)
	})

	t.Run("store listing failure", func(t *testing.T) {
		boom := errors.New("db down")
		uc := NewAdminUsecase(&stubUsers{}, &stubStores{err: boom}, stubRatings{}, nil)

		_, err := uc.ListStores(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestAdminUsecase_AddUser(t *testing.T) {
	reg := &stubRegistrar{}
	uc := NewAdminUsecase(&stubUsers{}, &stubStores{}, stubRatings{}, reg)

	u, err := uc.AddUser(context.Background(), authusecase.RegisterInput{Name: "Sam", Email: "s@x.com", Password: "password123", Role: "store"})
	require.NoError(t, err)
	assert.Equal(t, authentity.RoleStore, u.Role)
	assert.Equal(t, "Sam", reg.in.Name)
}
