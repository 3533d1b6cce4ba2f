package adapters

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "store_rating/internal/feature/auth/domain/entity"
	ratingentity "store_rating/internal/feature/ratings/domain/entity"
	"store_rating/internal/feature/stores/domain/entity"
	"store_rating/internal/feature/stores/usecase"
	platformdb "store_rating/internal/platform/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(platformdb.SQLiteDSN(":memory:")), platformdb.GormConfig(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&authentity.User{}, &entity.Store{}, &ratingentity.Rating{}), "failed to migrate tables")
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role authentity.Role) *authentity.User {
	t.Helper()
	u := &authentity.User{Name: name, Email: email, Password: "hash", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRating(t *testing.T, db *gorm.DB, userID, storeID uint, score int) {
	t.Helper()
	require.NoError(t, db.Omit("User", "Store").Create(&ratingentity.Rating{UserID: userID, StoreID: storeID, Score: score}).Error)
}

func TestStoreGorm_Create(t *testing.T) {
	t.Run("persists store", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewStoreGorm(db)
		owner := seedUser(t, db, "Owner", "owner@example.com", authentity.RoleStore)

		s := &entity.Store{Name: "Cafe", Address: "1 Main St", OwnerID: owner.ID}
		require.NoError(t, repo.Create(context.Background(), s))
		assert.NotZero(t, s.ID)

		found, err := repo.FindByID(context.Background(), s.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cafe", found.Name)
		assert.Equal(t, owner.ID, found.OwnerID)
	})

	t.Run("unknown owner is a foreign key violation", func(t *testing.T) {
		repo := NewStoreGorm(setupTestDB(t))

		err := repo.Create(context.Background(), &entity.Store{Name: "Ghost", OwnerID: 999})
		assert.ErrorIs(t, err, usecase.ErrOwnerNotFound)
	})
}

func TestStoreGorm_FindByID_NotFound(t *testing.T) {
	repo := NewStoreGorm(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, usecase.ErrStoreNotFound)
}

func TestStoreGorm_ListWithAverage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreGorm(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com", authentity.RoleStore)
	alice := seedUser(t, db, "Alice", "alice@example.com", authentity.RoleNormal)
	bob := seedUser(t, db, "Bob", "bob@example.com", authentity.RoleNormal)
	carol := seedUser(t, db, "Carol", "carol@example.com", authentity.RoleNormal)

	cafe := &entity.Store{Name: "Blue Cafe", Address: "1 Main St", OwnerID: owner.ID}
	deli := &entity.Store{Name: "Deli 100%", Address: "2 Side Rd", OwnerID: owner.ID}
	empty := &entity.Store{Name: "Empty Shop", Address: "3 Main St", OwnerID: owner.ID}
	for _, s := range []*entity.Store{cafe, deli, empty} {
		require.NoError(t, repo.Create(ctx, s))
	}

	seedRating(t, db, alice.ID, cafe.ID, 4)
	seedRating(t, db, bob.ID, cafe.ID, 5)
	seedRating(t, db, alice.ID, deli.ID, 5)
	seedRating(t, db, bob.ID, deli.ID, 4)
	seedRating(t, db, carol.ID, deli.ID, 4)

	t.Run("all stores with averages", func(t *testing.T) {
		got, err := repo.ListWithAverage(ctx, "")
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, cafe.ID, got[0].ID)
		require.NotNil(t, got[0].AverageRating)
		assert.Equal(t, "4.50", got[0].AverageRating.StringFixed(2))

		require.NotNil(t, got[1].AverageRating)
		assert.Equal(t, "4.33", got[1].AverageRating.StringFixed(2))

		assert.Nil(t, got[2].AverageRating, "store without ratings has no average")
	})

	t.Run("search matches name or address case-insensitively", func(t *testing.T) {
		got, err := repo.ListWithAverage(ctx, "main st")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, cafe.ID, got[0].ID)
		assert.Equal(t, empty.ID, got[1].ID)

		got, err = repo.ListWithAverage(ctx, "BLUE")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, cafe.ID, got[0].ID)
	})

	t.Run("wildcards in search are literal", func(t *testing.T) {
		got, err := repo.ListWithAverage(ctx, "100%")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, deli.ID, got[0].ID)

		got, err = repo.ListWithAverage(ctx, "%")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		got, err := repo.ListWithAverage(ctx, "nowhere")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStoreGorm_ListOwnedBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreGorm(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com", authentity.RoleStore)
	other := seedUser(t, db, "Other", "other@example.com", authentity.RoleStore)
	rater := seedUser(t, db, "Rater", "rater@example.com", authentity.RoleNormal)

	mine := &entity.Store{Name: "Mine", OwnerID: owner.ID}
	theirs := &entity.Store{Name: "Theirs", OwnerID: other.ID}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirs))
	seedRating(t, db, rater.ID, mine.ID, 3)

	got, err := repo.ListOwnedBy(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mine", got[0].Name)
	require.NotNil(t, got[0].AverageRating)
	assert.Equal(t, "3.00", got[0].AverageRating.StringFixed(2))

	none, err := repo.ListOwnedBy(ctx, rater.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreGorm_RatingsFor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreGorm(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com", authentity.RoleStore)
	alice := seedUser(t, db, "Alice", "alice@example.com", authentity.RoleNormal)
	bob := seedUser(t, db, "Bob", "bob@example.com", authentity.RoleNormal)

	s := &entity.Store{Name: "Cafe", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, s))
	seedRating(t, db, alice.ID, s.ID, 2)
	seedRating(t, db, bob.ID, s.ID, 5)

	views, err := repo.RatingsFor(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, alice.ID, views[0].UserID)
	assert.Equal(t, "Alice", views[0].UserName)
	assert.Equal(t, 2, views[0].Rating)
	assert.Equal(t, "Bob", views[1].UserName)
	assert.Equal(t, 5, views[1].Rating)

	empty, err := repo.RatingsFor(ctx, s.ID+1)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStoreGorm_ListAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStoreGorm(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	owner := seedUser(t, db, "Owner", "owner@example.com", authentity.RoleStore)
	require.NoError(t, repo.Create(ctx, &entity.Store{Name: "A", OwnerID: owner.ID}))
	require.NoError(t, repo.Create(ctx, &entity.Store{Name: "B", OwnerID: owner.ID}))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stores, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "A", stores[0].Name)
	assert.Equal(t, "B", stores[1].Name)
}
