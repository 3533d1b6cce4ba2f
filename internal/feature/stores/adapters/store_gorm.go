// Package adapters はstoresフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store_rating/internal/feature/stores/domain/entity"
	"store_rating/internal/feature/stores/usecase"
	platformdb "store_rating/internal/platform/db"
)

// storeGorm はStoreRepositoryのGORM実装です。
type storeGorm struct {
	db *gorm.DB
}

var _ usecase.StoreRepository = (*storeGorm)(nil)

// NewStoreGorm は指定されたDB接続でstoreGormを生成します。
func NewStoreGorm(db *gorm.DB) *storeGorm {
	return &storeGorm{db: db}
}

// summaryRow は集計クエリの1行です。
type summaryRow struct {
	ID            uint
	Name          string
	Address       string
	OwnerID       uint
	AverageRating decimal.NullDecimal
}

func (r summaryRow) toEntity() entity.Summary {
	return entity.Summary{
		ID:            r.ID,
		Name:          r.Name,
		Address:       r.Address,
		OwnerID:       r.OwnerID,
		AverageRating: entity.RoundAverage(r.AverageRating),
	}
}

// Create は店舗を追加します。オーナーが存在しない場合はusecase.ErrOwnerNotFoundを返します。
func (r *storeGorm) Create(ctx context.Context, s *entity.Store) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error; err != nil {
		if platformdb.IsForeignKeyViolation(err) {
			return usecase.ErrOwnerNotFound
		}
		return err
	}
	return nil
}

// FindByID はIDで店舗を取得します。
func (r *storeGorm) FindByID(ctx context.Context, id uint) (*entity.Store, error) {
	var s entity.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

// summaries は店舗と評価を LEFT JOIN して平均値を集計するクエリを組み立てます。
// 評価が無い店舗の平均は NULL になります。
func (r *storeGorm) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("stores").
		Select("stores.id, stores.name, stores.address, stores.owner_id, AVG(ratings.rating) AS average_rating").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id, stores.name, stores.address, stores.owner_id").
		Order("stores.id ASC")
}

func scanSummaries(q *gorm.DB) ([]entity.Summary, error) {
	var rows []summaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// ListWithAverage は全店舗を平均評価付きで返します。search は店名・住所の部分一致です。
func (r *storeGorm) ListWithAverage(ctx context.Context, search string) ([]entity.Summary, error) {
	q := r.summaries(ctx)
	if search != "" {
		pattern := platformdb.ContainsPattern(search)
		q = q.Where(
			"LOWER(stores.name) LIKE ?"+platformdb.LikeEscape+" OR LOWER(stores.address) LIKE ?"+platformdb.LikeEscape,
			pattern, pattern,
		)
	}
	return scanSummaries(q)
}

// ListOwnedBy は指定オーナーの店舗を平均評価付きで返します。
func (r *storeGorm) ListOwnedBy(ctx context.Context, ownerID uint) ([]entity.Summary, error) {
	return scanSummaries(r.summaries(ctx).Where("stores.owner_id = ?", ownerID))
}

// RatingsFor は店舗に付いた評価を評価者名付きで返します。
func (r *storeGorm) RatingsFor(ctx context.Context, storeID uint) ([]entity.RatingView, error) {
	views := make([]entity.RatingView, 0)
	if err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.id, ratings.user_id, ratings.rating, users.name AS user_name").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.id ASC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// List は全店舗を ID 順に返します（平均値なし）。
func (r *storeGorm) List(ctx context.Context) ([]entity.Store, error) {
	stores := make([]entity.Store, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Count は店舗の総数を返します。
func (r *storeGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Store{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
