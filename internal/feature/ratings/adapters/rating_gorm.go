// Package adapters はratingsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store_rating/internal/feature/ratings/domain/entity"
	"store_rating/internal/feature/ratings/usecase"
	platformdb "store_rating/internal/platform/db"
)

// ratingGorm はRatingRepositoryのGORM実装です。
// (user_id, store_id) の一意性はテーブルの一意インデックスで保証します。
type ratingGorm struct {
	db *gorm.DB
}

var _ usecase.RatingRepository = (*ratingGorm)(nil)

// NewRatingGorm は指定されたDB接続でratingGormを生成します。
func NewRatingGorm(db *gorm.DB) *ratingGorm {
	return &ratingGorm{db: db}
}

// Insert は評価を追加します。
// 一意制約違反は usecase.ErrRatingConflict、外部キー違反は usecase.ErrStoreNotFound に変換します。
func (r *ratingGorm) Insert(ctx context.Context, rating *entity.Rating) error {
	db := platformdb.ExpectingErrors(r.db, platformdb.IsUniqueViolation, platformdb.IsForeignKeyViolation)
	err := db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error
	switch {
	case err == nil:
		return nil
	case platformdb.IsUniqueViolation(err):
		return usecase.ErrRatingConflict
	case platformdb.IsForeignKeyViolation(err):
		return usecase.ErrStoreNotFound
	default:
		return err
	}
}

// UpdateScore は既存評価のスコアを書き換え、更新後の行を返します。
func (r *ratingGorm) UpdateScore(ctx context.Context, userID, storeID uint, score int) (*entity.Rating, error) {
	var out *entity.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Rating{}).
			Where("user_id = ? AND store_id = ?", userID, storeID).
			Update("rating", score)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrRatingNotFound
		}

		var rating entity.Rating
		if err := tx.Where("user_id = ? AND store_id = ?", userID, storeID).First(&rating).Error; err != nil {
			return err
		}
		out = &rating
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AverageFor は店舗の平均評価を返します。評価が無い場合は Valid=false です。
func (r *ratingGorm) AverageFor(ctx context.Context, storeID uint) (decimal.NullDecimal, error) {
	var avg decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Select("AVG(rating)").
		Where("store_id = ?", storeID).
		Row().
		Scan(&avg)
	return avg, err
}

// ListByUser はユーザーが付けた評価を店舗ID順に返します。
func (r *ratingGorm) ListByUser(ctx context.Context, userID uint) ([]entity.UserRating, error) {
	out := make([]entity.UserRating, 0)
	if err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Select("store_id, rating").
		Where("user_id = ?", userID).
		Order("store_id ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count は評価の総数を返します。
func (r *ratingGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Rating{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
