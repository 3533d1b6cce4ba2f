// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"store_rating/internal/feature/auth/domain/entity"
	"store_rating/internal/feature/auth/usecase"
	platformdb "store_rating/internal/platform/db"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
// postgres / sqlite のどちらでも動作します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	db := platformdb.ExpectingErrors(r.db, platformdb.IsUniqueViolation)
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if platformdb.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePassword はパスワードハッシュを置き換えます。対象が無い場合はusecase.ErrUserNotFoundを返します。
func (r *userGorm) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// FindByIDs は指定IDのユーザーをまとめて取得します。存在しないIDは結果に含まれません。
func (r *userGorm) FindByIDs(ctx context.Context, ids []uint) ([]entity.User, error) {
	users := make([]entity.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// List はフィルタに部分一致するユーザーをID順に返します。
func (r *userGorm) List(ctx context.Context, f entity.UserFilter) ([]entity.User, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	for column, value := range map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"address": f.Address,
		"role":    f.Role,
	} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		q = q.Where("LOWER("+column+") LIKE ?"+platformdb.LikeEscape, platformdb.ContainsPattern(value))
	}

	users := make([]entity.User, 0)
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count は登録ユーザーの総数を返します。
func (r *userGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountByRole はロールごとのユーザー数を返します。該当者がいないロールも 0 で含めます。
func (r *userGorm) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	var rows []struct {
		Role  entity.Role
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[entity.Role]int64, len(entity.Roles()))
	for _, role := range entity.Roles() {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
