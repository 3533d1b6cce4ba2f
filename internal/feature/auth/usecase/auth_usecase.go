// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"store_rating/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
	// maxPasswordLength は bcrypt が扱えるバイト数の上限です。
	maxPasswordLength = 72

	// dummyHash はユーザーが存在しない場合にも bcrypt 比較を行うためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。メールアドレス重複時は ErrEmailAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は正規化済みメールアドレスでユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はIDでユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword はパスワードハッシュのみを更新します。
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

// TokenIssuer はアクセストークン発行のインターフェースです。
type TokenIssuer interface {
	Issue(userID uint, role string) (string, error)
}

// RegisterInput はユーザー登録の入力です。Role は未指定・不明な値の場合 normal になります。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// LoginResult はログイン成功時の結果です。
type LoginResult struct {
	Token string
	User  *entity.User
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	tokens   TokenIssuer
	hashCost int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// validatePassword はパスワードが長さの要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: must be at most %d bytes long", ErrWeakPassword, maxPasswordLength)
	}
	return nil
}

// VerifyPassword は bcrypt の定数時間比較でパスワードを検証します。
func VerifyPassword(user *entity.User, raw string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(raw)) == nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// サインアップと管理者によるユーザー追加の両方から呼ばれます。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if name == "" || email == "" {
		return nil, ErrInvalidUser
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Address:  strings.TrimSpace(in.Address),
		Role:     entity.ResolveRole(in.Role),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にアクセストークンとユーザーを返します。
// ユーザーが存在しない場合は ErrUserNotFound、パスワード不一致の場合は ErrInvalidPassword を返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// 応答時間を揃えるため、ユーザーが存在しない場合もbcrypt比較を実行する
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		}
		return nil, err
	}

	if !VerifyPassword(user, password) {
		return nil, ErrInvalidPassword
	}

	token, err := u.tokens.Issue(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Profile はトークンのユーザーIDに対応するユーザーを返します。
func (u *authUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdatePassword は現在のパスワードを検証した上でハッシュを置き換えます。
// 変更前に発行されたトークンは期限まで有効なままです。
func (u *authUsecase) UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrMissingPasswords
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(user, oldPassword) {
		return ErrInvalidPassword
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), u.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.UpdatePassword(ctx, userID, string(hashed))
}
