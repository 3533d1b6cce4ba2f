// Package jwtmw はアクセストークンの発行・検証と、それを使う Gin ミドルウェアを提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL はアクセストークンの有効期間です。リフレッシュトークンは存在しません。
const TokenTTL = time.Hour

// ErrInvalidToken は署名不一致・期限切れ・不正なペイロードなど、検証に失敗した場合に返されます。
var ErrInvalidToken = errors.New("invalid token")

// Claims はアクセストークンのペイロードです。
type Claims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service は HS256 でトークンを署名・検証します。
// サーバー側にセッションを持たないため、トークンは期限まで有効です。
type Service struct {
	secret []byte
	ttl    time.Duration
	roles  map[string]struct{}
	now    func() time.Time
}

// NewService は secret で署名する Service を生成します。
// allowedRoles を指定した場合、それ以外のロールを持つトークンは検証に失敗します。
func NewService(secret string, allowedRoles ...string) *Service {
	s := &Service{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
	if len(allowedRoles) > 0 {
		s.roles = make(map[string]struct{}, len(allowedRoles))
		for _, r := range allowedRoles {
			s.roles[r] = struct{}{}
		}
	}
	return s
}

// Issue は {id, role, iat, exp} を含む署名済みトークンを返します。
func (s *Service) Issue(userID uint, role string) (string, error) {
	if userID == 0 || strings.TrimSpace(role) == "" {
		return "", errors.New("jwt: user id and role are required")
	}
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、クレームを返します。失敗時は常に ErrInvalidToken を返します。
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == 0 || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	if s.roles != nil {
		if _, ok := s.roles[claims.Role]; !ok {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}
