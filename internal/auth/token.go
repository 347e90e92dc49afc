package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken はトークンの検証に失敗したことを表す。
var ErrInvalidToken = errors.New("invalid token")

// Claims はトークンに含めるクレーム。
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService はHS256署名のトークンを発行・検証する。
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService はTokenServiceを生成する。
// ttlが0の場合は有効期限なしのトークンを発行する。
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue はユーザーIDを主体とするトークンを発行する。
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、主体のユーザーIDを返す。
// 形式不正・署名不一致・HS256以外のアルゴリズム・期限切れ・主体なしはErrInvalidTokenをラップして返す。
func (s *TokenService) Verify(token string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing userId claim", ErrInvalidToken)
	}
	return claims.UserID, nil
}
