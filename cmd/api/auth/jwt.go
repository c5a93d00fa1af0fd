package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL 은 로그인 세션 토큰의 유효 기간이다.
const DefaultTTL = 7 * 24 * time.Hour

// Identity 는 검증된 세션 토큰에서 꺼낸 사용자 정보다.
type Identity struct {
	UserID  string
	Name    string
	TokenID string
}

// JWTManager 는 HS256 단일 시크릿으로 세션 토큰을 발급/검증한다.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret, issuer string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if issuer == "" {
		issuer = "choo-choo"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// NewJWTManagerFromEnv 는 환경변수로 JWTManager 를 만든다.
//
// - JWT_SECRET: HS256 시크릿 (필수)
// - JWT_ISSUER: iss 클레임 (선택, 기본값 "choo-choo")
func NewJWTManagerFromEnv() (*JWTManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return NewJWTManager(secret, os.Getenv("JWT_ISSUER"), DefaultTTL)
}

func (m *JWTManager) TTL() time.Duration { return m.ttl }

func (m *JWTManager) Sign(userID, name string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"jti":  uuid.NewString(),
		"iss":  m.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) Parse(tokenString string) (*Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing sub claim")
	}
	name, _ := claims["name"].(string)
	jti, _ := claims["jti"].(string)

	return &Identity{UserID: sub, Name: name, TokenID: jti}, nil
}
