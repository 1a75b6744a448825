package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
)

// Verification failures. Both are rejected as unauthenticated by callers,
// but middleware logs them under distinct reasons.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// JWTManager issues and verifies HS256 session tokens. The signing secret is
// process-wide configuration, loaded once at startup and never re-read.
// Tokens are stateless: verification is pure and does not touch the database,
// so already-issued tokens keep working during a credential-store outage.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Claims are the identity facts embedded in a session token. They are
// trusted as-is once signature and expiry checks pass: a user deleted or
// role-changed after issuance stays valid until the token expires.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Generate issues a signed token for the user with expiry now + TTL.
func (m *JWTManager) Generate(u *entity.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Parse verifies signature and expiry. It returns ErrTokenExpired for a
// well-signed token past its expiry and ErrTokenMalformed for everything
// else (bad format, wrong signature, wrong algorithm).
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !tkn.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
