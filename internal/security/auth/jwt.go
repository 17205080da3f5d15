package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yourorg/recruitdesk/internal/domain"
)

// Claims is the identity payload embedded in a token. The json field names
// are part of the wire contract: {id, companyId, role}.
type Claims struct {
	UserID    string `json:"id"`
	CompanyID string `json:"companyId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for every verification failure. Expired and
// malformed tokens collapse into the same signal so callers learn nothing
// about which check failed.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies signed, time-limited tokens. Verification
// is purely computational: no I/O, no per-request store lookups.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	if secret == "" {
		secret = "change-me-in-production"
	}
	if issuer == "" {
		issuer = "recruitdesk"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue signs a token carrying the principal's identity, expiring after the
// configured TTL.
func (tm *TokenManager) Issue(p domain.Principal) (string, error) {
	if p.UserID == "" || p.CompanyID == "" {
		return "", fmt.Errorf("user id and company id required")
	}
	now := time.Now()
	claims := Claims{
		UserID:    p.UserID,
		CompanyID: p.CompanyID,
		Role:      string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			Issuer:    tm.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks signature integrity and expiry and returns the decoded claims.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// ExtractToken pulls the bearer token out of an Authorization header value.
// A missing header, a non-Bearer scheme, and an empty token all fail the
// same way.
func ExtractToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
