// Package jwt signs and validates the API's HS256 access tokens.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered JWT claims plus the application's own
// fields. Role travels in the token so middleware can authorize without a
// database lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "admin" | "staff"
}

// Manager signs and parses tokens with a fixed secret, issuer and lifetime.
type Manager struct {
	secret     string
	issuer     string
	expMinutes int
}

// NewManager builds a token manager. The secret must be non-empty.
func NewManager(secret, issuer string, expMinutes int) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: empty secret")
	}
	return &Manager{secret: secret, issuer: issuer, expMinutes: expMinutes}, nil
}

// Generate signs a token carrying the user's ID and role.
func (m *Manager) Generate(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(m.expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Parse validates the token and returns userID and role. It fails on an
// invalid signature, wrong algorithm or expiry.
func (m *Manager) Parse(tokenString string) (userID, role string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid claims")
	}
	return claims.UserID, claims.Role, nil
}
