// Package auth mints and parses the signed tokens used by the service:
// access tokens, refresh tokens, and account-confirmation tokens. All three
// share the same HS256 claim shape and differ only in validity.
package auth

import (
	"errors"
	"time"

	"github.com/easylend/userservice/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims includes the registered claims plus the user identity the token is
// bound to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

// GenerateToken mints a signed HS256 token bound to the given user identity,
// expiring after validityDuration. Each token carries a unique jti.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetClaimsFromToken verifies the signature and expiry of tokenString and
// returns its claims. Expired tokens yield common.ErrTokenExpired; any other
// verification failure yields common.ErrInvalidToken.
func GetClaimsFromToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GetUserIDFromToken is a convenience wrapper returning only the bound user ID.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := GetClaimsFromToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
