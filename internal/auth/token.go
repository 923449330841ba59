package auth

import (
	"time"

	"getwealthos-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Claims carried in the bearer token, mirroring the session user shape so
// the two auth paths produce the same Locals value.
type Claims struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Country  string `json:"country"`
	jwt.RegisteredClaims
}

// IssueToken signs a 24h HS256 token for the user.
func IssueToken(secret string, u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   u.UserID.String(),
		Fullname: u.Fullname,
		Email:    u.Email,
		Country:  u.CountryCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies a bearer token and returns the session user map it
// encodes. Expired or tampered tokens come back as ErrNotAuthenticated.
func ParseToken(secret, tokenString string) (map[string]interface{}, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	return map[string]interface{}{
		"user_id":  claims.UserID,
		"fullname": claims.Fullname,
		"email":    claims.Email,
		"country":  claims.Country,
	}, nil
}
