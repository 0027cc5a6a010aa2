package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/davidrendon/identia-backend/internal/models"
)

const tokenLifetime = 24 * time.Hour

// GenerateToken signs a session token for the user. The issued-at claim
// lets the auth middleware reject tokens minted before the account's
// last password change.
func GenerateToken(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString, secret string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
}
