package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenClaims represents the claims carried by a password reset token.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GeneratePasswordResetToken issues a short-lived token bound to the
// user's email.
func GeneratePasswordResetToken(email string, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret key is missing")
	}

	resetTokenClaims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour * 1).Unix(),
		"type":  "password_reset_token",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, resetTokenClaims)
	return token.SignedString([]byte(secret))
}

// VerifyResetToken verifies the reset token, returning claims or an error.
func VerifyResetToken(tokenString string, secret string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		if claims.ExpiresAt < time.Now().Unix() {
			return nil, errors.New("token has expired")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
