package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AccessTokenValidity is used when the config does not set an expiry
const AccessTokenValidity = time.Hour * 24

func GenerateToken(userID uint, secret string, validity time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if validity <= 0 {
		validity = AccessTokenValidity
	}
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(validity).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
