package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the subset of session token claims the application cares about.
type Claims struct {
	UserId   int
	Username string
}

// TokenValidator issues and validates HMAC-signed session tokens.
type TokenValidator struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenValidator(secret string, ttl time.Duration) TokenValidator {
	return TokenValidator{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed session token for the given user.
func (v TokenValidator) Issue(userId int, username string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userId,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(v.ttl).Unix(),
	})
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token string and returns its claims when the signature
// and expiry check out.
func (v TokenValidator) Validate(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userId, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	username, _ := mapClaims["username"].(string)

	return Claims{UserId: int(userId), Username: username}, nil
}
