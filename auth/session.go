package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "hm_session"

var ErrInvalidSession = errors.New("invalid or expired session")

// IssueSession signs a session token for the given user.
func IssueSession(secret string, ttl time.Duration, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  float64(user.ID),
		"username": user.Username,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSession verifies a session token and returns the user identity it
// carries. Any parse, signature, or expiry problem comes back as
// ErrInvalidSession.
func ParseSession(secret, tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidSession
	}

	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, "", ErrInvalidSession
	}
	username, _ := claims["username"].(string)

	return uint(id), username, nil
}
