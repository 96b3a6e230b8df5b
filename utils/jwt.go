package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"riggerbackend/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "rigger-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT for the given subject (user ID) and role.
// The token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ParseToken verifies the token signature and returns the subject and role.
func ParseToken(tokenString string) (subject, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	r, _ := claims["role"].(string)
	if sub == "" {
		return "", "", errors.New("missing subject claim")
	}
	return sub, r, nil
}

// HashToken computes a SHA-256 hash of the token string. Only the hash is
// persisted, so a stolen database copy cannot be replayed as a session.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
