package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"forotrix/config"

	"github.com/golang-jwt/jwt"
)

func accessTTL() time.Duration {
	if d, err := time.ParseDuration(config.AppConfig.JWTAccessTTL); err == nil {
		return d
	}
	return 15 * time.Minute
}

func refreshTTL() time.Duration {
	if d, err := time.ParseDuration(config.AppConfig.JWTRefreshTTL); err == nil {
		return d
	}
	return 7 * 24 * time.Hour
}

// GenerateAccessToken creates a signed short-lived JWT carrying the user id and role.
func GenerateAccessToken(subject, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(accessTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTAccessSecret))
}

// GenerateRefreshToken creates a signed long-lived JWT carrying only the user id.
func GenerateRefreshToken(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(refreshTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTRefreshSecret))
}

// HashToken computes a SHA-256 hash of the token string. Refresh tokens are
// stored hashed so a database leak does not leak usable sessions.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func parseWithSecret(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
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

// ValidateAccessToken verifies an access token and returns its subject and role.
func ValidateAccessToken(tokenString string) (subject string, role string, err error) {
	claims, err := parseWithSecret(tokenString, []byte(config.AppConfig.JWTAccessSecret))
	if err != nil {
		return "", "", err
	}
	subject, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if subject == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	return subject, role, nil
}

// ValidateRefreshToken verifies a refresh token and returns its subject.
func ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := parseWithSecret(tokenString, []byte(config.AppConfig.JWTRefreshSecret))
	if err != nil {
		return "", err
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return subject, nil
}
