package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"grambazaar/config"

	"github.com/golang-jwt/jwt"
)

// TokenClaims is the decoded subset of a session token.
type TokenClaims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// ErrNoSigningKey is returned in production when JWT_SECRET is not configured.
var ErrNoSigningKey = errors.New("JWT_SECRET is required in production")

const devSigningKey = "grambazaar-dev-secret"

func signingKey() ([]byte, error) {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret), nil
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret), nil
	}
	if config.IsProduction() {
		return nil, ErrNoSigningKey
	}
	return []byte(devSigningKey), nil
}

// CheckSigningKey reports whether tokens can be signed in the current environment.
func CheckSigningKey() error {
	_, err := signingKey()
	return err
}

// GenerateToken creates a signed HS256 token carrying the user's id and role.
func GenerateToken(userID, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    userID,
		"userId": userID,
		"role":   role,
		"iat":    now.Unix(),
		"exp":    now.Add(duration).Unix(),
	}
	key, err := signingKey()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signingKey()
	})
}

// ParseToken validates tokenString and extracts its claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		userID, _ = claims["sub"].(string)
	}
	if userID == "" {
		return nil, errors.New("token does not contain a user id")
	}
	role, _ := claims["role"].(string)

	out := &TokenClaims{UserID: userID, Role: role}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}
