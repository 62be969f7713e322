package utils

import (
	"errors"
	"time"

	"flowmaster/config"
	"flowmaster/models"

	"github.com/golang-jwt/jwt"
)

const devSecret = "flowmaster-dev-secret"

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(devSecret)
}

// GenerateToken creates a signed HS256 token for the principal that expires after duration.
func GenerateToken(p models.Principal, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      p.UserID,
		"tenantId": p.TenantID,
		"email":    p.Email,
		"role":     p.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParsePrincipal validates the token and extracts the caller it was issued to.
func ParsePrincipal(tokenString string) (*models.Principal, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	tenantID, _ := claims["tenantId"].(string)
	if sub == "" || tenantID == "" {
		return nil, errors.New("token does not carry a subject and tenant")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &models.Principal{UserID: sub, TenantID: tenantID, Email: email, Role: role}, nil
}
