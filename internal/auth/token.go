package auth

import (
	"fmt"
	"time"

	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const TokenDuration = 24 * time.Hour

// GenerateToken signs a session token carrying the user id and role.
func (h *AuthHandler) GenerateToken(uid string, role models.UserRole) (string, error) {
	claims := jwt.MapClaims{
		"uid":  uid,
		"role": string(role),
		"exp":  time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken verifies a session token and extracts the actor identity.
func (h *AuthHandler) ParseToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return nil, fmt.Errorf("missing uid claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("missing role claim")
	}

	return &Identity{UID: uid, Role: models.UserRole(role)}, nil
}
