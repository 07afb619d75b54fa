package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freshtrack/freshtrack-golang/internal/models"
)

// Tokens issues and validates the HS256 JWTs that carry the actor identity.
// The signing secret comes from configuration; it is never hardcoded.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token manager around the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: 72 * time.Hour}
}

// Generate signs a token embedding the user id, email and role.
func (t *Tokens) Generate(identity models.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"role":  identity.Role,
		"exp":   time.Now().Add(t.ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses a token string and returns the identity it carries.
func (t *Tokens) Validate(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("invalid subject claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return &models.Identity{ID: sub, Email: email, Role: role}, nil
}
