package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/freshtrack/freshtrack-golang/internal/models"
	"github.com/freshtrack/freshtrack-golang/internal/store"
)

// Accounts handles user registration and credential checks. Tokens are the
// transport layer's business; this service only resolves identities.
type Accounts struct {
	store store.Adapter
}

// NewAccounts wires the account service to a store adapter.
func NewAccounts(st store.Adapter) *Accounts {
	return &Accounts{store: st}
}

// Register creates a user with a bcrypt-hashed password. Every self-service
// registration gets the default role.
func (a *Accounts) Register(ctx context.Context, email, password string) (*models.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Reason: "a valid email is required"}
	}
	if len(password) < 8 {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	existing, err := a.store.Query(ctx, colUsers,
		[]store.Filter{{Field: "email", Op: store.OpEq, Value: email}}, nil)
	if err != nil {
		return nil, &StoreError{Op: "register user", Err: err}
	}
	if len(existing) > 0 {
		return nil, &ValidationError{Field: "email", Reason: "is already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &StoreError{Op: "register user", Err: err}
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	doc, err := store.ToDocument(user)
	if err != nil {
		return nil, &StoreError{Op: "register user", Err: err}
	}
	id, err := a.store.Create(ctx, colUsers, doc)
	if err != nil {
		return nil, &StoreError{Op: "register user", Err: err}
	}
	return &models.Identity{ID: id, Email: email, Role: user.Role}, nil
}

// Login verifies the credentials and returns the resolved identity. Wrong
// email and wrong password are indistinguishable to the caller.
func (a *Accounts) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	docs, err := a.store.Query(ctx, colUsers,
		[]store.Filter{{Field: "email", Op: store.OpEq, Value: email}}, nil)
	if err != nil {
		return nil, &StoreError{Op: "login", Err: err}
	}
	if len(docs) == 0 {
		return nil, &AuthError{Reason: "invalid email or password"}
	}

	var user models.User
	if err := store.Decode(docs[0], &user); err != nil {
		return nil, &StoreError{Op: "login", Err: err}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, &AuthError{Reason: "invalid email or password"}
	}
	return &models.Identity{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}
