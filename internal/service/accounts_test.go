package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshtrack/freshtrack-golang/internal/models"
	"github.com/freshtrack/freshtrack-golang/internal/store"
)

func TestRegisterAndLogin(t *testing.T) {
	accounts := NewAccounts(store.NewMemory())
	ctx := context.Background()

	identity, err := accounts.Register(ctx, "Chef@Example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "chef@example.com", identity.Email, "email is normalized")
	assert.Equal(t, models.RoleUser, identity.Role)
	assert.NotEmpty(t, identity.ID)

	logged, err := accounts.Login(ctx, "chef@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, logged.ID)
}

func TestRegisterValidation(t *testing.T) {
	accounts := NewAccounts(store.NewMemory())
	ctx := context.Background()

	var vErr *ValidationError

	_, err := accounts.Register(ctx, "not-an-email", "secret-pass")
	assert.ErrorAs(t, err, &vErr)

	_, err = accounts.Register(ctx, "chef@example.com", "short")
	assert.ErrorAs(t, err, &vErr)

	_, err = accounts.Register(ctx, "chef@example.com", "secret-pass")
	require.NoError(t, err)
	_, err = accounts.Register(ctx, "chef@example.com", "another-pass")
	assert.ErrorAs(t, err, &vErr, "duplicate email is rejected")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	accounts := NewAccounts(store.NewMemory())
	ctx := context.Background()

	_, err := accounts.Register(ctx, "chef@example.com", "secret-pass")
	require.NoError(t, err)

	var authErr *AuthError

	_, err = accounts.Login(ctx, "chef@example.com", "wrong-pass")
	assert.ErrorAs(t, err, &authErr)

	_, err = accounts.Login(ctx, "nobody@example.com", "secret-pass")
	assert.ErrorAs(t, err, &authErr)
}
