package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tour-backoffice/internal/config"
	"github.com/spec-kit/tour-backoffice/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *domain.User) {
	t.Helper()
	repo := newUserStoreFake()
	users := NewUserService(repo, 4)
	user, err := users.CreateUser(context.Background(), UserCreateInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 15
	return NewAuthService(cfg, repo), user
}

func TestLoginIssuesRoleBearingToken(t *testing.T) {
	svc, user := newAuthFixture(t)

	got, token, exp, err := svc.Login(context.Background(), "dana@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, user.ID, got.ID)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "dana@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := newUserStoreFake()
	users := NewUserService(repo, 4)
	user, err := users.CreateUser(context.Background(), UserCreateInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)

	inactive := false
	_, err = users.UpdateUser(context.Background(), user.ID, UserUpdateInput{Active: &inactive})
	require.NoError(t, err)

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	svc := NewAuthService(cfg, repo)

	_, _, _, err = svc.Login(context.Background(), "dana@example.com", "secret123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account deactivated")
}
