package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tour-backoffice/internal/auth"
	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// userStoreFake is a full in-memory UserRepository for account tests.
type userStoreFake struct {
	users map[string]*domain.User
}

func newUserStoreFake() *userStoreFake {
	return &userStoreFake{users: make(map[string]*domain.User)}
}

func (r *userStoreFake) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *userStoreFake) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *userStoreFake) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *userStoreFake) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userStoreFake) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func TestCreateUserNormalizesAndHashes(t *testing.T) {
	repo := newUserStoreFake()
	svc := NewUserService(repo, 4)

	user, err := svc.CreateUser(context.Background(), UserCreateInput{
		Name:     "  Dana  ",
		Email:    "Dana@Example.COM",
		Password: "secret123",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dana", user.Name)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.True(t, user.Active)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "secret123"))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newUserStoreFake()
	svc := NewUserService(repo, 4)

	input := UserCreateInput{Name: "Dana", Email: "dana@example.com", Password: "secret123", Role: domain.RoleManager}
	_, err := svc.CreateUser(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), input)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc := NewUserService(newUserStoreFake(), 4)

	_, err := svc.CreateUser(context.Background(), UserCreateInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     domain.Role("INTERN"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateUserPartial(t *testing.T) {
	repo := newUserStoreFake()
	svc := NewUserService(repo, 4)

	user, err := svc.CreateUser(context.Background(), UserCreateInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateUser(context.Background(), user.ID, UserUpdateInput{Active: &inactive})
	require.NoError(t, err)

	assert.False(t, updated.Active)
	assert.Equal(t, "Dana", updated.Name)

	empty := "   "
	_, err = svc.UpdateUser(context.Background(), user.ID, UserUpdateInput{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
