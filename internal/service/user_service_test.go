package service

import (
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestUserList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepo(db))
	seedUser(t, db, "u1@example.com")
	seedUser(t, db, "u2@example.com")

	users, total, err := svc.List(1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)
}

func TestUserSetRole(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepo(db)
	svc := NewUserService(repo)
	user := seedUser(t, db, "u3@example.com")

	require.NoError(t, svc.SetRole(user.ID, model.RoleSupport))

	stored, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, model.RoleSupport, stored.Role)

	require.ErrorIs(t, svc.SetRole(user.ID, "superuser"), ErrInvalidRole)
}

func TestUserSetActive(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepo(db)
	svc := NewUserService(repo)
	user := seedUser(t, db, "u4@example.com")

	require.NoError(t, svc.SetActive(user.ID, false))
	stored, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)
}
