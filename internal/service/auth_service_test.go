package service

import (
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, repository.UserRepository) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	return NewAuthService(userRepo), userRepo
}

func TestRegister(t *testing.T) {
	svc, userRepo := newAuthService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", resp.Email)
	require.Equal(t, model.RoleCustomer, resp.Role)

	stored, err := userRepo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", stored.Password)
	require.True(t, stored.CheckPassword("secret123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	req := &RegisterRequest{Email: "bob@example.com", Password: "secret123", FullName: "Bob"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{Email: "not-an-email", Password: "secret123", FullName: "X"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(&RegisterRequest{Email: "x@example.com", Password: "short", FullName: "X"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{Email: "carol@example.com", Password: "secret123", FullName: "Carol"})
	require.NoError(t, err)

	resp, err := svc.Login("carol@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "carol@example.com", resp.User.Email)

	_, err = svc.Login("carol@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	svc := NewAuthService(userRepo)

	user := seedUser(t, db, "dan@example.com")
	require.NoError(t, userRepo.SetActive(user.ID, false))

	_, err := svc.Login("dan@example.com", "password123")
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	svc := NewAuthService(userRepo)
	user := seedUser(t, db, "erin@example.com")

	require.ErrorIs(t, svc.ChangePassword(user.ID, "wrong", "newpass123"), ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpass123"))
	_, err := svc.Login("erin@example.com", "newpass123")
	require.NoError(t, err)
}

func TestDeactivateLocksOut(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	svc := NewAuthService(userRepo)
	user := seedUser(t, db, "frank@example.com")

	require.NoError(t, svc.Deactivate(user.ID))

	_, err := svc.Login("frank@example.com", "password123")
	require.ErrorIs(t, err, ErrUserInactive)
}
