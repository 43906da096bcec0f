package service

import (
	"errors"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers the admin-facing account operations.
type UserService interface {
	List(page, perPage int) ([]model.UserResponse, int64, error)
	SetActive(userID uuid.UUID, active bool) error
	SetRole(userID uuid.UUID, role string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(page, perPage int) ([]model.UserResponse, int64, error) {
	offset, limit := paginate(page, perPage)
	users, total, err := s.userRepo.FindAll(offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, total, nil
}

func (s *userService) SetActive(userID uuid.UUID, active bool) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.SetActive(userID, active)
}

func (s *userService) SetRole(userID uuid.UUID, role string) error {
	switch role {
	case model.RoleCustomer, model.RoleAdmin, model.RoleSupport:
	default:
		return ErrInvalidRole
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.SetRole(userID, role)
}
