package service

import (
	"errors"
	"fmt"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressService interface {
	Create(userID uuid.UUID, req *model.Address) (*model.Address, error)
	List(userID uuid.UUID) ([]model.Address, error)
	Update(userID, addressID uuid.UUID, req *model.Address) (*model.Address, error)
	Delete(userID, addressID uuid.UUID) error
	SetDefault(userID, addressID uuid.UUID) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) Create(userID uuid.UUID, req *model.Address) (*model.Address, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	req.UserID = userID
	wantDefault := req.IsDefault
	req.IsDefault = false

	if err := s.addressRepo.Create(req); err != nil {
		return nil, err
	}

	// First address becomes the default automatically.
	existing, err := s.addressRepo.FindByUser(userID)
	if err == nil && len(existing) == 1 {
		wantDefault = true
	}
	if wantDefault {
		if err := s.addressRepo.SetDefault(req.ID, userID); err != nil {
			return nil, err
		}
		req.IsDefault = true
	}

	return req, nil
}

func (s *addressService) List(userID uuid.UUID) ([]model.Address, error) {
	return s.addressRepo.FindByUser(userID)
}

// Update writes the enumerated address fields only.
func (s *addressService) Update(userID, addressID uuid.UUID, req *model.Address) (*model.Address, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	address, err := s.addressRepo.FindOwned(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	address.Label = req.Label
	address.Recipient = req.Recipient
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country
	address.Phone = req.Phone

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) Delete(userID, addressID uuid.UUID) error {
	if err := s.addressRepo.Delete(addressID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	return nil
}

func (s *addressService) SetDefault(userID, addressID uuid.UUID) error {
	if err := s.addressRepo.SetDefault(addressID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	return nil
}
