package repository

import (
	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByID(id uuid.UUID) (*model.Address, error)
	FindOwned(id, userID uuid.UUID) (*model.Address, error)
	FindByUser(userID uuid.UUID) ([]model.Address, error)
	Update(address *model.Address) error
	Delete(id, userID uuid.UUID) error
	SetDefault(id, userID uuid.UUID) error
}

type addressRepo struct {
	db *gorm.DB
}

func NewAddressRepo(db *gorm.DB) AddressRepository {
	return &addressRepo{db}
}

func (r *addressRepo) Create(address *model.Address) error {
	return r.db.Create(address).Error
}

func (r *addressRepo) FindByID(id uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// FindOwned scopes the lookup to the caller so foreign addresses surface
// as record-not-found rather than forbidden.
func (r *addressRepo) FindOwned(id, userID uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepo) FindByUser(userID uuid.UUID) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&addresses).Error
	return addresses, err
}

func (r *addressRepo) Update(address *model.Address) error {
	return r.db.Save(address).Error
}

func (r *addressRepo) Delete(id, userID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetDefault clears the previous default and marks the given address in one
// transaction, keeping the one-default-per-user invariant.
func (r *addressRepo) SetDefault(id, userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var address model.Address
		if err := tx.First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Address{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&address).Update("is_default", true).Error
	})
}
