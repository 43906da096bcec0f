package repository

import (
	"errors"

	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUser(userID uuid.UUID) (*model.Cart, error)
	GetOrCreate(userID uuid.UUID) (*model.Cart, error)
	FindItem(cartID, productID uuid.UUID) (*model.CartItem, error)
	FindItemOwned(itemID, cartID uuid.UUID) (*model.CartItem, error)
	ItemsWithProducts(cartID uuid.UUID) ([]model.CartItem, error)
	CreateItem(item *model.CartItem) error
	SaveItem(item *model.CartItem) error
	DeleteItem(item *model.CartItem) error
	Clear(tx *gorm.DB, cartID uuid.UUID) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db}
}

func (r *cartRepo) FindByUser(userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate returns the user's single cart, creating one lazily. The
// unique index on carts.user_id resolves the race between two concurrent
// first-adds: the loser's insert fails and it reloads the winner's row.
func (r *cartRepo) GetOrCreate(userID uuid.UUID) (*model.Cart, error) {
	cart, err := r.FindByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &model.Cart{UserID: userID}
	if createErr := r.db.Create(fresh).Error; createErr != nil {
		// Duplicate key from a concurrent create; the row exists now.
		return r.FindByUser(userID)
	}
	return fresh, nil
}

func (r *cartRepo) FindItem(cartID, productID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindItemOwned(itemID, cartID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) ItemsWithProducts(cartID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *cartRepo) CreateItem(item *model.CartItem) error {
	return r.db.Create(item).Error
}

func (r *cartRepo) SaveItem(item *model.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepo) DeleteItem(item *model.CartItem) error {
	return r.db.Unscoped().Delete(item).Error
}

// Clear accepts the tx handle so checkout can empty the cart inside the
// order transaction.
func (r *cartRepo) Clear(tx *gorm.DB, cartID uuid.UUID) error {
	return tx.Unscoped().Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
}
