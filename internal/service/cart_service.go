package service

import (
	"errors"
	"fmt"

	"go-storefront-api/internal/events"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartService interface {
	GetCart(userID uuid.UUID) (*CartResponse, error)
	AddToCart(userID, productID uuid.UUID, quantity int) (*model.CartItem, error)
	UpdateItem(userID, itemID uuid.UUID, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uuid.UUID) error
	ClearCart(userID uuid.UUID) error
	ValidateCart(userID uuid.UUID) ([]model.CartDiscrepancy, error)
}

type CartResponse struct {
	CartID   uuid.UUID        `json:"cart_id"`
	Items    []model.CartItem `json:"items"`
	Subtotal int64            `json:"subtotal"` // cents, from price snapshots
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	producer    *events.Producer
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, db *gorm.DB, producer *events.Producer) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		db:          db,
		producer:    producer,
	}
}

func (s *cartService) GetCart(userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ItemsWithProducts(cart.ID)
	if err != nil {
		return nil, err
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	return &CartResponse{CartID: cart.ID, Items: items, Subtotal: subtotal}, nil
}

// AddToCart merges into an existing line when the product is already in
// the cart; the merged quantity is re-checked against live stock. The
// product's current price is snapshotted onto the line at add time.
func (s *cartService) AddToCart(userID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItem(cart.ID, productID)
	if err == nil {
		merged := item.Quantity + quantity
		if merged > product.Stock {
			return nil, ErrInsufficientStock
		}
		item.Quantity = merged
		if err := s.cartRepo.SaveItem(item); err != nil {
			return nil, err
		}
		s.publishCartEvent(userID, "cart_item_merged", item)
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	newItem := &model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	if err := s.cartRepo.CreateItem(newItem); err != nil {
		return nil, err
	}

	s.publishCartEvent(userID, "cart_item_added", newItem)
	return newItem, nil
}

func (s *cartService) UpdateItem(userID, itemID uuid.UUID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	cart, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return nil, ErrCartItemNotFound
	}

	item, err := s.cartRepo.FindItemOwned(itemID, cart.ID)
	if err != nil {
		return nil, ErrCartItemNotFound
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, err
	}

	s.publishCartEvent(userID, "cart_item_updated", item)
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return ErrCartItemNotFound
	}

	item, err := s.cartRepo.FindItemOwned(itemID, cart.ID)
	if err != nil {
		return ErrCartItemNotFound
	}

	if err := s.cartRepo.DeleteItem(item); err != nil {
		return err
	}

	s.publishCartEvent(userID, "cart_item_removed", item)
	return nil
}

func (s *cartService) ClearCart(userID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to clear
		}
		return err
	}
	return s.cartRepo.Clear(s.db, cart.ID)
}

// ValidateCart re-checks every line against the live product row. The
// result is advisory: checkout performs its own atomic stock check, so a
// clean validation does not guarantee the order will succeed.
func (s *cartService) ValidateCart(userID uuid.UUID) ([]model.CartDiscrepancy, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ItemsWithProducts(cart.ID)
	if err != nil {
		return nil, err
	}

	var discrepancies []model.CartDiscrepancy
	for _, item := range items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil || !product.IsActive {
			discrepancies = append(discrepancies, model.CartDiscrepancy{
				ProductID: item.ProductID,
				Reason:    "unavailable",
			})
			continue
		}
		if product.Price != item.UnitPrice {
			discrepancies = append(discrepancies, model.CartDiscrepancy{
				ProductID:    item.ProductID,
				ProductName:  product.Name,
				Reason:       "price_changed",
				CartPrice:    item.UnitPrice,
				CurrentPrice: product.Price,
			})
		}
		if item.Quantity > product.Stock {
			discrepancies = append(discrepancies, model.CartDiscrepancy{
				ProductID:   item.ProductID,
				ProductName: product.Name,
				Reason:      "insufficient_stock",
				Requested:   item.Quantity,
				Available:   product.Stock,
			})
		}
	}

	return discrepancies, nil
}

func (s *cartService) publishCartEvent(userID uuid.UUID, eventType string, item *model.CartItem) {
	s.producer.Publish(events.TopicCart, userID.String(), map[string]interface{}{
		"type":       eventType,
		"user_id":    userID.String(),
		"product_id": item.ProductID.String(),
		"quantity":   item.Quantity,
	})
}
