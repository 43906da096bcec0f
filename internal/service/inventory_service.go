package service

import (
	"fmt"

	"go-storefront-api/internal/events"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	AdjustStock(productID uuid.UUID, newQuantity int, reason model.MovementReason, note string) (*model.Product, error)
	Movements(productID uuid.UUID, page, perPage int) ([]model.InventoryMovement, int64, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	producer    *events.Producer
}

func NewInventoryService(productRepo repository.ProductRepository, invRepo repository.InventoryRepository, db *gorm.DB, hub *ws.Hub, producer *events.Producer) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		invRepo:     invRepo,
		db:          db,
		wsHub:       hub,
		producer:    producer,
	}
}

// AdjustStock writes the new absolute quantity and appends the paired
// movement row in the same transaction, so for a single call the counter
// and the ledger never observably diverge.
func (s *inventoryService) AdjustStock(productID uuid.UUID, newQuantity int, reason model.MovementReason, note string) (*model.Product, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	}
	switch reason {
	case model.MovementRestock, model.MovementAdjustment, model.MovementReturn:
	default:
		return nil, fmt.Errorf("%w: reason must be one of restock, adjustment, return", ErrValidation)
	}

	var product *model.Product

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", productID).Error; err != nil {
			return ErrProductNotFound
		}

		delta := newQuantity - existing.Stock

		if err := tx.Model(&existing).Update("stock", newQuantity).Error; err != nil {
			return err
		}
		existing.Stock = newQuantity

		movement := &model.InventoryMovement{
			ProductID:  productID,
			Delta:      delta,
			Reason:     reason,
			Reference:  note,
			StockAfter: newQuantity,
		}
		if err := s.invRepo.Append(tx, movement); err != nil {
			return err
		}

		product = &existing
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}

	go s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"product_id": product.ID.String(),
		"sku":        product.SKU,
		"stock":      product.Stock,
		"reason":     string(reason),
	})
	s.producer.Publish(events.TopicStock, product.ID.String(), map[string]interface{}{
		"type":       "stock_adjusted",
		"product_id": product.ID.String(),
		"stock":      product.Stock,
		"reason":     string(reason),
	})

	return product, nil
}

func (s *inventoryService) Movements(productID uuid.UUID, page, perPage int) ([]model.InventoryMovement, int64, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, 0, ErrProductNotFound
	}
	offset, limit := paginate(page, perPage)
	return s.invRepo.FindByProduct(productID, offset, limit)
}
