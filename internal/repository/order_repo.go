package repository

import (
	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	CreateItem(tx *gorm.DB, item *model.OrderItem) error
	CreatePayment(tx *gorm.DB, payment *model.Payment) error
	CreateShipment(tx *gorm.DB, shipment *model.Shipment) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindOwned(id, userID uuid.UUID) (*model.Order, error)
	FindByUser(userID uuid.UUID, offset, limit int) ([]model.Order, int64, error)
	FindAll(offset, limit int, status model.OrderStatus) ([]model.Order, int64, error)
	HasDeliveredProduct(userID, productID uuid.UUID) (bool, error)
	CountByStatus() (map[model.OrderStatus]int64, error)
	Revenue() (int64, error)
	Recent(limit int) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) CreateItem(tx *gorm.DB, item *model.OrderItem) error {
	return tx.Create(item).Error
}

func (r *orderRepo) CreatePayment(tx *gorm.DB, payment *model.Payment) error {
	return tx.Create(payment).Error
}

func (r *orderRepo) CreateShipment(tx *gorm.DB, shipment *model.Shipment) error {
	return tx.Create(shipment).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Payments").Preload("Shipments").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindOwned(id, userID uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Payments").Preload("Shipments").
		First(&order, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByUser(userID uuid.UUID, offset, limit int) ([]model.Order, int64, error) {
	q := r.db.Model(&model.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) FindAll(offset, limit int, status model.OrderStatus) ([]model.Order, int64, error) {
	q := r.db.Model(&model.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

// HasDeliveredProduct reports whether the user has a delivered order
// containing the product. Gates review creation.
func (r *orderRepo) HasDeliveredProduct(userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, model.OrderDelivered, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) CountByStatus() (map[model.OrderStatus]int64, error) {
	type row struct {
		Status model.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.OrderStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// Revenue sums totals of orders that have been paid for (paid, shipped or
// delivered).
func (r *orderRepo) Revenue() (int64, error) {
	var revenue int64
	err := r.db.Model(&model.Order{}).
		Where("status IN ?", []model.OrderStatus{model.OrderPaid, model.OrderShipped, model.OrderDelivered}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *orderRepo) Recent(limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}
