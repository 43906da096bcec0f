package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// orderTransitions is the explicit status machine. Terminal states map to
// nothing; anything absent is an illegal jump.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderShipped, OrderCancelled, OrderRefunded},
	OrderShipped: {OrderDelivered},
}

// CanTransition reports whether status s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order is an immutable, priced snapshot of a cart after checkout. Amounts
// are cents; Total = Subtotal - Discount + Tax + Shipping. The shipping and
// billing addresses are frozen as JSON at checkout so later address edits
// cannot rewrite history.
type Order struct {
	BaseModel
	UserID          uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Status          OrderStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Subtotal        int64          `gorm:"not null" json:"subtotal"`
	Discount        int64          `gorm:"not null;default:0" json:"discount"`
	Tax             int64          `gorm:"not null" json:"tax"`
	ShippingCost    int64          `gorm:"not null;default:0" json:"shipping_cost"`
	Total           int64          `gorm:"not null" json:"total"`
	CouponID        *uuid.UUID     `gorm:"type:uuid" json:"coupon_id,omitempty"`
	CouponCode      string         `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	ShippingAddress datatypes.JSON `json:"shipping_address"`
	BillingAddress  datatypes.JSON `json:"billing_address"`
	PlacedAt        time.Time      `json:"placed_at"`

	Items     []OrderItem `json:"items,omitempty"`
	Payments  []Payment   `json:"payments,omitempty"`
	Shipments []Shipment  `json:"shipments,omitempty"`
}

// OrderItem is one immutable line of an order. Product name, SKU and unit
// price are snapshots taken at checkout.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	SKU         string    `gorm:"type:varchar(50);not null" json:"sku"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"unit_price"` // cents
}
