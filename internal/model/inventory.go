package model

import "github.com/google/uuid"

type MovementReason string

const (
	MovementOrder      MovementReason = "order"
	MovementReturn     MovementReason = "return"
	MovementRestock    MovementReason = "restock"
	MovementAdjustment MovementReason = "adjustment"
)

// InventoryMovement is the append-only ledger of stock deltas. Product.Stock
// is the running total; every write to it appends exactly one movement row
// in the same transaction so the two cannot observably diverge.
type InventoryMovement struct {
	BaseModel
	ProductID  uuid.UUID      `gorm:"type:uuid;index;not null" json:"product_id"`
	Product    *Product       `json:"product,omitempty"`
	Delta      int            `gorm:"not null" json:"delta"` // signed change
	Reason     MovementReason `gorm:"type:varchar(20);not null" json:"reason"`
	Reference  string         `gorm:"type:varchar(255)" json:"reference"` // order id or free-form note
	StockAfter int            `gorm:"not null" json:"stock_after"`
}
