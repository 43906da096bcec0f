package model

import "github.com/google/uuid"

// Cart is a user's single in-progress selection, created lazily on first
// add. The unique index on UserID makes concurrent first-adds safe: the
// loser of the race reloads the winner's row instead of creating a twin.
type Cart struct {
	BaseModel
	UserID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `json:"items,omitempty"`
}

// CartItem references a product with a quantity and the price snapshot
// taken at add time. One row per (cart, product); adds merge quantities.
type CartItem struct {
	BaseModel
	CartID    uuid.UUID `gorm:"type:uuid;index:idx_cart_product,unique;not null" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_cart_product,unique;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"` // cents, snapshot at add time
}

// CartDiscrepancy reports a line whose live product row no longer matches
// what the cart captured. Advisory only: checkout re-checks stock itself.
type CartDiscrepancy struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Reason       string    `json:"reason"` // "price_changed", "insufficient_stock", "unavailable"
	CartPrice    int64     `json:"cart_price,omitempty"`
	CurrentPrice int64     `json:"current_price,omitempty"`
	Requested    int       `json:"requested,omitempty"`
	Available    int       `json:"available,omitempty"`
}
