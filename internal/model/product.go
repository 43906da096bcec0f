package model

// Product is a catalog entry. Price is stored in cents. Stock is a plain
// mutable counter; every change to it must carry a paired InventoryMovement.
type Product struct {
	BaseModel
	SKU         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(100);index" json:"category"`
	Price       int64  `gorm:"not null" json:"price" validate:"gte=0"` // cents
	Stock       int    `gorm:"default:0" json:"stock" validate:"gte=0"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
