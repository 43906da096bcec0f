package model

import "github.com/google/uuid"

// Review is one per (user, product), gated on a prior delivered purchase.
type Review struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_user_product_review,unique;not null" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_user_product_review,unique;not null" json:"product_id"`
	User      *User     `json:"user,omitempty"`
	Rating    int       `gorm:"not null" json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `gorm:"type:text" json:"comment"`
}
