package model

import "github.com/google/uuid"

// Address belongs to exactly one user. At most one address per user is
// marked default; the service enforces that, not the schema.
type Address struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Label      string    `gorm:"type:varchar(50)" json:"label"` // e.g. "home", "office"
	Recipient  string    `gorm:"type:varchar(255);not null" json:"recipient" validate:"required"`
	Line1      string    `gorm:"type:varchar(255);not null" json:"line1" validate:"required"`
	Line2      string    `gorm:"type:varchar(255)" json:"line2"`
	City       string    `gorm:"type:varchar(100);not null" json:"city" validate:"required"`
	State      string    `gorm:"type:varchar(100)" json:"state"`
	PostalCode string    `gorm:"type:varchar(20);not null" json:"postal_code" validate:"required"`
	Country    string    `gorm:"type:varchar(100);not null" json:"country" validate:"required"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone"`
	IsDefault  bool      `gorm:"default:false" json:"is_default"`
}
