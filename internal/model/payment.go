package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment methods accepted at checkout
const (
	PayCard         = "card"
	PayPaypal       = "paypal"
	PayBankTransfer = "bank_transfer"
	PayCashOnDeliv  = "cod"
)

// Payment rows are append-only: a status change is recorded as a new row,
// never an update of an old one.
type Payment struct {
	BaseModel
	OrderID uuid.UUID     `gorm:"type:uuid;index;not null" json:"order_id"`
	Method  string        `gorm:"type:varchar(20);not null" json:"method"`
	Status  PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	Amount  int64         `gorm:"not null" json:"amount"` // cents
}

// Shipment is created when an order transitions to shipped.
type Shipment struct {
	BaseModel
	OrderID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"order_id"`
	Carrier        string     `gorm:"type:varchar(100)" json:"carrier"`
	TrackingNumber string     `gorm:"type:varchar(100)" json:"tracking_number"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

// ValidPaymentMethod reports whether method is one we accept.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PayCard, PayPaypal, PayBankTransfer, PayCashOnDeliv:
		return true
	}
	return false
}
