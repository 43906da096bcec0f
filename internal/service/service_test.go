package service

import (
	"path/filepath"
	"testing"

	"go-storefront-api/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A file-backed DB rather than ":memory:": the connection pool opens
	// extra connections during transactions, and each in-memory connection
	// would be its own empty database.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory db")

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Address{},
		&model.Product{}, &model.InventoryMovement{},
		&model.Cart{}, &model.CartItem{},
		&model.Order{}, &model.OrderItem{}, &model.Payment{}, &model.Shipment{},
		&model.Coupon{},
		&model.Review{},
		&model.SupportTicket{}, &model.TicketMessage{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:    email,
		FullName: "Test User",
		Role:     model.RoleCustomer,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, price int64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		SKU:      sku,
		Name:     "Product " + sku,
		Category: "test",
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedAddress(t *testing.T, db *gorm.DB, userID uuid.UUID) *model.Address {
	t.Helper()

	address := &model.Address{
		UserID:     userID,
		Recipient:  "Test User",
		Line1:      "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
	require.NoError(t, db.Create(address).Error)
	return address
}
