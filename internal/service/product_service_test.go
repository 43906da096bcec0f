package service

import (
	"context"
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(t *testing.T) (ProductService, *gorm.DB) {
	db := setupTestDB(t)
	return NewProductService(repository.NewProductRepo(db), nil, nil), db
}

func TestProductCreate(t *testing.T) {
	svc, _ := newProductService(t)

	product, err := svc.Create(&model.Product{
		SKU: "WIDGET-1", Name: "Widget", Category: "widgets", Price: 1999, Stock: 10,
	})
	require.NoError(t, err)
	require.True(t, product.IsActive)

	_, err = svc.Create(&model.Product{SKU: "WIDGET-1", Name: "Clone", Price: 100})
	require.ErrorIs(t, err, ErrSKUTaken)

	_, err = svc.Create(&model.Product{Name: "No SKU", Price: 100})
	require.ErrorIs(t, err, ErrValidation)
}

func TestProductUpdateLeavesStockAlone(t *testing.T) {
	svc, db := newProductService(t)
	product := seedProduct(t, db, "WIDGET-2", 1000, 7)

	updated, err := svc.Update(product.ID, &ProductUpdateRequest{
		Name: "Renamed", Category: "tools", Price: 1500,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, int64(1500), updated.Price)
	require.Equal(t, 7, updated.Stock)
}

func TestProductDeactivateHidesFromListing(t *testing.T) {
	svc, db := newProductService(t)
	product := seedProduct(t, db, "WIDGET-3", 1000, 5)
	seedProduct(t, db, "WIDGET-4", 1000, 5)

	inactive := false
	_, err := svc.Update(product.ID, &ProductUpdateRequest{Name: product.Name, Price: product.Price, IsActive: &inactive})
	require.NoError(t, err)

	products, total, err := svc.List(1, 20, "")
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	require.Equal(t, "WIDGET-4", products[0].SKU)

	// Direct lookup still works for the deactivated product.
	_, err = svc.GetByID(product.ID)
	require.NoError(t, err)
}

func TestProductListByCategory(t *testing.T) {
	svc, db := newProductService(t)
	seedProduct(t, db, "CAT-A1", 1000, 5)
	books := seedProduct(t, db, "CAT-B1", 1000, 5)
	require.NoError(t, db.Model(books).Update("category", "books").Error)

	products, total, err := svc.List(1, 20, "books")
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "CAT-B1", products[0].SKU)
}

func TestProductSearchFallsBackToSQL(t *testing.T) {
	svc, db := newProductService(t)
	match := seedProduct(t, db, "SRCH-1", 1000, 5)
	require.NoError(t, db.Model(match).Update("name", "Cordless Drill").Error)
	seedProduct(t, db, "SRCH-2", 1000, 5)

	// No index configured; the SQL scan serves the query.
	products, total, err := svc.Search(context.Background(), "drill", 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "SRCH-1", products[0].SKU)
}

func TestProductDelete(t *testing.T) {
	svc, db := newProductService(t)
	product := seedProduct(t, db, "WIDGET-5", 1000, 5)

	require.NoError(t, svc.Delete(product.ID))
	_, err := svc.GetByID(product.ID)
	require.ErrorIs(t, err, ErrProductNotFound)

	require.ErrorIs(t, svc.Delete(uuid.New()), ErrProductNotFound)
}
