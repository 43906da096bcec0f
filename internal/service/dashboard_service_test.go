package service

import (
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	env := newOrderEnv(t)
	svc := NewDashboardService(
		repository.NewProductRepo(env.db),
		repository.NewOrderRepo(env.db),
		repository.NewInventoryRepo(env.db),
	)

	cheap := seedProduct(t, env.db, "DASH-1", 500, 4) // below the low stock threshold
	seedProduct(t, env.db, "DASH-2", 2000, 50)

	_, err := env.carts.AddToCart(env.user.ID, cheap.ID, 2)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)
	_, err = env.orders.UpdateStatus(order.ID, model.OrderPaid, nil)
	require.NoError(t, err)

	stats, err := svc.GetStats()
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalProducts)
	require.EqualValues(t, 1, stats.LowStockCount)
	require.Equal(t, order.Total, stats.Revenue)
	require.EqualValues(t, 1, stats.OrdersByStatus[model.OrderPaid])
	require.Len(t, stats.RecentOrders, 1)
}

func TestDashboardStockMovement(t *testing.T) {
	db := setupTestDB(t)
	invSvc := NewInventoryService(repository.NewProductRepo(db), repository.NewInventoryRepo(db), db, nil, nil)
	svc := NewDashboardService(repository.NewProductRepo(db), repository.NewOrderRepo(db), repository.NewInventoryRepo(db))

	product := seedProduct(t, db, "DASH-3", 1000, 0)
	_, err := invSvc.AdjustStock(product.ID, 10, model.MovementRestock, "")
	require.NoError(t, err)
	_, err = invSvc.AdjustStock(product.ID, 6, model.MovementAdjustment, "")
	require.NoError(t, err)

	data, err := svc.GetStockMovement(7)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.EqualValues(t, 10, data[len(data)-1].Inbound)
	require.EqualValues(t, 4, data[len(data)-1].Outbound)
}
