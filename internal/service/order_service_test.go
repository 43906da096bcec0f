package service

import (
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderEnv struct {
	db     *gorm.DB
	orders OrderService
	carts  CartService
	user   *model.User
	addr   *model.Address
}

func newOrderEnv(t *testing.T) *orderEnv {
	db := setupTestDB(t)

	userRepo := repository.NewUserRepo(db)
	addressRepo := repository.NewAddressRepo(db)
	productRepo := repository.NewProductRepo(db)
	invRepo := repository.NewInventoryRepo(db)
	cartRepo := repository.NewCartRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	couponRepo := repository.NewCouponRepo(db)

	user := seedUser(t, db, "buyer@example.com")
	addr := seedAddress(t, db, user.ID)

	return &orderEnv{
		db:     db,
		orders: NewOrderService(orderRepo, cartRepo, productRepo, invRepo, couponRepo, addressRepo, userRepo, db, nil, nil, nil),
		carts:  NewCartService(cartRepo, productRepo, db, nil),
		user:   user,
		addr:   addr,
	}
}

func (e *orderEnv) checkoutRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		ShippingAddressID: e.addr.ID,
		BillingAddressID:  e.addr.ID,
		PaymentMethod:     model.PayCard,
	}
}

func (e *orderEnv) stockOf(t *testing.T, productID interface{}) int {
	t.Helper()
	var stock int
	require.NoError(t, e.db.Model(&model.Product{}).Where("id = ?", productID).Select("stock").Scan(&stock).Error)
	return stock
}

func TestCreateOrderEmptyCart(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.ErrorIs(t, err, ErrCartEmpty)

	var count int64
	require.NoError(t, env.db.Model(&model.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateOrderComputesTotals(t *testing.T) {
	env := newOrderEnv(t)
	a := seedProduct(t, env.db, "SKU-A", 2500, 3)
	b := seedProduct(t, env.db, "SKU-B", 5000, 1)

	_, err := env.carts.AddToCart(env.user.ID, a.ID, 2)
	require.NoError(t, err)
	_, err = env.carts.AddToCart(env.user.ID, b.ID, 1)
	require.NoError(t, err)

	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)

	require.Equal(t, model.OrderPending, order.Status)
	require.Equal(t, int64(10000), order.Subtotal)
	require.Zero(t, order.Discount)
	require.Equal(t, int64(800), order.Tax) // 8% of 10000
	require.Equal(t, int64(10800), order.Total)
	require.Len(t, order.Items, 2)

	// Line snapshots carry name, SKU and unit price.
	for _, item := range order.Items {
		require.NotEmpty(t, item.ProductName)
		require.NotEmpty(t, item.SKU)
	}

	// Stock came down and the ledger recorded each take.
	require.Equal(t, 1, env.stockOf(t, a.ID))
	require.Equal(t, 0, env.stockOf(t, b.ID))

	var movements []model.InventoryMovement
	require.NoError(t, env.db.Where("reference = ?", order.ID.String()).Find(&movements).Error)
	require.Len(t, movements, 2)
	for _, m := range movements {
		require.Equal(t, model.MovementOrder, m.Reason)
		require.Negative(t, m.Delta)
	}

	// Payment starts pending for the full total.
	require.Len(t, order.Payments, 1)
	require.Equal(t, model.PaymentPending, order.Payments[0].Status)
	require.Equal(t, int64(10800), order.Payments[0].Amount)

	// Cart is empty afterwards.
	cart, err := env.carts.GetCart(env.user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCreateOrderAfterMergedAdds(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "WIDGET", 2500, 5)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 2)
	require.NoError(t, err)
	_, err = env.carts.AddToCart(env.user.ID, product.ID, 2)
	require.NoError(t, err)

	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, 4, order.Items[0].Quantity)
	require.Equal(t, 1, env.stockOf(t, product.ID))

	cart, err := env.carts.GetCart(env.user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCreateOrderWithCoupon(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-C", 5000, 10)
	coupon := &model.Coupon{
		Code: "WELCOME10", Type: model.CouponPercent, Value: 10, MaxUses: 100, IsActive: true,
	}
	require.NoError(t, env.db.Create(coupon).Error)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 2)
	require.NoError(t, err)

	req := env.checkoutRequest()
	req.CouponCode = "WELCOME10"
	order, err := env.orders.CreateOrder(env.user.ID, req)
	require.NoError(t, err)

	// $100.00 subtotal, $10.00 off, 8% tax on $90.00.
	require.Equal(t, int64(10000), order.Subtotal)
	require.Equal(t, int64(1000), order.Discount)
	require.Equal(t, int64(720), order.Tax)
	require.Equal(t, int64(9720), order.Total)
	require.Equal(t, "WELCOME10", order.CouponCode)

	var stored model.Coupon
	require.NoError(t, env.db.First(&stored, "code = ?", "WELCOME10").Error)
	require.Equal(t, 1, stored.UsedCount)
}

func TestCreateOrderBadCoupon(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-D", 1000, 5)
	spent := &model.Coupon{
		Code: "SPENT", Type: model.CouponFixed, Value: 500, MaxUses: 1, UsedCount: 1, IsActive: true,
	}
	require.NoError(t, env.db.Create(spent).Error)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 1)
	require.NoError(t, err)

	req := env.checkoutRequest()
	req.CouponCode = "NOSUCH"
	_, err = env.orders.CreateOrder(env.user.ID, req)
	require.ErrorIs(t, err, ErrInvalidCoupon)

	req.CouponCode = "SPENT"
	_, err = env.orders.CreateOrder(env.user.ID, req)
	require.ErrorIs(t, err, ErrInvalidCoupon)

	// Failed checkouts keep the cart intact.
	cart, err := env.carts.GetCart(env.user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	env := newOrderEnv(t)
	plenty := seedProduct(t, env.db, "SKU-E", 1000, 10)
	scarce := seedProduct(t, env.db, "SKU-F", 1000, 5)

	_, err := env.carts.AddToCart(env.user.ID, plenty.ID, 2)
	require.NoError(t, err)
	_, err = env.carts.AddToCart(env.user.ID, scarce.ID, 5)
	require.NoError(t, err)

	// Stock drops between add and checkout.
	require.NoError(t, env.db.Model(scarce).Update("stock", 1).Error)

	_, err = env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Everything rolled back: no order, no stock taken, no ledger rows,
	// cart untouched.
	var orders int64
	require.NoError(t, env.db.Model(&model.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
	require.Equal(t, 10, env.stockOf(t, plenty.ID))
	require.Equal(t, 1, env.stockOf(t, scarce.ID))

	var movements int64
	require.NoError(t, env.db.Model(&model.InventoryMovement{}).Count(&movements).Error)
	require.Zero(t, movements)

	cart, err := env.carts.GetCart(env.user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestCreateOrderForeignAddress(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-G", 1000, 5)
	stranger := seedUser(t, env.db, "stranger@example.com")
	foreignAddr := seedAddress(t, env.db, stranger.ID)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 1)
	require.NoError(t, err)

	req := env.checkoutRequest()
	req.ShippingAddressID = foreignAddr.ID
	_, err = env.orders.CreateOrder(env.user.ID, req)
	require.ErrorIs(t, err, ErrAddressNotFound)
}

func TestCreateOrderInvalidPaymentMethod(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-H", 1000, 5)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 1)
	require.NoError(t, err)

	req := env.checkoutRequest()
	req.PaymentMethod = "barter"
	_, err = env.orders.CreateOrder(env.user.ID, req)
	require.ErrorIs(t, err, ErrInvalidPayMethod)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-I", 1000, 3)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 2)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)
	require.Equal(t, 1, env.stockOf(t, product.ID))

	cancelled, err := env.orders.CancelOrder(env.user.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderCancelled, cancelled.Status)
	require.Equal(t, 3, env.stockOf(t, product.ID))

	var returns []model.InventoryMovement
	require.NoError(t, env.db.Where("reference = ? AND reason = ?", order.ID.String(), model.MovementReturn).Find(&returns).Error)
	require.Len(t, returns, 1)
	require.Equal(t, 2, returns[0].Delta)

	// Cancelling twice is rejected.
	_, err = env.orders.CancelOrder(env.user.ID, order.ID)
	require.ErrorIs(t, err, ErrOrderNotCancelable)
}

func TestCancelOrderOwnership(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-J", 1000, 3)
	stranger := seedUser(t, env.db, "stranger2@example.com")

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)

	_, err = env.orders.CancelOrder(stranger.ID, order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderStatusTransitions(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-K", 1000, 5)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)

	// Skipping ahead is illegal.
	_, err = env.orders.UpdateStatus(order.ID, model.OrderShipped, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = env.orders.UpdateStatus(order.ID, model.OrderDelivered, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// pending -> paid appends a completed payment on the original method.
	paid, err := env.orders.UpdateStatus(order.ID, model.OrderPaid, nil)
	require.NoError(t, err)
	require.Equal(t, model.OrderPaid, paid.Status)

	var payments []model.Payment
	require.NoError(t, env.db.Where("order_id = ?", order.ID).Order("created_at").Find(&payments).Error)
	require.Len(t, payments, 2)
	require.Equal(t, model.PaymentCompleted, payments[1].Status)
	require.Equal(t, model.PayCard, payments[1].Method)

	// paid -> shipped records the shipment details.
	shipped, err := env.orders.UpdateStatus(order.ID, model.OrderShipped, &StatusUpdateRequest{
		Carrier: "UPS", TrackingNumber: "1Z999",
	})
	require.NoError(t, err)
	require.Equal(t, model.OrderShipped, shipped.Status)

	var shipment model.Shipment
	require.NoError(t, env.db.First(&shipment, "order_id = ?", order.ID).Error)
	require.Equal(t, "UPS", shipment.Carrier)
	require.NotNil(t, shipment.ShippedAt)
	require.Nil(t, shipment.DeliveredAt)

	// shipped -> delivered stamps the shipment.
	delivered, err := env.orders.UpdateStatus(order.ID, model.OrderDelivered, nil)
	require.NoError(t, err)
	require.Equal(t, model.OrderDelivered, delivered.Status)
	require.NoError(t, env.db.First(&shipment, "order_id = ?", order.ID).Error)
	require.NotNil(t, shipment.DeliveredAt)

	// Delivered is terminal.
	_, err = env.orders.UpdateStatus(order.ID, model.OrderRefunded, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRefundRestoresStock(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-L", 1000, 4)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 3)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)
	require.Equal(t, 1, env.stockOf(t, product.ID))

	_, err = env.orders.UpdateStatus(order.ID, model.OrderPaid, nil)
	require.NoError(t, err)
	refunded, err := env.orders.UpdateStatus(order.ID, model.OrderRefunded, nil)
	require.NoError(t, err)
	require.Equal(t, model.OrderRefunded, refunded.Status)
	require.Equal(t, 4, env.stockOf(t, product.ID))

	var payments []model.Payment
	require.NoError(t, env.db.Where("order_id = ? AND status = ?", order.ID, model.PaymentRefunded).Find(&payments).Error)
	require.Len(t, payments, 1)
}

func TestGetOrderAccess(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-M", 1000, 5)
	stranger := seedUser(t, env.db, "stranger3@example.com")

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)

	_, err = env.orders.GetOrder(env.user.ID, order.ID, false)
	require.NoError(t, err)

	_, err = env.orders.GetOrder(stranger.ID, order.ID, false)
	require.ErrorIs(t, err, ErrOrderNotFound)

	// Admins bypass the ownership scope.
	_, err = env.orders.GetOrder(stranger.ID, order.ID, true)
	require.NoError(t, err)
}

func TestOrderAddressSnapshotFrozen(t *testing.T) {
	env := newOrderEnv(t)
	product := seedProduct(t, env.db, "SKU-N", 1000, 5)

	_, err := env.carts.AddToCart(env.user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(env.user.ID, env.checkoutRequest())
	require.NoError(t, err)

	// Editing the address afterwards must not rewrite order history.
	require.NoError(t, env.db.Model(&model.Address{}).Where("id = ?", env.addr.ID).Update("line1", "99 Moved Ave").Error)

	var stored model.Order
	require.NoError(t, env.db.First(&stored, "id = ?", order.ID).Error)
	require.Contains(t, string(stored.ShippingAddress), "1 Main St")
	require.NotContains(t, string(stored.ShippingAddress), "99 Moved Ave")
}
