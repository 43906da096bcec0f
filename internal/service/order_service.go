package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-storefront-api/internal/events"
	"go-storefront-api/internal/mailer"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/ws"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxRatePercent is the flat tax rate applied at checkout. Tax is computed
// on the discounted subtotal (post-discount).
const TaxRatePercent = 8

type OrderService interface {
	CreateOrder(userID uuid.UUID, req *CreateOrderRequest) (*model.Order, error)
	CancelOrder(userID, orderID uuid.UUID) (*model.Order, error)
	UpdateStatus(orderID uuid.UUID, next model.OrderStatus, req *StatusUpdateRequest) (*model.Order, error)
	GetOrder(userID uuid.UUID, orderID uuid.UUID, isAdmin bool) (*model.Order, error)
	ListOrders(userID uuid.UUID, page, perPage int) ([]model.Order, int64, error)
	ListAllOrders(page, perPage int, status model.OrderStatus) ([]model.Order, int64, error)
}

type CreateOrderRequest struct {
	ShippingAddressID uuid.UUID `json:"shipping_address_id" validate:"uuid_required"`
	BillingAddressID  uuid.UUID `json:"billing_address_id" validate:"uuid_required"`
	PaymentMethod     string    `json:"payment_method" validate:"required"`
	CouponCode        string    `json:"coupon_code"`
}

// StatusUpdateRequest carries the optional shipment details for a
// transition to shipped.
type StatusUpdateRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRepository
	couponRepo  repository.CouponRepository
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	producer    *events.Producer
	mail        *mailer.Mailer
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	couponRepo repository.CouponRepository,
	addressRepo repository.AddressRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
	hub *ws.Hub,
	producer *events.Producer,
	mail *mailer.Mailer,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		invRepo:     invRepo,
		couponRepo:  couponRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
		db:          db,
		wsHub:       hub,
		producer:    producer,
		mail:        mail,
	}
}

// CreateOrder turns the user's cart into an immutable order inside a single
// transaction. Stock is taken with a conditional decrement (stock >= qty in
// the WHERE clause) so two concurrent checkouts cannot oversell the same
// product. On any failure the whole transaction rolls back.
func (s *orderService) CreateOrder(userID uuid.UUID, req *CreateOrderRequest) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPayMethod
	}

	var order *model.Order

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Both addresses must belong to the caller.
		shipAddr, err := s.addressRepo.FindOwned(req.ShippingAddressID, userID)
		if err != nil {
			return ErrAddressNotFound
		}
		billAddr, err := s.addressRepo.FindOwned(req.BillingAddressID, userID)
		if err != nil {
			return ErrAddressNotFound
		}

		// 2. Load cart lines.
		cart, err := s.cartRepo.FindByUser(userID)
		if err != nil {
			return ErrCartEmpty
		}
		items, err := s.cartRepo.ItemsWithProducts(cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		// 3. Subtotal from the cart's price snapshots.
		var subtotal int64
		for _, item := range items {
			subtotal += item.UnitPrice * int64(item.Quantity)
		}

		// 4. Coupon, if supplied.
		var coupon *model.Coupon
		var discount int64
		if req.CouponCode != "" {
			coupon, err = s.couponRepo.FindByCode(req.CouponCode)
			if err != nil {
				return ErrInvalidCoupon
			}
			if !coupon.UsableAt(time.Now()) {
				return ErrInvalidCoupon
			}
			discount = coupon.DiscountFor(subtotal)
		}

		// 5. Tax on the discounted subtotal; shipping currently free.
		tax := (subtotal - discount) * TaxRatePercent / 100
		var shippingCost int64
		total := subtotal - discount + tax + shippingCost

		// 6. Order row with frozen address snapshots.
		shipJSON, _ := json.Marshal(shipAddr)
		billJSON, _ := json.Marshal(billAddr)
		order = &model.Order{
			UserID:          userID,
			Status:          model.OrderPending,
			Subtotal:        subtotal,
			Discount:        discount,
			Tax:             tax,
			ShippingCost:    shippingCost,
			Total:           total,
			ShippingAddress: shipJSON,
			BillingAddress:  billJSON,
			PlacedAt:        time.Now(),
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
			order.CouponCode = coupon.Code
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		// 7. One immutable item row per cart line; stock taken atomically
		// and ledgered in the same statement batch.
		for _, item := range items {
			if item.Product == nil || !item.Product.IsActive {
				return ErrProductNotFound
			}

			ok, err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Product.Name)
			}

			orderItem := &model.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				SKU:         item.Product.SKU,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			}
			if err := s.orderRepo.CreateItem(tx, orderItem); err != nil {
				return err
			}
			order.Items = append(order.Items, *orderItem)

			// Read the decremented value back so the ledger records what
			// actually landed, not a pre-decrement guess.
			var stockAfter int
			if err := tx.Model(&model.Product{}).
				Where("id = ?", item.ProductID).
				Select("stock").Scan(&stockAfter).Error; err != nil {
				return err
			}

			movement := &model.InventoryMovement{
				ProductID:  item.ProductID,
				Delta:      -item.Quantity,
				Reason:     model.MovementOrder,
				Reference:  order.ID.String(),
				StockAfter: stockAfter,
			}
			if err := s.invRepo.Append(tx, movement); err != nil {
				return err
			}
		}

		// 8. Record coupon usage under its limit.
		if coupon != nil {
			ok, err := s.couponRepo.IncrementUsage(tx, coupon.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCouponExhausted
			}
		}

		// 9. Pending payment row.
		payment := &model.Payment{
			OrderID: order.ID,
			Method:  req.PaymentMethod,
			Status:  model.PaymentPending,
			Amount:  total,
		}
		if err := s.orderRepo.CreatePayment(tx, payment); err != nil {
			return err
		}
		order.Payments = append(order.Payments, *payment)

		// 10. Empty the cart.
		return s.cartRepo.Clear(tx, cart.ID)
	})

	if txErr != nil {
		return nil, txErr
	}

	// Post-commit side effects are best-effort: the order exists whether
	// or not the email or event delivery succeeds.
	if user, err := s.userRepo.FindByID(userID); err == nil {
		go s.mail.SendOrderConfirmation(user.Email, order)
	}
	go s.wsHub.BroadcastEvent("order_created", map[string]interface{}{
		"order_id": order.ID.String(),
		"user_id":  userID.String(),
		"total":    order.Total,
	})
	s.producer.Publish(events.TopicOrders, order.ID.String(), map[string]interface{}{
		"type":     "order_created",
		"order_id": order.ID.String(),
		"user_id":  userID.String(),
		"total":    order.Total,
	})

	return order, nil
}

// CancelOrder is permitted only from pending or paid. Stock is restored
// per line with compensating movement rows, all inside one transaction.
func (s *orderService) CancelOrder(userID, orderID uuid.UUID) (*model.Order, error) {
	var order *model.Order

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orderRepo.FindOwned(orderID, userID)
		if err != nil {
			return ErrOrderNotFound
		}

		if order.Status != model.OrderPending && order.Status != model.OrderPaid {
			return ErrOrderNotCancelable
		}

		if err := tx.Model(order).Update("status", model.OrderCancelled).Error; err != nil {
			return err
		}
		order.Status = model.OrderCancelled

		return s.restoreStock(tx, order, model.MovementReturn)
	})

	if txErr != nil {
		return nil, txErr
	}

	go s.wsHub.BroadcastEvent("order_cancelled", map[string]interface{}{
		"order_id": order.ID.String(),
		"user_id":  userID.String(),
	})
	s.producer.Publish(events.TopicOrders, order.ID.String(), map[string]interface{}{
		"type":     "order_cancelled",
		"order_id": order.ID.String(),
	})

	return order, nil
}

// UpdateStatus moves an order along the explicit transition table.
// Transitions carry their side effects: paid appends a completed payment,
// shipped creates the shipment record, refunded restores stock.
func (s *orderService) UpdateStatus(orderID uuid.UUID, next model.OrderStatus, req *StatusUpdateRequest) (*model.Order, error) {
	var order *model.Order

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orderRepo.FindByID(orderID)
		if err != nil {
			return ErrOrderNotFound
		}

		if !order.Status.CanTransition(next) {
			return ErrInvalidTransition
		}

		if err := tx.Model(order).Update("status", next).Error; err != nil {
			return err
		}
		order.Status = next

		switch next {
		case model.OrderPaid:
			payment := &model.Payment{
				OrderID: order.ID,
				Method:  lastPaymentMethod(order),
				Status:  model.PaymentCompleted,
				Amount:  order.Total,
			}
			return s.orderRepo.CreatePayment(tx, payment)

		case model.OrderShipped:
			now := time.Now()
			shipment := &model.Shipment{
				OrderID:   order.ID,
				ShippedAt: &now,
			}
			if req != nil {
				shipment.Carrier = req.Carrier
				shipment.TrackingNumber = req.TrackingNumber
			}
			return s.orderRepo.CreateShipment(tx, shipment)

		case model.OrderDelivered:
			now := time.Now()
			return tx.Model(&model.Shipment{}).
				Where("order_id = ? AND delivered_at IS NULL", order.ID).
				Update("delivered_at", &now).Error

		case model.OrderRefunded:
			payment := &model.Payment{
				OrderID: order.ID,
				Method:  lastPaymentMethod(order),
				Status:  model.PaymentRefunded,
				Amount:  order.Total,
			}
			if err := s.orderRepo.CreatePayment(tx, payment); err != nil {
				return err
			}
			return s.restoreStock(tx, order, model.MovementReturn)

		case model.OrderCancelled:
			return s.restoreStock(tx, order, model.MovementReturn)
		}

		return nil
	})

	if txErr != nil {
		return nil, txErr
	}

	go s.wsHub.BroadcastEvent("order_status_changed", map[string]interface{}{
		"order_id": order.ID.String(),
		"status":   string(order.Status),
	})
	s.producer.Publish(events.TopicOrders, order.ID.String(), map[string]interface{}{
		"type":     "order_status_changed",
		"order_id": order.ID.String(),
		"status":   string(order.Status),
	})

	return order, nil
}

func (s *orderService) GetOrder(userID uuid.UUID, orderID uuid.UUID, isAdmin bool) (*model.Order, error) {
	var order *model.Order
	var err error
	if isAdmin {
		order, err = s.orderRepo.FindByID(orderID)
	} else {
		order, err = s.orderRepo.FindOwned(orderID, userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(userID uuid.UUID, page, perPage int) ([]model.Order, int64, error) {
	offset, limit := paginate(page, perPage)
	return s.orderRepo.FindByUser(userID, offset, limit)
}

func (s *orderService) ListAllOrders(page, perPage int, status model.OrderStatus) ([]model.Order, int64, error) {
	offset, limit := paginate(page, perPage)
	return s.orderRepo.FindAll(offset, limit, status)
}

// restoreStock gives every line's quantity back and appends the
// compensating ledger entries on the same tx.
func (s *orderService) restoreStock(tx *gorm.DB, order *model.Order, reason model.MovementReason) error {
	for _, item := range order.Items {
		if err := s.productRepo.IncrementStock(tx, item.ProductID, item.Quantity); err != nil {
			return err
		}

		var stockAfter int
		if err := tx.Model(&model.Product{}).
			Where("id = ?", item.ProductID).
			Select("stock").Scan(&stockAfter).Error; err != nil {
			return err
		}

		movement := &model.InventoryMovement{
			ProductID:  item.ProductID,
			Delta:      item.Quantity,
			Reason:     reason,
			Reference:  order.ID.String(),
			StockAfter: stockAfter,
		}
		if err := s.invRepo.Append(tx, movement); err != nil {
			return err
		}
	}
	return nil
}

// lastPaymentMethod keeps appended payment rows on the method the
// customer chose at checkout.
func lastPaymentMethod(order *model.Order) string {
	if len(order.Payments) == 0 {
		return "unknown"
	}
	return order.Payments[len(order.Payments)-1].Method
}
