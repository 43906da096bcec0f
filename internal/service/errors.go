package service

import "errors"

// Domain errors surfaced by services. Handlers map these onto HTTP status
// codes; anything unrecognized becomes a 500.
var (
	// ErrValidation wraps all malformed-input failures; handlers map it
	// to 400.
	ErrValidation = errors.New("validation failed")

	// auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")

	// catalog
	ErrProductNotFound = errors.New("product not found")
	ErrSKUTaken        = errors.New("SKU already exists")

	// cart
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")

	// checkout
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrAddressNotFound    = errors.New("address not found")
	ErrInvalidCoupon      = errors.New("coupon is invalid or expired")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")
	ErrInvalidPayMethod   = errors.New("unsupported payment method")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("illegal order status transition")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")

	// reviews
	ErrReviewNotAllowed = errors.New("reviews require a delivered purchase of the product")
	ErrAlreadyReviewed  = errors.New("product already reviewed")
	ErrReviewNotFound   = errors.New("review not found")

	// support
	ErrTicketNotFound         = errors.New("ticket not found")
	ErrInvalidTicketStatus    = errors.New("invalid ticket status")
	ErrIllegalTicketTransition = errors.New("illegal ticket status transition")
)
