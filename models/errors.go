package models

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced in API envelopes.
const (
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidCoupon       = "INVALID_COUPON"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodePaymentVerification = "PAYMENT_VERIFICATION_FAILED"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrConcurrencyConflict = errors.New("concurrent update detected, please retry")
	ErrPaymentVerification = errors.New("payment signature verification failed")
)

// InvalidCouponError carries the coupon engine's rejection reason.
type InvalidCouponError struct {
	Code   string // coupon code attempted
	Reason string // engine reason, e.g. EXPIRED
}

func (e *InvalidCouponError) Error() string {
	return fmt.Sprintf("coupon %s not applicable: %s", e.Code, e.Reason)
}

// InvalidTransitionError is returned when an order status change is not on an
// allowed edge of the lifecycle machine.
type InvalidTransitionError struct {
	From   OrderStatus
	To     OrderStatus
	Detail string
}

func (e *InvalidTransitionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot transition order from %s to %s: %s", e.From, e.To, e.Detail)
	}
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// OutOfStockError reports the product that blocked an order.
type OutOfStockError struct {
	ProductID uint
	Name      string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q", e.Name)
}
