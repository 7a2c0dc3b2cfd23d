package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"    // order placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // confirmed, payment settled (or COD)
	OrderStatusProcessing OrderStatus = "processing" // being packed
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // cancelled before shipping
	OrderStatusReturned   OrderStatus = "returned"   // returned after delivery

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"

	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
	PaymentMethodCard     PaymentMethod = "card"
)

// ReturnWindow is how long after delivery a return may be initiated.
const ReturnWindow = 7 * 24 * time.Hour

// MaxCancelReasonLen caps the free-text cancellation reason.
const MaxCancelReasonLen = 500

type Order struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	OrderRef          string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID            string        `gorm:"not null;index" json:"user_id"`
	Items             []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddressID uint          `json:"shipping_address_id"`
	BillingAddressID  *uint         `json:"billing_address_id,omitempty"`
	Subtotal          float64       `json:"subtotal"`
	Discount          float64       `json:"discount"`
	ShippingCost      float64       `json:"shipping_cost"`
	Tax               float64       `json:"tax"`
	TotalAmount       float64       `json:"total_amount"`
	Status            OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod     PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	CouponCode        *string       `json:"coupon_code,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CancelReason      string        `json:"cancel_reason,omitempty"`
	RazorpayOrderID   string        `json:"razorpay_order_id,omitempty"`
	DeliveredAt       *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a cart line taken at checkout.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Image       string  `json:"image"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// allowed fulfillment edges; anything absent is an invalid transition
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusReturned},
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m names a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentMethodRazorpay, PaymentMethodCOD, PaymentMethodCard:
		return true
	}
	return false
}

// CanTransition checks whether the order may move to next at time now.
// It returns an *InvalidTransitionError describing the rejection, or nil.
func (o *Order) CanTransition(next OrderStatus, now time.Time) error {
	allowed := false
	for _, s := range orderTransitions[o.Status] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return &InvalidTransitionError{From: o.Status, To: next}
	}

	// Fulfillment past confirmed requires settled payment, except COD which may run
	// unpaid until delivery.
	switch next {
	case OrderStatusProcessing, OrderStatusShipped:
		if o.PaymentMethod != PaymentMethodCOD && o.PaymentStatus != PaymentStatusPaid {
			return &InvalidTransitionError{From: o.Status, To: next, Detail: "payment not completed"}
		}
	case OrderStatusDelivered:
		if o.PaymentMethod != PaymentMethodCOD && o.PaymentStatus != PaymentStatusPaid {
			return &InvalidTransitionError{From: o.Status, To: next, Detail: "payment not completed"}
		}
	case OrderStatusReturned:
		if o.DeliveredAt == nil || now.Sub(*o.DeliveredAt) > ReturnWindow {
			return &InvalidTransitionError{From: o.Status, To: next, Detail: "return window elapsed"}
		}
	}
	return nil
}

// Transition applies the status change after CanTransition passes, handling the
// side fields owned by the machine (DeliveredAt, COD collection on delivery).
func (o *Order) Transition(next OrderStatus, now time.Time) error {
	if err := o.CanTransition(next, now); err != nil {
		return err
	}
	o.Status = next
	if next == OrderStatusDelivered {
		t := now
		o.DeliveredAt = &t
		// COD is collected at the door
		if o.PaymentMethod == PaymentMethodCOD {
			o.PaymentStatus = PaymentStatusPaid
		}
	}
	return nil
}

// Cancellable reports whether the purchasing user may still cancel.
func (o *Order) Cancellable() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	}
	return false
}
