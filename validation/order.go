package validation

import "github.com/rajat290/obeyyo-api/models"

// OrderCreateRequest is the checkout payload.
type OrderCreateRequest struct {
	ShippingAddressID uint   `json:"shipping_address_id"`
	BillingAddressID  *uint  `json:"billing_address_id"`
	PaymentMethod     string `json:"payment_method"`
	Notes             string `json:"notes"`
}

func ValidateOrderCreate(req *OrderCreateRequest) []FieldError {
	rules := []Rule{
		PositiveIDValue("shipping_address_id", req.ShippingAddressID),
		NotEmpty("payment_method", req.PaymentMethod),
		OneOf("payment_method", req.PaymentMethod,
			string(models.PaymentMethodRazorpay), string(models.PaymentMethodCOD), string(models.PaymentMethodCard)),
		MaxLen("notes", req.Notes, 500),
	}
	if req.BillingAddressID != nil {
		rules = append(rules, PositiveIDValue("billing_address_id", *req.BillingAddressID))
	}
	return Run(rules...)
}

// CancelOrderRequest carries the optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

func ValidateCancelOrder(req *CancelOrderRequest) []FieldError {
	return Run(
		MaxLen("reason", req.Reason, models.MaxCancelReasonLen),
	)
}

// StatusUpdateRequest is the admin fulfillment-status payload.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func ValidateStatusUpdate(req *StatusUpdateRequest) []FieldError {
	return Run(
		NotEmpty("status", req.Status),
		Custom("status", req.Status == "" || models.ValidOrderStatus(req.Status),
			"status is not a recognised order status"),
	)
}
