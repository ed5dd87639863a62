package response

import "evaluation_orders/internal/usecase/checkout"

// CheckoutSessionResponse is the session view plus, on creation, whether a
// resume link pointed at a missing order.
type CheckoutSessionResponse struct {
	checkout.View
	Reset bool `json:"reset,omitempty"`
}

func FromCheckoutView(v checkout.View) CheckoutSessionResponse {
	return CheckoutSessionResponse{View: v}
}
