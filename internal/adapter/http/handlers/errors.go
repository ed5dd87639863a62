package handlers

import (
	"errors"
	"evaluation_orders/internal/usecase"
	"evaluation_orders/internal/usecase/checkout"
	"evaluation_orders/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func invalidRequest() *pkg.AppError {
	return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidDocumentPath), errors.Is(err, usecase.ErrInvalidOrderStatus):
		return invalidRequest()
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotificationNotEligible):
		return pkg.NewDomainErrorSimple("NOTIFICATION_NOT_ELIGIBLE", "Order has no customer email", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteValue), errors.Is(err, usecase.ErrInvalidDocumentPath):
		return invalidRequest()
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotPending):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_PENDING", "Quote is not pending", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapBillingPaymentError(err error) *pkg.AppError {
	var declined *usecase.PaymentDeclinedError
	switch {
	case errors.As(err, &declined):
		return pkg.NewDomainError("PAYMENT_DECLINED", declined.Error(), err, http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrInvalidPaymentReference), errors.Is(err, usecase.ErrInvalidPaymentAmount),
		errors.Is(err, usecase.ErrInvalidPaymentPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return invalidRequest()
	case errors.Is(err, usecase.ErrPaymentAmountMismatch):
		return pkg.NewDomainErrorSimple("PAYMENT_AMOUNT_MISMATCH", "Payment amount does not match the order price", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentIntentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_INTENT_NOT_FOUND", "Payment intent not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentAlreadyConfirmed):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_CONFIRMED", "Payment already confirmed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		return pkg.NewDomainErrorSimple("CHECKOUT_SESSION_NOT_FOUND", "Checkout session not found", http.StatusNotFound)
	case errors.Is(err, checkout.ErrDocumentNotFound):
		return pkg.NewDomainErrorSimple("DOCUMENT_NOT_FOUND", "Document not found", http.StatusNotFound)
	case errors.Is(err, checkout.ErrUnknownSection):
		return pkg.NewDomainErrorSimple("UNKNOWN_SECTION", "Unknown order section", http.StatusNotFound)
	case errors.Is(err, checkout.ErrInvalidPatch), errors.Is(err, checkout.ErrUnknownActivity):
		return invalidRequest()
	case errors.Is(err, checkout.ErrCheckoutCompleted):
		return pkg.NewDomainErrorSimple("CHECKOUT_COMPLETED", "Checkout already completed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
