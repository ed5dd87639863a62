package handlers

import (
	request "evaluation_orders/internal/adapter/http/dto/request"
	response "evaluation_orders/internal/adapter/http/dto/response"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/usecase"
	"evaluation_orders/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillingPaymentHandler handles HTTP requests for Billing payments.

type BillingPaymentHandler struct {
	usecase usecase.IBillingPaymentUseCase
	log     *zap.Logger
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase, log *zap.Logger) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc, log: logger.OrNop(log)}
}

// CreatePaymentIntent godoc
// @Summary Reserve a payment for an order
// @Tags payments
// @Accept json
// @Produce json
// @Param body body request.PaymentIntentRequest true "Intent"
// @Success 201 {object} response.PaymentIntentResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 422 {object} pkg.HTTPError
// @Router /payments/intents [post]
func (h *BillingPaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req request.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Info("[payment][handler] invalid intent payload", zap.Error(err))
		writeError(c, invalidRequest())
		return
	}

	intent, err := h.usecase.CreatePaymentIntent(c.Request.Context(), req.ToInput())
	if err != nil {
		h.log.Warn("[payment][handler] create-intent failed", zap.String("order_id", req.OrderID), zap.Error(err))
		writeError(c, mapBillingPaymentError(err))
		return
	}
	h.log.Info("[payment][handler] create-intent success", zap.String("order_id", req.OrderID), zap.String("intent_id", intent.ID))
	c.JSON(http.StatusCreated, response.FromPaymentIntent(intent))
}

// ConfirmPayment godoc
// @Summary Charge the card for a payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Param body body request.ConfirmPaymentRequest true "Confirmation"
// @Success 200 {object} response.BillingPaymentResponse
// @Failure 402 {object} pkg.HTTPError
// @Router /payments/confirm [post]
func (h *BillingPaymentHandler) ConfirmPayment(c *gin.Context) {
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	p, err := h.usecase.ConfirmPayment(c.Request.Context(), req.ToInput())
	if err != nil {
		h.log.Warn("[payment][handler] confirm failed", zap.Error(err))
		writeError(c, mapBillingPaymentError(err))
		return
	}
	h.log.Info("[payment][handler] confirm success", zap.String("payment_id", p.ID), zap.String("status", string(p.Status)))
	c.JSON(http.StatusOK, response.FromBillingPayment(p))
}

// GetPaymentByOrderID godoc
// @Summary Latest payment of an order
// @Tags payments
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} response.BillingPaymentResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /payments/{order_id} [get]
func (h *BillingPaymentHandler) GetPaymentByOrderID(c *gin.Context) {
	orderID := c.Param("order_id")

	payments, err := h.usecase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.log.Warn("[payment][handler] get-by-order failed", zap.String("order_id", orderID), zap.Error(err))
		writeError(c, mapBillingPaymentError(err))
		return
	}

	if len(payments) == 0 {
		writeError(c, pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound))
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(latest))
}
