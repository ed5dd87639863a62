package handlers

import (
	request "evaluation_orders/internal/adapter/http/dto/request"
	response "evaluation_orders/internal/adapter/http/dto/response"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the order record backend.

type OrderHandler struct {
	usecase       usecase.IOrderUseCase
	notifications usecase.INotificationUseCase
	log           *zap.Logger
}

func NewOrderHandler(uc usecase.IOrderUseCase, notifications usecase.INotificationUseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{usecase: uc, notifications: notifications, log: logger.OrNop(log)}
}

// CreateOrder godoc
// @Summary Create an order
// @Tags orders
// @Accept json
// @Produce json
// @Param body body request.CustomerRequest true "Customer"
// @Success 201 {object} response.OrderResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Info("[order][handler] invalid payload", zap.Error(err))
		writeError(c, invalidRequest())
		return
	}

	created, err := h.usecase.CreateOrder(c.Request.Context(), req.ToCustomer())
	if err != nil {
		h.log.Warn("[order][handler] create failed", zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(created))
}

// GetOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.OrderResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// UpdateServices godoc
// @Summary Replace the service selection of an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body request.ServicesRequest true "Services"
// @Success 200 {object} response.OrderResponse
// @Router /orders/{id}/services [put]
func (h *OrderHandler) UpdateServices(c *gin.Context) {
	var req request.ServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	updated, err := h.usecase.UpdateOrderServices(c.Request.Context(), c.Param("id"), req.ToServiceInfo())
	if err != nil {
		h.log.Warn("[order][handler] services update failed", zap.String("order_id", c.Param("id")), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(updated))
}

// AddDocument godoc
// @Summary Attach an uploaded document path to an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body request.DocumentPathRequest true "Document path"
// @Success 200 {object} response.OrderResponse
// @Router /orders/{id}/documents [post]
func (h *OrderHandler) AddDocument(c *gin.Context) {
	var req request.DocumentPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	updated, err := h.usecase.UpdateOrderDocuments(c.Request.Context(), c.Param("id"), req.Path)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(updated))
}

// SendReceipt godoc
// @Summary Send the receipt email of an order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 202
// @Router /orders/{id}/receipt [post]
func (h *OrderHandler) SendReceipt(c *gin.Context) {
	if err := h.notifications.SendReceiptEmail(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Warn("[order][handler] receipt failed", zap.String("order_id", c.Param("id")), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}
	c.Status(http.StatusAccepted)
}

// GetSummary godoc
// @Summary Purchase summary of an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} usecase.PurchaseSummary
// @Router /orders/{id}/summary [get]
func (h *OrderHandler) GetSummary(c *gin.Context) {
	summary, err := h.usecase.GetPurchaseSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, summary)
}
