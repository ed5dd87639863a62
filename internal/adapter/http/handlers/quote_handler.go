package handlers

import (
	"context"
	request "evaluation_orders/internal/adapter/http/dto/request"
	response "evaluation_orders/internal/adapter/http/dto/response"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteHandler handles HTTP requests for quotes.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	log     *zap.Logger
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{usecase: uc, log: logger.OrNop(log)}
}

// CreateQuote godoc
// @Summary Price a service selection as a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body request.QuoteRequest true "Quote"
// @Success 201 {object} response.QuoteResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	q, err := h.usecase.CreateQuote(c.Request.Context(), req.Customer.ToCustomer(), req.Services.ToServiceInfo())
	if err != nil {
		h.log.Warn("[quote][handler] create failed", zap.Error(err))
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// GetQuote godoc
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.QuoteResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// AttachDocument godoc
// @Summary Attach an uploaded document path to a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param body body request.DocumentPathRequest true "Document path"
// @Success 200 {object} response.QuoteResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /quotes/{id}/documents [post]
func (h *QuoteHandler) AttachDocument(c *gin.Context) {
	var req request.DocumentPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	id := c.Param("id")
	q, err := h.usecase.AttachDocument(c.Request.Context(), id, req.Path)
	if err != nil {
		h.log.Info("[quote][handler] attach document failed", zap.String("quote_id", id), zap.Error(err))
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ApproveQuote godoc
// @Summary Approve a pending quote
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 200 {object} response.QuoteResponse
// @Router /quotes/{id}/approve [patch]
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	h.patchStatus(c, entities.QuoteStatusApproved, h.usecase.ApproveByID)
}

// RejectQuote godoc
// @Summary Reject a pending quote
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 200 {object} response.QuoteResponse
// @Router /quotes/{id}/reject [patch]
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	h.patchStatus(c, entities.QuoteStatusRejected, h.usecase.RejectByID)
}

// CancelQuote godoc
// @Summary Cancel a pending quote
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 200 {object} response.QuoteResponse
// @Router /quotes/{id}/cancel [patch]
func (h *QuoteHandler) CancelQuote(c *gin.Context) {
	h.patchStatus(c, entities.QuoteStatusCancelled, h.usecase.CancelByID)
}

func (h *QuoteHandler) patchStatus(c *gin.Context, status entities.QuoteStatus, fn func(ctx context.Context, id string) (entities.Quote, error)) {
	id := c.Param("id")
	q, err := fn(c.Request.Context(), id)
	if err != nil {
		h.log.Info("[quote][handler] status change failed", zap.String("quote_id", id), zap.String("status", string(status)), zap.Error(err))
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}
