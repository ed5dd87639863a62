package handlers

import (
	"errors"
	request "evaluation_orders/internal/adapter/http/dto/request"
	response "evaluation_orders/internal/adapter/http/dto/response"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/usecase/checkout"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler drives the order wizard sessions.

type CheckoutHandler struct {
	sessions *checkout.Registry
	maxBytes int64
	log      *zap.Logger
}

// NewCheckoutHandler reads at most maxBytes+1 bytes per uploaded file so
// oversized files still reach the upload manager as rejects.
func NewCheckoutHandler(sessions *checkout.Registry, maxBytes int64, log *zap.Logger) *CheckoutHandler {
	if maxBytes <= 0 {
		maxBytes = checkout.DefaultMaxUploadBytes
	}
	return &CheckoutHandler{sessions: sessions, maxBytes: maxBytes, log: logger.OrNop(log)}
}

// CreateSession godoc
// @Summary Open a checkout session
// @Description Query parameters resume an order (orderId, step) or pre-fill a new one (firstName, lastName, email, phone, company, service, urgency, delivery, evaluationType, languageFrom, languageTo, pageCount, specialInstructions).
// @Tags checkout
// @Produce json
// @Success 201 {object} response.CheckoutSessionResponse
// @Router /checkout/sessions [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	ctrl, res := h.sessions.Create(c.Request.Context(), c.Request.URL.Query())
	out := response.FromCheckoutView(ctrl.View())
	out.Reset = res.Reset
	c.JSON(http.StatusCreated, out)
}

// GetSession godoc
// @Summary Current view of a checkout session
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.CheckoutSessionResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutView(ctrl.View()))
}

// PatchSection godoc
// @Summary Merge a partial update into a section of the order
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param section path string true "customer, services or payment"
// @Success 200 {object} response.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/{section} [patch]
func (h *CheckoutHandler) PatchSection(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		writeError(c, invalidRequest())
		return
	}
	if err := ctrl.Edit(checkout.Section(c.Param("section")), raw); err != nil {
		writeError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutView(ctrl.View()))
}

// UploadDocuments godoc
// @Summary Add documents to the order
// @Description Files upload in the background; poll the session view for each document's status.
// @Tags checkout
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param files formData file true "Documents"
// @Success 202 {object} response.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/documents [post]
func (h *CheckoutHandler) UploadDocuments(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		writeError(c, invalidRequest())
		return
	}

	files := make([]checkout.FileUpload, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			h.log.Warn("[checkout][handler] open upload failed", zap.String("file", fh.Filename), zap.Error(err))
			writeError(c, invalidRequest())
			return
		}
		content, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
		_ = f.Close()
		if err != nil {
			writeError(c, invalidRequest())
			return
		}
		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = http.DetectContentType(content)
		}
		files = append(files, checkout.FileUpload{Name: fh.Filename, MimeType: mimeType, Content: content})
	}

	if _, err := ctrl.AddFiles(c.Request.Context(), files); err != nil {
		writeError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusAccepted, response.FromCheckoutView(ctrl.View()))
}

// DeleteDocument godoc
// @Summary Remove a document from the order
// @Tags checkout
// @Param id path string true "Session ID"
// @Param doc_id path string true "Document ID"
// @Success 200 {object} response.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/documents/{doc_id} [delete]
func (h *CheckoutHandler) DeleteDocument(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	if err := ctrl.RemoveDocument(c.Request.Context(), c.Param("doc_id")); err != nil {
		writeError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutView(ctrl.View()))
}

// Next godoc
// @Summary Complete the current step and advance
// @Description On the payment step the body carries the card widget result. A failed step answers 422 with the inline message on the view.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body checkout.CardInput false "Card"
// @Success 200 {object} response.CheckoutSessionResponse
// @Failure 422 {object} response.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/next [post]
func (h *CheckoutHandler) Next(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	var card *checkout.CardInput
	if c.Request.ContentLength != 0 {
		var in checkout.CardInput
		if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
			writeError(c, invalidRequest())
			return
		} else if err == nil {
			card = &in
		}
	}

	err := ctrl.Next(c.Request.Context(), card)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response.FromCheckoutView(ctrl.View()))
	case errors.Is(err, checkout.ErrCheckoutCompleted):
		writeError(c, mapCheckoutError(err))
	default:
		h.log.Info("[checkout][handler] step not completed", zap.String("session_id", ctrl.ID()), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, response.FromCheckoutView(ctrl.View()))
	}
}

// Back godoc
// @Summary Go back one step
// @Tags checkout
// @Param id path string true "Session ID"
// @Success 200 {object} response.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/back [post]
func (h *CheckoutHandler) Back(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	ctrl.Back()
	c.JSON(http.StatusOK, response.FromCheckoutView(ctrl.View()))
}

// Activity godoc
// @Summary Report user activity
// @Description kind is one of pointer, key, scroll, touch, hidden, visible. {"active": true} marks the session active without a kind.
// @Tags checkout
// @Accept json
// @Param id path string true "Session ID"
// @Param body body request.ActivityRequest true "Activity"
// @Success 204
// @Router /checkout/sessions/{id}/activity [post]
func (h *CheckoutHandler) Activity(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req request.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	kind := strings.TrimSpace(req.Kind)
	switch {
	case kind != "":
		if err := ctrl.RecordActivity(checkout.ActivityKind(kind)); err != nil {
			writeError(c, mapCheckoutError(err))
			return
		}
	case req.Active:
		ctrl.MarkAsActive()
	default:
		writeError(c, invalidRequest())
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteSession godoc
// @Summary Close a checkout session
// @Tags checkout
// @Param id path string true "Session ID"
// @Success 204
// @Router /checkout/sessions/{id} [delete]
func (h *CheckoutHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapCheckoutError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) session(c *gin.Context) (*checkout.Controller, bool) {
	ctrl, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, mapCheckoutError(err))
		return nil, false
	}
	return ctrl, true
}
