package routes

import (
	"evaluation_orders/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCheckoutSessions = "/checkout/sessions"
	PathFiles            = "/files"
)

func addCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler) {
	sessions := rg.Group(PathCheckoutSessions)
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.PATCH("/:id/:section", h.PatchSection)
		sessions.POST("/:id/documents", h.UploadDocuments)
		sessions.DELETE("/:id/documents/:doc_id", h.DeleteDocument)
		sessions.POST("/:id/next", h.Next)
		sessions.POST("/:id/back", h.Back)
		sessions.POST("/:id/activity", h.Activity)
	}
}

func addFileRoutes(rg *gin.RouterGroup, h *handlers.FileHandler) {
	rg.GET(PathFiles+"/*path", h.GetFile)
}
