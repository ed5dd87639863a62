package routes

import (
	"evaluation_orders/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
)

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/services", h.UpdateServices)
		orders.POST("/:id/documents", h.AddDocument)
		orders.POST("/:id/receipt", h.SendReceipt)
		orders.GET("/:id/summary", h.GetSummary)
	}
}
