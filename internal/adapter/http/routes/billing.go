package routes

import (
	"evaluation_orders/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathPayments = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, paymentHandler *handlers.BillingPaymentHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/documents", quoteHandler.AttachDocument)
		quotes.PATCH("/:id/approve", quoteHandler.ApproveQuote)
		quotes.PATCH("/:id/reject", quoteHandler.RejectQuote)
		quotes.PATCH("/:id/cancel", quoteHandler.CancelQuote)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/intents", paymentHandler.CreatePaymentIntent)
		payments.POST("/confirm", paymentHandler.ConfirmPayment)
		payments.GET("/:order_id", paymentHandler.GetPaymentByOrderID)
	}
}
