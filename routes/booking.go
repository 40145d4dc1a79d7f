package routes

import (
	"corpay/handlers"
	"corpay/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterCheckoutRoutes registers the checkout session endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, h *handlers.CheckoutHandler) {
	checkout := r.Group("/api/checkout")
	{
		checkout.POST("/session", h.Start)
		checkout.PUT("/session/:sessionID", h.Update)
		checkout.POST("/session/:sessionID/submit", h.Submit)
		checkout.DELETE("/session/:sessionID", h.Cancel)
		checkout.POST("/preview", h.Preview)
	}
}

// RegisterBookingRoutes registers operator and signal endpoints for
// persisted bookings. Mutations require an operator token; vendor
// signals arrive through the same guard in this deployment.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookings := r.Group("/api/bookings")
	{
		bookings.GET("/:id", h.Get)
		bookings.GET("/:id/sla", h.SLAStatus)
		bookings.GET("/:id/disputes", h.ListDisputes)
		bookings.GET("/:id/receipt", h.GetReceipt)
	}
	r.GET("/api/receipts/:receiptID", h.GetReceiptByID)
	r.GET("/api/disputes/open", h.ListOpenDisputes)

	ops := r.Group("/api/bookings", middleware.OperatorAuthMiddleware())
	{
		ops.POST("/:id/approve", h.Approve)
		ops.POST("/:id/request-changes", h.RequestChanges)
		ops.POST("/:id/revise", h.Revise)
		ops.POST("/:id/resubmit", h.Resubmit)
		ops.POST("/:id/confirm", h.VendorConfirm)
		ops.POST("/:id/start", h.StartDelivery)
		ops.POST("/:id/complete", h.CompleteDelivery)
		ops.POST("/:id/cancel", h.Cancel)
		ops.POST("/:id/sla/enforce", h.EnforceSLA)
		ops.POST("/:id/disputes", h.OpenDispute)
		ops.POST("/:id/disputes/:disputeID/advance", h.AdvanceDispute)
	}
}
