package routes

import (
	"corpay/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, checkout *handlers.CheckoutHandler, bookings *handlers.BookingHandler, catalog *handlers.CatalogHandler) {
	r.POST("/api/auth/token", handlers.IssueDevToken)
	r.GET("/api/catalog/services", catalog.ListServices)

	RegisterCheckoutRoutes(r, checkout)
	RegisterBookingRoutes(r, bookings)
}
