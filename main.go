// File: corpay/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corpay/config"
	"corpay/cron"
	"corpay/database"
	bookingRepo "corpay/database/repository/bookings"
	catalogRepo "corpay/database/repository/catalog"
	disputeRepo "corpay/database/repository/disputes"
	receiptRepo "corpay/database/repository/receipts"
	"corpay/handlers"
	"corpay/middleware"
	"corpay/routes"
	"corpay/services/booking"
	"corpay/services/policy"
	"corpay/services/settlement"
	"corpay/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	catalog := catalogRepo.NewMongoCatalogRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	receipts := receiptRepo.NewMongoReceiptRepo()
	disputes := disputeRepo.NewMongoDisputeRepo()

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 15*time.Second)
	if err := catalog.Seed(seedCtx, database.SeedServices, database.SeedVendors); err != nil {
		logger.Sugar().Fatalf("main: failed to seed catalog: %v", err)
	}
	cancelSeed()

	// services.
	evaluator := &policy.DefaultEvaluator{}
	processor := settlement.NewStripeProcessor(logger)
	refundScheduler := cron.NewRefundScheduler()

	bookingService := &booking.DefaultBookingService{
		Catalog:     catalog,
		Bookings:    bookings,
		Receipts:    receipts,
		Disputes:    disputes,
		Settlement:  processor,
		Refunds:     refundScheduler,
		Evaluator:   evaluator,
		Program:     booking.ConfigProgramProvider{},
		AutoDispute: config.AppConfig.AutoDispute,
		Logger:      logger,
	}
	checkoutService := &booking.DefaultCheckoutService{
		Catalog:     catalog,
		Bookings:    bookings,
		Receipts:    receipts,
		Evaluator:   evaluator,
		Program:     booking.ConfigProgramProvider{},
		AutoDispute: config.AppConfig.AutoDispute,
		Logger:      logger,
	}

	// background workers.
	cron.InitSettlementWorker(bookingService)
	cron.InitSLAPoller(bookingService)

	// handlers and routes.
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	bookingHandler := handlers.NewBookingHandler(bookingService, receipts, disputes)
	catalogHandler := handlers.NewCatalogHandler(catalog)
	routes.RegisterRoutes(router, checkoutHandler, bookingHandler, catalogHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
