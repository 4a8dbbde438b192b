package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"innkeep/config"
	"innkeep/cron"
	"innkeep/database"
	"innkeep/database/repository"
	"innkeep/handlers"
	"innkeep/routes"
	"innkeep/services/availability"
	"innkeep/services/booking"
	"innkeep/services/dashboard"
	"innkeep/services/house"
	"innkeep/services/ledger"
	"innkeep/services/room"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig
	loc := config.Location()
	clock := utils.SystemClock{}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		logger.Fatal("main: failed to register validators", zap.Error(err))
	}

	// repositories.
	var stores *repository.Stores
	switch cfg.DatabaseDriver {
	case "memory":
		logger.Warn("main: using the in-memory store, data is lost on restart")
		stores = repository.NewMemoryStores()
	default:
		database.InitDB()
		stores = repository.NewMongoStores(database.MongoClient, database.DB())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := stores.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Fatal("main: failed to ensure indexes", zap.Error(err))
	}
	cancel()

	// dashboard cache.
	utils.InitCache()
	dashboardService := &dashboard.DefaultDashboardService{
		Rooms:    stores.Rooms,
		Ledger:   stores.Ledger,
		TTL:      cfg.DashboardCacheTTL,
		Clock:    clock,
		Location: loc,
	}
	var cachePing utils.Pinger
	if client := utils.GetCacheClient(); client != nil {
		dashboardService.Cache = utils.NewRedisCache(client)
		cachePing = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	// services.
	ledgerService := &ledger.DefaultLedgerService{
		Repo:        stores.Ledger,
		Tx:          stores.Tx,
		Clock:       clock,
		Location:    loc,
		Invalidator: dashboardService,
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Rooms:    stores.Rooms,
		Bookings: stores.Bookings,
		Stays:    stores.Stays,
	}
	bookingService := &booking.DefaultAdvanceBookingService{
		Repo:         stores.Bookings,
		Availability: availabilityService,
		Ledger:       ledgerService,
		Tx:           stores.Tx,
		Clock:        clock,
		Invalidator:  dashboardService,
		Retries:      cfg.OptimisticRetries,
	}
	houseService := &house.DefaultHouseService{
		Repo:        stores.Houses,
		Ledger:      ledgerService,
		Tx:          stores.Tx,
		Clock:       clock,
		Invalidator: dashboardService,
		Retries:     cfg.OptimisticRetries,
	}
	roomService := &room.DefaultRoomService{
		Rooms:       stores.Rooms,
		Stays:       stores.Stays,
		Ledger:      ledgerService,
		Tx:          stores.Tx,
		Clock:       clock,
		Invalidator: dashboardService,
		Retries:     cfg.OptimisticRetries,
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := houseService.EnsureHouses(ctx); err != nil {
		cancel()
		logger.Fatal("main: failed to seed houses", zap.Error(err))
	}
	cancel()

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewRoomHandler(roomService, availabilityService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewHouseHandler(houseService),
		handlers.NewPaymentHandler(ledgerService, loc, clock),
		handlers.NewDashboardHandler(dashboardService),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, handlerBundle, routes.Options{MaxRequestsPerMin: cfg.MaxRequestsPerMin})

	scheduler, err := cron.Start(&cron.Jobs{
		Ledger:         ledgerService,
		Clock:          clock,
		Location:       loc,
		ReconcileCron:  cfg.ReconcileCron,
		HealthInterval: time.Minute,
		StorePing:      stores.Ping,
		CachePing:      cachePing,
	})
	if err != nil {
		logger.Fatal("main: failed to start scheduler", zap.Error(err))
	}

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	if err := scheduler.Shutdown(); err != nil {
		logger.Warn("main: scheduler shutdown", zap.Error(err))
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if database.MongoClient != nil {
		_ = database.MongoClient.Disconnect(ctx)
	}
	if client := utils.GetCacheClient(); client != nil {
		_ = client.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
