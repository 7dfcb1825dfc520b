package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grambazaar/config"
	"grambazaar/cron"
	"grambazaar/database"
	"grambazaar/handlers"
	"grambazaar/middleware"
	"grambazaar/routes"
	"grambazaar/services/admin"
	"grambazaar/services/booking"
	"grambazaar/services/cart"
	"grambazaar/services/content"
	"grambazaar/services/payment"
	"grambazaar/services/product"
	"grambazaar/services/storage"
	"grambazaar/services/tasks"
	"grambazaar/services/user"
	"grambazaar/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var inMemory bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(inMemory)
		},
	}
	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "use in-memory storage instead of MongoDB")
	return cmd
}

func runServe(inMemory bool) error {
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if err := checkSecrets(); err != nil {
		return err
	}

	repos, err := openRepositories(inMemory)
	if err != nil {
		return err
	}

	if err := utils.InitCache(); err != nil {
		logger.Warn("Redis unavailable; auth cache, idempotency keys and reconcile worker disabled", zap.Error(err))
	}
	authClient := utils.GetAuthCacheClient()
	cacheClient := utils.GetCacheClient()

	gateway, err := newGateway()
	if err != nil {
		return err
	}
	images, err := storage.NewImageStoreFromConfig()
	if err != nil {
		return err
	}

	// services.
	cartService := cart.NewCartService(repos.Carts, repos.Products)
	bookingService := &booking.DefaultBookingService{
		Bookings: repos.Bookings,
		Products: repos.Products,
		Users:    repos.Users,
		Gateway:  gateway,
		BaseURL:  cfg.BaseURL,
		Currency: cfg.PaymentCurrency,
	}
	var queue *asynq.Client
	if cacheClient != nil {
		bookingService.Idempotency = booking.NewRedisIdempotencyStore(cacheClient)
		queue = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		})
		bookingService.Reconciler = tasks.NewAsynqScheduler(queue, cfg.ReconcileDelay)
	}
	userService := &user.DefaultUserService{
		Repo:     repos.Users,
		Sessions: utils.NewAuthSessionStore(authClient),
		Bookings: bookingService,
		Carts:    cartService,
		TokenTTL: cfg.TokenTTL,
	}
	paymentService := payment.NewPaymentService(gateway, cfg.PaymentMinAmount, cfg.PaymentCurrency)
	productService := product.NewProductService(repos.Products, images)
	contentService := &content.DefaultContentService{
		Services: repos.Services,
		News:     repos.News,
		Messages: repos.Messages,
		Settings: repos.Settings,
		Images:   images,
	}
	adminService := &admin.DefaultAdminService{
		Products: repos.Products,
		Users:    repos.Users,
		Bookings: repos.Bookings,
		News:     repos.News,
	}

	var worker *asynq.Server
	if queue != nil {
		worker = cron.InitReconcileWorker(bookingService)
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, []*redis.Client{cacheClient, authClient}, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:           userService,
		RateLimit:      cfg.MaxRequestsPerMin,
		AuthHandler:    handlers.NewAuthHandler(userService),
		CartHandler:    handlers.NewCartHandler(cartService),
		BookingHandler: handlers.NewBookingHandler(bookingService, paymentService),
		CatalogHandler: handlers.NewCatalogHandler(productService, contentService),
		AdminHandler:   handlers.NewAdminHandler(adminService, userService, bookingService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
		return err
	}
	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	utils.CloseCache()
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("MongoDB disconnect failed", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
