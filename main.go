// File: flowmaster/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowmaster/config"
	"flowmaster/cron"
	"flowmaster/database"
	appointmentRepo "flowmaster/database/repository/appointment"
	notificationRepo "flowmaster/database/repository/notification"
	paymentRepo "flowmaster/database/repository/payment"
	professionalRepo "flowmaster/database/repository/professional"
	recurrenceRepo "flowmaster/database/repository/recurrence"
	reviewRepo "flowmaster/database/repository/review"
	scheduleRepo "flowmaster/database/repository/schedule"
	serviceRepo "flowmaster/database/repository/service"
	tenantRepo "flowmaster/database/repository/tenant"
	userRepo "flowmaster/database/repository/user"
	"flowmaster/handlers"
	"flowmaster/routes"
	"flowmaster/services/booking"
	"flowmaster/services/catalog"
	"flowmaster/services/finance"
	ai "flowmaster/services/intelligence"
	"flowmaster/services/notification"
	"flowmaster/services/payment"
	"flowmaster/services/review"
	"flowmaster/services/storage"
	"flowmaster/services/tenant"
	"flowmaster/services/user"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	client, db, err := database.Connect(ctx)
	if err != nil {
		logger.Fatal("main: database connection failed", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	ensureIndexes(ctx, db, logger)

	// Redis-backed caches fall back to process memory when Redis is down.
	cacheClient, err := utils.NewCacheClient(ctx)
	if err != nil {
		logger.Warn("main: cache redis unavailable, using in-memory caches", zap.Error(err))
	}
	authClient, err := utils.NewAuthCacheClient(ctx)
	if err != nil {
		logger.Warn("main: auth redis unavailable, using in-memory token cache", zap.Error(err))
	}
	tenantCache := ttlCache(cacheClient, "tenant-config:", config.AppConfig.TenantConfigTTL)
	sessionCache := ttlCache(cacheClient, "agent-session:", config.AppConfig.AgentSessionTTL)
	tokenCache := ttlCache(authClient, "service-token:", config.AppConfig.JWTTTL)

	// repositories.
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)
	schedules := scheduleRepo.NewMongoScheduleRepo(db)
	professionals := professionalRepo.NewMongoProfessionalRepo(db)
	services := serviceRepo.NewMongoServiceRepo(db)
	rules := recurrenceRepo.NewMongoRecurrenceRepo(db)
	tenants := tenantRepo.NewMongoTenantConfigRepo(db)
	users := userRepo.NewMongoUserRepo(db)
	reviews := reviewRepo.NewMongoReviewRepo(db)
	notifications := notificationRepo.NewMongoNotificationRepo(db)
	proofs := paymentRepo.NewMongoPaymentProofRepo(db)

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:         notifications,
		Appointments: appointments,
		Users:        users,
	}
	if config.AppConfig.FirebaseCredentialsFile != "" {
		pusher, err := notification.NewFCMPusher(ctx, config.AppConfig.FirebaseCredentialsFile)
		if err != nil {
			logger.Warn("main: push notifications disabled", zap.Error(err))
		} else {
			notificationService.Pusher = pusher
		}
	}

	bookingService := &booking.DefaultBookingService{
		Appointments:  appointments,
		Schedules:     schedules,
		Professionals: professionals,
		Services:      services,
		Rules:         rules,
		Notifier:      notificationService,
	}
	catalogService := &catalog.DefaultCatalogService{
		Services:      services,
		Professionals: professionals,
		Schedules:     schedules,
	}
	tenantService := &tenant.DefaultTenantService{Repo: tenants, Cache: tenantCache}
	userService := &user.DefaultUserService{
		Repo:        users,
		TokenCache:  tokenCache,
		AgentAPIKey: config.AppConfig.AgentAPIKey,
		TokenTTL:    config.AppConfig.JWTTTL,
	}
	reviewService := &review.DefaultReviewService{Appointments: appointments, Reviews: reviews}
	financeService := &finance.DefaultFinanceService{
		Appointments:  appointments,
		Services:      services,
		Professionals: professionals,
	}

	paymentService := &payment.DefaultPaymentService{
		Appointments: appointments,
		Services:     services,
		Proofs:       proofs,
		Currency:     config.AppConfig.StripeCurrency,
	}
	if store, err := storage.New(ctx, config.AppConfig); err != nil {
		logger.Warn("main: payment proof uploads disabled", zap.Error(err))
	} else {
		paymentService.Storage = store
	}
	if config.AppConfig.StripeKey != "" {
		paymentService.Gateway = payment.NewStripeGateway(config.AppConfig.StripeKey)
	}

	agentService := &ai.DefaultAgentService{
		Sessions: ai.NewSessionStore(sessionCache),
		Tenants:  tenantService,
		Catalog:  catalogService,
		Booking:  bookingService,
	}
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("main: chat agent disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			agentService.Model = gemini
		}
	}
	if config.AppConfig.GoogleServiceAccountFile != "" {
		stt, err := ai.NewGoogleTranscriber(ctx, config.AppConfig.GoogleServiceAccountFile, config.AppConfig.SpeechLanguage)
		if err != nil {
			logger.Warn("main: voice notes disabled", zap.Error(err))
		} else {
			defer stt.Close()
			agentService.Transcriber = stt
		}
	}

	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Booking:       bookingService,
		Catalog:       catalogService,
		Tenant:        tenantService,
		User:          userService,
		Review:        reviewService,
		Finance:       financeService,
		Notification:  notificationService,
		Payment:       paymentService,
		Agent:         agentService,
		VerifyToken:   config.AppConfig.WhatsAppVerifyToken,
		DefaultTenant: config.AppConfig.DefaultTenantID,
	})

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MaxRequestsPerMin)

	worker, err := cron.NewReminderWorker(notificationService)
	if err != nil {
		logger.Warn("main: reminder worker disabled", zap.Error(err))
	} else {
		worker.Start(ctx)
		defer worker.Shutdown()
	}

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3000"
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

func ttlCache(client *redis.Client, prefix string, ttl time.Duration) utils.TTLCache {
	if client == nil {
		return utils.NewMemoryTTLCache(ttl)
	}
	return utils.NewRedisTTLCache(client, prefix, ttl)
}

func ensureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) {
	steps := map[string]func(context.Context, *mongo.Database) error{
		"appointments":   appointmentRepo.EnsureIndexes,
		"schedules":      scheduleRepo.EnsureIndexes,
		"professionals":  professionalRepo.EnsureIndexes,
		"services":       serviceRepo.EnsureIndexes,
		"recurrence":     recurrenceRepo.EnsureIndexes,
		"tenant configs": tenantRepo.EnsureIndexes,
		"users":          userRepo.EnsureIndexes,
		"reviews":        reviewRepo.EnsureIndexes,
		"notifications":  notificationRepo.EnsureIndexes,
		"payment proofs": paymentRepo.EnsureIndexes,
	}
	for name, ensure := range steps {
		if err := ensure(ctx, db); err != nil {
			logger.Fatal("main: failed to create indexes", zap.String("collection", name), zap.Error(err))
		}
	}
}
