package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/gestio/backend/internal/application/audit"
	billingapp "github.com/gestio/backend/internal/application/billing"
	financeapp "github.com/gestio/backend/internal/application/finance"
	inventoryapp "github.com/gestio/backend/internal/application/inventory"
	partnerapp "github.com/gestio/backend/internal/application/partner"
	tradeapp "github.com/gestio/backend/internal/application/trade"
	"github.com/gestio/backend/internal/domain/shared"
	"github.com/gestio/backend/internal/infrastructure/auth"
	"github.com/gestio/backend/internal/infrastructure/cache"
	"github.com/gestio/backend/internal/infrastructure/config"
	"github.com/gestio/backend/internal/infrastructure/logger"
	"github.com/gestio/backend/internal/infrastructure/persistence"
	"github.com/gestio/backend/internal/infrastructure/telemetry"
	"github.com/gestio/backend/internal/interfaces/http/handler"
	"github.com/gestio/backend/internal/interfaces/http/middleware"
	"github.com/gestio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

//	@title			Gestio Backend API
//	@version		1.0
//	@description	Business management backend: payments, accounts, invoices, trade documents and inventory counts.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Gestio Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracer provider; no-op when telemetry is disabled
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Query tracing piggybacks on the tracer provider
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled,
		LogFullSQL:      !cfg.IsProduction(),
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Idempotency store: Redis when enabled and reachable, in-memory otherwise
	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
			idempotencyStore = cache.NewInMemoryIdempotencyStore()
		} else {
			log.Info("Using Redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
			idempotencyStore = redisStore
		}
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}

	// Repositories
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	paymentMethodRepo := persistence.NewGormPaymentMethodRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	cashRegisterRepo := persistence.NewGormCashRegisterRepository(db.DB)
	cashSessionRepo := persistence.NewGormCashRegisterSessionRepository(db.DB)
	cashTxRepo := persistence.NewGormCashRegisterTransactionRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	customerInvoiceRepo := persistence.NewGormCustomerInvoiceRepository(db.DB)
	supplierInvoiceRepo := persistence.NewGormSupplierInvoiceRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	countSessionRepo := persistence.NewGormCountSessionRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Payment recording pipeline
	referenceValidator := financeapp.NewReferenceValidator(
		currencyRepo,
		paymentMethodRepo,
		customerRepo,
		supplierRepo,
		customerInvoiceRepo,
		supplierInvoiceRepo,
		salesOrderRepo,
		purchaseOrderRepo,
		bankAccountRepo,
		cashSessionRepo,
	)
	paymentResolver := financeapp.NewPaymentResolver(
		currencyRepo,
		paymentMethodRepo,
		customerRepo,
		supplierRepo,
		customerInvoiceRepo,
		supplierInvoiceRepo,
		salesOrderRepo,
		purchaseOrderRepo,
		bankAccountRepo,
		cashSessionRepo,
	)
	paymentService := financeapp.NewPaymentService(
		referenceValidator,
		financeapp.NewAccountLedger(),
		financeapp.NewInvoiceApplicator(),
		paymentResolver,
		persistence.NewGormUnitOfWork(db.DB),
		paymentRepo,
		idempotencyStore,
		shared.IdempotencyConfig{Enabled: cfg.Idempotency.Enabled, TTL: cfg.Idempotency.TTL},
		log,
	)

	// Application services
	currencyService := financeapp.NewCurrencyService(currencyRepo)
	paymentMethodService := financeapp.NewPaymentMethodService(paymentMethodRepo)
	bankAccountService := financeapp.NewBankAccountService(bankAccountRepo)
	cashRegisterService := financeapp.NewCashRegisterService(cashRegisterRepo, cashSessionRepo, cashTxRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	customerInvoiceService := billingapp.NewCustomerInvoiceService(customerInvoiceRepo)
	supplierInvoiceService := billingapp.NewSupplierInvoiceService(supplierInvoiceRepo)
	quoteService := tradeapp.NewQuoteService(quoteRepo)
	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(purchaseOrderRepo)
	countSessionService := inventoryapp.NewCountSessionService(countSessionRepo)
	auditService := auditapp.NewService(auditRepo)

	// JWT service for authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	paymentHandler := handler.NewPaymentHandler(paymentService)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	paymentMethodHandler := handler.NewPaymentMethodHandler(paymentMethodService)
	bankAccountHandler := handler.NewBankAccountHandler(bankAccountService)
	cashRegisterHandler := handler.NewCashRegisterHandler(cashRegisterService)
	customerHandler := handler.NewCustomerHandler(customerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	invoiceHandler := handler.NewInvoiceHandler(customerInvoiceService, supplierInvoiceService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	orderHandler := handler.NewOrderHandler(salesOrderService, purchaseOrderService)
	countSessionHandler := handler.NewCountSessionHandler(countSessionService)
	auditHandler := handler.NewAuditLogHandler(auditService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, security headers, CORS, tracing.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// API routes behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	r.Register(paymentHandler).
		Register(currencyHandler).
		Register(paymentMethodHandler).
		Register(bankAccountHandler).
		Register(cashRegisterHandler).
		Register(customerHandler).
		Register(supplierHandler).
		Register(invoiceHandler).
		Register(quoteHandler).
		Register(orderHandler).
		Register(countSessionHandler).
		Register(auditHandler).
		Register(systemHandler)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
