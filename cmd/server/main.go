package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appaddress "github.com/marketplace/backend/internal/application/address"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	contentapp "github.com/marketplace/backend/internal/application/content"
	identityapp "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/application/region"
	"github.com/marketplace/backend/internal/application/storefront"
	tradeapp "github.com/marketplace/backend/internal/application/trade"
	"github.com/marketplace/backend/internal/application/upload"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/shipping"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
	"github.com/marketplace/backend/internal/interfaces/web"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Marketplace API
//	@version		1.0
//	@description	Storefront, seller and checkout API of the marketplace

//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic("Failed to load .env: " + err.Error())
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting marketplace",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tracing is a no-op provider unless enabled
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	var metrics *telemetry.Metrics
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewMetrics()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL && !cfg.App.IsProduction()
	dbTracing.DBName = cfg.Database.DBName
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Redis backs the region cache and the token blacklist; both fall back
	// to process memory when it is down
	cacheFactory := cache.NewFactory(cfg.Redis, cache.WithLogger(log))
	defer func() {
		if err := cacheFactory.Close(); err != nil {
			log.Error("Error closing Redis", zap.Error(err))
		}
	}()
	regionCache, err := cacheFactory.CreateStore("region:")
	if err != nil {
		log.Fatal("Failed to create region cache", zap.Error(err))
	}
	var blacklist auth.TokenBlacklist
	redisClient, redisErr := cacheFactory.Client()
	if redisErr == nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	objectStorage, err := storage.New(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	paymentMethodRepo := persistence.NewGormPaymentMethodRepository(db.DB)

	// Application services
	shippingClient := shipping.NewClient(cfg.Shipping, log)
	jwtService := auth.NewJWTService(cfg.JWT)
	var uploader *upload.Uploader
	var loginRecorder identityapp.LoginRecorder
	if metrics != nil {
		uploader = upload.NewUploader(objectStorage, metrics)
		loginRecorder = metrics
	} else {
		uploader = upload.NewUploader(objectStorage, nil)
	}

	regionService := region.NewService(shippingClient, regionCache, cfg.Shipping.RegionCacheTTL)
	addressService := appaddress.NewService(addressRepo, regionService)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, addressRepo, shippingClient, uploader)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	authService := identityapp.NewAuthService(userRepo, auth.NewFirebaseVerifier(cfg.Firebase), jwtService, blacklist, loginRecorder)
	userService := identityapp.NewUserService(userRepo, addressRepo, uploader)
	checkoutService := tradeapp.NewCheckoutService(productRepo, addressRepo, shippingClient)
	homeService := contentapp.NewHomeService(productRepo, categoryRepo, articleRepo, userRepo, orderRepo)
	articleService := contentapp.NewArticleService(articleRepo)
	paymentService := contentapp.NewPaymentService(paymentMethodRepo)
	storefrontService := storefront.NewService(userRepo, productRepo, categoryRepo, addressRepo)

	// HTTP handlers
	regionHandler := handler.NewRegionHandler(regionService)
	api := router.Handlers{
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Auth:     handler.NewAuthHandler(authService, cfg.Cookie),
		User:     handler.NewUserHandler(userService),
		Address:  handler.NewAddressHandler(addressService),
		Region:   regionHandler,
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Content:  handler.NewContentHandler(homeService, articleService, paymentService),
	}

	renderer, err := web.NewRenderer(log)
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}
	flash := web.FlashCookie{
		Name:     cfg.Web.FlashCookieName,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSiteMode(),
	}
	pages := web.Handlers{
		Storefront: web.NewStorefrontHandler(renderer, storefrontService, log),
		Settings: web.NewSettingsHandler(renderer, userService, addressService, regionService,
			web.SettingsConfig{MapsAPIKey: cfg.Web.GoogleMapsAPIKey, Flash: flash}, log),
		Region: regionHandler,
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version).
		AddCheck("database", func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}).
		AddCheck("redis", func(ctx context.Context) error {
			if redisErr != nil {
				return redisErr
			}
			return redisClient.Ping(ctx).Err()
		})

	// Guards: the API reads bearer tokens; pages read the session cookie
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Sources:    []middleware.TokenSource{middleware.FromBearer(), middleware.FromCookie(cfg.Cookie.Name)},
		Logger:     log,
	})
	pageAuthenticator := authenticator.WithSources(middleware.FromCookie(cfg.Cookie.Name))

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	metricsPath := cfg.Telemetry.MetricsPath
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health", metricsPath))
	engine.Use(middleware.HTTPMetrics(metrics, "/health", metricsPath))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", systemHandler.Health)
	engine.GET("/info", systemHandler.Info)
	if metrics != nil {
		engine.GET(metricsPath, gin.WrapH(metrics.Handler()))
	}
	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		engine.Static("/storage", cfg.Storage.LocalDir)
	}

	router.NewRouter(engine).
		Register(router.APIGroups(api, router.Guards{
			Required: authenticator.Required(),
			Optional: authenticator.Optional(),
		})...).
		Setup()
	router.NewRouter(engine, router.WithPrefix("")).
		Register(web.Groups(pages, pageAuthenticator.RequiredOrRedirect("/"))...).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
