// api/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/weathergate/api/audit"
	"github.com/dev-mohitbeniwal/weathergate/api/auth"
	"github.com/dev-mohitbeniwal/weathergate/api/config"
	"github.com/dev-mohitbeniwal/weathergate/api/controller"
	"github.com/dev-mohitbeniwal/weathergate/api/db"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/middleware"
	"github.com/dev-mohitbeniwal/weathergate/api/payment"
	"github.com/dev-mohitbeniwal/weathergate/api/pdp/dao"
	"github.com/dev-mohitbeniwal/weathergate/api/provider"
	"github.com/dev-mohitbeniwal/weathergate/api/router"
	"github.com/dev-mohitbeniwal/weathergate/api/service"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	if err := logger.InitLogger(config.GetString("log.dir"), config.GetString("log.level")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Audit trail
	if config.GetBool("audit.enabled") {
		auditRepository, err := audit.NewElasticsearchRepository(
			config.GetString("elasticsearch.url"),
			config.GetString("audit.index"),
		)
		if err != nil {
			logger.Fatal("Failed to initialize Elasticsearch", zap.Error(err))
		}
		audit.Subscribe(eventBus, audit.NewService(auditRepository))
	}

	// Weather source and result cache
	clock := util.SystemClock()
	dataProvider, err := provider.New(provider.Options{
		Mode:      config.GetString("provider.mode"),
		URL:       config.GetString("provider.url"),
		Timeout:   config.GetDuration("provider.timeout"),
		UserAgent: config.GetString("provider.userAgent"),
		Clock:     clock,
	})
	if err != nil {
		logger.Fatal("Failed to initialize weather provider", zap.Error(err))
	}
	cache := util.NewResultCache(dataProvider, clock, config.GetDuration("cache.freshnessWindow"))
	cache.SetFetchTimeout(config.GetDuration("cache.fetchTimeout"))

	// Initialize services and controllers
	requiredType := config.GetString("gate.requiredCertificateType")
	services := service.InitializeServices(dao.NewCredentialLedger(), cache, requiredType, eventBus, clock)
	controllers := controller.InitializeControllers(services)

	// Authentication
	secret := config.GetString("auth.secret")
	allowUnauthenticated := config.GetBool("auth.allowUnauthenticated")
	if secret == "" && !allowUnauthenticated {
		logger.Fatal("auth.secret must be set unless auth.allowUnauthenticated is true")
	}
	requestedFields := config.GetStringSlice("gate.requestedFields")
	verifier := auth.NewJWTVerifier([]byte(secret), util.NewValidationUtil(util.CertificateRequest{
		Certifiers: []string{config.GetString("gate.trustedCertifier")},
		Types:      map[string][]string{requiredType: requestedFields},
	}))

	routerOptions := router.Options{
		Verifier:             verifier,
		Listener:             services.GateKeeper,
		AllowUnauthenticated: allowUnauthenticated,
		RateLimitRequests:    config.GetInt("ratelimit.requests"),
		RateLimitDuration:    config.GetDuration("ratelimit.per"),
	}

	// Rate limiting
	if config.GetBool("ratelimit.enabled") {
		switch backend := config.GetString("ratelimit.backend"); backend {
		case "redis":
			if err := db.InitRedis(); err != nil {
				logger.Fatal("Failed to initialize Redis", zap.Error(err))
			}
			defer db.CloseRedis()
			routerOptions.Limiter = middleware.NewRedisLimiter(db.RedisClient, routerOptions.RateLimitRequests, routerOptions.RateLimitDuration)
		case "memory", "":
			routerOptions.Limiter = middleware.NewMemoryLimiter(routerOptions.RateLimitRequests, routerOptions.RateLimitDuration)
		default:
			logger.Fatal("Unknown rate limit backend", zap.String("backend", backend))
		}
	}

	// Payment
	if config.GetBool("payment.enabled") {
		facilitator := payment.NewHTTPFacilitatorClient(
			config.GetString("payment.facilitatorURL"),
			config.GetDuration("payment.timeout"),
		)
		routerOptions.Payment = payment.Middleware(facilitator, payment.Options{
			Price:       payment.FlatPrice(config.GetInt64("payment.price")),
			PayTo:       config.GetString("payment.payTo"),
			Network:     config.GetString("payment.network"),
			Description: "Latest Mars weather statistics",
		})
	}

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, routerOptions)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("port", config.GetString("server.port")),
			zap.String("provider", config.GetString("provider.mode")),
			zap.Bool("payment", config.GetBool("payment.enabled")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownTimeout := config.GetDuration("server.shutdownTimeout")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight audit writes finish
	eventBus.Wait()
	logger.Info("Server exiting")
}
