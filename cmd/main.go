package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/ovenfresh/pizza-order-api/docs" // Import generated docs
	"github.com/ovenfresh/pizza-order-api/internal/auth"
	"github.com/ovenfresh/pizza-order-api/internal/cache"
	"github.com/ovenfresh/pizza-order-api/internal/config"
	"github.com/ovenfresh/pizza-order-api/internal/controllers"
	"github.com/ovenfresh/pizza-order-api/internal/database"
	"github.com/ovenfresh/pizza-order-api/internal/events"
	"github.com/ovenfresh/pizza-order-api/internal/mailer"
	"github.com/ovenfresh/pizza-order-api/internal/middleware"
	"github.com/ovenfresh/pizza-order-api/internal/payment"
	"github.com/ovenfresh/pizza-order-api/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	authController    *controllers.AuthController
	catalogController controllers.CatalogController
	orderController   controllers.OrderController
	adminController   controllers.AdminController
)

// @title Pizza Order API
// @version 1.0
// @description Pizza customization, checkout and order tracking API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	db = setupDatabase(configuration)

	// Outbound integrations
	gateway := payment.New(payment.Config{
		KeyID:     configuration.GatewayKeyID,
		KeySecret: configuration.GatewayKeySecret,
		BaseURL:   configuration.GatewayBaseURL,
	})
	notifier := mailer.New(mailer.Config{
		Enabled:  configuration.EmailEnabled,
		Host:     configuration.SMTPHost,
		Port:     configuration.SMTPPort,
		Username: configuration.SMTPUser,
		Password: configuration.SMTPPassword,
		From:     configuration.EmailFrom,
		FromName: configuration.EmailFromName,
	})
	markers := setupMarkers(configuration)
	// A typed nil must not reach the interface-typed dependency
	var publisher services.EventPublisher
	if p := setupPublisher(configuration); p != nil {
		publisher = p
	}

	// Services
	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db)
	orderService := services.NewOrderService(db, gateway, notifier, markers, publisher, configuration.Currency)
	monitor := services.NewInventoryMonitor(db, userService, notifier, configuration.MonitorInterval)
	monitor.Start()
	defer monitor.Stop()

	// Controllers
	issuer := auth.NewTokenIssuer([]byte(configuration.JWTSecret), configuration.TokenTTL)
	authController = controllers.NewAuthController(userService, issuer, notifier, configuration.ClientURL)
	catalogController = controllers.NewCatalogController(catalogService)
	orderController = controllers.NewOrderController(orderService)
	adminController = controllers.NewAdminController(orderService, monitor)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// setupDatabase connects to the configured database, runs migrations and
// seeds the catalog on first start
func setupDatabase(conf *config.Config) *gorm.DB {
	conn, err := database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(conn))
	checkPanicErr(database.SeedIngredients(conn))
	return conn
}

// setupMarkers connects the payment idempotency marker store. Without a
// configured Redis address verification falls back to database checks only.
func setupMarkers(conf *config.Config) *cache.Markers {
	if conf.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, payment idempotency markers disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: conf.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis unreachable, payment idempotency markers disabled")
		return nil
	}
	return cache.NewMarkers(client, 24*time.Hour)
}

// setupPublisher connects the order event stream. Without a configured broker
// status changes are only persisted, not published.
func setupPublisher(conf *config.Config) *events.Publisher {
	if conf.KafkaBroker == "" {
		log.Info("KAFKA_BROKER not set, order event publishing disabled")
		return nil
	}
	writer := &kafka.Writer{
		Addr:     kafka.TCP(conf.KafkaBroker),
		Topic:    conf.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
	return events.NewPublisher(writer)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/ingredients", catalogController.ListIngredients)
			publicApi.GET("/ingredients/:type", catalogController.ListByCategory)
			publicApi.GET("/ingredients/:type/:id", catalogController.GetIngredient)
		}

		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", authController.Register)
			authApi.POST("/login", authController.Login)
			authApi.GET("/verify-email/:token", authController.VerifyEmail)
			authApi.POST("/forgot-password", authController.ForgotPassword)
			authApi.POST("/reset-password/:token", authController.ResetPassword)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("")
		protectedApi.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		{
			protectedApi.GET("/profile", authController.GetProfile)
			protectedApi.PUT("/profile", authController.UpdateProfile)

			ordersApi := protectedApi.Group("/orders")
			{
				ordersApi.POST("/create-payment-order", orderController.CreatePaymentOrder)
				ordersApi.POST("/verify-payment", orderController.VerifyPayment)
				ordersApi.GET("/user", orderController.GetUserOrders)
				ordersApi.GET("/:id", orderController.GetOrder)
				ordersApi.PUT("/:id/cancel", orderController.CancelOrder)
				ordersApi.POST("/:id/refund", orderController.RequestRefund)
				ordersApi.POST("/:id/rate", orderController.RateOrder)
			}

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireAdmin())
			{
				adminApi.GET("/dashboard", adminController.Dashboard)
				adminApi.GET("/analytics", adminController.SalesAnalytics)
				adminApi.GET("/orders", adminController.ListOrders)
				adminApi.PUT("/orders/:id/status", adminController.UpdateOrderStatus)

				adminApi.GET("/inventory", catalogController.InventoryOverview)
				adminApi.POST("/inventory/:type", catalogController.CreateIngredient)
				adminApi.PUT("/inventory/:type/:id", catalogController.UpdateIngredient)
				adminApi.DELETE("/inventory/:type/:id", catalogController.DeactivateIngredient)

				adminApi.GET("/inventory/monitor/status", adminController.MonitorStatus)
				adminApi.POST("/inventory/monitor/check", adminController.MonitorCheck)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizza-order-api",
	})
}
