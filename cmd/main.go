package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fabiofilipe/pizzaria-api/internal/handler"
	"github.com/fabiofilipe/pizzaria-api/internal/repositories"
	"github.com/fabiofilipe/pizzaria-api/internal/router"
	"github.com/fabiofilipe/pizzaria-api/internal/service"
	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/envconfig"
	"github.com/fabiofilipe/pizzaria-api/pkg/flags"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
	"github.com/fabiofilipe/pizzaria-api/pkg/metrics"
	"github.com/fabiofilipe/pizzaria-api/pkg/shutdownsetup"
)

func main() {
	flagConfig := flags.Parse()

	if err := flagConfig.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return
	}

	envErr := envconfig.LoadEnvFile(".env")

	loggerConfig := logger.Config{
		Level:        envconfig.GetLogLevel(),
		Format:       envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:       envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: envconfig.GetEnv("LOG_ENABLE_CALLER", "true") == "true",
		Environment:  envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting pizzaria ordering API",
		"environment", loggerConfig.Environment,
		"log_level", loggerConfig.Level)

	authConfig := envconfig.LoadAuthConfig()
	if authConfig.SecretKey == "" {
		appLogger.Fatal("SECRET_KEY environment variable is required")
	}

	dbConfig := envconfig.LoadDatabaseConfig()

	db, err := database.NewConnection(dbConfig, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to establish database connection", "error", err)
	}
	appLogger.Info("Database connection established successfully")

	if err := db.HealthCheck(); err != nil {
		appLogger.Error("Database health check failed", "error", err)
	} else {
		appLogger.Info("Database health check passed")
	}

	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database connection", "error", err)
		}
	}()

	serverMetrics := metrics.New()

	userRepo := repositories.NewUserRepository(appLogger, db)
	categoryRepo := repositories.NewCategoryRepository(appLogger, db)
	productRepo := repositories.NewProductRepository(appLogger, db)
	ingredientRepo := repositories.NewIngredientRepository(appLogger, db)
	catalogRepo := repositories.NewCatalogRepository(appLogger, db)
	orderRepo := repositories.NewOrderRepository(appLogger, db)

	pricingEngine := service.NewPricingEngine(catalogRepo)

	authService := service.NewAuthService(appLogger, userRepo, &authConfig)
	orderService := service.NewOrderService(appLogger, orderRepo, userRepo, pricingEngine, serverMetrics)
	categoryService := service.NewCategoryService(appLogger, categoryRepo)
	productService := service.NewProductService(appLogger, productRepo)
	ingredientService := service.NewIngredientService(appLogger, ingredientRepo)
	menuService := service.NewMenuService(appLogger, categoryRepo, productRepo)

	authMiddleware := handler.NewAuthMiddleware(appLogger, authService)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService, appLogger),
		Order:      handler.NewOrderHandler(orderService, appLogger),
		Category:   handler.NewCategoryHandler(categoryService, appLogger),
		Product:    handler.NewProductHandler(productService, appLogger),
		Ingredient: handler.NewIngredientHandler(ingredientService, appLogger),
		Menu:       handler.NewMenuHandler(menuService, appLogger),
		Health:     handler.NewHealthHandler(db, appLogger),
	}

	mux := router.NewRouter(handlers, authMiddleware)

	httpHandler := appLogger.HTTPMiddleware(serverMetrics.HTTPMiddleware(mux))

	initialPort := flagConfig.Port
	if initialPort == "" {
		initialPort = envconfig.GetEnv("PORT", "8080")
	}
	host := envconfig.GetEnv("HOST", "localhost")

	port := initialPort

	server := &http.Server{
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		server.Addr = host + ":" + port

		go func() {
			appLogger.Info("Starting HTTP server",
				"host", host,
				"port", port,
				"address", server.Addr)

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Server error", "error", err)
				serverErrors <- err
			}
		}()

		select {
		case err := <-serverErrors:
			if strings.Contains(err.Error(), "address already in use") && i < maxRetries-1 {
				portNum := 8080 + i + 1
				port = fmt.Sprintf("%d", portNum)
				appLogger.Warn("Port already in use, trying alternative port",
					"current_port", server.Addr,
					"next_port", port)
				continue
			} else {
				appLogger.Error("Failed to start server after retries", "error", err)
				return
			}
		case <-time.After(200 * time.Millisecond):
			appLogger.Info("Server started successfully", "port", port)
		}

		break
	}

	select {
	case err := <-serverErrors:
		appLogger.Error("Could not start server", "error", err)
		return
	default:
		shutdownsetup.SetupGracefulShutdown(server, appLogger)
	}
}
