package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	_ "github.com/boycottapp/weekly-boycott/docs"
	httpDelivery "github.com/boycottapp/weekly-boycott/internal/boycott/delivery/http"
	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/internal/boycott/repository"
	"github.com/boycottapp/weekly-boycott/pkg/cache"
	"github.com/boycottapp/weekly-boycott/pkg/database"
	"github.com/boycottapp/weekly-boycott/pkg/logger"
	"github.com/boycottapp/weekly-boycott/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "boycott-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting boycott service")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Warn().Err(err).Msg("Tracer shutdown failed")
			}
		}()
	}

	// Storage backend selection: the in-memory store serves local demo
	// runs, Postgres serves production. All logic downstream sees only the
	// repository interfaces.
	var (
		products domain.ProductRepository
		votes    domain.VoteRepository
		likes    domain.LikeRepository
		sqlDB    *sql.DB
	)

	if getEnv("USE_MOCK_STORE", "false") == "true" {
		logger.Logger.Warn().Msg("Using in-memory storage, data will not survive a restart")
		products = repository.NewMemoryProductRepository()
		votes = repository.NewMemoryVoteRepository()
		likes = repository.NewMemoryLikeRepository()
	} else {
		dbConfig := database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "boycottdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		}

		db, err := database.NewGormConnection(dbConfig)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		sqlDB, err = db.DB()
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
		}
		defer sqlDB.Close()

		if err := migrate(db); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		logger.Logger.Info().Msg("Database initialized successfully")

		products = repository.NewGormProductRepositoryWithTracing(db)
		votes = repository.NewGormVoteRepository(db)
		likes = repository.NewGormLikeRepository(db)
	}

	redisClient := cache.NewRedisClient(getEnv("REDIS_ADDR", ""), getEnv("REDIS_PASSWORD", ""))
	listCache := cache.NewListCache(redisClient, time.Minute)

	handler := httpDelivery.NewBoycottHandler(products, votes, likes, listCache)

	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(handler, sqlDB, httpPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Product{},
		&domain.Vote{},
		&domain.ArchivedVote{},
		&domain.Like{},
	)
}

func startHTTPServer(handler *httpDelivery.BoycottHandler, db *sql.DB, port string) {
	router := mux.NewRouter()
	router.Use(httpDelivery.LoggingMiddleware)

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, db)
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/").
		Msg("HTTP server started")

	wrapped := otelhttp.NewHandler(c.Handler(router), "boycott-http")
	if err := http.ListenAndServe(":"+port, wrapped); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
