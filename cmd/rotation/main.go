package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/boycottapp/weekly-boycott/internal/boycott/repository"
	"github.com/boycottapp/weekly-boycott/internal/boycott/usecase/command"
	"github.com/boycottapp/weekly-boycott/kafka"
	"github.com/boycottapp/weekly-boycott/pkg/database"
	"github.com/boycottapp/weekly-boycott/pkg/logger"
)

// One-shot weekly rotation runner. The schedule itself lives outside the
// service (cron / Kubernetes CronJob firing every Monday 00:00 UTC); this
// binary runs exactly one rotation and exits non-zero on failure so the
// scheduler's retry policy can take over.
func main() {
	logger.Init(getEnv("OTEL_SERVICE_NAME", "boycott-rotation"), getEnv("ENVIRONMENT", "development") == "development")
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

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
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	products := repository.NewGormProductRepositoryWithTracing(db)
	votes := repository.NewGormVoteRepository(db)

	handler := command.NewRunRotationHandler(products, votes)

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Rotation event publishing disabled")
		} else {
			defer publisher.Close()
			handler = handler.WithNotifier(publisher)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := handler.Handle(ctx)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Weekly rotation failed")
		os.Exit(1)
	}

	logger.Logger.Info().
		Str("week_id", result.WeekID).
		Strs("winners", result.WinnerIDs).
		Int("archived_votes", result.ArchivedVotes).
		Msg("Rotation run finished")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
