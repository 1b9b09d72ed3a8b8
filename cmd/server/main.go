package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	activityHttp "github.com/adilet-dev/campus-inventory/internal/activity/delivery/http"
	activityRepo "github.com/adilet-dev/campus-inventory/internal/activity/repository"
	assignmentHttp "github.com/adilet-dev/campus-inventory/internal/assignment/delivery/http"
	assignmentRepo "github.com/adilet-dev/campus-inventory/internal/assignment/repository"
	productHttp "github.com/adilet-dev/campus-inventory/internal/product/delivery/http"
	productRepo "github.com/adilet-dev/campus-inventory/internal/product/repository"
	reportHttp "github.com/adilet-dev/campus-inventory/internal/report/delivery/http"
	reportRepo "github.com/adilet-dev/campus-inventory/internal/report/repository"
	studentHttp "github.com/adilet-dev/campus-inventory/internal/student/delivery/http"
	studentRepo "github.com/adilet-dev/campus-inventory/internal/student/repository"
	userHttp "github.com/adilet-dev/campus-inventory/internal/user/delivery/http"
	userRepo "github.com/adilet-dev/campus-inventory/internal/user/repository"
	"github.com/adilet-dev/campus-inventory/kafka"
	"github.com/adilet-dev/campus-inventory/pkg/config"
	"github.com/adilet-dev/campus-inventory/pkg/database"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
	"github.com/adilet-dev/campus-inventory/pkg/tracing"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.LogLevel, cfg.IsDevelopment())

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting inventory service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Initialize repositories and run migrations
	users := userRepo.NewGormUserRepository(db)
	products := productRepo.NewGormProductRepository(db)
	students := studentRepo.NewGormStudentRepository(db)
	assignments := assignmentRepo.NewGormAssignmentRepository(db)
	activities := activityRepo.NewGormLogRepository(db)
	reports := reportRepo.NewGormReportRepository(db)

	type migrator interface{ AutoMigrate() error }
	for _, m := range []migrator{users, products, students, assignments, activities} {
		if err := m.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional; without brokers events are skipped
	var publisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Initialize HTTP handlers
	userHandler := userHttp.NewUserHandler(users)
	productHandler := productHttp.NewProductHandler(products)
	studentHandler := studentHttp.NewStudentHandler(students)
	assignmentHandler := assignmentHttp.NewAssignmentHandler(assignments, publisher)
	activityHandler := activityHttp.NewActivityHandler(activities)
	reportHandler := reportHttp.NewReportHandler(products, students, assignments, reports)

	// Setup router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	studentHandler.RegisterRoutes(router)
	assignmentHandler.RegisterRoutes(router)
	activityHandler.RegisterRoutes(router)
	reportHandler.RegisterRoutes(router)

	productHandler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "http.server")

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}

	logger.Logger.Info().Msg("Server stopped")
}
