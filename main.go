package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MarcAntoine-Arnaud/catalog-api/database"
	"github.com/MarcAntoine-Arnaud/catalog-api/handlers"
	"github.com/MarcAntoine-Arnaud/catalog-api/middleware"
	"github.com/MarcAntoine-Arnaud/catalog-api/monitoring"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting catalog API server initialization")

	shutdownMetrics, err := monitoring.Setup(context.Background(), monitoring.Config{ServiceName: "catalog-api"})
	if err != nil {
		slog.Error("Failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	dbConfig := database.NewConfig()
	gormDB, err := database.Connect(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	jwtSecret := os.Getenv("CATALOG_JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("CATALOG_JWT_SECRET is required")
		os.Exit(1)
	}

	auth := middleware.NewJWTAuthMiddleware(middleware.JWTAuthConfig{
		Secret:           jwtSecret,
		ExpectedIssuer:   os.Getenv("CATALOG_JWT_ISSUER"),
		ExpectedAudience: os.Getenv("CATALOG_JWT_AUDIENCE"),
	})

	apiServer := handlers.NewAPIServer(gormDB, auth)

	mux := http.NewServeMux()
	apiServer.SetupRoutes(mux)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"catalog-api","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})

	// Prometheus metrics endpoint
	mux.Handle("/metrics", monitoring.Handler())

	handler := middleware.NewCORSMiddleware()(monitoring.HTTPMetricsMiddleware(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Catalog API server starting", "port", port, "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start catalog API server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down catalog API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := shutdownMetrics(ctx); err != nil {
		slog.Warn("Telemetry shutdown failed", "error", err)
	}

	slog.Info("Catalog API server exited")
}
