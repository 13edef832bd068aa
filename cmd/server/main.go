package main

import (
	"coachplus/coachlog/internal/api"
	"coachplus/coachlog/internal/bootstrap"
	"coachplus/coachlog/internal/config"
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Coach Log API
// @version 1.0
// @description Per-day coaching log: sessions, templates, recurrence and period stats.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	log.Println("Starting Coach Log Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("FATAL: auth.jwt_secret (AUTH_JWT_SECRET) must be set")
	}
	log.Println("Configuration loaded.")

	// --- Storage and services ---
	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize application: %v", err)
	}
	defer func() {
		log.Println("Closing storage...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(ctx); err != nil {
			log.Printf("ERROR: Failed to close storage: %v", err)
		}
	}()

	// --- Initialize Gin Engine ---
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.Auth.JWTSecret, app.Calendar, app.Services())

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Printf("ERROR: ListenAndServe Error: %v", err)
	}
	log.Println("Shutting down server...")

	// In-flight requests get 5 seconds to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
