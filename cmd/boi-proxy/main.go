package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/comda/boi-proxy/internal/boi"
	"github.com/comda/boi-proxy/internal/boi/events"
	"github.com/comda/boi-proxy/internal/boi/handler"
	"github.com/comda/boi-proxy/internal/boi/service"
	"github.com/comda/boi-proxy/pkg/config"
	apperrors "github.com/comda/boi-proxy/pkg/errors"
	"github.com/comda/boi-proxy/pkg/httputil"
	"github.com/comda/boi-proxy/pkg/i18n"
	"github.com/comda/boi-proxy/pkg/logger"
	"github.com/comda/boi-proxy/pkg/messaging"
)

const serviceName = "boi-proxy"

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(serviceName, cfg.Server.Environment).WithLevel(cfg.Server.LogLevel)
	log.Info().Str("route", cfg.Server.Route).Msg("starting BOI Proxy")

	// Outcome events are optional
	var publisher service.EventPublisher = events.NopPublisher{}
	var rmq *messaging.RabbitMQ
	if cfg.RabbitMQ.Enabled {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		boiPublisher, err := events.NewBoiEventPublisher(rmq, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
		publisher = boiPublisher
	}

	// Initialize service and handler
	boiService := boi.NewService(cfg.Boi, publisher, log)
	boiHandler := handler.NewBoiHandler(boiService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.BodyLogger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(i18n.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "healthy",
			"service": serviceName,
		}
		if rmq != nil {
			status := rmq.Health()
			if status["status"] != "up" {
				httputil.Error(w, r, apperrors.Unavailable("rabbitmq").WithDetails(status))
				return
			}
			health["rabbitmq"] = status
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// CCMS callback and direct BOI API
	r.Route("/"+cfg.Server.Route, boiHandler.Routes)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
