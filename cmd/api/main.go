package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/luxehairplug/bookings/internal/catalog"
	"github.com/luxehairplug/bookings/internal/http/handlers"
	"github.com/luxehairplug/bookings/internal/notify"
	"github.com/luxehairplug/bookings/internal/payments"
	"github.com/luxehairplug/bookings/internal/webhooks"
	"github.com/luxehairplug/bookings/pkg/config"
	"github.com/luxehairplug/bookings/pkg/events"
	"github.com/luxehairplug/bookings/pkg/logger"
	mw "github.com/luxehairplug/bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.Stripe.SecretKey == "" {
		logger.Error("STRIPE_SECRET_KEY is required")
		os.Exit(1)
	}
	if cfg.Stripe.WebhookSecret == "" {
		logger.Warn("STRIPE_WEBHOOK_SECRET is not set; webhook delivery will be rejected until it is configured")
	}

	// Event bus is optional; without NATS, payment events are dropped.
	var bus events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsBus.Close()
		bus = natsBus
	}

	stripeClient := payments.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.Timeout)
	notifier := notify.FromConfig(cfg.Notify)
	webhookHandler := webhooks.New(cfg.Stripe.WebhookSecret, bus, notifier)

	h := handlers.New(catalog.Default(), stripeClient, webhookHandler, cfg.Server.StaticDir)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("bookings"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Redis-backed replay cache for /create-payment-intent. The provider-side
	// idempotency key is handled separately in the payments client.
	if cfg.Redis.URL != "" {
		store, err := mw.NewRedisStore(cfg.Redis.URL)
		if err != nil {
			logger.Error("Failed to configure Redis", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		r.Use(mw.Idempotency(store))
	}

	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down bookings service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Bookings service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting bookings service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Bookings service error", "error", err)
		os.Exit(1)
	}
}
