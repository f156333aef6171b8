package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server Server
	Stripe Stripe
	Redis  Redis
	NATS   NATS
	Notify Notify
	CORS   CORS
}

type Server struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	StaticDir    string
}

type Stripe struct {
	SecretKey     string
	WebhookSecret string
	Timeout       time.Duration
}

type Redis struct {
	URL string // empty disables the idempotency cache
}

type NATS struct {
	URL string // empty disables event publishing
}

type Notify struct {
	MailerSendKey string
	FromName      string
	FromEmail     string
	ToEmail       string
}

type CORS struct {
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Server: Server{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			StaticDir:    getEnv("STATIC_DIR", "web"),
		},
		Stripe: Stripe{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Timeout:       getDuration("STRIPE_TIMEOUT", 30*time.Second),
		},
		Redis: Redis{
			URL: getEnv("REDIS_URL", ""),
		},
		NATS: NATS{
			URL: getEnv("NATS_URL", ""),
		},
		Notify: Notify{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromName:      getEnv("NOTIFY_FROM_NAME", "Luxehairplug"),
			FromEmail:     getEnv("NOTIFY_FROM_EMAIL", ""),
			ToEmail:       getEnv("NOTIFY_TO_EMAIL", ""),
		},
		CORS: CORS{
			AllowedOrigins: getStrings("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getStrings(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
