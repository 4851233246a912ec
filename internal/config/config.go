package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	UploadDir            string
	CORSOrigins          []string
	AdminAPIToken        string
	AdminPasswordHash    string
	AdminSessionSecret   string
	AdminSessionTTL      time.Duration
	StripeSecretKey      string
	StripeWebhookSecret  string
	StripePublishableKey string
	Currency             string
	ShopifyShopDomain    string
	ShopifyAccessToken   string
	EbayOAuthToken       string
	EbayMarketplaceID    string
	ReconcileInterval    time.Duration
	ReconcileBatchSize   int
	ReconcileMinAge      time.Duration
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultUploadDir          = "uploads"
	defaultCurrency           = "usd"
	defaultSessionSecret      = "change-me-in-production"
	defaultSessionTTL         = 12 * time.Hour
	defaultReconcileInterval  = time.Minute
	defaultReconcileBatchSize = 32
	defaultReconcileMinAge    = 5 * time.Minute
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		UploadDir:            getString(lookup, "UPLOAD_DIR", defaultUploadDir),
		CORSOrigins:          splitList(getString(lookup, "CORS_ORIGINS", "")),
		AdminAPIToken:        getString(lookup, "ADMIN_API_TOKEN", ""),
		AdminPasswordHash:    getString(lookup, "ADMIN_PASSWORD_HASH", ""),
		AdminSessionSecret:   getString(lookup, "ADMIN_SESSION_SECRET", defaultSessionSecret),
		AdminSessionTTL:      getDuration(lookup, "ADMIN_SESSION_TTL", defaultSessionTTL),
		StripeSecretKey:      getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:  getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		StripePublishableKey: getString(lookup, "STRIPE_PUBLISHABLE_KEY", ""),
		Currency:             getString(lookup, "CURRENCY", defaultCurrency),
		ShopifyShopDomain:    getString(lookup, "SHOPIFY_SHOP_DOMAIN", ""),
		ShopifyAccessToken:   getString(lookup, "SHOPIFY_ACCESS_TOKEN", ""),
		EbayOAuthToken:       getString(lookup, "EBAY_OAUTH_TOKEN", ""),
		EbayMarketplaceID:    getString(lookup, "EBAY_MARKETPLACE_ID", ""),
		ReconcileInterval:    getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatchSize:   getInt(lookup, "RECONCILE_BATCH_SIZE", defaultReconcileBatchSize),
		ReconcileMinAge:      getDuration(lookup, "RECONCILE_MIN_AGE", defaultReconcileMinAge),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("lumiere", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
		corsOriginsStr       = strings.Join(cfg.CORSOrigins, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN (empty selects the in-memory store)")
	fs.StringVar(&cfg.UploadDir, "uploads", cfg.UploadDir, "Directory for uploaded product images")
	fs.StringVar(&corsOriginsStr, "cors-origins", corsOriginsStr, "Comma-separated allowed CORS origins")
	fs.StringVar(&cfg.AdminSessionSecret, "admin-secret", cfg.AdminSessionSecret, "Secret for signing admin session cookies")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between payment reconciliation sweeps")
	fs.IntVar(&cfg.ReconcileBatchSize, "reconcile-batch", cfg.ReconcileBatchSize, "Maximum orders per reconciliation sweep")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.CORSOrigins = splitList(corsOriginsStr)

	if secretFile, ok := lookup("ADMIN_SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read admin session secret file: %w", err)
		}
		cfg.AdminSessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileBatchSize <= 0 {
		cfg.ReconcileBatchSize = defaultReconcileBatchSize
	}

	if cfg.ReconcileMinAge <= 0 {
		cfg.ReconcileMinAge = defaultReconcileMinAge
	}

	if cfg.AdminSessionTTL <= 0 {
		cfg.AdminSessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
