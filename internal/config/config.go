package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
// All three webshop services read the same structure; fields that a service
// does not need (e.g. remote addresses in the customer service) stay empty.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	CustomerServiceAddress string
	ProductServiceAddress  string
	PollInterval           time.Duration
	ProcessingTimeout      time.Duration
	LedgerRetention        time.Duration
	LedgerSweepInterval    time.Duration
	ShutdownTimeout        time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultPollInterval        = time.Second
	defaultProcessingTimeout   = 10 * time.Second
	defaultLedgerRetention     = time.Hour
	defaultLedgerSweepInterval = time.Minute
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		CustomerServiceAddress: getString(lookup, "CUSTOMER_SERVICE_ADDRESS", ""),
		ProductServiceAddress:  getString(lookup, "PRODUCT_SERVICE_ADDRESS", ""),
		PollInterval:           getDuration(lookup, "ORDER_POLL_INTERVAL", defaultPollInterval),
		ProcessingTimeout:      getDuration(lookup, "ORDER_PROCESSING_TIMEOUT", defaultProcessingTimeout),
		LedgerRetention:        getDuration(lookup, "LEDGER_RETENTION", defaultLedgerRetention),
		LedgerSweepInterval:    getDuration(lookup, "LEDGER_SWEEP_INTERVAL", defaultLedgerSweepInterval),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("webshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr        = cfg.PollInterval.String()
		processingTimeoutStr   = cfg.ProcessingTimeout.String()
		ledgerRetentionStr     = cfg.LedgerRetention.String()
		ledgerSweepIntervalStr = cfg.LedgerSweepInterval.String()
		shutdownTimeoutStr     = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CustomerServiceAddress, "customer-addr", cfg.CustomerServiceAddress, "Customer service base URL")
	fs.StringVar(&cfg.ProductServiceAddress, "product-addr", cfg.ProductServiceAddress, "Product service base URL")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between saga worker cycles")
	fs.StringVar(&processingTimeoutStr, "processing-timeout", processingTimeoutStr, "Lease timeout for claimed orders")
	fs.StringVar(&ledgerRetentionStr, "ledger-retention", ledgerRetentionStr, "Retention window for idempotency records")
	fs.StringVar(&ledgerSweepIntervalStr, "ledger-sweep-interval", ledgerSweepIntervalStr, "Interval between idempotency ledger sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ProcessingTimeout, err = time.ParseDuration(processingTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid processing timeout: %w", err)
	}

	if cfg.LedgerRetention, err = time.ParseDuration(ledgerRetentionStr); err != nil {
		return nil, fmt.Errorf("invalid ledger retention: %w", err)
	}

	if cfg.LedgerSweepInterval, err = time.ParseDuration(ledgerSweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid ledger sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.ProcessingTimeout <= 0 {
		cfg.ProcessingTimeout = defaultProcessingTimeout
	}

	if cfg.LedgerRetention <= 0 {
		cfg.LedgerRetention = defaultLedgerRetention
	}

	if cfg.LedgerSweepInterval <= 0 {
		cfg.LedgerSweepInterval = defaultLedgerSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
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
