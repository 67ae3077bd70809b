package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores consumer group settings for the worker binary.
type Kafka struct {
	Brokers      []string
	GroupID      string
	OrdersTopic  string
	DriversTopic string
}

// OrdersGateway stores the orders REST gateway settings.
type OrdersGateway struct {
	BaseURL     string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores token-bucket rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Dispatch stores dispatch core settings.
type Dispatch struct {
	OperationTimeout time.Duration
	ClaimAttempts    int
	ETAOffset        time.Duration
}

// Pprof stores debug server credentials for non-loopback access.
type Pprof struct {
	User string
	Pass string
}

// Config stores service settings.
type Config struct {
	Port          int
	DB            DB
	Kafka         Kafka
	OrdersGateway OrdersGateway
	RateLimit     RateLimit
	Dispatch      Dispatch
	Pprof         Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:          DefaultPort(),
		DB:            DefaultDB(),
		Kafka:         DefaultKafka(),
		OrdersGateway: DefaultOrdersGateway(),
		RateLimit:     DefaultRateLimit(),
		Dispatch:      DefaultDispatch(),
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet("service-dispatch", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}

	setStr(&cfg.DB.Host, "POSTGRES_HOST")
	setStr(&cfg.DB.Port, "POSTGRES_PORT")
	setStr(&cfg.DB.User, "POSTGRES_USER")
	setStr(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	setStr(&cfg.DB.Name, "POSTGRES_DB")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	setStr(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")
	setStr(&cfg.Kafka.OrdersTopic, "KAFKA_ORDERS_TOPIC")
	setStr(&cfg.Kafka.DriversTopic, "KAFKA_DRIVERS_TOPIC")

	setStr(&cfg.OrdersGateway.BaseURL, "ORDERS_BASE_URL")
	if err := setInt(&cfg.OrdersGateway.MaxAttempts, "ORDERS_MAX_ATTEMPTS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.OrdersGateway.BaseDelay, "ORDERS_RETRY_BASE_DELAY"); err != nil {
		return err
	}
	if err := setDuration(&cfg.OrdersGateway.MaxDelay, "ORDERS_RETRY_MAX_DELAY"); err != nil {
		return err
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
		cfg.RateLimit.Enabled = b
	}
	if v := os.Getenv("RATE_LIMIT_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RATE %q: %w", v, err)
		}
		cfg.RateLimit.Rate = f
	}
	if err := setInt(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST"); err != nil {
		return err
	}
	if err := setDuration(&cfg.RateLimit.TTL, "RATE_LIMIT_TTL"); err != nil {
		return err
	}
	if err := setInt(&cfg.RateLimit.MaxBuckets, "RATE_LIMIT_MAX_BUCKETS"); err != nil {
		return err
	}

	if err := setDuration(&cfg.Dispatch.OperationTimeout, "DISPATCH_TIMEOUT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Dispatch.ClaimAttempts, "DISPATCH_CLAIM_ATTEMPTS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Dispatch.ETAOffset, "DISPATCH_ETA_OFFSET"); err != nil {
		return err
	}

	setStr(&cfg.Pprof.User, "PPROF_USER")
	setStr(&cfg.Pprof.Pass, "PPROF_PASS")

	return nil
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return fmt.Errorf("invalid postgres port %q: %w", cfg.DB.Port, err)
	}
	if cfg.Dispatch.ClaimAttempts <= 0 {
		return fmt.Errorf("invalid dispatch claim attempts: %d", cfg.Dispatch.ClaimAttempts)
	}
	if cfg.Dispatch.ETAOffset <= 0 {
		return fmt.Errorf("invalid dispatch ETA offset: %s", cfg.Dispatch.ETAOffset)
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
