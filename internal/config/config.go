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

// Kafka stores consumer group settings. An empty broker list disables
// the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Broker stores brokerage engine settings.
type Broker struct {
	OperationTimeout time.Duration
	RematchInterval  time.Duration
}

// AddressGateway stores address-profile gateway settings. An empty
// BaseURL switches the service to built-in default addresses.
type AddressGateway struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores the optional pprof server settings. An empty Addr
// disables the server.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Config stores service settings.
type Config struct {
	Port           int
	DB             DB
	Kafka          Kafka
	Broker         Broker
	AddressGateway AddressGateway
	RateLimit      RateLimit
	Pprof          Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:           DefaultPort(),
		DB:             DefaultDB(),
		Kafka:          DefaultKafka(),
		Broker:         DefaultBroker(),
		AddressGateway: DefaultAddressGateway(),
		RateLimit:      DefaultRateLimit(),
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var err error

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return err
	}

	cfg.DB.Host = envStr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.User = envStr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envStr("POSTGRES_DB", cfg.DB.Name)
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, convErr := strconv.Atoi(v); convErr != nil {
			return fmt.Errorf("invalid POSTGRES_PORT: %q", v)
		}
		cfg.DB.Port = v
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envStr("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envStr("KAFKA_LOADS_TOPIC", cfg.Kafka.Topic)

	if cfg.Broker.OperationTimeout, err = envDuration("BROKER_OPERATION_TIMEOUT", cfg.Broker.OperationTimeout); err != nil {
		return err
	}
	if cfg.Broker.RematchInterval, err = envDuration("BROKER_REMATCH_INTERVAL", cfg.Broker.RematchInterval); err != nil {
		return err
	}

	cfg.AddressGateway.BaseURL = envStr("ADDRESSES_BASE_URL", cfg.AddressGateway.BaseURL)
	if cfg.AddressGateway.Timeout, err = envDuration("ADDRESSES_TIMEOUT", cfg.AddressGateway.Timeout); err != nil {
		return err
	}
	if cfg.AddressGateway.MaxAttempts, err = envInt("ADDRESSES_MAX_ATTEMPTS", cfg.AddressGateway.MaxAttempts); err != nil {
		return err
	}
	if cfg.AddressGateway.BaseDelay, err = envDuration("ADDRESSES_BASE_DELAY", cfg.AddressGateway.BaseDelay); err != nil {
		return err
	}
	if cfg.AddressGateway.MaxDelay, err = envDuration("ADDRESSES_MAX_DELAY", cfg.AddressGateway.MaxDelay); err != nil {
		return err
	}

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return err
	}
	if cfg.RateLimit.TTL, err = envDuration("RATE_LIMIT_TTL", cfg.RateLimit.TTL); err != nil {
		return err
	}
	if cfg.RateLimit.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets); err != nil {
		return err
	}

	cfg.Pprof.Addr = envStr("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envStr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envStr("PPROF_PASS", cfg.Pprof.Pass)
	return nil
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Broker.OperationTimeout <= 0 {
		return fmt.Errorf("invalid BROKER_OPERATION_TIMEOUT: %s", cfg.Broker.OperationTimeout)
	}
	if cfg.Broker.RematchInterval <= 0 {
		return fmt.Errorf("invalid BROKER_REMATCH_INTERVAL: %s", cfg.Broker.RematchInterval)
	}
	if cfg.AddressGateway.MaxAttempts <= 0 {
		return fmt.Errorf("invalid ADDRESSES_MAX_ATTEMPTS: %d", cfg.AddressGateway.MaxAttempts)
	}
	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
