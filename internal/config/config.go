package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Backend names accepted by PLATFORM_BACKEND.
const (
	BackendMemory  = "memory"
	BackendSpanner = "spanner"
	BackendGRPC    = "grpc"
)

// Order number generators accepted by ORDER_NUMBER_STRATEGY.
const (
	OrderNumbersUUID    = "uuid"
	OrderNumbersCounter = "counter"
)

type Config struct {
	GrpcListenAddress    string `env:"GRPC_ADDR,default=:50051"`
	MetricsListenAddress string `env:"METRICS_ADDR,default=:9090"`
	Backend              string `env:"PLATFORM_BACKEND,default=memory"`
	SpannerDatabase      string `env:"SPANNER_DATABASE,default=projects/test-project/instances/emulator-instance/databases/test-db"`
	PlatformAddress      string `env:"PLATFORM_ADDR,default=localhost:50051"`
	AdminEmail           string `env:"ADMIN_EMAIL,default=admin@shopswift.com"`
	CartCurrency         string `env:"CART_CURRENCY,default=USD"`
	CartCountry          string `env:"CART_COUNTRY,default=US"`
	OrderNumberPrefix    string `env:"ORDER_NUMBER_PREFIX,default=ORD-"`
	OrderNumberStrategy  string `env:"ORDER_NUMBER_STRATEGY,default=uuid"`
	RefreshBeforePublish bool   `env:"REFRESH_BEFORE_PUBLISH,default=true"`
	LogLevel             string `env:"LOG_LEVEL,default=info"`
	CallTimeoutRaw       string `env:"CALL_TIMEOUT,default=10s"`
}

func NewConfig() (*Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendMemory, BackendSpanner, BackendGRPC:
	default:
		return fmt.Errorf("PLATFORM_BACKEND: unknown backend %q", c.Backend)
	}
	switch c.OrderNumberStrategy {
	case "", OrderNumbersUUID, OrderNumbersCounter:
	default:
		return fmt.Errorf("ORDER_NUMBER_STRATEGY: unknown strategy %q", c.OrderNumberStrategy)
	}
	if len(strings.TrimSpace(c.CartCurrency)) != 3 {
		return fmt.Errorf("CART_CURRENCY: %q is not an ISO 4217 code", c.CartCurrency)
	}
	if _, err := c.parseTimeout(); err != nil {
		return err
	}
	return nil
}

// CallTimeout bounds every single remote call made by a sequence stage. Zero disables it.
func (c *Config) CallTimeout() time.Duration {
	d, _ := c.parseTimeout()
	return d
}

func (c *Config) parseTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.CallTimeoutRaw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("CALL_TIMEOUT: invalid duration %q", c.CallTimeoutRaw)
	}
	return d, nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Logger builds the process-wide JSON logger.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: c.SlogLevel()}))
}
