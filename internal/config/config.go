package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"DATA_DIR"` specify the environment variable name.
// `default:""` provides a default value if the env var is not set.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production"`
	Logger  LoggerConfig
	Storage StorageConfig
	Orders  OrderConfig
}

// LoggerConfig controls the zap logger built at startup.
type LoggerConfig struct {
	Level             string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Encoding          string `envconfig:"LOG_ENCODING" default:"console" validate:"oneof=console json"`
	DisableCaller     bool   `envconfig:"LOG_DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"LOG_DISABLE_STACKTRACE" default:"false"`
}

// StorageConfig names the data directory and one JSON document per collection.
type StorageConfig struct {
	DataDir        string `envconfig:"DATA_DIR" default:"Data" validate:"required"`
	ProductsFile   string `envconfig:"PRODUCTS_FILE" default:"Products.json" validate:"required"`
	CategoriesFile string `envconfig:"CATEGORIES_FILE" default:"Categories.json" validate:"required"`
	OrdersFile     string `envconfig:"ORDERS_FILE" default:"Orders.json" validate:"required"`
}

// OrderConfig holds the order commit and point-of-sale limits.
type OrderConfig struct {
	CommitPolicy    string `envconfig:"ORDER_COMMIT_POLICY" default:"partial" validate:"oneof=partial prevalidate"`
	MaxLineQuantity int    `envconfig:"POS_MAX_LINE_QUANTITY" default:"100" validate:"min=1"`
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil { // empty prefix: variables are read as named
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
