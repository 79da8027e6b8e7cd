// Package config provides configuration management for the cargo quote service.
//
// Values come from environment variables and an optional .env file in the
// working directory. Every key, its default and whether it is required is
// declared with struct tags:
//   - mapstructure: environment key
//   - default: value used when the key is unset
//   - required: "true" fails Load when the value is empty
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/guttosm/cargo-quote/internal/engine"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:",squash"`
	Server   ServerConfig   `mapstructure:",squash"`
	Cache    CacheConfig    `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	Postgres PostgresConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Events   EventsConfig   `mapstructure:",squash"`
	Engine   EngineConfig   `mapstructure:",squash"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL" default:"info"`
	Pretty bool   `mapstructure:"LOG_PRETTY" default:"false"`

	// Persisted request and audit logs are buffered and written in batches.
	BufferSize    int           `mapstructure:"LOG_BUFFER_SIZE" default:"1000"`
	BatchSize     int           `mapstructure:"LOG_BATCH_SIZE" default:"50"`
	FlushInterval time.Duration `mapstructure:"LOG_FLUSH_INTERVAL" default:"1s"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `mapstructure:"PORT" default:"8080"`
	RateLimit      int           `mapstructure:"RATE_LIMIT" default:"100"`
	RateWindow     time.Duration `mapstructure:"RATE_WINDOW" default:"1m"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT" default:"10s"`
	// GzipLevel is a compress/gzip level; 0 disables response compression.
	GzipLevel      int    `mapstructure:"GZIP_LEVEL" default:"-1"`
	CORSOriginsRaw string `mapstructure:"CORS_ORIGINS"`
	SwaggerUser    string `mapstructure:"SWAGGER_USER"`
	SwaggerPass    string `mapstructure:"SWAGGER_PASS"`

	CORSOrigins []string `mapstructure:"-"`
}

// CacheConfig holds quote and tariff cache configuration.
type CacheConfig struct {
	Size      int           `mapstructure:"CACHE_SIZE" default:"1000"`
	TTL       time.Duration `mapstructure:"CACHE_TTL" default:"5m"`
	TariffTTL time.Duration `mapstructure:"TARIFF_CACHE_TTL" default:"1m"`
	// Backend is "memory" or "redis".
	Backend string `mapstructure:"CACHE_BACKEND" default:"memory"`
	// TariffSeedFile is a JSON tariff set imported at startup when the store is empty.
	TariffSeedFile string `mapstructure:"TARIFF_SEED_FILE"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled          bool          `mapstructure:"AUTH_ENABLED" default:"false"`
	APIKeysRaw       string        `mapstructure:"API_KEYS"`
	JWTSecretKey     string        `mapstructure:"JWT_SECRET_KEY" default:"your-secret-key-change-in-production"`
	JWTRefreshSecret string        `mapstructure:"JWT_REFRESH_SECRET_KEY" default:"your-refresh-secret-key-change-in-production"`
	AccessTokenTTL   time.Duration `mapstructure:"JWT_ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL  time.Duration `mapstructure:"JWT_REFRESH_TOKEN_TTL" default:"168h"`
	// OperatorsRaw is "name:bcrypt-hash:role,..."
	OperatorsRaw string `mapstructure:"OPERATORS"`

	APIKeys   map[string]bool `mapstructure:"-"`
	Operators []Operator      `mapstructure:"-"`
}

// Operator is a back-office account allowed to sign in.
type Operator struct {
	Name         string
	PasswordHash string
	Role         string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string        `mapstructure:"MONGODB_URI" default:"mongodb://localhost:27017"`
	DatabaseName string        `mapstructure:"MONGODB_DATABASE" default:"cargo_quote"`
	LogsTTL      time.Duration `mapstructure:"MONGODB_LOGS_TTL" default:"720h"`
	Enabled      bool          `mapstructure:"MONGODB_ENABLED" default:"false"`
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int           `mapstructure:"CIRCUIT_BREAKER_FAILURE_THRESHOLD" default:"5"`
	CircuitBreakerSuccessThreshold int           `mapstructure:"CIRCUIT_BREAKER_SUCCESS_THRESHOLD" default:"2"`
	CircuitBreakerTimeout          time.Duration `mapstructure:"CIRCUIT_BREAKER_TIMEOUT" default:"30s"`
}

// PostgresConfig holds the legacy rate table database configuration.
// When enabled it takes precedence over MongoDB for tariffs and exchange rates.
type PostgresConfig struct {
	Enabled  bool   `mapstructure:"POSTGRES_ENABLED" default:"false"`
	URL      string `mapstructure:"POSTGRES_URL"`
	Schema   string `mapstructure:"POSTGRES_SCHEMA" default:"delivery_test"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS" default:"5"`
}

// RedisConfig holds the shared quote cache configuration.
type RedisConfig struct {
	URL       string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	KeyPrefix string `mapstructure:"REDIS_KEY_PREFIX" default:"cargo-quote:"`
}

// EventsConfig holds the quote event publisher configuration.
type EventsConfig struct {
	Enabled bool   `mapstructure:"KAFKA_ENABLED" default:"false"`
	Brokers string `mapstructure:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string `mapstructure:"KAFKA_TOPIC" default:"quote.computed"`
}

// EngineConfig holds pricing policy settings.
type EngineConfig struct {
	InsurancePolicy      string `mapstructure:"INSURANCE_POLICY" default:"three-tier"`
	InsuranceTiers       string `mapstructure:"INSURANCE_TIERS"`
	DecimalPrecision     int32  `mapstructure:"DECIMAL_PRECISION" default:"16"`
	OutputPlaces         int32  `mapstructure:"OUTPUT_PLACES" default:"2"`
	PackagingBasis       string `mapstructure:"PACKAGING_BASIS" default:"per_shipment"`
	PricingCurrency      string `mapstructure:"PRICING_CURRENCY" default:"USD"`
	SourceCurrency       string `mapstructure:"SOURCE_CURRENCY" default:"CNY"`
	ExchangeRateFallback string `mapstructure:"EXCHANGE_RATE_FALLBACK" default:"7.2"`
}

// Load reads the configuration from the environment and ./.env.
func Load() (Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads the configuration from the environment and path/.env.
func LoadFrom(path string) (Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config

	processTags(v, &cfg)

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateRequired(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Server.CORSOrigins = parseCORSOrigins(cfg.Server.CORSOriginsRaw)
	cfg.Auth.APIKeys = parseAPIKeys(cfg.Auth.APIKeysRaw)

	operators, err := parseOperators(cfg.Auth.OperatorsRaw)
	if err != nil {
		return Config{}, err
	}
	cfg.Auth.Operators = operators

	if cfg.Server.GzipLevel < -2 || cfg.Server.GzipLevel > 9 {
		return Config{}, fmt.Errorf("GZIP_LEVEL must be between -2 and 9, got %d", cfg.Server.GzipLevel)
	}

	if cfg.Postgres.Enabled && cfg.Postgres.URL == "" {
		return Config{}, errors.New("missing required configuration: POSTGRES_URL")
	}

	if _, err := cfg.Engine.Build(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Engine.Fallback(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Build converts the settings into an engine.Config.
func (c EngineConfig) Build() (engine.Config, error) {
	cfg := engine.DefaultConfig()

	policy, err := engine.ParseInsurancePolicy(c.InsurancePolicy)
	if err != nil {
		return cfg, fmt.Errorf("INSURANCE_POLICY: %w", err)
	}
	if strings.TrimSpace(c.InsuranceTiers) != "" {
		policy, err = engine.ParseInsuranceTiers("custom", c.InsuranceTiers)
		if err != nil {
			return cfg, fmt.Errorf("INSURANCE_TIERS: %w", err)
		}
	}
	cfg.InsurancePolicy = policy

	basis, err := engine.ParsePackagingBasis(c.PackagingBasis)
	if err != nil {
		return cfg, fmt.Errorf("PACKAGING_BASIS: %w", err)
	}
	cfg.PackagingBasis = basis

	if c.DecimalPrecision != 0 {
		cfg.DivisionPrecision = c.DecimalPrecision
	}
	cfg.OutputPlaces = c.OutputPlaces
	if c.PricingCurrency != "" {
		cfg.PricingCurrency = strings.ToUpper(strings.TrimSpace(c.PricingCurrency))
	}

	if _, err := engine.New(cfg); err != nil {
		return cfg, fmt.Errorf("engine configuration: %w", err)
	}
	return cfg, nil
}

// Fallback returns the configured fallback exchange rate, or nil when the
// fallback is disabled with an empty value.
func (c EngineConfig) Fallback() (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.ExchangeRateFallback)
	if raw == "" {
		return nil, nil
	}
	rate, ok := engine.ParseNumber(raw)
	if !ok || !rate.IsPositive() {
		return nil, fmt.Errorf("EXCHANGE_RATE_FALLBACK: invalid rate %q", raw)
	}
	return &rate, nil
}

// processTags binds every tagged key to the environment and registers its default.
func processTags(v *viper.Viper, config interface{}) {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			processTags(v, val.Field(i).Addr().Interface())
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}

		_ = v.BindEnv(key)

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
}

// validateRequired checks that fields tagged required:"true" are set.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseOperators(s string) ([]Operator, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	result := make([]Operator, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fields := strings.Split(p, ":")
		if len(fields) != 3 || fields[0] == "" || fields[1] == "" || fields[2] == "" {
			return nil, fmt.Errorf("OPERATORS: entry %q must be name:hash:role", p)
		}
		result = append(result, Operator{
			Name:         fields[0],
			PasswordHash: fields[1],
			Role:         strings.ToLower(fields[2]),
		})
	}
	return result, nil
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
