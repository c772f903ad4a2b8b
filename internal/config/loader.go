package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "tindahan.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "TINDAHAN_PORT")
	setString(&cfg.Server.CORSOrigin, "TINDAHAN_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "TINDAHAN_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "TINDAHAN_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "TINDAHAN_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "TINDAHAN_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "TINDAHAN_PG_HEALTH_CHECK")
	setString(&cfg.Auth.JWTSecret, "TINDAHAN_JWT_SECRET")
	setDuration(&cfg.Auth.AccessTokenExpiry, "TINDAHAN_ACCESS_TOKEN_EXPIRY")
	setDuration(&cfg.Auth.RefreshTokenExpiry, "TINDAHAN_REFRESH_TOKEN_EXPIRY")
	setInt(&cfg.Auth.BcryptCost, "TINDAHAN_BCRYPT_COST")
	setDuration(&cfg.Auth.ClaimsCacheTTL, "TINDAHAN_CLAIMS_CACHE_TTL")
	setInt64(&cfg.Auth.ClaimsCacheSizeMB, "TINDAHAN_CLAIMS_CACHE_SIZE_MB")
	setDuration(&cfg.Auth.TokenPurgeInterval, "TINDAHAN_TOKEN_PURGE_INTERVAL")
	setString(&cfg.Logging.Level, "TINDAHAN_LOG_LEVEL")
	setString(&cfg.Logging.Service, "TINDAHAN_LOG_SERVICE")
	setFloat64(&cfg.Rate.RequestsPerSecond, "TINDAHAN_RATE_RPS")
	setInt(&cfg.Rate.Burst, "TINDAHAN_RATE_BURST")
	setDuration(&cfg.Rate.CleanupInterval, "TINDAHAN_RATE_CLEANUP_INTERVAL")
	setDuration(&cfg.Rate.MaxIdleTime, "TINDAHAN_RATE_MAX_IDLE_TIME")
	setBool(&cfg.Telemetry.Enabled, "TINDAHAN_OTEL_ENABLED")
	setString(&cfg.Telemetry.Endpoint, "TINDAHAN_OTEL_ENDPOINT")
	setBool(&cfg.Telemetry.Insecure, "TINDAHAN_OTEL_INSECURE")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return errors.New("auth.bcrypt_cost must be between 4 and 31")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
