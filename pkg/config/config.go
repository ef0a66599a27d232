package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config groups every runtime setting of the API server
type Config struct {
	Port        string
	LogLevel    string
	LogJSON     bool
	CORSOrigins string

	DB        DBConfig
	Redis     RedisConfig
	Storage   StorageConfig
	JWT       JWTConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Export    ExportConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the lib/pq connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver   string // local | s3
	LocalDir string
	Region   string
	Bucket   string
	Prefix   string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

type MailConfig struct {
	Driver   string // smtp | console
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type ExportConfig struct {
	Workers int
}

const insecureJWTSecret = "irecruit-dev-secret-change-me"

// Load reads an optional .env file then the process environment.
// Variables already present in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var errs []error

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogJSON:     getBool("LOG_JSON", false, &errs),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASS"),
			Name:     getEnv("DB_NAME", "irecruit"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASS"),
			DB:       getInt("REDIS_DB", 0, &errs),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			LocalDir: getEnv("STORAGE_LOCAL_DIR", "."),
			Region:   os.Getenv("AWS_REGION"),
			Bucket:   os.Getenv("AWS_BUCKET"),
			Prefix:   os.Getenv("AWS_PREFIX"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", insecureJWTSecret),
			TTL:    getDuration("JWT_TTL", 24*time.Hour, &errs),
			Issuer: getEnv("JWT_ISSUER", "irecruit-api"),
		},
		Mail: MailConfig{
			Driver:   strings.ToLower(getEnv("MAIL_DRIVER", "console")),
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getInt("SMTP_PORT", 587, &errs),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     getEnv("MAIL_FROM", "no-reply@irecruit.com"),
		},
		RateLimit: RateLimitConfig{
			Limit:  getInt("RATE_LIMIT", 20, &errs),
			Window: getDuration("RATE_WINDOW", time.Minute, &errs),
		},
		Export: ExportConfig{
			Workers: getInt("EXPORT_WORKERS", 2, &errs),
		},
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every inconsistent setting at once
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("AWS_BUCKET is required when STORAGE_DRIVER=s3"))
		}
		if c.Storage.Region == "" {
			errs = append(errs, errors.New("AWS_REGION is required when STORAGE_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be local or s3, got %q", c.Storage.Driver))
	}

	switch c.Mail.Driver {
	case "console":
	case "smtp":
		if c.Mail.Host == "" {
			errs = append(errs, errors.New("SMTP_HOST is required when MAIL_DRIVER=smtp"))
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_DRIVER must be smtp or console, got %q", c.Mail.Driver))
	}

	if c.Export.Workers < 1 {
		errs = append(errs, fmt.Errorf("EXPORT_WORKERS must be >= 1, got %d", c.Export.Workers))
	}

	return errors.Join(errs...)
}

// UsesInsecureJWTSecret reports whether JWT_SECRET was left unset
func (c *Config) UsesInsecureJWTSecret() bool {
	return c.JWT.Secret == insecureJWTSecret
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return v
}

func getBool(key string, fallback bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return v
}
