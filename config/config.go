package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"clubhouse/models"
	"clubhouse/services/booking"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage. STORE_DRIVER is "mongo" or "sqlite".
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	SlotCacheTTL  time.Duration `mapstructure:"SLOT_CACHE_TTL"`

	// Club schedule and pricing.
	ClubSessions         string  `mapstructure:"CLUB_SESSIONS"`
	SlotGranularityMins  int     `mapstructure:"SLOT_GRANULARITY_MINS"`
	BookingAlignmentMins int     `mapstructure:"BOOKING_ALIGNMENT_MINS"`
	HourlyRate           float64 `mapstructure:"HOURLY_RATE"`

	// Seeded administrator account.
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	StatementCron string `mapstructure:"STATEMENT_CRON"`
}

var AppConfig Config

// LoadConfig reads .env (if present), config.yaml from "." or "./config" and
// the environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Ignoring unreadable .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	AppConfig = cfg
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "clubhouse")
	v.SetDefault("SQLITE_PATH", "clubhouse.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("SLOT_CACHE_TTL", "30s")
	v.SetDefault("CLUB_SESSIONS", "08:00-11:00,16:00-21:00")
	v.SetDefault("SLOT_GRANULARITY_MINS", 60)
	v.SetDefault("BOOKING_ALIGNMENT_MINS", 30)
	v.SetDefault("HOURLY_RATE", booking.DefaultHourlyRate)
	v.SetDefault("ADMIN_EMAIL", "admin@clubhouse.local")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("STATEMENT_CRON", "0 2 1 * *")
}

// Validate rejects configurations the booking engine cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Sessions(); err != nil {
		return fmt.Errorf("invalid CLUB_SESSIONS: %w", err)
	}
	if c.SlotGranularityMins <= 0 {
		return fmt.Errorf("SLOT_GRANULARITY_MINS must be positive, got %d", c.SlotGranularityMins)
	}
	if c.BookingAlignmentMins <= 0 {
		return fmt.Errorf("BOOKING_ALIGNMENT_MINS must be positive, got %d", c.BookingAlignmentMins)
	}
	if c.HourlyRate <= 0 {
		return fmt.Errorf("HOURLY_RATE must be positive, got %v", c.HourlyRate)
	}
	if c.MaxRequestsPerMin <= 0 {
		return fmt.Errorf("MAX_REQUESTS_PER_MIN must be positive, got %d", c.MaxRequestsPerMin)
	}
	switch c.StoreDriver {
	case "mongo", "sqlite":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

// Sessions parses the configured club sessions.
func (c *Config) Sessions() ([]models.OperatingWindow, error) {
	return booking.ParseWindows(c.ClubSessions)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
