package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DBDriver     string
	DatabaseURL  string
	SQLitePath   string
	Port         string
	IsProduction bool
	LogLevel     string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	DefaultAdminPassword  string
	LoginRateLimit        string // ulule formatted rate, e.g. "5-M"
	CORSAllowedOrigins    []string
	TransactionEditWindow time.Duration
	Timezone              *time.Location
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/business_tracker.db")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "business-tracker")
	v.SetDefault("DEFAULT_ADMIN_PASSWORD", "admin")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TRANSACTION_EDIT_WINDOW", "10m")
	v.SetDefault("TIMEZONE", "UTC")
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DBDriver:             strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseURL:          v.GetString("PGSQL_URL"),
		SQLitePath:           v.GetString("SQLITE_PATH"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		DefaultAdminPassword: v.GetString("DEFAULT_ADMIN_PASSWORD"),
		LoginRateLimit:       v.GetString("LOGIN_RATE_LIMIT"),
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		log.Printf("Warning: Unknown DB_DRIVER ('%s'). Defaulting to %s.\n", cfg.DBDriver, DriverSQLite)
		cfg.DBDriver = DriverSQLite
	}
	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "business-tracker"
	}

	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", 12*time.Hour)
	cfg.TransactionEditWindow = parseDuration(v, "TRANSACTION_EDIT_WINDOW", 10*time.Minute)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	tzName := v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: Invalid value for TIMEZONE ('%s'). Defaulting to UTC.\n", tzName)
		loc = time.UTC
	}
	cfg.Timezone = loc

	return cfg
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
