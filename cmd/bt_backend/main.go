package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/business_tracker/internal/adapters/database/memory"
	"github.com/SscSPs/business_tracker/internal/adapters/database/sqlstore"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/business_tracker/internal/core/services"
	"github.com/SscSPs/business_tracker/internal/handlers"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/SscSPs/business_tracker/internal/platform/config"
	"github.com/SscSPs/business_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Business Tracker API
// @version 1.0
// @description Bookkeeping backend for small businesses: accounts, income and expense, transfers, exports and backups.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("driver", cfg.DBDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("Store ready", slog.String("driver", cfg.DBDriver))

	container := services.NewServiceContainer(services.ContainerConfig{
		Access: services.AccessConfig{
			JWTSecret:  cfg.JWTSecret,
			JWTExpiry:  cfg.JWTExpiryDuration,
			JWTIssuer:  cfg.JWTIssuer,
			EditWindow: cfg.TransactionEditWindow,
		},
		Location: cfg.Timezone,
	}, store)

	if err := container.Access.EnsureDefaultAdmin(ctx, cfg.DefaultAdminPassword); err != nil {
		logger.Error("Failed to create default admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Invalid LOGIN_RATE_LIMIT", slog.String("rate", cfg.LoginRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, loginLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore builds the Store for cfg.DBDriver, running migrations first for the SQL backends.
func openStore(ctx context.Context, logger *slog.Logger, cfg *config.Config) (portsrepo.Store, func(), error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Warn("Using in-memory store. Data is lost on restart.")
		return memory.NewStore(), func() {}, nil

	case config.DriverPostgres:
		logger.Info("Running database migrations...", slog.String("dialect", database.DialectPostgres))
		if err := database.RunMigrations(logger, database.DialectPostgres, cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		db, pool, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.New(db, sqlstore.Postgres), func() {
			closeDB(logger, db)
			database.ClosePgxPool(pool)
		}, nil

	case config.DriverSQLite:
		logger.Info("Opening SQLite database", slog.String("path", cfg.SQLitePath))
		// OpenSQLite creates the data directory, so it runs before the migrator connects.
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(logger, database.DialectSQLite, database.SQLiteDSN(cfg.SQLitePath)); err != nil {
			closeDB(logger, db)
			return nil, nil, err
		}
		return sqlstore.New(db, sqlstore.SQLite), func() { closeDB(logger, db) }, nil
	}
	return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func closeDB(logger *slog.Logger, db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Error("Error closing database", slog.String("error", err.Error()))
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
