package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostelhub/server/internal"
	"github.com/hostelhub/server/internal/admin"
	adminpg "github.com/hostelhub/server/internal/admin/postgres"
	"github.com/hostelhub/server/internal/auth"
	authpg "github.com/hostelhub/server/internal/auth/postgres"
	"github.com/hostelhub/server/internal/category"
	categorypg "github.com/hostelhub/server/internal/category/postgres"
	"github.com/hostelhub/server/internal/chat"
	chatpg "github.com/hostelhub/server/internal/chat/postgres"
	"github.com/hostelhub/server/internal/core/events"
	"github.com/hostelhub/server/internal/drive"
	"github.com/hostelhub/server/internal/event"
	eventpg "github.com/hostelhub/server/internal/event/postgres"
	"github.com/hostelhub/server/internal/laundry"
	laundrypg "github.com/hostelhub/server/internal/laundry/postgres"
	"github.com/hostelhub/server/internal/ledger"
	ledgerpg "github.com/hostelhub/server/internal/ledger/postgres"
	"github.com/hostelhub/server/internal/mess"
	messpg "github.com/hostelhub/server/internal/mess/postgres"
	"github.com/hostelhub/server/internal/presence"
	"github.com/hostelhub/server/internal/transport"
	"github.com/hostelhub/server/internal/transport/rest"
	"github.com/hostelhub/server/internal/user"
	userpg "github.com/hostelhub/server/internal/user/postgres"
	"github.com/hostelhub/server/internal/wall"
	wallpg "github.com/hostelhub/server/internal/wall/postgres"
	"github.com/hostelhub/server/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Redis    *redis.Client
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Database close error", "error", err)
			}
		}
		if err := deps.Redis.Close(); err != nil {
			slog.Error("Redis close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	log := deps.Logger

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to unwrap sql db: %w", err)
	}

	base := transport.NewBaseHandler(log)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewAuthRepository(deps.DB), tokenGen)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userpg.NewUserRepository(deps.DB), log)
	userHandler := user.NewHandler(base, userService)

	categoryService := category.NewService(categorypg.NewCategoryRepository(deps.DB), log)
	if err := categoryService.EnsureDefaults(); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}
	categoryHandler := category.NewHandler(base, categoryService)

	ledgerService := ledger.NewService(ledgerpg.NewLedgerRepository(deps.DB), categoryService, deps.EventBus, log)
	ledgerHandler := ledger.NewHandler(base, ledgerService)

	messService := mess.NewService(messpg.NewMessRepository(deps.DB), deps.EventBus, log)
	messHandler := mess.NewHandler(base, messService)

	eventService := event.NewService(eventpg.NewEventRepository(deps.DB), log)
	eventHandler := event.NewHandler(base, eventService)

	laundryService := laundry.NewService(laundrypg.NewLaundryRepository(deps.DB), log)
	laundryHandler := laundry.NewHandler(base, laundryService)

	wallService := wall.NewService(wallpg.NewWallRepository(deps.DB), deps.EventBus, log)
	wallHandler := wall.NewHandler(base, wallService)

	chatService := chat.NewService(chatpg.NewChatRepository(deps.DB), log)
	chatHandler := chat.NewHandler(base, chatService)

	presenceStore := presence.NewRedisStore(
		deps.Redis,
		cfg.Presence.OnlineTTLOrDefault(),
		cfg.Presence.AwayWindowOrDefault(),
	)
	presenceService := presence.NewService(presenceStore, userService, log)
	presenceHandler := presence.NewHandler(base, presenceService)

	adminService := admin.NewService(adminpg.NewAdminRepository(deps.DB), userService, wallService, deps.EventBus, log)
	adminService.RegisterAuditRecorder()
	adminHandler := admin.NewHandler(base, adminService)

	driveService := drive.NewService(cfg.Drive.RootFolderName, cfg.Drive.MaxUploadBytesOrDefault(), log)
	driveHandler := drive.NewHandler(base, driveService)

	rest.RegisterAllRoutes(deps.Router, sqlDB, deps.Redis, rest.Handlers{
		Auth:     authHandler,
		User:     userHandler,
		Category: categoryHandler,
		Ledger:   ledgerHandler,
		Mess:     messHandler,
		Event:    eventHandler,
		Laundry:  laundryHandler,
		Wall:     wallHandler,
		Chat:     chatHandler,
		Presence: presenceHandler,
		Admin:    adminHandler,
		Drive:    driveHandler,
	}, cfg.Server.AllowedOrigins, log)

	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := initRedis(config.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	return &Dependencies{
		Config:   config,
		Logger:   log,
		DB:       db,
		Redis:    redisClient,
		EventBus: events.NewEventBus(log),
		Router:   chi.NewRouter(),
	}, nil
}

// initDB opens the gorm connection and applies the pool settings.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.Source), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql db: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func initRedis(cfg internal.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
