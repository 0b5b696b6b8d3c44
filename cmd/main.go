package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/user-dashboard/application/flash"
	userapp "github.com/muhammadheryan/user-dashboard/application/user"
	"github.com/muhammadheryan/user-dashboard/application/validation"
	"github.com/muhammadheryan/user-dashboard/cmd/config"
	redisclient "github.com/muhammadheryan/user-dashboard/cmd/redis"
	"github.com/muhammadheryan/user-dashboard/repository/database"
	redisRepo "github.com/muhammadheryan/user-dashboard/repository/redis"
	userRepo "github.com/muhammadheryan/user-dashboard/repository/user"
	"github.com/muhammadheryan/user-dashboard/thirdparty/rabbitmq"
	"github.com/muhammadheryan/user-dashboard/transport"
	"github.com/muhammadheryan/user-dashboard/utils/hasher"
	"github.com/muhammadheryan/user-dashboard/utils/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.DB); err != nil {
			logger.Fatal("err migrate db", zap.Error(err))
		}
	}

	// Initialize Redis client
	rdb, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer rdb.Close()

	// Events are optional, a nil interface disables publishing
	var publisher rabbitmq.EventPublisher
	if cfg.EventsEnabled() {
		p, err := rabbitmq.NewPublisher(cfg.AMQP.Host, cfg.AMQP.Port, cfg.AMQP.User, cfg.AMQP.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	// Initialize repositories
	gateway := database.NewGateway(db)
	UserRepo := userRepo.NewUserRepository(gateway)
	RedisRepo := redisRepo.NewRepository(rdb)

	// Initialize application layers
	UserApp := userapp.NewUserApp(UserRepo, validation.NewValidator(UserRepo), hasher.New(cfg.Hash.Cost), publisher)
	FlashApp := flash.NewFlashApp(RedisRepo, cfg.Session.FlashTTL)

	httpTransport, err := transport.NewTransport(UserApp, FlashApp, transport.Options{
		SessionCookieName: cfg.Session.CookieName,
		SessionSecure:     cfg.Session.Secure,
		SessionMaxAge:     cfg.Session.MaxAge,
		MetricsToken:      cfg.Metrics.Token,
	})
	if err != nil {
		logger.Fatal("err init transport", zap.Error(err))
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("err shutdown server", zap.Error(err))
		}
	}()

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed server", zap.Error(err))
	}
	logger.Info("HTTP server stopped")
}
