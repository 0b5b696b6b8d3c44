package main

import (
	"context"
	"flag"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/user-dashboard/cmd/config"
	"github.com/muhammadheryan/user-dashboard/repository/database"
	"github.com/muhammadheryan/user-dashboard/utils/logger"
	"go.uber.org/zap"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	timeout := flag.Duration("timeout", time.Minute, "command timeout")
	target := flag.Int64("target", 0, "target version for down command (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	switch *command {
	case "up":
		err = database.Migrate(ctx, db.DB)
	case "status":
		err = database.MigrationStatus(ctx, db.DB)
	case "down":
		err = database.Rollback(ctx, db.DB, *target)
	default:
		logger.Fatal("unsupported command", zap.String("command", *command))
	}
	if err != nil {
		logger.Fatal("migration command failed", zap.String("command", *command), zap.Error(err))
	}

	logger.Info("migration command completed", zap.String("command", *command))
}
