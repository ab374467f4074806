package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gator-threads/internal/config"
	"gator-threads/internal/database"
	"gator-threads/internal/feed"
	"gator-threads/internal/handlers"
	"gator-threads/internal/logger"
	"gator-threads/internal/server"
	"gator-threads/internal/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server exited with error")
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URI, database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Error("failed to close database")
		}
		logrus.Info("database connection closed")
	}()

	if cfg.Database.AutoMigrate {
		if err := db.InitializeTables(ctx); err != nil {
			return err
		}
	}

	client := feed.NewClient(feed.ClientConfig{
		BaseURL:   cfg.Feed.BaseURL,
		UserAgent: cfg.Feed.UserAgent,
		Timeout:   cfg.Feed.Timeout,
	})
	boards := feed.NewBoards(client, client.BaseURL(), cfg.Feed.BoardTTL)

	var metrics *utils.MetricsCollector
	if cfg.Server.MetricsEnabled {
		metrics = utils.NewMetricsCollector()
	}

	h := handlers.NewServer(db, boards, metrics, cfg.HideStoreErrors)
	apiServer, err := server.NewAPIServer(server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.AllowedOrigins,
		Debug:           cfg.Debug,
	}, h)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"driver":            db.Driver(),
		"address":           apiServer.Addr(),
		"debug":             cfg.Debug,
		"hide_store_errors": cfg.HideStoreErrors,
	}).Info("configuration loaded")

	return apiServer.Run(ctx)
}
