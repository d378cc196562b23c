package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := logger.New(configs.Env, configs.LogLevel)

	if err = configs.Validate(); err != nil {
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(configs)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to open database")
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, l, gormDB)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to wire application")
	}

	backgroundJobs, err := app.Jobs()
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create background jobs")
	}
	manager := jobs.NewJobManager(logger.Component(l, "jobs"), backgroundJobs...)
	if err = manager.StartAll(); err != nil {
		l.Fatal().Err(err).Msg("failed to start background jobs")
	}

	e := app.Router()
	e.Logger.SetLevel(echoLogLevel(l.GetLevel()))

	go startWebServer(e, configs.HTTPPort, l)

	<-ctx.Done()
	l.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("http server shutdown failed")
	}
	manager.StopAll()
	if err = app.Close(); err != nil {
		l.Error().Err(err).Msg("failed to close connections")
	}
	if gormDB != nil {
		if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}
}

// openDatabase connects and migrates when the service owns the orders.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	if configs.StoreBackend != cmd.StoreBackendPostgres {
		return nil, nil
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(orderrepo.Models()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return gormDB, nil
}

func startWebServer(e *echo.Echo, port string, l zerolog.Logger) {
	l.Info().Str("port", port).Msg("http server listening")

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}

func echoLogLevel(level zerolog.Level) log.Lvl {
	switch {
	case level <= zerolog.DebugLevel:
		return log.DEBUG
	case level == zerolog.InfoLevel:
		return log.INFO
	case level == zerolog.WarnLevel:
		return log.WARN
	default:
		return log.ERROR
	}
}
