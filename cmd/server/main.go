package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"duskward/pkg/config"
	"duskward/pkg/orchestrator"
	"duskward/pkg/telemetry"
)

func main() {
	cfg := loadAndConfigureSystem()

	metrics := telemetry.New()

	engine, err := orchestrator.NewEngine(cfg, metrics)
	if err != nil {
		logrus.WithError(err).Fatal("failed to construct engine")
	}
	if err := engine.Bootstrap(); err != nil {
		logrus.WithError(err).Fatal("failed to bootstrap engine")
	}

	runAndWaitForShutdown(engine)
}

// loadAndConfigureSystem loads configuration and sets up logging.
func loadAndConfigureSystem() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	configureLogging(cfg.LogLevel)
	logStartupInfo(cfg)
	return cfg
}

// configureLogging sets up the logging system based on configuration.
func configureLogging(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).Warn("invalid log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// logStartupInfo logs server startup information.
func logStartupInfo(cfg *config.Config) {
	logrus.WithFields(logrus.Fields{
		"port":     cfg.ServerPort,
		"logLevel": cfg.LogLevel,
		"devMode":  cfg.EnableDevMode,
	}).Info("starting duskward")
}

// runAndWaitForShutdown starts the engine's Run loop in the background
// and blocks until either it returns on its own or an OS signal arrives.
func runAndWaitForShutdown(engine *orchestrator.Engine) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		errChan <- engine.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		logrus.WithField("signal", sig).Info("received shutdown signal")
		cancel()
		if err := engine.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Warn("error during graceful shutdown")
		}
	case err := <-errChan:
		if err != nil {
			logrus.WithError(err).Error("engine stopped unexpectedly")
			os.Exit(1)
		}
	}

	fmt.Println("duskward stopped")
}
