// cmd/meal-planner/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/config"
	"meal-planner/internal/logging"
	"meal-planner/internal/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "Port for HTTP transport")
	host := flag.String("host", cfg.Host, "Host address")
	address := flag.String("address", "", "Address (alias for host)")
	dbPath := flag.String("db-path", cfg.DBPath, "Database path")
	seed := flag.Int64("seed", cfg.Seed, "Random seed for food selection (0 uses the clock)")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	version := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *version {
		fmt.Println("meal-planner version 1.0.0")
		os.Exit(0)
	}

	logger := logging.New(os.Stdout, *logLevel, cfg.LogFormat)

	// Use address if provided, otherwise use host
	cfg.Host = *host
	if *address != "" {
		cfg.Host = *address
	}
	cfg.Port = *port

	srv, err := server.NewMealPlanServer(&server.Config{
		Addr:   cfg.Addr(),
		DBPath: *dbPath,
		Seed:   *seed,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
