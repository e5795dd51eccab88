// Package main provides the standalone MCP server entry point for
// actions-insight. The transport (stdio or http) comes from configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"actions-insight/src/config"
	_ "actions-insight/src/githubactions" // Import for provider registration
	"actions-insight/src/insights"
	"actions-insight/src/logger"
	"actions-insight/src/mcp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ACTIONS_INSIGHT_CONFIG"))
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, closeEvents, err := insights.NewServiceFromConfig(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeEvents(); err != nil {
			log.Error("close event publisher: %v", err)
		}
	}()

	server := mcp.NewServer(svc, log)

	if cfg.Server.Transport == config.TransportHTTP {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.ListenAndServe(ctx, cfg.Server.HTTPAddr)
	}

	// Run server over stdin/stdout (stdio transport)
	return server.Run()
}
