// Package main provides the entry point for the Bedrock knowledge base
// MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/config"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/server"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/tools"
)

const version = "0.1.0"

func main() {
	var region string

	rootCmd := &cobra.Command{
		Use:     "bedrock-kb-mcp-server",
		Short:   "MCP server exposing Amazon Bedrock knowledge base management",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(region)
		},
	}
	rootCmd.Flags().StringVar(&region, "region", "", "AWS region (overrides AWS_REGION)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(regionFlag string) error {
	// Load configuration
	cfg := config.Load()
	if regionFlag != "" {
		cfg.Region = regionFlag
	}

	// Setup logger (stderr, optional JSON file, redaction middleware)
	logger, cleanup := config.SetupLogger(cfg)
	defer cleanup()

	logger.Info("bedrock-kb-mcp-server starting",
		"version", version,
		"region", cfg.Region,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Build AWS clients
	clients, err := bedrock.New(ctx, cfg.Region, logger)
	if err != nil {
		logger.Error("failed to initialize AWS clients", "error", err)
		return err
	}

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Register tools
	deps := &tools.Dependencies{
		Bedrock:  clients,
		Accounts: clients.Accounts,
		Logger:   logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)
	logger.Info("tools registered", "count", 15)

	// Log ready state
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
