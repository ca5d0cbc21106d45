package main

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sunfmin/mcp-go-fixtures/pkg/config"
	"github.com/sunfmin/mcp-go-fixtures/pkg/logger"
	"github.com/sunfmin/mcp-go-fixtures/pkg/mcp"
)

// Version is set during build
var Version = "dev"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// FIXTURES_DEBUG wins over the configured level.
	if logger.Level() != slog.LevelDebug && !logger.SetLevel(cfg.LogLevel) {
		logger.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	logger.Info("Starting MCP Go Fixtures", "version", Version, "filesRoot", cfg.Files.Root)

	fixtureServer, err := mcp.NewFixtureServer(Version, cfg)
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting MCP server...")
	if err := server.ServeStdio(fixtureServer.Server()); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
