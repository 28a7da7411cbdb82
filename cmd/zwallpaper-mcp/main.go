package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "zwallpaper/internal/adapters/mcp"
	"zwallpaper/internal/config"
	"zwallpaper/internal/logging"
	"zwallpaper/internal/wiring"
)

func main() {
	collectionFlag := flag.String("collection", "", "archive.org collection to serve (default from config)")
	flag.Parse()

	cfg, err := config.FromEnvironment()
	if err != nil {
		log.Fatalf("zwallpaper-mcp: %v", err)
	}

	// stdout carries the protocol
	logger := logging.New(os.Stderr, cfg.Log.Level)

	stack, err := wiring.Build(cfg, *collectionFlag, logger)
	if err != nil {
		log.Fatalf("zwallpaper-mcp: %v", err)
	}
	defer stack.Close()

	mcpServer := server.NewMCPServer(
		"zwallpaper-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, stack.Service)
	mcpadapter.RegisterWriteTools(mcpServer, stack.Service)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Errorf("serve: %v", err)
		stack.Close()
		os.Exit(1)
	}
}
