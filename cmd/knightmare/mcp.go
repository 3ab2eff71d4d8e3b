package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knightmare/internal/game"
	"github.com/vovakirdan/knightmare/internal/storage"
	"github.com/vovakirdan/knightmare/internal/transport/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game to an MCP client over stdio",
	Long: `Run an MCP (Model Context Protocol) server on stdin/stdout so an agent
can list levels, start them and play moves through tools.

Completions are saved under the "mcp" profile unless --profile is given.

Example client configuration:
  {"command": "knightmare", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	profile := mcp.Profile
	if flagProfile != "" {
		profile = flagProfile
	}

	// stdout carries the protocol; logs go to stderr.
	logger := newLogger(cfg, "knightmare-mcp")

	pack, err := loadPack(cfg, logger)
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}

	var progress game.ProgressStore
	if store, openErr := storage.Open(cfg.DBPath); openErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", openErr)
	} else {
		defer store.Close()
		progress = store
	}

	server := mcp.NewServer(game.NewCampaign(pack, progress, profile), version, logger)
	return server.ServeStdio()
}
