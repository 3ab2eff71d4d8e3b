package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knightmare/internal/config"
	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the knightmare SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level list. Progress is
saved per SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.knightmare/host_key

Examples:
  knightmare serve                           # Listen on :23234 with auto-generated key
  knightmare serve --ssh :2222               # Listen on port 2222
  knightmare serve --host-key ./my_host_key  # Use specific host key
  knightmare serve --db ./progress.db        # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeoutMinutes = flagIdleTimeout
	}
	logger := newLogger(cfg, "knightmare-ssh")

	pack, err := loadPack(cfg, logger)
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}

	session := core.DefaultConfig()
	session.StepTime = cfg.StepDuration()
	session.Colorblind = cfg.Colorblind

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: config.ExpandHome(cfg.SSH.HostKey),
		DBPath:      cfg.DBPath,
		IdleTimeout: cfg.SSH.IdleTimeout(),
		Pack:        pack,
		Session:     session,
		Muted:       cfg.Sound.Muted,
	}, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting knightmare SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
