package tui

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knightmare/internal/levels"
)

func TestNewSSHServerNeedsLevels(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if _, err := NewSSHServer(cfg, log.New(io.Discard)); !errors.Is(err, levels.ErrNoLevels) {
		t.Errorf("NewSSHServer without levels error = %v, expected ErrNoLevels", err)
	}
}

func TestSSHServerShutdown(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "progress.db")
	cfg.Pack = testCampaign(t).Pack()

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.store == nil {
		t.Fatal("expected the save database to open")
	}
	if _, err := srv.store.RecordCompletion("alice", "Push", 3); err != nil {
		t.Fatalf("store should be usable before shutdown: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, _, err := srv.store.BestSteps("alice", "Push"); err == nil {
		t.Error("store should be closed after Shutdown")
	}
}
