package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHostKeyPathCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := hostKeyPath(path)
	if err != nil {
		t.Fatalf("hostKeyPath() failed: %v", err)
	}
	if got != path {
		t.Errorf("hostKeyPath() = %q, want %q", got, path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestNewSSHServerOpensStore(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "crossing.db")
	cfg.TickRate = 0

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.store == nil {
		t.Error("database was not opened")
	}
	if srv.config.TickRate != 60 {
		t.Errorf("TickRate = %d, want the default 60", srv.config.TickRate)
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), cfg.Address)
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
	if srv.store != nil {
		t.Error("Shutdown() left the store open")
	}
}
