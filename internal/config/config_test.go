package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.BoardingWindow() != 30*time.Minute {
		t.Errorf("boarding window = %v, want 30m", cfg.BoardingWindow())
	}
	if cfg.RefundBuffer() != 2*time.Hour {
		t.Errorf("refund buffer = %v, want 2h", cfg.RefundBuffer())
	}
	if cfg.Generator.HorizonDays != 30 {
		t.Errorf("horizon = %d, want 30", cfg.Generator.HorizonDays)
	}
	if cfg.Generator.Interval != 24*time.Hour {
		t.Errorf("interval = %v, want 24h", cfg.Generator.Interval)
	}
}

func TestLoadReadsFileAndKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := []byte("server:\n  port: 9090\nbooking:\n  refundBufferHours: 6\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.RefundBuffer() != 6*time.Hour {
		t.Errorf("refund buffer = %v, want 6h", cfg.RefundBuffer())
	}
	// Untouched fields fall back to defaults.
	if cfg.BoardingWindow() != 30*time.Minute {
		t.Errorf("boarding window = %v, want 30m", cfg.BoardingWindow())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 99999\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an out-of-range port")
	}
}
