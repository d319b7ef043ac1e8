package fakebackend

import (
	"flag"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("fakebackend", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Addr != "localhost:3001" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "localhost:3001")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL = %v, want %v", cfg.TokenTTL, 24*time.Hour)
	}
}

func TestParseConfigRequiresSeedPair(t *testing.T) {
	fs := flag.NewFlagSet("fakebackend", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-seed-email", "ada@example.com"}); err == nil {
		t.Fatal("ParseConfig() error = nil, want error for missing seed password")
	}
}

func TestNewBackendSeedsAccount(t *testing.T) {
	cfg := Config{SeedName: "Ada", SeedEmail: "ada@example.com", SeedPassword: "Secret#123"}
	backend, err := newBackend(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newBackend() error = %v", err)
	}
	if _, err := backend.SeedUser("Ada", "ada@example.com", "x", ""); err == nil {
		t.Fatal("SeedUser() duplicate error = nil, want ErrUserExists")
	}
}
