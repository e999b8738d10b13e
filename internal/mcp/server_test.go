package mcp

import (
	"log/slog"
	"testing"
)

func TestNewServer(t *testing.T) {
	setupTestEnvironment(t)

	srv, err := NewServer(nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	if srv == nil {
		t.Fatal("expected non-nil server")
	}

	if srv.mcp == nil {
		t.Error("expected MCP server to be initialized")
	}

	if srv.cfg == nil {
		t.Error("expected config to be initialized")
	}

	if srv.logger == nil {
		t.Error("expected nil logger to be replaced with a discard logger")
	}
}

func TestNewServer_WithConfig(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("DEHASH_MAX_ATTEMPTS", "12")

	srv, err := NewServer(slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	if srv.cfg.Rename.MaxAttempts != 12 {
		t.Errorf("expected max attempts 12, got %d", srv.cfg.Rename.MaxAttempts)
	}

	if srv.cfg.Security.MaxExtractedSizeBytes == 0 {
		t.Error("expected max extracted size to be set")
	}
}

func TestNewServer_InvalidConfig(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("DEHASH_MAX_ATTEMPTS", "zero")

	if _, err := NewServer(nil); err == nil {
		t.Error("expected error for invalid environment override")
	}
}
