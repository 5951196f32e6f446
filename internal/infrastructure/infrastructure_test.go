package infrastructure_test

import (
	"testing"

	"github.com/JaimeStill/adjuster/internal/config"
	"github.com/JaimeStill/adjuster/internal/infrastructure"
	"github.com/JaimeStill/adjuster/pkg/storage"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Storage: storage.Config{Root: t.TempDir()},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.Root = ""

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for empty storage root")
	}
}

func TestStart(t *testing.T) {
	infra, err := infrastructure.New(validConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	infra.Lifecycle.WaitForStartup()
	if !infra.Lifecycle.Ready() {
		t.Error("lifecycle not ready after startup")
	}
}
