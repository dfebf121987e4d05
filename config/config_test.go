package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := LoadOrCreate(path)
	if len(cfg.Gateways) == 0 {
		t.Fatal("expected default gateways")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}

	cfg.Gateways = append(cfg.Gateways, Gateway{Name: "Staging", URL: "http://10.0.0.2:8545"})
	Save(path, cfg)

	reloaded := Load(path)
	if len(reloaded.Gateways) != 2 {
		t.Fatalf("expected 2 gateways after save, got %d", len(reloaded.Gateways))
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path)
	if len(cfg.Gateways) != 0 {
		t.Error("invalid config should load as zero value")
	}
	if got := LoadOrCreate(path); len(got.Gateways) == 0 {
		t.Error("LoadOrCreate should fall back to defaults on invalid config")
	}
}

func TestActiveGateway(t *testing.T) {
	cfg := Config{Gateways: []Gateway{
		{Name: "a", URL: "http://a"},
		{Name: "b", URL: "http://b", Active: true},
	}}

	if got := cfg.ActiveGateway(); got != "http://b" {
		t.Errorf("expected active gateway, got %s", got)
	}

	t.Setenv("SWEEPS_RPC_URL", "http://env-override")
	if got := cfg.ActiveGateway(); got != "http://env-override" {
		t.Errorf("environment override ignored, got %s", got)
	}
}
