package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load missing config: %v", err)
	}

	if cfg.PageSize != 12 {
		t.Errorf("expected default page size 12, got %d", cfg.PageSize)
	}
	if cfg.MaxTags != 12 {
		t.Errorf("expected default tag cap 12, got %d", cfg.MaxTags)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}

	// Defaults should have been written back
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestLoad_AppliesDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"databasePath": "/tmp/x.db"}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.DatabasePath != "/tmp/x.db" {
		t.Errorf("expected explicit database path to survive, got %q", cfg.DatabasePath)
	}
	if cfg.PageSize != 12 {
		t.Errorf("expected default page size for missing field, got %d", cfg.PageSize)
	}
}

func TestLoad_RejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSaveAndLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	want := Config{PageSize: 24, MaxTags: 6, DatabasePath: "/data/b.db", LogLevel: "debug", LogPath: "/data/b.log"}
	if err := Save(path, &want); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if *got != want {
		t.Errorf("roundtrip mismatch: %+v != %+v", *got, want)
	}
}

func TestDatabaseFile_PrefersExplicitPath(t *testing.T) {
	cfg := Config{DatabasePath: "/explicit/b.db"}

	got, err := cfg.DatabaseFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/explicit/b.db" {
		t.Errorf("expected explicit path, got %q", got)
	}
}
