package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should not be empty")
	}
	if cfg.Database.BusyTimeoutMS != 5000 {
		t.Errorf("Database.BusyTimeoutMS = %d, want 5000", cfg.Database.BusyTimeoutMS)
	}
	if cfg.Database.JournalMode != "WAL" {
		t.Errorf("Database.JournalMode = %s, want WAL", cfg.Database.JournalMode)
	}
}

func TestSaveAndLoad(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Create and save config
	cfg := DefaultConfig()
	cfg.Database.Path = "/var/lib/objmap/data.db"
	cfg.Database.JournalMode = "DELETE"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Load config
	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	// Verify values
	if loaded.Database.Path != "/var/lib/objmap/data.db" {
		t.Errorf("Database.Path = %s, want /var/lib/objmap/data.db", loaded.Database.Path)
	}
	if loaded.Database.JournalMode != "DELETE" {
		t.Errorf("Database.JournalMode = %s, want DELETE", loaded.Database.JournalMode)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// A partial config: only the path is set
	if err := os.WriteFile(configPath, []byte("database:\n  path: ./partial.db\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	loaded, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if loaded.Version != 1 {
		t.Errorf("Version = %d, want 1 (default)", loaded.Version)
	}
	if loaded.Database.Path != "./partial.db" {
		t.Errorf("Database.Path = %s, want ./partial.db", loaded.Database.Path)
	}
	if loaded.Database.BusyTimeoutMS != 5000 {
		t.Errorf("Database.BusyTimeoutMS = %d, want 5000 (default)", loaded.Database.BusyTimeoutMS)
	}
	if loaded.Database.JournalMode != "WAL" {
		t.Errorf("Database.JournalMode = %s, want WAL (default)", loaded.Database.JournalMode)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	// Run from an empty directory with no env override
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)
	os.Unsetenv(EnvConfigPath)

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %s, want empty", path)
	}
	if cfg.Database.Path != DefaultConfig().Database.Path {
		t.Errorf("Database.Path = %s, want default", cfg.Database.Path)
	}
}

func TestFindConfigPath(t *testing.T) {
	// Create temp directory with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Set working directory to temp
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Should find config in working directory
	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	os.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	defer os.Unsetenv(EnvConfigPath)

	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	// Explicit path exists, should win
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	os.Setenv(EnvConfigPath, explicit)

	if found = FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestFindConfigPathXDG(t *testing.T) {
	xdgDir := t.TempDir()
	configPath := filepath.Join(xdgDir, ConfigDirName, "config.yaml")
	if err := DefaultConfig().Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Empty working directory so only the XDG lookup can hit
	oldWd, _ := os.Getwd()
	os.Chdir(t.TempDir())
	defer os.Chdir(oldWd)
	os.Unsetenv(EnvConfigPath)

	os.Setenv("XDG_CONFIG_HOME", xdgDir)
	defer os.Unsetenv("XDG_CONFIG_HOME")

	if found := FindConfigPath(); found != configPath {
		t.Errorf("FindConfigPath() = %s, want %s", found, configPath)
	}
}
