package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Convert.Precision != 4 {
		t.Errorf("expected Precision=4, got %d", cfg.Convert.Precision)
	}
	if cfg.Convert.Base != "e" {
		t.Errorf("expected Base=e, got %s", cfg.Convert.Base)
	}
	if cfg.Convert.Strict {
		t.Error("expected Strict=false")
	}
	if !cfg.Score.Uppercase {
		t.Error("expected Uppercase=true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ngramlp.yaml")

	content := `
convert:
  precision: 6
  base: "10"
  strict: true
score:
  floor: -11
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Convert.Precision != 6 {
		t.Errorf("expected Precision=6, got %d", cfg.Convert.Precision)
	}
	if cfg.Convert.Base != "10" {
		t.Errorf("expected Base=10, got %s", cfg.Convert.Base)
	}
	if !cfg.Convert.Strict {
		t.Error("expected Strict=true")
	}
	if cfg.Score.Floor != -11 {
		t.Errorf("expected Floor=-11, got %v", cfg.Score.Floor)
	}
	if len(cfg.Input.Includes) != 1 {
		t.Errorf("expected default includes to survive, got %v", cfg.Input.Includes)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ngramlp.yaml")

	for _, content := range []string{
		"convert:\n  precision: -1\n",
		"convert:\n  base: \"2\"\n",
		"score:\n  floor: 3\n",
		"logging:\n  level: loud\n",
	} {
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(configPath); err == nil {
			t.Errorf("expected error for %q", content)
		}
	}
}

func TestLoad_BaseMatchesFlagParsing(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ngramlp.yaml")

	for _, base := range []string{" e", "10 ", "LN", "log10"} {
		content := "convert:\n  base: \"" + base + "\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(configPath); err != nil {
			t.Errorf("expected base %q to be accepted, got %v", base, err)
		}
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".ngramlp"), 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".ngramlp", "config.yaml")

	content := `
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ngramlp.yaml")
	cfg := DefaultConfig()
	cfg.Convert.Precision = 2

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Convert.Precision != 2 {
		t.Errorf("expected Precision=2, got %d", loaded.Convert.Precision)
	}
}

func TestStorePath(t *testing.T) {
	cfg := DefaultConfig()
	path := cfg.StorePath("/home/user/tables")
	expected := filepath.Join("/home/user/tables", ".ngramlp", "table.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}

	cfg.Store.Path = "/var/lib/quad.db"
	if got := cfg.StorePath("/ignored"); got != "/var/lib/quad.db" {
		t.Errorf("expected absolute path kept, got %s", got)
	}
}
