package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "config.json")
	if err := ConfigLoadFrom(path); err != nil {
		t.Fatalf("ConfigLoadFrom: %v", err)
	}

	cfg := ConfigGet()
	if cfg.GridSize != 10 || cfg.HistoryLimit != 100 || cfg.PreviewPort != "4173" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.BaseStyles() {
		t.Errorf("base styles should default to true")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestConfigLoadBackfillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := map[string]interface{}{
		"database_file":      "custom.db",
		"snap_to_grid":       true,
		"inline_base_styles": false,
	}
	data, _ := json.Marshal(raw)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := ConfigLoadFrom(path); err != nil {
		t.Fatalf("ConfigLoadFrom: %v", err)
	}
	cfg := ConfigGet()
	if cfg.DatabaseFile != "custom.db" || !cfg.SnapToGrid {
		t.Errorf("existing values lost: %+v", cfg)
	}
	if cfg.BaseStyles() {
		t.Errorf("explicit inline_base_styles=false overwritten")
	}
	if cfg.DatabaseType != "sqlite" || cfg.GridSize != 10 || cfg.ExportDir == "" {
		t.Errorf("missing keys not back-filled: %+v", cfg)
	}

	persisted, _ := os.ReadFile(path)
	var back map[string]interface{}
	if err := json.Unmarshal(persisted, &back); err != nil {
		t.Fatal(err)
	}
	if back["preview_port"] != "4173" {
		t.Errorf("back-filled config not persisted: %s", persisted)
	}
}

func TestConfigLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ConfigLoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}
