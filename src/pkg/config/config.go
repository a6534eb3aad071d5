// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sitecraft/local-app/src/pkg/model"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.json"
)

// Default returns the configuration written on first run.
func Default() *model.Config {
	inline := true
	return &model.Config{
		DatabaseType:     "sqlite",
		DatabaseDir:      "./data",
		DatabaseFile:     "sitecraft.db",
		LogFolder:        "./logs",
		LogLevel:         "info",
		CommandLog:       "commands.log",
		ErrorLog:         "errors.log",
		InfoLog:          "info.log",
		ExportDir:        "./export",
		HistoryFile:      "./data/history.txt",
		GridSize:         10,
		SnapToGrid:       false,
		HistoryLimit:     100,
		InlineBaseStyles: &inline,
		PreviewPort:      "4173",
		PageTitleSuffix:  "",
	}
}

// ConfigLoad loads the configuration from the default JSON file.
// If the file doesn't exist, it creates a default configuration.
func ConfigLoad() error {
	return ConfigLoadFrom(configPath)
}

// ConfigLoadFrom loads the configuration from path and makes it the current configuration.
func ConfigLoadFrom(path string) error {
	configPath = path

	// Ensure the data directory exists
	dataDir := filepath.Dir(configPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := Default()
		if err := ConfigSave(defaultConfig); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
		currentConfig = defaultConfig
		return nil
	}

	// Read and parse the existing config file
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &model.Config{}
	if err := json.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	// Back-fill keys added since the file was written
	if backfill(cfg) {
		if err := ConfigSave(cfg); err != nil {
			return fmt.Errorf("failed to save updated config: %w", err)
		}
	}

	currentConfig = cfg
	return nil
}

// backfill copies defaults into empty fields and reports whether anything changed.
func backfill(cfg *model.Config) bool {
	def := Default()
	changed := false
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
			changed = true
		}
	}

	fill(&cfg.DatabaseType, def.DatabaseType)
	fill(&cfg.DatabaseDir, def.DatabaseDir)
	fill(&cfg.DatabaseFile, def.DatabaseFile)
	fill(&cfg.LogFolder, def.LogFolder)
	fill(&cfg.LogLevel, def.LogLevel)
	fill(&cfg.CommandLog, def.CommandLog)
	fill(&cfg.ErrorLog, def.ErrorLog)
	fill(&cfg.InfoLog, def.InfoLog)
	fill(&cfg.ExportDir, def.ExportDir)
	fill(&cfg.HistoryFile, def.HistoryFile)
	fill(&cfg.PreviewPort, def.PreviewPort)

	if cfg.GridSize <= 0 {
		cfg.GridSize = def.GridSize
		changed = true
	}
	if cfg.HistoryLimit < 0 {
		cfg.HistoryLimit = def.HistoryLimit
		changed = true
	}
	if cfg.InlineBaseStyles == nil {
		cfg.InlineBaseStyles = def.InlineBaseStyles
		changed = true
	}
	return changed
}

// ConfigSave saves the provided configuration to the JSON file.
func ConfigSave(cfg *model.Config) error {
	// Marshal the config to JSON
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write the JSON data to the config file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}
