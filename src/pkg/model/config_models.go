// Package model defines the data structures used throughout the Sitecraft application.
package model

type Config struct {
	DatabaseType     string  `json:"database_type"`
	DatabaseDir      string  `json:"database_dir"`
	DatabaseFile     string  `json:"database_file"`
	LogFolder        string  `json:"log_folder"`
	LogLevel         string  `json:"log_level"`
	CommandLog       string  `json:"command_log"`
	ErrorLog         string  `json:"error_log"`
	InfoLog          string  `json:"info_log"`
	ExportDir        string  `json:"export_dir"`
	HistoryFile      string  `json:"history_file"`
	GridSize         float64 `json:"grid_size"`
	SnapToGrid       bool    `json:"snap_to_grid"`
	HistoryLimit     int     `json:"history_limit"`
	InlineBaseStyles *bool   `json:"inline_base_styles,omitempty"`
	PreviewPort      string  `json:"preview_port"`
	PageTitleSuffix  string  `json:"page_title_suffix"`
}

// BaseStyles reports whether generated documents carry the default style block
func (c *Config) BaseStyles() bool {
	return c.InlineBaseStyles == nil || *c.InlineBaseStyles
}
