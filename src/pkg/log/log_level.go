package log

import (
	"log/slog"
	"strings"
)

// LogLevel orders log channels from the always-written command log to debug detail
type LogLevel int

const (
	LevelCommand LogLevel = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{
	LevelCommand: "command",
	LevelError:   "error",
	LevelWarn:    "warn",
	LevelInfo:    "info",
	LevelDebug:   "debug",
}

// String returns the upper-case level name
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return strings.ToUpper(levelNames[l])
}

// ParseLevel maps a configuration value onto a LogLevel, defaulting to LevelInfo
func ParseLevel(s string) LogLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == s {
			return LogLevel(l)
		}
	}
	return LevelInfo
}

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
