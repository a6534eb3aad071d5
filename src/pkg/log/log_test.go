package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitecraft/local-app/src/pkg/model"
)

func TestWriterLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelInfo)
	ctx := context.Background()

	l.Info(ctx, "element added", Fields{"id": "e1"})
	l.Debug(ctx, "hidden", nil)
	l.Error(ctx, "failed", Fields{"error": errors.New("boom")})
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"msg":"element added"`) || !strings.Contains(out, `"id":"e1"`) {
		t.Errorf("info entry missing: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered: %s", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("error field not rendered as string: %s", out)
	}
}

func TestLoggerAfterCloseIsNoop(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelDebug)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	l.Info(context.Background(), "late", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if strings.Contains(buf.String(), "late") {
		t.Errorf("message written after close")
	}
}

func TestNewLoggerWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := &model.Config{LogFolder: dir, CommandLog: "c.log", ErrorLog: "e.log", InfoLog: "i.log"}
	l, err := NewLogger(cfg, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	l.Command(context.Background(), "element add button")
	l.Warn(context.Background(), "nothing selected", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	cmd, _ := os.ReadFile(filepath.Join(dir, "c.log"))
	if !strings.Contains(string(cmd), "element add button") {
		t.Errorf("command log = %q", cmd)
	}
	errLog, _ := os.ReadFile(filepath.Join(dir, "e.log"))
	if !strings.Contains(string(errLog), "nothing selected") {
		t.Errorf("error log = %q", errLog)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{"debug": LevelDebug, "WARN": LevelWarn, "": LevelInfo, "error": LevelError}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
