package adapter

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"sitecraft/local-app/src/pkg/config"
	"sitecraft/local-app/src/pkg/data"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/session"
	"sitecraft/local-app/src/pkg/storage"
)

func newTestAdapterManager(t *testing.T) *AdapterManager {
	t.Helper()
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	store, err := storage.NewMemoryStorage(logger)
	if err != nil {
		t.Fatalf("NewMemoryStorage: %v", err)
	}
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	dm, err := data.NewDataManager(store.ProjectStore, store.PageStore, cfg, logger)
	if err != nil {
		t.Fatalf("NewDataManager: %v", err)
	}
	sm, err := session.NewSessionManager(dm, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	am, err := NewAdapterManager(sm, logger)
	if err != nil {
		t.Fatalf("NewAdapterManager: %v", err)
	}
	t.Cleanup(func() {
		am.Shutdown()
		sm.Close()
		dm.EventManager.Wait()
		store.Close()
		logger.Close()
	})
	return am
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"element add text", []string{"element", "add", "text"}},
		{`element content e1 "Hello world"`, []string{"element", "content", "e1", "Hello world"}},
		{`element content e1 ""`, []string{"element", "content", "e1", ""}},
		{`action add e1 custom click "script=alert(\"hi\")"`, []string{"action", "add", "e1", "custom", "click", `script=alert("hi")`}},
		{"  spaced\tout  ", []string{"spaced", "out"}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := ParseArgs(tt.input)
		if err != nil {
			t.Errorf("ParseArgs(%q): %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseArgs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParseArgs(`element content "open`); err == nil {
		t.Error("expected error for unterminated quote")
	}
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand(`Element CONTENT E1 "Mixed Case"`)
	if err != nil {
		t.Fatalf("ParseCommand: %v", err)
	}
	if cmd.Scope != "element" || cmd.Operation != "content" {
		t.Errorf("scope and operation should be lower-cased: %+v", cmd)
	}
	if !reflect.DeepEqual(cmd.Args, []string{"E1", "Mixed Case"}) {
		t.Errorf("arguments should keep their case: %q", cmd.Args)
	}
	if _, err := ParseCommand("   "); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestCLIAdapterPrompt(t *testing.T) {
	am := newTestAdapterManager(t)
	instance, _, err := am.AdapterAdd(CLIAdapterType)
	if err != nil {
		t.Fatalf("AdapterAdd: %v", err)
	}
	if instance.GetType() != CLIAdapterType {
		t.Errorf("unexpected type %s", instance.GetType())
	}

	if p := instance.PromptGet(); p != "> " {
		t.Errorf("unexpected initial prompt %q", p)
	}
	steps := []struct {
		input  string
		prompt string
	}{
		{`project add "My Site"`, "My Site > "},
		{"page add Home", "My Site / Home > "},
		{"element add text", "My Site / Home* > "},
		{"page save", "My Site / Home > "},
	}
	for _, step := range steps {
		if _, err := instance.CommandProcess(step.input); err != nil {
			t.Fatalf("%s: %v", step.input, err)
		}
		if p := instance.PromptGet(); p != step.prompt {
			t.Errorf("after %q prompt = %q, want %q", step.input, p, step.prompt)
		}
	}
}

func TestAdapterManagerLifecycle(t *testing.T) {
	am := newTestAdapterManager(t)
	if _, _, err := am.AdapterAdd("websocket"); err == nil {
		t.Error("expected error for unknown adapter type")
	}

	instance, sessionID, err := am.AdapterAdd(CLIAdapterType)
	if err != nil {
		t.Fatalf("AdapterAdd: %v", err)
	}
	am.AdapterRemove(sessionID)
	if _, ok := am.sessionManager.SessionGet(sessionID); ok {
		t.Error("session should be deleted with its adapter")
	}
	if _, err := instance.CommandProcess("system status"); err == nil {
		t.Error("expected error from a stopped adapter")
	}
}
