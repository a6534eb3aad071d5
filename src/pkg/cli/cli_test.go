package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/session"
)

// fakeAdapter records processed input and replies from a table.
type fakeAdapter struct {
	inputs  []string
	replies map[string]interface{}
	errs    map[string]error
}

func (f *fakeAdapter) CommandProcess(input string) (interface{}, error) {
	f.inputs = append(f.inputs, input)
	return f.replies[input], f.errs[input]
}
func (f *fakeAdapter) AdapterStart() error { return nil }
func (f *fakeAdapter) AdapterStop() error  { return nil }
func (f *fakeAdapter) PromptGet() string   { return "> " }
func (f *fakeAdapter) GetType() string     { return "fake" }

func newTestCLI(t *testing.T, f *fakeAdapter) (*CLI, *bytes.Buffer) {
	t.Helper()
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	t.Cleanup(func() { logger.Close() })
	c, err := NewCLI(f, nil, logger)
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	var out bytes.Buffer
	c.SetOutput(&out)
	return c, &out
}

func TestExecuteLine(t *testing.T) {
	f := &fakeAdapter{
		replies: map[string]interface{}{"element list": "Canvas is empty"},
		errs: map[string]error{
			"page save":   session.ErrNoPage,
			"system exit": session.ErrExit,
		},
	}
	c, out := newTestCLI(t, f)

	if c.ExecuteLine("element list") {
		t.Error("element list should not exit")
	}
	if c.ExecuteLine("page save") {
		t.Error("an error should not exit")
	}
	if c.ExecuteLine("   ") || c.ExecuteLine("# comment") {
		t.Error("blank lines and comments should be ignored")
	}
	if !c.ExecuteLine("system exit") {
		t.Error("system exit should exit")
	}
	if !c.ExecuteLine("quit") {
		t.Error("quit should exit")
	}

	text := out.String()
	if !strings.Contains(text, "Canvas is empty") {
		t.Errorf("missing result in output %q", text)
	}
	if !strings.Contains(text, "Error: "+session.ErrNoPage.Error()) {
		t.Errorf("missing error in output %q", text)
	}
	if len(f.inputs) != 3 {
		t.Errorf("expected 3 commands sent to the adapter, got %v", f.inputs)
	}
}

func TestHelp(t *testing.T) {
	c, out := newTestCLI(t, &fakeAdapter{})

	c.ExecuteLine("help")
	if !strings.Contains(out.String(), "arrange:") {
		t.Error("general help should list scopes")
	}

	out.Reset()
	c.ExecuteLine("help anim add")
	if !strings.Contains(out.String(), "Syntax: anim add <id> <fade|slide|scale|rotate|custom> <duration>") {
		t.Errorf("unexpected operation help %q", out.String())
	}

	out.Reset()
	c.ExecuteLine("help nothing")
	if !strings.Contains(out.String(), "No help found") {
		t.Errorf("unexpected scope help %q", out.String())
	}
}

func TestHelpCoversKnownCommands(t *testing.T) {
	for _, h := range commandHelps {
		if _, ok := session.Usage(h.Scope, h.Operation); !ok {
			t.Errorf("help entry %s %s has no command behind it", h.Scope, h.Operation)
		}
	}
}

func TestExecuteScript(t *testing.T) {
	f := &fakeAdapter{errs: map[string]error{"system exit": session.ErrExit}}
	c, _ := newTestCLI(t, f)

	script := filepath.Join(t.TempDir(), "build.txt")
	body := "# build a page\nproject add shop\n\npage add Home\nsystem exit\nelement add text\n"
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.ExecuteScript(script); err != nil {
		t.Fatalf("ExecuteScript: %v", err)
	}
	want := []string{"project add shop", "page add Home", "system exit"}
	if strings.Join(f.inputs, "|") != strings.Join(want, "|") {
		t.Errorf("script ran %v, want %v", f.inputs, want)
	}

	if err := c.ExecuteScript(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for a missing script")
	}
}

func TestNewCLIValidation(t *testing.T) {
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	defer logger.Close()
	if _, err := NewCLI(nil, nil, logger); err == nil {
		t.Error("expected error for nil adapter")
	}
	c, _ := NewCLI(&fakeAdapter{}, nil, logger)
	if err := c.Run(); err == nil || errors.Is(err, io.EOF) {
		t.Errorf("expected error without readline, got %v", err)
	}
}
