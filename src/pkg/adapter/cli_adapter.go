// Package adapter binds front ends to editing sessions.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/session"
)

// CLIAdapterType is the registered name of the CLI adapter
const CLIAdapterType = "cli"

// ErrEmptyCommand is returned for blank input.
var ErrEmptyCommand = errors.New("empty command")

// CLIAdapter turns command lines into session commands
type CLIAdapter struct {
	sessionID      string
	sessionManager *session.SessionManager
	started        bool
	logger         *log.Logger
}

// NewCLIAdapter creates a CLI adapter bound to an existing session
func NewCLIAdapter(sessionID string, sm *session.SessionManager, logger *log.Logger) (*CLIAdapter, error) {
	if sm == nil {
		return nil, errors.New("session manager is nil")
	}
	if _, ok := sm.SessionGet(sessionID); !ok {
		return nil, fmt.Errorf("session %s does not exist", sessionID)
	}
	logger.Info(context.Background(), "Creating new CLI adapter", log.Fields{"sessionID": sessionID})
	return &CLIAdapter{
		sessionID:      sessionID,
		sessionManager: sm,
		logger:         logger,
	}, nil
}

// GetType returns the adapter type
func (a *CLIAdapter) GetType() string { return CLIAdapterType }

// AdapterStart marks the adapter as accepting commands
func (a *CLIAdapter) AdapterStart() error {
	a.started = true
	return nil
}

// AdapterStop marks the adapter as stopped
func (a *CLIAdapter) AdapterStop() error {
	a.started = false
	a.logger.Info(context.Background(), "CLI adapter stopped", log.Fields{"sessionID": a.sessionID})
	return nil
}

// CommandProcess converts the input string into a command and runs it
func (a *CLIAdapter) CommandProcess(input string) (interface{}, error) {
	if !a.started {
		return nil, errors.New("adapter is not started")
	}
	cmd, err := ParseCommand(input)
	if err != nil {
		return nil, err
	}
	return a.sessionManager.SessionRun(a.sessionID, cmd)
}

// ParseCommand splits input into scope, operation and arguments. Scope and operation are
// lower-cased; arguments keep their case.
func ParseCommand(input string) (model.Command, error) {
	args, err := ParseArgs(input)
	if err != nil {
		return model.Command{}, err
	}
	if len(args) == 0 {
		return model.Command{}, ErrEmptyCommand
	}

	cmd := model.Command{
		Scope: strings.ToLower(args[0]),
		Args:  []string{},
	}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}
	return cmd, nil
}

// ParseArgs splits input on whitespace. Double quotes group words and may be escaped
// with a backslash inside a quoted argument.
func ParseArgs(input string) ([]string, error) {
	var args []string
	var current strings.Builder
	inQuotes, quoted, escaped := false, false, false

	for _, char := range input {
		switch {
		case escaped:
			current.WriteRune(char)
			escaped = false
		case char == '\\' && inQuotes:
			escaped = true
		case char == '"':
			inQuotes = !inQuotes
			quoted = true
		case (char == ' ' || char == '\t') && !inQuotes:
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(char)
		}
	}
	if inQuotes {
		return nil, errors.New("unterminated quote")
	}
	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}
	return args, nil
}

// PromptGet returns "project / page > ", with an asterisk after a page with unsaved changes
func (a *CLIAdapter) PromptGet() string {
	s, ok := a.sessionManager.SessionGet(a.sessionID)
	if !ok {
		return "> "
	}
	info := s.Info()
	if info.Project == nil {
		return "> "
	}
	if info.Page == nil {
		return fmt.Sprintf("%s > ", info.Project.Name)
	}
	dirty := ""
	if s.Dirty() {
		dirty = "*"
	}
	return fmt.Sprintf("%s / %s%s > ", info.Project.Name, info.Page.Name, dirty)
}
