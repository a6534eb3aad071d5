package session

import (
	"context"
	"errors"
	"fmt"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

// SessionCommand wraps the model.Command and adds session-specific functionality
type SessionCommand struct {
	model.Command
	logger *log.Logger
}

// arity bounds the argument count of one operation. max < 0 means unbounded.
type arity struct {
	min, max int
	usage    string
}

var commandArity = map[string]map[string]arity{
	"project": {
		"add":    {1, 1, "<name>"},
		"list":   {0, 0, ""},
		"select": {1, 1, "<name|id>"},
		"rename": {1, 1, "<new_name>"},
		"delete": {0, 1, "[name|id]"},
		"export": {1, 2, "<filename> [json|yaml]"},
		"import": {1, 2, "<filename> [json|yaml]"},
	},
	"page": {
		"add":    {1, 2, "<name> [slug]"},
		"list":   {0, 0, ""},
		"select": {1, 1, "<name|slug|id>"},
		"save":   {0, 0, ""},
		"rename": {1, 1, "<new_name>"},
		"delete": {0, 1, "[name|slug|id]"},
		"close":  {0, 0, ""},
	},
	"element": {
		"add":        {1, 6, "<type> [x] [y] [width] [height] [content]"},
		"list":       {0, 0, ""},
		"show":       {1, 1, "<id>"},
		"move":       {3, 3, "<id> <dx> <dy>"},
		"place":      {3, 3, "<id> <x> <y>"},
		"resize":     {3, 3, "<id> <width> <height>"},
		"style":      {2, -1, "<id> <property=value>..."},
		"unstyle":    {2, 2, "<id> <property>"},
		"content":    {2, 2, "<id> <text>"},
		"media":      {2, 3, "<id> <src> [alt]"},
		"attr":       {2, -1, "<id> <name=value>..."},
		"class":      {1, -1, "<id> [class]..."},
		"transform":  {2, -1, "<id> <rotate|scaleX|scaleY|skewX|skewY=value>..."},
		"visible":    {2, 2, "<id> <on|off>"},
		"lock":       {2, 2, "<id> <on|off>"},
		"responsive": {3, -1, "<id> <desktop|tablet|mobile> <property=value>..."},
		"code":       {3, 3, "<id> <html|css|js> <code>"},
		"data":       {2, 3, "<id> <source> [operation]"},
		"delete":     {1, 1, "<id>"},
		"duplicate":  {1, 1, "<id>"},
		"front":      {1, 1, "<id>"},
		"back":       {1, 1, "<id>"},
		"up":         {1, 1, "<id>"},
		"down":       {1, 1, "<id>"},
		"template":   {1, 2, "<filename> [json|yaml]"},
		"clear":      {0, 0, ""},
		"commit":     {0, 0, ""},
	},
	"select": {
		"set":    {1, 1, "<id>"},
		"many":   {1, -1, "<id>..."},
		"toggle": {1, 1, "<id>"},
		"all":    {0, 0, ""},
		"clear":  {0, 0, ""},
		"show":   {0, 0, ""},
	},
	"arrange": {
		"group":      {0, -1, "[id]..."},
		"ungroup":    {0, 1, "[id]"},
		"align":      {1, -1, "<left|right|top|bottom|center|middle> [id]..."},
		"distribute": {1, -1, "<horizontal|vertical> [id]..."},
		"reparent":   {1, 2, "<child> [parent]"},
	},
	"edit": {
		"undo":      {0, 0, ""},
		"redo":      {0, 0, ""},
		"copy":      {0, -1, "[id]..."},
		"cut":       {0, -1, "[id]..."},
		"paste":     {0, 2, "[x y]"},
		"duplicate": {0, 0, ""},
		"delete":    {0, 0, ""},
		"history":   {0, 0, ""},
	},
	"anim": {
		"add":    {3, 6, "<id> <fade|slide|scale|rotate|custom> <duration> [delay] [easing] [direction]"},
		"update": {4, 7, "<id> <index> <type> <duration> [delay] [easing] [direction]"},
		"remove": {2, 2, "<id> <index>"},
		"list":   {1, 1, "<id>"},
	},
	"action": {
		"add":    {3, -1, "<id> <link|scroll|toggle|modal|api|custom> <click|hover|load|scroll|custom> [key=value]..."},
		"update": {4, -1, "<id> <index> <type> <event> [key=value]..."},
		"remove": {2, 2, "<id> <index>"},
		"list":   {1, 1, "<id>"},
	},
	"export": {
		"html":    {0, 1, "[filename]"},
		"publish": {0, 0, ""},
		"png":     {0, 1, "[filename]"},
		"copy":    {0, 0, ""},
		"code":    {0, 0, ""},
		"preview": {0, 1, "[port]"},
		"stop":    {0, 0, ""},
	},
	"system": {
		"exit":   {0, 0, ""},
		"quit":   {0, 0, ""},
		"status": {0, 0, ""},
	},
}

// NewSessionCommand creates a new SessionCommand from a model.Command
func NewSessionCommand(cmd model.Command, logger *log.Logger) SessionCommand {
	return SessionCommand{Command: cmd, logger: logger}
}

// Validate checks if the command is valid
func (c *SessionCommand) Validate() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating command", log.Fields{"scope": c.Scope, "operation": c.Operation})

	if c.Scope == "" {
		c.logger.Error(ctx, "Command scope is empty", nil)
		return errors.New("command scope is required")
	}
	if c.Operation == "" {
		c.logger.Error(ctx, "Command operation is empty", nil)
		return errors.New("command operation is required")
	}
	return c.validateScopeAndOperation()
}

// validateScopeAndOperation checks the scope, the operation and the argument count
func (c *SessionCommand) validateScopeAndOperation() error {
	ctx := context.Background()

	operations, ok := commandArity[c.Scope]
	if !ok {
		c.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": c.Scope})
		return fmt.Errorf("invalid command scope: %s", c.Scope)
	}
	a, ok := operations[c.Operation]
	if !ok {
		c.logger.Error(ctx, "Invalid command operation", log.Fields{"scope": c.Scope, "operation": c.Operation})
		return fmt.Errorf("invalid %s operation: %s", c.Scope, c.Operation)
	}

	n := len(c.Args)
	if n >= a.min && (a.max < 0 || n <= a.max) {
		return nil
	}
	c.logger.Error(ctx, "Invalid number of arguments", log.Fields{"scope": c.Scope, "operation": c.Operation, "argCount": n})
	switch {
	case a.max == 0:
		return fmt.Errorf("%s %s command does not accept any arguments", c.Scope, c.Operation)
	case a.min == a.max:
		return fmt.Errorf("%s %s command requires %d argument(s): %s", c.Scope, c.Operation, a.min, a.usage)
	case a.max < 0:
		return fmt.Errorf("%s %s command requires at least %d argument(s): %s", c.Scope, c.Operation, a.min, a.usage)
	default:
		return fmt.Errorf("%s %s command requires %d to %d arguments: %s", c.Scope, c.Operation, a.min, a.max, a.usage)
	}
}

// Usage returns the argument synopsis of an operation.
func Usage(scope, operation string) (string, bool) {
	a, ok := commandArity[scope][operation]
	if !ok {
		return "", false
	}
	return a.usage, true
}
