package model

import (
	"strconv"
	"strings"
	"time"
)

// SessionInfo is a snapshot of a session for status reporting.
type SessionInfo struct {
	ID           string
	Project      *Project
	Page         *Page
	LastActivity time.Time
}

// Command is a parsed user command addressed to a session.
type Command struct {
	Scope     string
	Operation string
	Args      []string
}

// String renders the command as it would be typed, quoting arguments with spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+2)
	if c.Scope != "" {
		parts = append(parts, c.Scope)
	}
	if c.Operation != "" {
		parts = append(parts, c.Operation)
	}
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
