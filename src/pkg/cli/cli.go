// Package cli provides the interactive command line of the editor.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"sitecraft/local-app/src/pkg/adapter"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/session"
)

// CLI represents the command-line interface
type CLI struct {
	adapter adapter.AdapterInstance
	rl      *readline.Instance
	writer  io.Writer
	logger  *log.Logger
}

// NewCLI creates a new CLI instance reading from rl. A nil rl is allowed for scripted use.
func NewCLI(instance adapter.AdapterInstance, rl *readline.Instance, logger *log.Logger) (*CLI, error) {
	if instance == nil {
		return nil, errors.New("adapter instance is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	c := &CLI{
		adapter: instance,
		rl:      rl,
		writer:  os.Stdout,
		logger:  logger,
	}
	if rl != nil {
		c.writer = rl.Stdout()
	}
	return c, nil
}

// SetOutput redirects command output
func (c *CLI) SetOutput(w io.Writer) {
	c.writer = w
}

// Run reads and executes lines until exit, EOF or Stop
func (c *CLI) Run() error {
	if c.rl == nil {
		return errors.New("no readline instance")
	}
	fmt.Fprintln(c.writer, "Welcome to Sitecraft!")
	fmt.Fprintln(c.writer, "Type 'help' for a list of commands or 'exit' to quit.")

	for {
		c.rl.SetPrompt(c.adapter.PromptGet())
		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Fprintln(c.writer, "Use 'exit' or 'quit' to exit the program.")
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if exit := c.ExecuteLine(line); exit {
			return nil
		}
	}
}

// ExecuteLine runs one line of input and reports whether the user asked to exit
func (c *CLI) ExecuteLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	args, err := adapter.ParseArgs(line)
	if err != nil {
		fmt.Fprintf(c.writer, "Error: %v\n", err)
		return false
	}
	switch strings.ToLower(args[0]) {
	case "help":
		c.printHelp(args[1:])
		return false
	case "exit", "quit":
		return true
	}

	result, err := c.adapter.CommandProcess(line)
	if errors.Is(err, session.ErrExit) {
		return true
	}
	if err != nil {
		fmt.Fprintf(c.writer, "Error: %v\n", err)
		return false
	}
	if result != nil {
		fmt.Fprintln(c.writer, result)
	}
	return false
}

// ExecuteScript runs every line of a command file and stops at an exit command
func (c *CLI) ExecuteScript(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	c.logger.Info(context.Background(), "Running script", log.Fields{"file": filename})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" && !strings.HasPrefix(strings.TrimSpace(line), "#") {
			fmt.Fprintf(c.writer, "%s%s\n", c.adapter.PromptGet(), line)
		}
		if c.ExecuteLine(line) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

// Stop closes the readline instance, which ends Run
func (c *CLI) Stop() {
	if c.rl != nil {
		c.rl.Close()
	}
}
