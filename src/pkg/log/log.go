// Package log provides functionality for logging commands, errors and diagnostics
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"sitecraft/local-app/src/pkg/model"
)

// Fields carries structured key/value pairs attached to a log entry
type Fields map[string]interface{}

// LogMessage represents a message queued for the logging goroutine
type LogMessage struct {
	Level   LogLevel
	Message string
	Fields  Fields
	Context context.Context
}

// Logger writes command, error and info entries to separate slog JSON sinks
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
	logChan       chan LogMessage
	done          chan struct{}
	wg            sync.WaitGroup
	level         atomic.Int32
	closed        atomic.Bool
}

// NewLogger creates a new Logger writing into the log folder named by the configuration
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.LogFolder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, err
		}
		files = append(files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	l := newLogger(commandFile, errorFile, infoFile, level)
	l.files = files
	return l, nil
}

// NewWriterLogger creates a Logger that sends every sink to the same writer
func NewWriterLogger(w io.Writer, level LogLevel) *Logger {
	return newLogger(w, w, w, level)
}

func newLogger(commandW, errorW, infoW io.Writer, level LogLevel) *Logger {
	l := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandW, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errorW, &slog.HandlerOptions{Level: slog.LevelWarn})),
		infoLogger:    slog.New(slog.NewJSONHandler(infoW, &slog.HandlerOptions{Level: slog.LevelDebug})),
		logChan:       make(chan LogMessage, 100), // Buffered channel with capacity of 100
		done:          make(chan struct{}),
	}
	l.level.Store(int32(level))

	// Start the logging goroutine
	l.wg.Add(1)
	go l.processLogs()

	return l
}

// processLogs handles incoming log messages until Close is called
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.logChan:
			l.write(msg)
		case <-l.done:
			// Drain whatever is still buffered
			for {
				select {
				case msg := <-l.logChan:
					l.write(msg)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) write(msg LogMessage) {
	ctx := msg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	attrs := msg.Fields.attrs()

	switch msg.Level {
	case LevelCommand:
		l.commandLogger.LogAttrs(ctx, msg.Level.toSlogLevel(), msg.Message, attrs...)
	case LevelError, LevelWarn:
		l.errorLogger.LogAttrs(ctx, msg.Level.toSlogLevel(), msg.Message, attrs...)
	default:
		l.infoLogger.LogAttrs(ctx, msg.Level.toSlogLevel(), msg.Message, attrs...)
	}
}

// attrs converts the fields into slog attributes in key order
func (f Fields) attrs() []slog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := f[k]
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (l *Logger) enqueue(ctx context.Context, level LogLevel, msg string, fields Fields) {
	if l == nil || l.closed.Load() || int32(level) > l.level.Load() {
		return
	}
	select {
	case l.logChan <- LogMessage{Level: level, Message: msg, Fields: fields, Context: ctx}:
	case <-l.done:
	}
}

// Command records a command line as entered by the user
func (l *Logger) Command(ctx context.Context, command string) {
	l.enqueue(ctx, LevelCommand, command, nil)
}

func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelError, msg, fields)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelWarn, msg, fields)
}

func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelInfo, msg, fields)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelDebug, msg, fields)
}

// SetLevel changes the most verbose level that is still written
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// Close stops the logging goroutine and closes all log files
func (l *Logger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(l.done)
	l.wg.Wait() // Wait for the logging goroutine to finish

	for _, f := range l.files {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close log file %s: %w", f.Name(), err)
		}
	}
	return nil
}
