// Package preview serves generated pages over local HTTP.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"sitecraft/local-app/src/pkg/log"
)

// RenderFunc produces the document for the page being edited.
type RenderFunc func() string

// LookupFunc produces the document for a stored page.
type LookupFunc func(id string) (string, error)

// Server serves the current page from a cache refreshed by Refresh.
type Server struct {
	app     *fiber.App
	render  RenderFunc
	lookup  LookupFunc
	logger  *log.Logger
	mu      sync.RWMutex
	html    string
	addr    string
	running bool
}

// NewServer builds the fiber app and primes the cache.
func NewServer(render RenderFunc, lookup LookupFunc, logger *log.Logger) (*Server, error) {
	if render == nil {
		return nil, errors.New("render function is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	s := &Server{render: render, lookup: lookup, logger: logger}
	s.app = fiber.New(fiber.Config{
		AppName:      "Sitecraft Preview",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	s.app.Use(recover.New())
	s.app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} ${latency} ${method} ${path}\n",
		Stream: logWriter{logger: logger},
	}))

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/", s.handleCurrent)
	s.app.Get("/pages/:id", s.handlePage)

	s.Refresh()
	return s, nil
}

// App exposes the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Refresh regenerates the cached document of the current page.
func (s *Server) Refresh() {
	html := s.render()
	s.mu.Lock()
	s.html = html
	s.mu.Unlock()
}

// Addr returns the listen address, or "" when not running.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return ""
	}
	return s.addr
}

// Start listens on addr in the background. A bare port is bound to localhost.
func (s *Server) Start(addr string) error {
	if !strings.Contains(addr, ":") {
		addr = "127.0.0.1:" + addr
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("preview already running on %s", s.addr)
	}
	s.running = true
	s.addr = addr
	s.mu.Unlock()

	errc := make(chan error, 1)
	go func() {
		errc <- s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	// Give bind errors a moment to surface
	select {
	case err := <-errc:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		if err != nil {
			return fmt.Errorf("failed to start preview server: %w", err)
		}
		return errors.New("preview server stopped unexpectedly")
	case <-time.After(100 * time.Millisecond):
	}

	s.logger.Info(context.Background(), "Preview server started", log.Fields{"addr": addr})
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to stop preview server: %w", err)
	}
	s.logger.Info(context.Background(), "Preview server stopped", nil)
	return nil
}

func (s *Server) handleCurrent(c fiber.Ctx) error {
	s.mu.RLock()
	html := s.html
	s.mu.RUnlock()
	c.Type("html", "utf-8")
	return c.SendString(html)
}

func (s *Server) handlePage(c fiber.Ctx) error {
	if s.lookup == nil {
		return fiber.ErrNotFound
	}
	html, err := s.lookup(c.Params("id"))
	if err != nil {
		s.logger.Warn(context.Background(), "Preview lookup failed", log.Fields{"id": c.Params("id"), "error": err})
		return fiber.ErrNotFound
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// logWriter forwards access log lines to the debug log.
type logWriter struct {
	logger *log.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.logger.Debug(context.Background(), "Preview request", log.Fields{"line": strings.TrimSpace(string(p))})
	return len(p), nil
}
