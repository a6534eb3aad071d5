package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"sitecraft/local-app/src/pkg/data"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager manages editing sessions and serializes their commands
type SessionManager struct {
	sessions      map[string]*Session
	mu            sync.RWMutex
	dataManager   *data.DataManager
	cleanupTicker *time.Ticker
	done          chan struct{}
	stopOnce      sync.Once
	commandQueue  chan commandExecution
	logger        *log.Logger
}

// commandExecution represents a command to be executed in a session and its outcome
type commandExecution struct {
	session *Session
	command model.Command
	reply   chan commandResult
}

type commandResult struct {
	value interface{}
	err   error
}

// NewSessionManager starts the command executor and the cleanup routine
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) (*SessionManager, error) {
	if dataManager == nil {
		return nil, errors.New("data manager is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		dataManager:  dataManager,
		done:         make(chan struct{}),
		commandQueue: make(chan commandExecution),
		logger:       logger,
	}
	sm.startCleanupRoutine()
	go sm.commandExecutor()

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm, nil
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()
	sessionID := uuid.NewString()

	s, err := NewSession(sessionID, sm.dataManager, sm.logger)
	if err != nil {
		sm.logger.Error(ctx, "Failed to create session", log.Fields{"error": err})
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	sm.mu.Lock()
	sm.sessions[sessionID] = s
	sm.mu.Unlock()

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	sm.mu.RLock()
	s, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !exists {
		sm.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": sessionID})
	}
	return s, exists
}

// SessionDelete closes and removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()
	sm.mu.Lock()
	s, exists := sm.sessions[sessionID]
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()

	if !exists {
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}
	s.Close()
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionRun executes a command for a specific session on the executor goroutine
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s, exists := sm.SessionGet(sessionID)
	if !exists {
		return nil, ErrSessionNotFound
	}

	sm.logger.Command(ctx, cmd.String())

	reply := make(chan commandResult, 1)
	select {
	case sm.commandQueue <- commandExecution{session: s, command: cmd, reply: reply}:
	case <-sm.done:
		return nil, errors.New("session manager is closed")
	}
	r := <-reply
	return r.value, r.err
}

// commandExecutor processes commands from the queue one at a time
func (sm *SessionManager) commandExecutor() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting command executor", nil)

	for {
		select {
		case exec := <-sm.commandQueue:
			value, err := exec.session.CommandRun(exec.command)
			exec.reply <- commandResult{value: value, err: err}
		case <-sm.done:
			sm.logger.Info(ctx, "Stopping command executor", nil)
			return
		}
	}
}

// startCleanupRoutine starts a goroutine that periodically removes inactive sessions
func (sm *SessionManager) startCleanupRoutine() {
	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupInactiveSessions(time.Now())
			case <-sm.done:
				sm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// cleanupInactiveSessions removes sessions idle for longer than the session timeout
func (sm *SessionManager) cleanupInactiveSessions(now time.Time) {
	sm.mu.RLock()
	var stale []string
	for id, s := range sm.sessions {
		if now.Sub(s.LastActivity) > defaultSessionTimeout {
			stale = append(stale, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range stale {
		sm.logger.Info(context.Background(), "Removing inactive session", log.Fields{"sessionID": id})
		sm.SessionDelete(id)
	}
}

// Close stops the background routines and closes every session
func (sm *SessionManager) Close() {
	sm.stopOnce.Do(func() {
		close(sm.done)

		sm.mu.Lock()
		sessions := sm.sessions
		sm.sessions = make(map[string]*Session)
		sm.mu.Unlock()

		for _, s := range sessions {
			s.Close()
		}
		sm.logger.Info(context.Background(), "SessionManager closed", nil)
	})
}
