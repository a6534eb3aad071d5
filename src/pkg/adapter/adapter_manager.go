package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/session"
)

// AdapterInstance represents one front end bound to one session
type AdapterInstance interface {
	// CommandProcess parses a line of input and runs it in the bound session
	CommandProcess(input string) (interface{}, error)

	// AdapterStart starts the adapter instance
	AdapterStart() error

	// AdapterStop terminates the adapter instance
	AdapterStop() error

	// PromptGet returns the prompt describing the session state
	PromptGet() string

	// GetType returns the type of the adapter
	GetType() string
}

// AdapterFactory creates an adapter instance bound to sessionID
type AdapterFactory func(sessionID string, sm *session.SessionManager, logger *log.Logger) (AdapterInstance, error)

// AdapterManager creates adapter instances and the sessions behind them
type AdapterManager struct {
	factories      map[string]AdapterFactory
	instances      sync.Map // map[string]AdapterInstance
	sessionManager *session.SessionManager
	logger         *log.Logger
}

// NewAdapterManager creates a new AdapterManager with the CLI adapter registered
func NewAdapterManager(sm *session.SessionManager, logger *log.Logger) (*AdapterManager, error) {
	if sm == nil {
		return nil, errors.New("session manager is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	am := &AdapterManager{
		factories:      make(map[string]AdapterFactory),
		sessionManager: sm,
		logger:         logger,
	}
	am.AdapterRegister(CLIAdapterType, func(sessionID string, sm *session.SessionManager, logger *log.Logger) (AdapterInstance, error) {
		return NewCLIAdapter(sessionID, sm, logger)
	})
	return am, nil
}

// AdapterRegister adds or replaces the factory for adapterType
func (am *AdapterManager) AdapterRegister(adapterType string, factory AdapterFactory) {
	am.factories[adapterType] = factory
}

// AdapterAdd creates a session and a started adapter instance bound to it
func (am *AdapterManager) AdapterAdd(adapterType string) (AdapterInstance, string, error) {
	ctx := context.Background()
	factory, ok := am.factories[adapterType]
	if !ok {
		return nil, "", fmt.Errorf("unknown adapter type: %s", adapterType)
	}

	sessionID, err := am.sessionManager.SessionAdd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to add session: %w", err)
	}

	instance, err := factory(sessionID, am.sessionManager, am.logger)
	if err != nil {
		am.sessionManager.SessionDelete(sessionID)
		return nil, "", err
	}
	if err := instance.AdapterStart(); err != nil {
		am.sessionManager.SessionDelete(sessionID)
		return nil, "", fmt.Errorf("failed to start %s adapter: %w", adapterType, err)
	}

	am.instances.Store(sessionID, instance)
	am.logger.Info(ctx, "Adapter instance added", log.Fields{"type": adapterType, "sessionID": sessionID})
	return instance, sessionID, nil
}

// AdapterRemove stops the instance bound to sessionID and deletes its session
func (am *AdapterManager) AdapterRemove(sessionID string) {
	value, ok := am.instances.LoadAndDelete(sessionID)
	if !ok {
		return
	}
	if err := value.(AdapterInstance).AdapterStop(); err != nil {
		am.logger.Warn(context.Background(), "Failed to stop adapter", log.Fields{"sessionID": sessionID, "error": err})
	}
	am.sessionManager.SessionDelete(sessionID)
}

// Shutdown stops all adapter instances and deletes their sessions
func (am *AdapterManager) Shutdown() {
	am.instances.Range(func(key, value interface{}) bool {
		am.AdapterRemove(key.(string))
		return true
	})
}
