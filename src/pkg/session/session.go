package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sitecraft/local-app/src/pkg/codegen"
	"sitecraft/local-app/src/pkg/data"
	"sitecraft/local-app/src/pkg/editor"
	"sitecraft/local-app/src/pkg/event"
	"sitecraft/local-app/src/pkg/export"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/preview"
)

var (
	// ErrNoProject is returned by commands that need a selected project.
	ErrNoProject = errors.New("no project selected")
	// ErrNoPage is returned by commands that need an open page.
	ErrNoPage = errors.New("no page selected")
	// ErrExit is returned by the system exit command.
	ErrExit = errors.New("exit requested")
)

// pageScopes need an open page.
var pageScopes = map[string]bool{
	"element": true,
	"select":  true,
	"arrange": true,
	"edit":    true,
	"anim":    true,
	"action":  true,
	"export":  true,
}

// PageSelection is the payload of event.PageSelected.
type PageSelection struct {
	SessionID string
	Page      *model.Page
}

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual editing session. It owns one element store that
// holds the open page.
type Session struct {
	ID              string
	DataManager     *data.DataManager
	Project         *model.Project
	Page            *model.Page
	Store           *editor.ElementStore
	LastActivity    time.Time
	config          *model.Config
	exporter        *export.Exporter
	preview         *preview.Server
	previewSubs     []previewSubscription
	mu              sync.RWMutex
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) (*Session, error) {
	if dataManager == nil {
		return nil, errors.New("data manager is nil")
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	cfg := dataManager.Config
	store, err := editor.NewElementStore(dataManager.EventManager, logger, editor.Options{
		GridSize:     cfg.GridSize,
		SnapToGrid:   cfg.SnapToGrid,
		HistoryLimit: cfg.HistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create element store: %w", err)
	}

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		Store:        store,
		LastActivity: time.Now(),
		config:       cfg,
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s, nil
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"project": initProjectCommandHandlers(),
		"page":    initPageCommandHandlers(),
		"element": initElementCommandHandlers(),
		"select":  initSelectCommandHandlers(),
		"arrange": initArrangeCommandHandlers(),
		"edit":    initEditCommandHandlers(),
		"anim":    initAnimCommandHandlers(),
		"action":  initActionCommandHandlers(),
		"export":  initExportCommandHandlers(),
		"system":  initSystemCommandHandlers(),
	}
}

// CommandRun validates and executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Running command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})
	s.LastActivity = time.Now()

	sc := NewSessionCommand(cmd, s.logger)
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	if pageScopes[cmd.Scope] && s.Page == nil {
		return nil, ErrNoPage
	}

	handler, ok := s.commandHandlers[cmd.Scope][cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "No handler for command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})
		return nil, fmt.Errorf("invalid %s operation: %s", cmd.Scope, cmd.Operation)
	}

	result, err := handler(s, cmd)
	if err != nil && !errors.Is(err, ErrExit) {
		s.logger.Warn(ctx, "Command execution failed", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "error": err})
	}
	return result, err
}

// ProjectGet returns the selected project
func (s *Session) ProjectGet() (*model.Project, error) {
	if s.Project == nil {
		return nil, ErrNoProject
	}
	return s.Project, nil
}

// PageGet returns the open page
func (s *Session) PageGet() (*model.Page, error) {
	if s.Page == nil {
		return nil, ErrNoPage
	}
	return s.Page, nil
}

// ProjectSet selects a project and closes any open page
func (s *Session) ProjectSet(project *model.Project) {
	if project != nil {
		s.logger.Info(context.Background(), "Setting current project", log.Fields{"projectID": project.ID})
	}
	s.Project = project
	s.PageSet(nil)
}

// PageSet opens a page in the element store, or empties the store when page is nil
func (s *Session) PageSet(page *model.Page) {
	s.mu.Lock()
	s.Page = page
	s.mu.Unlock()

	if page == nil {
		s.Store.Reset(nil)
		return
	}
	s.logger.Info(context.Background(), "Opening page", log.Fields{"pageID": page.ID, "elements": len(page.Elements)})
	s.Store.Reset(page.Elements)
	s.DataManager.EventManager.Publish(event.Event{Type: event.PageSelected, Data: PageSelection{SessionID: s.ID, Page: page}})
}

// Dirty reports whether the live collection differs from the saved page.
func (s *Session) Dirty() bool {
	if s.Page == nil {
		return false
	}
	elements := s.Store.Elements()
	if len(elements) == 0 && len(s.Page.Elements) == 0 {
		return false
	}
	return !equalElements(elements, s.Page.Elements)
}

// generateOptions returns the code generator options for page
func (s *Session) generateOptions(page *model.Page) codegen.Options {
	opts := codegen.DefaultOptions()
	if page != nil {
		opts.Title = page.Name + s.config.PageTitleSuffix
	}
	opts.IncludeBaseStyles = s.config.BaseStyles()
	return opts
}

// Generate renders the live collection of the open page as an HTML document
func (s *Session) Generate() string {
	s.mu.RLock()
	page := s.Page
	s.mu.RUnlock()
	return codegen.Generate(s.Store.Elements(), s.generateOptions(page))
}

// Close stops session resources
func (s *Session) Close() {
	s.detachPreview()
	if s.preview != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.preview.Stop(ctx); err != nil {
			s.logger.Warn(context.Background(), "Failed to stop preview", log.Fields{"error": err})
		}
	}
}

// Info returns a snapshot of the session state
func (s *Session) Info() model.SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.SessionInfo{
		ID:           s.ID,
		Project:      s.Project,
		Page:         s.Page,
		LastActivity: s.LastActivity,
	}
}
