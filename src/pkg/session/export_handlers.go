package session

import (
	"context"
	"fmt"
	"time"

	"sitecraft/local-app/src/pkg/codegen"
	"sitecraft/local-app/src/pkg/editor"
	"sitecraft/local-app/src/pkg/event"
	"sitecraft/local-app/src/pkg/export"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/preview"
)

// initExportCommandHandlers initializes export command handlers
func initExportCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"html":    handleExportHTML,
		"publish": handleExportPublish,
		"png":     handleExportPNG,
		"copy":    handleExportCopy,
		"code":    handleExportCode,
		"preview": handleExportPreview,
		"stop":    handleExportStop,
	}
}

// exporterGet creates the exporter on first use.
func (s *Session) exporterGet() (*export.Exporter, error) {
	if s.exporter == nil {
		x, err := export.NewExporter(s.config.ExportDir, s.logger)
		if err != nil {
			return nil, err
		}
		s.exporter = x
	}
	return s.exporter, nil
}

func exportName(s *Session, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return s.Page.Slug
}

func handleExportHTML(s *Session, cmd model.Command) (interface{}, error) {
	x, err := s.exporterGet()
	if err != nil {
		return nil, err
	}
	path, err := x.WriteHTML(exportName(s, cmd.Args), s.Generate())
	if err != nil {
		return nil, err
	}
	return "Wrote " + path, nil
}

func handleExportPublish(s *Session, cmd model.Command) (interface{}, error) {
	x, err := s.exporterGet()
	if err != nil {
		return nil, err
	}
	page := s.Page
	result, err := x.Publish(page.Slug, s.Generate(), page.PublishedHash)
	if err != nil {
		return nil, err
	}
	if result.Skipped {
		return fmt.Sprintf("%s is up to date", result.Path), nil
	}
	if err := s.DataManager.PageManager.PagePublished(page, result.Hash); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Published %s", result.Path), nil
}

func handleExportPNG(s *Session, cmd model.Command) (interface{}, error) {
	x, err := s.exporterGet()
	if err != nil {
		return nil, err
	}
	path, err := x.WritePNG(exportName(s, cmd.Args), s.Store.Elements())
	if err != nil {
		return nil, err
	}
	return "Wrote " + path, nil
}

func handleExportCopy(s *Session, cmd model.Command) (interface{}, error) {
	x, err := s.exporterGet()
	if err != nil {
		return nil, err
	}
	if err := x.CopyToClipboard(s.Generate()); err != nil {
		return nil, err
	}
	return "Copied page HTML to the clipboard", nil
}

func handleExportCode(s *Session, cmd model.Command) (interface{}, error) {
	return s.Generate(), nil
}

func handleExportPreview(s *Session, cmd model.Command) (interface{}, error) {
	port := s.config.PreviewPort
	if len(cmd.Args) > 0 {
		port = cmd.Args[0]
	}

	if s.preview == nil {
		server, err := preview.NewServer(s.Generate, s.lookupPage, s.logger)
		if err != nil {
			return nil, err
		}
		s.attachPreview(server)
	}
	if addr := s.preview.Addr(); addr != "" {
		return fmt.Sprintf("Preview already running at http://%s/", addr), nil
	}
	s.preview.Refresh()
	if err := s.preview.Start(port); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Preview running at http://%s/", s.preview.Addr()), nil
}

func handleExportStop(s *Session, cmd model.Command) (interface{}, error) {
	if s.preview == nil || s.preview.Addr() == "" {
		return "Preview is not running", nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.preview.Stop(ctx); err != nil {
		return nil, err
	}
	return "Preview stopped", nil
}

// handleElementsChanged refreshes the preview when this session's store changes.
type previewSubscription struct {
	eventType event.EventType
	id        event.Subscription
}

// attachPreview keeps server in sync with this session's page.
func (s *Session) attachPreview(server *preview.Server) {
	em := s.DataManager.EventManager
	s.preview = server
	s.previewSubs = []previewSubscription{
		{event.ElementsChanged, em.Subscribe(event.ElementsChanged, s.handleElementsChanged)},
		{event.PageSelected, em.Subscribe(event.PageSelected, s.handlePageSelected)},
	}
}

func (s *Session) detachPreview() {
	for _, sub := range s.previewSubs {
		s.DataManager.EventManager.Unsubscribe(sub.eventType, sub.id)
	}
	s.previewSubs = nil
}

func (s *Session) handlePageSelected(e event.Event) {
	sel, ok := e.Data.(PageSelection)
	if !ok || sel.SessionID != s.ID || s.preview == nil {
		return
	}
	s.preview.Refresh()
}

func (s *Session) handleElementsChanged(e event.Event) {
	change, ok := e.Data.(editor.Change)
	if !ok || change.Store != s.Store || s.preview == nil {
		return
	}
	s.preview.Refresh()
	s.logger.Debug(context.Background(), "Preview refreshed", log.Fields{"operation": change.Operation})
}

// lookupPage renders a stored page of any project by id or slug within the current project.
func (s *Session) lookupPage(ref string) (string, error) {
	page, err := s.DataManager.PageManager.PageGetByID(ref)
	if err != nil && s.Project != nil {
		page, err = s.DataManager.PageManager.PageFind(s.Project, ref)
	}
	if err != nil {
		return "", err
	}
	return codegen.Generate(page.Elements, s.generateOptions(page)), nil
}

// initSystemCommandHandlers initializes system command handlers
func initSystemCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"exit":   handleSystemExit,
		"quit":   handleSystemExit,
		"status": handleSystemStatus,
	}
}

func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	return nil, ErrExit
}

func handleSystemStatus(s *Session, cmd model.Command) (interface{}, error) {
	project, page := "none", "none"
	if s.Project != nil {
		project = s.Project.Name
	}
	if s.Page != nil {
		page = s.Page.Name
		if s.Dirty() {
			page += " (unsaved)"
		}
	}
	previewAddr := "stopped"
	if s.preview != nil && s.preview.Addr() != "" {
		previewAddr = "http://" + s.preview.Addr() + "/"
	}
	return fmt.Sprintf("Project: %s\nPage: %s\nElements: %d\n%s\nPreview: %s",
		project, page, s.Store.Len(), selectionSummary(s), previewAddr), nil
}
