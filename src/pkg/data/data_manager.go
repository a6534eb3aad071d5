// Package data provides data management functionality for the Sitecraft application.
// It coordinates operations between project and page managers.
package data

import (
	"context"
	"errors"
	"fmt"

	"sitecraft/local-app/src/pkg/editor"
	"sitecraft/local-app/src/pkg/event"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/storage"
)

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	ProjectManager *ProjectManager
	PageManager    *PageManager
	EventManager   *event.EventManager
	Config         *model.Config
	Logger         *log.Logger
}

// NewDataManager creates a new DataManager instance
func NewDataManager(projectStore storage.ProjectStore, pageStore storage.PageStore, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
	}

	var err error
	m.ProjectManager, err = NewProjectManager(projectStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create ProjectManager: %w", err)
	}

	m.PageManager, err = NewPageManager(pageStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create PageManager: %w", err)
	}

	// Storage cascades page rows; this keeps the info log readable
	eventManager.Subscribe(event.ProjectDeleted, m.handleProjectDeleted)

	return m, nil
}

func (m *DataManager) handleProjectDeleted(e event.Event) {
	if project, ok := e.Data.(*model.Project); ok {
		m.Logger.Info(context.Background(), "Project pages removed", log.Fields{"projectID": project.ID})
	}
}

// ProjectExport writes a project and all its pages to a file in the specified format.
func (m *DataManager) ProjectExport(project *model.Project, filename, format string) error {
	pages, err := m.PageManager.PageList(project)
	if err != nil {
		return err
	}
	doc := &model.ProjectDocument{Version: storage.DocumentVersion, Project: *project}
	for _, page := range pages {
		doc.Pages = append(doc.Pages, *page)
	}
	if err := storage.FileExport(doc, filename, format); err != nil {
		return fmt.Errorf("failed to export project: %w", err)
	}
	m.Logger.Info(context.Background(), "Project exported", log.Fields{"projectID": project.ID, "file": filename, "pages": len(pages)})
	return nil
}

// ProjectImport reads a project document and stores it as a project, replacing any project of the same name.
func (m *DataManager) ProjectImport(filename, format string) (*model.Project, error) {
	ctx := context.Background()
	doc, err := storage.FileImport(filename, format)
	if err != nil {
		return nil, fmt.Errorf("failed to import project: %w", err)
	}

	if err := validateDocument(doc); err != nil {
		m.Logger.Warn(ctx, "Rejected project document", log.Fields{"file": filename, "error": err})
		return nil, fmt.Errorf("invalid project document: %w", err)
	}

	existing, err := m.ProjectManager.ProjectGet(model.ProjectInfo{Name: doc.Project.Name}, model.ProjectFilter{Name: true})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing project: %w", err)
	}
	if len(existing) > 0 {
		if err := m.ProjectManager.ProjectDelete(existing[0]); err != nil {
			return nil, fmt.Errorf("failed to delete existing project: %w", err)
		}
	}

	project, err := m.ProjectManager.ProjectAdd(doc.Project.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to add imported project: %w", err)
	}

	for _, p := range doc.Pages {
		page, err := m.PageManager.PageAdd(project, p.Name, p.Slug)
		if err == nil {
			err = m.PageManager.PageSave(page, p.Elements)
		}
		if err != nil {
			// Rollback: delete the newly added project
			_ = m.ProjectManager.ProjectDelete(project)
			return nil, fmt.Errorf("failed to add page '%s': %w", p.Name, err)
		}
	}

	m.Logger.Info(ctx, "Project imported", log.Fields{"projectID": project.ID, "file": filename, "pages": len(doc.Pages)})
	return project, nil
}

// validateDocument checks the imported document for structural consistency.
func validateDocument(doc *model.ProjectDocument) error {
	if doc.Project.Name == "" {
		return errors.New("project name is missing")
	}
	slugs := make(map[string]bool)
	for _, page := range doc.Pages {
		slug := page.Slug
		if slug == "" {
			slug = storage.Slugify(page.Name)
		}
		if page.Name == "" {
			return errors.New("page name is missing")
		}
		if slugs[slug] {
			return fmt.Errorf("duplicate page slug: %s", slug)
		}
		slugs[slug] = true
		if problems := editor.CheckInvariants(page.Elements); len(problems) > 0 {
			return fmt.Errorf("page '%s': %w", page.Name, errors.Join(problems...))
		}
	}
	return nil
}
