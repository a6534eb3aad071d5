// Package data provides data management functionality for the Sitecraft application.
// This file contains operations related to page management.
package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/editor"
	"sitecraft/local-app/src/pkg/event"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/storage"
)

// PageOperations defines the interface for page-related operations
type PageOperations interface {
	PageAdd(project *model.Project, name, slug string) (*model.Page, error)
	PageList(project *model.Project) ([]*model.Page, error)
	PageFind(project *model.Project, ref string) (*model.Page, error)
	PageSave(page *model.Page, elements []model.Element) error
	PageRename(page *model.Page, name string) error
	PagePublished(page *model.Page, hash string) error
	PageDelete(page *model.Page) error
}

// PageManager handles all page-related operations.
type PageManager struct {
	pageStore    storage.PageStore
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewPageManager creates a new PageManager instance.
func NewPageManager(pageStore storage.PageStore, eventManager *event.EventManager, logger *log.Logger) (*PageManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	if pageStore == nil {
		logger.Error(context.Background(), "PageStore not initialized", nil)
		return nil, fmt.Errorf("pageStore not initialized")
	}
	if eventManager == nil {
		logger.Error(context.Background(), "EventManager not initialized", nil)
		return nil, fmt.Errorf("eventManager not initialized")
	}

	return &PageManager{
		pageStore:    pageStore,
		eventManager: eventManager,
		logger:       logger,
	}, nil
}

// PageAdd creates an empty page in project. An empty slug is derived from the name.
func (pm *PageManager) PageAdd(project *model.Project, name, slug string) (*model.Page, error) {
	ctx := context.Background()
	if slug == "" {
		slug = storage.Slugify(name)
	}
	pm.logger.Info(ctx, "Adding new page", log.Fields{"projectID": project.ID, "name": name, "slug": slug})

	existing, err := pm.pageStore.PageGet(model.PageInfo{ProjectID: project.ID, Slug: slug}, model.PageFilter{ProjectID: true, Slug: true})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing page: %w", err)
	}
	if len(existing) > 0 {
		pm.logger.Warn(ctx, "Page with the same slug already exists", log.Fields{"projectID": project.ID, "slug": slug})
		return nil, fmt.Errorf("page with slug '%s' already exists in this project", slug)
	}

	id, err := pm.pageStore.PageAdd(model.PageInfo{ProjectID: project.ID, Name: name, Slug: slug})
	if err != nil {
		pm.logger.Error(ctx, "Failed to add page", log.Fields{"error": err, "name": name})
		return nil, fmt.Errorf("failed to add page: %w", err)
	}

	pages, err := pm.pageStore.PageGet(model.PageInfo{ID: id}, model.PageFilter{ID: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get the new page: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("could not find the new page")
	}
	page := pages[0]

	pm.eventManager.Publish(event.Event{Type: event.PageAdded, Data: page})
	pm.logger.Info(ctx, "Page added successfully", log.Fields{"pageID": id, "name": page.Name})
	return page, nil
}

// PageList returns the pages of a project in creation order.
func (pm *PageManager) PageList(project *model.Project) ([]*model.Page, error) {
	pages, err := pm.pageStore.PageGet(model.PageInfo{ProjectID: project.ID}, model.PageFilter{ProjectID: true})
	if err != nil {
		pm.logger.Error(context.Background(), "Failed to list pages", log.Fields{"error": err, "projectID": project.ID})
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// PageGetByID looks up a page by id in any project.
func (pm *PageManager) PageGetByID(id string) (*model.Page, error) {
	pages, err := pm.pageStore.PageGet(model.PageInfo{ID: id}, model.PageFilter{ID: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("page '%s': %w", id, storage.ErrNotFound)
	}
	return pages[0], nil
}

// PageFind resolves a page of project by id, name or slug, in that order.
func (pm *PageManager) PageFind(project *model.Project, ref string) (*model.Page, error) {
	pages, err := pm.PageList(project)
	if err != nil {
		return nil, err
	}
	for _, match := range []func(*model.Page) bool{
		func(p *model.Page) bool { return p.ID == ref },
		func(p *model.Page) bool { return p.Name == ref },
		func(p *model.Page) bool { return p.Slug == ref },
	} {
		for _, page := range pages {
			if match(page) {
				return page, nil
			}
		}
	}
	return nil, fmt.Errorf("page '%s': %w", ref, storage.ErrNotFound)
}

// PageSave writes an element collection to a page after checking its structure.
func (pm *PageManager) PageSave(page *model.Page, elements []model.Element) error {
	ctx := context.Background()
	if problems := editor.CheckInvariants(elements); len(problems) > 0 {
		pm.logger.Warn(ctx, "Refusing to save inconsistent page", log.Fields{"pageID": page.ID, "problems": len(problems)})
		return fmt.Errorf("page %s is inconsistent: %w", page.Name, errors.Join(problems...))
	}

	info := model.PageInfo{Elements: editor.CloneElements(elements)}
	if err := pm.pageStore.PageUpdate(page, info, model.PageFilter{Elements: true}); err != nil {
		pm.logger.Error(ctx, "Failed to save page", log.Fields{"error": err, "pageID": page.ID})
		return fmt.Errorf("failed to save page: %w", err)
	}

	pm.eventManager.Publish(event.Event{Type: event.PageSaved, Data: page})
	pm.logger.Info(ctx, "Page saved", log.Fields{"pageID": page.ID, "elements": len(elements)})
	return nil
}

// PageRename changes a page's name and slug.
func (pm *PageManager) PageRename(page *model.Page, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("page name is required")
	}
	info := model.PageInfo{Name: name, Slug: storage.Slugify(name)}
	if err := pm.pageStore.PageUpdate(page, info, model.PageFilter{Name: true, Slug: true}); err != nil {
		return fmt.Errorf("failed to rename page: %w", err)
	}
	return nil
}

// PagePublished records the fingerprint of the page's last published output.
func (pm *PageManager) PagePublished(page *model.Page, hash string) error {
	if err := pm.pageStore.PageUpdate(page, model.PageInfo{PublishedHash: hash}, model.PageFilter{PublishedHash: true}); err != nil {
		return fmt.Errorf("failed to record published hash: %w", err)
	}
	pm.eventManager.Publish(event.Event{Type: event.PagePublished, Data: page})
	return nil
}

// PageDelete removes a page.
func (pm *PageManager) PageDelete(page *model.Page) error {
	ctx := context.Background()
	if err := pm.pageStore.PageDelete(page); err != nil {
		pm.logger.Error(ctx, "Failed to delete page", log.Fields{"error": err, "pageID": page.ID})
		return fmt.Errorf("failed to delete page: %w", err)
	}
	pm.eventManager.Publish(event.Event{Type: event.PageDeleted, Data: page})
	pm.logger.Info(ctx, "Page deleted successfully", log.Fields{"pageID": page.ID})
	return nil
}
