// Package data provides data management functionality for the Sitecraft application.
// This file contains operations related to project management.
package data

import (
	"context"
	"errors"
	"fmt"

	"sitecraft/local-app/src/pkg/event"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/storage"
)

// ProjectOperations defines the interface for project-related operations
type ProjectOperations interface {
	ProjectAdd(name string) (*model.Project, error)
	ProjectGet(info model.ProjectInfo, filter model.ProjectFilter) ([]*model.Project, error)
	ProjectFind(ref string) (*model.Project, error)
	ProjectRename(project *model.Project, name string) error
	ProjectDelete(project *model.Project) error
}

// ProjectManager handles all project-related operations.
type ProjectManager struct {
	projectStore storage.ProjectStore
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewProjectManager creates a new ProjectManager instance.
func NewProjectManager(projectStore storage.ProjectStore, eventManager *event.EventManager, logger *log.Logger) (*ProjectManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new ProjectManager", nil)

	if projectStore == nil {
		logger.Error(ctx, "ProjectStore not initialized", nil)
		return nil, fmt.Errorf("projectStore not initialized")
	}
	if eventManager == nil {
		logger.Error(ctx, "EventManager not initialized", nil)
		return nil, fmt.Errorf("eventManager not initialized")
	}

	return &ProjectManager{
		projectStore: projectStore,
		eventManager: eventManager,
		logger:       logger,
	}, nil
}

// ProjectAdd creates a new project with the given name.
func (pm *ProjectManager) ProjectAdd(name string) (*model.Project, error) {
	ctx := context.Background()
	pm.logger.Info(ctx, "Adding new project", log.Fields{"name": name})

	id, err := pm.projectStore.ProjectAdd(model.ProjectInfo{Name: name})
	if err != nil {
		pm.logger.Error(ctx, "Failed to add project", log.Fields{"error": err, "name": name})
		return nil, fmt.Errorf("failed to add project: %w", err)
	}

	projects, err := pm.projectStore.ProjectGet(model.ProjectInfo{ID: id}, model.ProjectFilter{ID: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get the new project: %w", err)
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("could not find the new project")
	}
	project := projects[0]

	pm.eventManager.Publish(event.Event{Type: event.ProjectAdded, Data: project})
	pm.logger.Info(ctx, "Project added successfully", log.Fields{"projectID": id, "name": project.Name})
	return project, nil
}

// ProjectGet retrieves projects based on the provided info and filter.
func (pm *ProjectManager) ProjectGet(info model.ProjectInfo, filter model.ProjectFilter) ([]*model.Project, error) {
	projects, err := pm.projectStore.ProjectGet(info, filter)
	if err != nil {
		pm.logger.Error(context.Background(), "Failed to get projects", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return projects, nil
}

// ProjectFind resolves a project by id, falling back to its name.
func (pm *ProjectManager) ProjectFind(ref string) (*model.Project, error) {
	projects, err := pm.ProjectGet(model.ProjectInfo{ID: ref}, model.ProjectFilter{ID: true})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		if projects, err = pm.ProjectGet(model.ProjectInfo{Name: ref}, model.ProjectFilter{Name: true}); err != nil {
			return nil, err
		}
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("project '%s': %w", ref, storage.ErrNotFound)
	}
	return projects[0], nil
}

// ProjectRename changes a project's name.
func (pm *ProjectManager) ProjectRename(project *model.Project, name string) error {
	ctx := context.Background()
	pm.logger.Info(ctx, "Renaming project", log.Fields{"projectID": project.ID, "name": name})

	if existing, err := pm.ProjectGet(model.ProjectInfo{Name: name}, model.ProjectFilter{Name: true}); err != nil {
		return err
	} else if len(existing) > 0 && existing[0].ID != project.ID {
		return fmt.Errorf("project with name '%s' already exists", name)
	}

	if err := pm.projectStore.ProjectRename(project.ID, name); err != nil {
		pm.logger.Error(ctx, "Failed to rename project", log.Fields{"error": err, "projectID": project.ID})
		return fmt.Errorf("failed to rename project: %w", err)
	}
	project.Name = name
	return nil
}

// ProjectDelete removes a project and all its pages.
func (pm *ProjectManager) ProjectDelete(project *model.Project) error {
	ctx := context.Background()
	pm.logger.Info(ctx, "Deleting project", log.Fields{"projectID": project.ID})

	if err := pm.projectStore.ProjectDelete(project.ID); err != nil {
		pm.logger.Error(ctx, "Failed to delete project", log.Fields{"error": err, "projectID": project.ID})
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	pm.eventManager.Publish(event.Event{Type: event.ProjectDeleted, Data: project})
	pm.logger.Info(ctx, "Project deleted successfully", log.Fields{"projectID": project.ID})
	return nil
}
