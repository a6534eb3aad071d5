package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

// ProjectStore defines the interface for project-related storage operations.
type ProjectStore interface {
	ProjectAdd(info model.ProjectInfo) (string, error)
	ProjectGet(info model.ProjectInfo, filter model.ProjectFilter) ([]*model.Project, error)
	ProjectRename(id, name string) error
	ProjectDelete(id string) error
}

// ProjectStorage implements the ProjectStore interface.
type ProjectStorage struct {
	storage *Storage
	logger  *log.Logger
}

// NewProjectStorage creates a new ProjectStorage instance.
func NewProjectStorage(storage *Storage) *ProjectStorage {
	return &ProjectStorage{
		storage: storage,
		logger:  storage.logger,
	}
}

// ProjectAdd adds a new project and returns its id.
func (s *ProjectStorage) ProjectAdd(info model.ProjectInfo) (string, error) {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		return "", fmt.Errorf("project name is required")
	}
	s.logger.Info(context.Background(), "Adding new project", log.Fields{"name": name})

	existing, err := s.ProjectGet(model.ProjectInfo{Name: name}, model.ProjectFilter{Name: true})
	if err != nil {
		return "", fmt.Errorf("failed to check for existing project: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Warn(context.Background(), "Project with the same name already exists", log.Fields{"name": name})
		return "", fmt.Errorf("project with name '%s' already exists", name)
	}

	id := info.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	if _, err := s.storage.GetDatabase().Exec(
		"INSERT INTO projects (id, name, created, updated) VALUES (?, ?, ?, ?)",
		id, name, now, now,
	); err != nil {
		s.logger.Error(context.Background(), "Failed to add project", log.Fields{"error": err, "name": name})
		return "", fmt.Errorf("failed to add project: %w", err)
	}

	s.logger.Info(context.Background(), "Project added successfully", log.Fields{"projectID": id, "name": name})
	return id, nil
}

// ProjectGet retrieves projects matching the fields selected by filter, ordered by name.
func (s *ProjectStorage) ProjectGet(info model.ProjectInfo, filter model.ProjectFilter) ([]*model.Project, error) {
	query := "SELECT id, name, created, updated FROM projects WHERE 1=1"
	var args []interface{}
	if filter.ID {
		query += " AND id = ?"
		args = append(args, info.ID)
	}
	if filter.Name {
		query += " AND name = ?"
		args = append(args, info.Name)
	}
	query += " ORDER BY name"

	rows, err := s.storage.GetDatabase().Query(query, args...)
	if err != nil {
		s.logger.Error(context.Background(), "Failed to query projects", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Created, &p.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// ProjectRename changes the name of a project.
func (s *ProjectStorage) ProjectRename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	result, err := s.storage.GetDatabase().Exec(
		"UPDATE projects SET name = ?, updated = ? WHERE id = ?",
		name, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

// ProjectDelete removes a project. Its pages are removed by the foreign key cascade.
func (s *ProjectStorage) ProjectDelete(id string) error {
	s.logger.Info(context.Background(), "Deleting project", log.Fields{"projectID": id})
	return s.storage.withTx(func(db Database) error {
		if _, err := db.Exec("DELETE FROM pages WHERE project_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete project pages: %w", err)
		}
		result, err := db.Exec("DELETE FROM projects WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
