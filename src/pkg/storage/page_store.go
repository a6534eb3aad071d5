package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

// PageStore defines the interface for page-related storage operations.
type PageStore interface {
	PageAdd(info model.PageInfo) (string, error)
	PageGet(info model.PageInfo, filter model.PageFilter) ([]*model.Page, error)
	PageUpdate(page *model.Page, info model.PageInfo, filter model.PageFilter) error
	PageDelete(page *model.Page) error
}

// PageStorage implements the PageStore interface.
type PageStorage struct {
	storage *Storage
	logger  *log.Logger
}

// NewPageStorage creates a new PageStorage instance.
func NewPageStorage(storage *Storage) *PageStorage {
	return &PageStorage{
		storage: storage,
		logger:  storage.logger,
	}
}

// PageAdd adds a new page to a project and returns its id.
func (s *PageStorage) PageAdd(info model.PageInfo) (string, error) {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		return "", fmt.Errorf("page name is required")
	}
	slug := info.Slug
	if slug == "" {
		slug = Slugify(name)
	}
	s.logger.Info(context.Background(), "Adding new page", log.Fields{"projectID": info.ProjectID, "name": name, "slug": slug})

	existing, err := s.PageGet(model.PageInfo{ProjectID: info.ProjectID, Name: name}, model.PageFilter{ProjectID: true, Name: true})
	if err != nil {
		return "", fmt.Errorf("failed to check for existing page: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Warn(context.Background(), "Page with the same name already exists", log.Fields{"projectID": info.ProjectID, "name": name})
		return "", fmt.Errorf("page with name '%s' already exists in this project", name)
	}

	elements, err := encodeElements(info.Elements)
	if err != nil {
		return "", err
	}

	id := info.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	if _, err := s.storage.GetDatabase().Exec(
		"INSERT INTO pages (id, project_id, name, slug, elements, published_hash, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, info.ProjectID, name, slug, elements, info.PublishedHash, now, now,
	); err != nil {
		s.logger.Error(context.Background(), "Failed to add page", log.Fields{"error": err, "projectID": info.ProjectID, "name": name})
		return "", fmt.Errorf("failed to add page: %w", err)
	}

	s.logger.Info(context.Background(), "Page added successfully", log.Fields{"pageID": id, "name": name})
	return id, nil
}

// PageGet retrieves pages matching the fields selected by filter, ordered by creation time.
func (s *PageStorage) PageGet(info model.PageInfo, filter model.PageFilter) ([]*model.Page, error) {
	query := "SELECT id, project_id, name, slug, elements, published_hash, created, updated FROM pages WHERE 1=1"
	var args []interface{}
	if filter.ID {
		query += " AND id = ?"
		args = append(args, info.ID)
	}
	if filter.ProjectID {
		query += " AND project_id = ?"
		args = append(args, info.ProjectID)
	}
	if filter.Name {
		query += " AND name = ?"
		args = append(args, info.Name)
	}
	if filter.Slug {
		query += " AND slug = ?"
		args = append(args, info.Slug)
	}
	if filter.PublishedHash {
		query += " AND published_hash = ?"
		args = append(args, info.PublishedHash)
	}
	query += " ORDER BY created, name"

	rows, err := s.storage.GetDatabase().Query(query, args...)
	if err != nil {
		s.logger.Error(context.Background(), "Failed to query pages", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []*model.Page
	for rows.Next() {
		var p model.Page
		var elements string
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Name, &p.Slug, &elements, &p.PublishedHash, &p.Created, &p.Updated); err != nil {
			s.logger.Error(context.Background(), "Failed to scan page row", log.Fields{"error": err})
			return nil, fmt.Errorf("failed to scan page row: %w", err)
		}
		if p.Elements, err = decodeElements(elements); err != nil {
			return nil, fmt.Errorf("page %s: %w", p.ID, err)
		}
		pages = append(pages, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page rows: %w", err)
	}
	return pages, nil
}

// PageUpdate writes the fields selected by filter from info onto the stored page.
func (s *PageStorage) PageUpdate(page *model.Page, info model.PageInfo, filter model.PageFilter) error {
	s.logger.Info(context.Background(), "Updating page", log.Fields{"pageID": page.ID, "filter": filter})

	now := time.Now().UTC()
	query := "UPDATE pages SET updated = ?"
	args := []interface{}{now}
	if filter.Name {
		query += ", name = ?"
		args = append(args, strings.TrimSpace(info.Name))
	}
	if filter.Slug {
		query += ", slug = ?"
		args = append(args, info.Slug)
	}
	if filter.Elements {
		elements, err := encodeElements(info.Elements)
		if err != nil {
			return err
		}
		query += ", elements = ?"
		args = append(args, elements)
	}
	if filter.PublishedHash {
		query += ", published_hash = ?"
		args = append(args, info.PublishedHash)
	}
	query += " WHERE id = ?"
	args = append(args, page.ID)

	result, err := s.storage.GetDatabase().Exec(query, args...)
	if err != nil {
		s.logger.Error(context.Background(), "Error updating page", log.Fields{"error": err, "pageID": page.ID})
		return fmt.Errorf("failed to update page: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("page %s: %w", page.ID, ErrNotFound)
	}

	if filter.Name {
		page.Name = strings.TrimSpace(info.Name)
	}
	if filter.Slug {
		page.Slug = info.Slug
	}
	if filter.Elements {
		page.Elements = info.Elements
	}
	if filter.PublishedHash {
		page.PublishedHash = info.PublishedHash
	}
	page.Updated = now
	return nil
}

// PageDelete removes a page.
func (s *PageStorage) PageDelete(page *model.Page) error {
	s.logger.Info(context.Background(), "Deleting page", log.Fields{"pageID": page.ID})
	result, err := s.storage.GetDatabase().Exec("DELETE FROM pages WHERE id = ?", page.ID)
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("page %s: %w", page.ID, ErrNotFound)
	}
	return nil
}

// Slugify lower-cases name and joins its alphanumeric runs with hyphens.
func Slugify(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "page"
	}
	return b.String()
}

func encodeElements(elements []model.Element) (string, error) {
	if elements == nil {
		elements = []model.Element{}
	}
	data, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("failed to encode elements: %w", err)
	}
	return string(data), nil
}

func decodeElements(data string) ([]model.Element, error) {
	elements := []model.Element{}
	if data == "" {
		return elements, nil
	}
	if err := json.Unmarshal([]byte(data), &elements); err != nil {
		return nil, fmt.Errorf("failed to decode elements: %w", err)
	}
	return elements, nil
}
