package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"sitecraft/local-app/src/pkg/model"
)

// DocumentVersion is the current ProjectDocument format version.
const DocumentVersion = 1

// FileExport writes a project document to a file in the specified format (json or yaml).
func FileExport(doc *model.ProjectDocument, filename string, format string) error {
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}

	// Marshal the document to the specified format
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case "yaml", "yml":
		data, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport reads a project document from a file in the specified format (json or yaml).
func FileImport(filename string, format string) (*model.ProjectDocument, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc model.ProjectDocument
	switch format {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	return &doc, nil
}

// ElementsImport reads a bare element collection, as used for page templates.
func ElementsImport(filename string, format string) ([]model.Element, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var elements []model.Element
	switch format {
	case "json":
		err = json.Unmarshal(data, &elements)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &elements)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal elements: %w", err)
	}
	return elements, nil
}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(filename string) string {
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
