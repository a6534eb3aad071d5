// Package export writes generated pages to disk, fingerprints published output,
// renders wireframe previews and copies documents to the system clipboard.
package export

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/crypto/blake2b"

	"sitecraft/local-app/src/pkg/log"
)

// Exporter writes export artefacts below one directory.
type Exporter struct {
	dir      string
	logger   *log.Logger
	copyText func(string) error
}

// PublishResult describes the outcome of Publish.
type PublishResult struct {
	Path    string
	Hash    string
	Skipped bool
}

// NewExporter creates an Exporter rooted at dir, creating it when missing.
func NewExporter(dir string, logger *log.Logger) (*Exporter, error) {
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	if dir == "" {
		return nil, errors.New("export directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	copyText := clipboard.WriteAll
	if clipboard.Unsupported {
		copyText = func(string) error { return errors.New("system clipboard is not available") }
	}

	logger.Info(context.Background(), "Exporter created", log.Fields{"dir": dir})
	return &Exporter{dir: dir, logger: logger, copyText: copyText}, nil
}

// Dir returns the export directory.
func (x *Exporter) Dir() string { return x.dir }

// path resolves name inside the export directory and forces the extension.
func (x *Exporter) path(name, ext string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	if filepath.Ext(base) != ext {
		base += ext
	}
	return filepath.Join(x.dir, base), nil
}

// WriteHTML writes doc to name.html in the export directory and returns the path.
func (x *Exporter) WriteHTML(name, doc string) (string, error) {
	path, err := x.path(name, ".html")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	x.logger.Info(context.Background(), "HTML exported", log.Fields{"path": path, "bytes": len(doc)})
	return path, nil
}

// Fingerprint returns the hex BLAKE2b-256 digest of a document.
func Fingerprint(doc string) string {
	sum := blake2b.Sum256([]byte(doc))
	return hex.EncodeToString(sum[:])
}

// Publish writes slug.html unless the document fingerprint equals previousHash and the
// file is still present.
func (x *Exporter) Publish(slug, doc, previousHash string) (PublishResult, error) {
	path, err := x.path(slug, ".html")
	if err != nil {
		return PublishResult{}, err
	}

	hash := Fingerprint(doc)
	if hash == previousHash {
		if _, err := os.Stat(path); err == nil {
			x.logger.Info(context.Background(), "Publish skipped, page unchanged", log.Fields{"path": path, "hash": hash})
			return PublishResult{Path: path, Hash: hash, Skipped: true}, nil
		}
	}

	if _, err := x.WriteHTML(slug, doc); err != nil {
		return PublishResult{}, err
	}
	x.logger.Info(context.Background(), "Page published", log.Fields{"path": path, "hash": hash})
	return PublishResult{Path: path, Hash: hash}, nil
}

// CopyToClipboard places doc on the operating system clipboard.
func (x *Exporter) CopyToClipboard(doc string) error {
	if err := x.copyText(doc); err != nil {
		x.logger.Warn(context.Background(), "Clipboard copy failed", log.Fields{"error": err})
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
