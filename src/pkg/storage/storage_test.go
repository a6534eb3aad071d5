package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitecraft/local-app/src/pkg/codegen"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	cfg := &model.Config{
		DatabaseType: "sqlite",
		DatabaseDir:  t.TempDir(),
		DatabaseFile: "test.db",
	}
	s, err := NewStorage(cfg, logger)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		logger.Close()
	})
	return s
}

func sampleElements() []model.Element {
	return []model.Element{
		{ID: "a", Type: model.TypeButton, X: 10, Y: 20, Width: 100, Height: 40, ZIndex: 1, Content: "Go",
			Styles: map[string]string{"color": "red"}, Visible: true},
		{ID: "b", Type: model.TypeText, X: 0, Y: 80, Width: 200, Height: 30, ZIndex: 2, Content: "<b>hi</b>", Visible: true},
	}
}

func TestNewStorageValidation(t *testing.T) {
	if _, err := NewStorage(&model.Config{DatabaseType: "sqlite"}, nil); err == nil {
		t.Error("expected error for nil logger")
	}
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	defer logger.Close()
	if _, err := NewStorage(&model.Config{DatabaseType: "postgres", DatabaseDir: t.TempDir(), DatabaseFile: "x.db"}, logger); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.ProjectAdd(model.ProjectInfo{Name: "Landing"})
	if err != nil {
		t.Fatalf("ProjectAdd: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
	if _, err := s.ProjectAdd(model.ProjectInfo{Name: "Landing"}); err == nil {
		t.Error("expected duplicate name error")
	}
	if _, err := s.ProjectAdd(model.ProjectInfo{Name: "  "}); err == nil {
		t.Error("expected blank name error")
	}

	projects, err := s.ProjectGet(model.ProjectInfo{ID: id}, model.ProjectFilter{ID: true})
	if err != nil || len(projects) != 1 {
		t.Fatalf("ProjectGet = %v, %v", projects, err)
	}
	if projects[0].Name != "Landing" {
		t.Errorf("name = %q", projects[0].Name)
	}

	if err := s.ProjectRename(id, "Home"); err != nil {
		t.Fatalf("ProjectRename: %v", err)
	}
	projects, _ = s.ProjectGet(model.ProjectInfo{Name: "Home"}, model.ProjectFilter{Name: true})
	if len(projects) != 1 {
		t.Fatalf("renamed project not found")
	}
	if err := s.ProjectRename("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rename missing = %v, want ErrNotFound", err)
	}

	if _, err := s.PageAdd(model.PageInfo{ProjectID: id, Name: "Index"}); err != nil {
		t.Fatalf("PageAdd: %v", err)
	}
	if err := s.ProjectDelete(id); err != nil {
		t.Fatalf("ProjectDelete: %v", err)
	}
	pages, err := s.PageGet(model.PageInfo{ProjectID: id}, model.PageFilter{ProjectID: true})
	if err != nil {
		t.Fatalf("PageGet: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("pages survived project delete: %d", len(pages))
	}
	if err := s.ProjectDelete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestPageElementsRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	projectID, err := s.ProjectAdd(model.ProjectInfo{Name: "Site"})
	if err != nil {
		t.Fatal(err)
	}

	pageID, err := s.PageAdd(model.PageInfo{ProjectID: projectID, Name: "About Us!"})
	if err != nil {
		t.Fatalf("PageAdd: %v", err)
	}
	if _, err := s.PageAdd(model.PageInfo{ProjectID: projectID, Name: "About Us!"}); err == nil {
		t.Error("expected duplicate page error")
	}

	pages, err := s.PageGet(model.PageInfo{ID: pageID}, model.PageFilter{ID: true})
	if err != nil || len(pages) != 1 {
		t.Fatalf("PageGet = %v, %v", pages, err)
	}
	page := pages[0]
	if page.Slug != "about-us" {
		t.Errorf("slug = %q, want about-us", page.Slug)
	}
	if page.Elements == nil || len(page.Elements) != 0 {
		t.Errorf("new page elements = %#v, want empty", page.Elements)
	}

	elements := sampleElements()
	if err := s.PageUpdate(page, model.PageInfo{Elements: elements, PublishedHash: "abc"}, model.PageFilter{Elements: true, PublishedHash: true}); err != nil {
		t.Fatalf("PageUpdate: %v", err)
	}
	pages, _ = s.PageGet(model.PageInfo{ID: pageID}, model.PageFilter{ID: true})
	got := pages[0]
	if len(got.Elements) != 2 || got.Elements[0].Styles["color"] != "red" || got.Elements[1].Content != "<b>hi</b>" {
		t.Errorf("elements = %#v", got.Elements)
	}
	if got.PublishedHash != "abc" || got.Name != "About Us!" {
		t.Errorf("page = %+v", got)
	}

	if err := s.PageDelete(got); err != nil {
		t.Fatalf("PageDelete: %v", err)
	}
	if err := s.PageDelete(got); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorage(t *testing.T) {
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	defer logger.Close()
	s, err := NewMemoryStorage(logger)
	if err != nil {
		t.Fatalf("NewMemoryStorage: %v", err)
	}
	defer s.Close()
	if _, err := s.ProjectAdd(model.ProjectInfo{Name: "Scratch"}); err != nil {
		t.Fatalf("ProjectAdd: %v", err)
	}
	projects, err := s.ProjectGet(model.ProjectInfo{}, model.ProjectFilter{})
	if err != nil || len(projects) != 1 {
		t.Errorf("ProjectGet = %v, %v", projects, err)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Home":           "home",
		"About Us!":      "about-us",
		"  Pricing 2024": "pricing-2024",
		"***":            "page",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	doc := &model.ProjectDocument{
		Project: model.Project{ID: "p1", Name: "Site"},
		Pages: []model.Page{{ID: "pg1", ProjectID: "p1", Name: "Home", Slug: "home", Elements: sampleElements()}},
	}
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "site."+format)
			if err := FileExport(doc, path, format); err != nil {
				t.Fatalf("FileExport: %v", err)
			}
			got, err := FileImport(path, FormatFromPath(path))
			if err != nil {
				t.Fatalf("FileImport: %v", err)
			}
			if got.Version != DocumentVersion || got.Project.Name != "Site" || len(got.Pages) != 1 {
				t.Fatalf("doc = %+v", got)
			}
			if el := got.Pages[0].Elements[0]; el.ID != "a" || el.Width != 100 || el.Styles["color"] != "red" {
				t.Errorf("element = %+v", el)
			}
		})
	}
	if err := FileExport(doc, filepath.Join(t.TempDir(), "x.xml"), "xml"); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestElementsImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.yaml")
	content := "- id: h1\n  type: heading\n  x: 0\n  y: 0\n  width: 400\n  height: 60\n  zIndex: 1\n  content: Welcome\n  visible: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	elements, err := ElementsImport(path, "yaml")
	if err != nil {
		t.Fatalf("ElementsImport: %v", err)
	}
	if len(elements) != 1 || elements[0].Type != model.TypeHeading || elements[0].Content != "Welcome" {
		t.Errorf("elements = %+v", elements)
	}
	if _, err := ElementsImport(path, "toml"); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestElementsImportDefaultsVisible(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"json": `[{"id":"h1","type":"heading","x":0,"y":0,"width":400,"height":60,"zIndex":1,"content":"Welcome"}]`,
		"yaml": "- id: h1\n  type: heading\n  width: 400\n  height: 60\n  zIndex: 1\n  content: Welcome\n",
	}
	for format, content := range files {
		path := filepath.Join(dir, "hero."+format)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		elements, err := ElementsImport(path, format)
		if err != nil {
			t.Fatalf("%s: ElementsImport: %v", format, err)
		}
		if len(elements) != 1 || !elements[0].Visible {
			t.Fatalf("%s: imported element hidden: %+v", format, elements)
		}
		if out := codegen.Generate(elements, codegen.DefaultOptions()); !strings.Contains(out, "Welcome") {
			t.Errorf("%s: generated document lost the heading:\n%s", format, out)
		}
	}
}

func TestSchemaVersionIsRecorded(t *testing.T) {
	s := newTestStorage(t)
	var version int
	if err := s.GetDatabase().QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("expected schema version %d, got %d", len(migrations), version)
	}
	if err := s.GetDatabase().InitSchema(); err != nil {
		t.Errorf("re-running migrations should be a no-op: %v", err)
	}
}
