package session

import (
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/model"
)

// initPageCommandHandlers initializes page command handlers
func initPageCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handlePageAdd,
		"list":   handlePageList,
		"select": handlePageSelect,
		"save":   handlePageSave,
		"rename": handlePageRename,
		"delete": handlePageDelete,
		"close":  handlePageClose,
	}
}

func handlePageAdd(s *Session, cmd model.Command) (interface{}, error) {
	project, err := s.ProjectGet()
	if err != nil {
		return nil, err
	}
	slug := ""
	if len(cmd.Args) > 1 {
		slug = cmd.Args[1]
	}
	page, err := s.DataManager.PageManager.PageAdd(project, cmd.Args[0], slug)
	if err != nil {
		return nil, err
	}
	s.PageSet(page)
	return fmt.Sprintf("Page %s (/%s) created and opened", page.Name, page.Slug), nil
}

func handlePageList(s *Session, cmd model.Command) (interface{}, error) {
	project, err := s.ProjectGet()
	if err != nil {
		return nil, err
	}
	pages, err := s.DataManager.PageManager.PageList(project)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return "No pages", nil
	}
	lines := make([]string, len(pages))
	for i, p := range pages {
		marker := "  "
		if s.Page != nil && s.Page.ID == p.ID {
			marker = "* "
		}
		published := ""
		if p.PublishedHash != "" {
			published = " published"
		}
		lines[i] = fmt.Sprintf("%s%s /%s (%d elements)%s", marker, p.Name, p.Slug, len(p.Elements), published)
	}
	return strings.Join(lines, "\n"), nil
}

func handlePageSelect(s *Session, cmd model.Command) (interface{}, error) {
	project, err := s.ProjectGet()
	if err != nil {
		return nil, err
	}
	page, err := s.DataManager.PageManager.PageFind(project, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	warning := ""
	if s.Dirty() {
		warning = fmt.Sprintf(" (unsaved changes to %s were discarded)", s.Page.Name)
	}
	s.PageSet(page)
	return fmt.Sprintf("Page %s opened%s", page.Name, warning), nil
}

func handlePageSave(s *Session, cmd model.Command) (interface{}, error) {
	page, err := s.PageGet()
	if err != nil {
		return nil, err
	}
	s.Store.CommitHistory()
	elements := s.Store.Elements()
	if err := s.DataManager.PageManager.PageSave(page, elements); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Page %s saved (%d elements)", page.Name, len(elements)), nil
}

func handlePageRename(s *Session, cmd model.Command) (interface{}, error) {
	page, err := s.PageGet()
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.PageManager.PageRename(page, cmd.Args[0]); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Page renamed to %s (/%s)", page.Name, page.Slug), nil
}

func handlePageDelete(s *Session, cmd model.Command) (interface{}, error) {
	page := s.Page
	if len(cmd.Args) == 1 {
		project, err := s.ProjectGet()
		if err != nil {
			return nil, err
		}
		if page, err = s.DataManager.PageManager.PageFind(project, cmd.Args[0]); err != nil {
			return nil, err
		}
	}
	if page == nil {
		return nil, ErrNoPage
	}
	if err := s.DataManager.PageManager.PageDelete(page); err != nil {
		return nil, err
	}
	if s.Page != nil && s.Page.ID == page.ID {
		s.PageSet(nil)
	}
	return fmt.Sprintf("Page %s deleted", page.Name), nil
}

func handlePageClose(s *Session, cmd model.Command) (interface{}, error) {
	page, err := s.PageGet()
	if err != nil {
		return nil, err
	}
	warning := ""
	if s.Dirty() {
		warning = " (unsaved changes were discarded)"
	}
	s.PageSet(nil)
	return fmt.Sprintf("Page %s closed%s", page.Name, warning), nil
}
