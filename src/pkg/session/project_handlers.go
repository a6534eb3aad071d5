package session

import (
	"context"
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/storage"
)

// initProjectCommandHandlers initializes project command handlers
func initProjectCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleProjectAdd,
		"list":   handleProjectList,
		"select": handleProjectSelect,
		"rename": handleProjectRename,
		"delete": handleProjectDelete,
		"export": handleProjectExport,
		"import": handleProjectImport,
	}
}

func handleProjectAdd(s *Session, cmd model.Command) (interface{}, error) {
	project, err := s.DataManager.ProjectManager.ProjectAdd(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	s.ProjectSet(project)
	return fmt.Sprintf("Project %s created and selected", project.Name), nil
}

func handleProjectList(s *Session, cmd model.Command) (interface{}, error) {
	projects, err := s.DataManager.ProjectManager.ProjectGet(model.ProjectInfo{}, model.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return "No projects", nil
	}
	lines := make([]string, len(projects))
	for i, p := range projects {
		marker := "  "
		if s.Project != nil && s.Project.ID == p.ID {
			marker = "* "
		}
		lines[i] = fmt.Sprintf("%s%s (%s)", marker, p.Name, p.ID)
	}
	return strings.Join(lines, "\n"), nil
}

func handleProjectSelect(s *Session, cmd model.Command) (interface{}, error) {
	project, err := s.DataManager.ProjectManager.ProjectFind(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	s.ProjectSet(project)
	return fmt.Sprintf("Project %s selected", project.Name), nil
}

func handleProjectRename(s *Session, cmd model.Command) (interface{}, error) {
	project, err := s.ProjectGet()
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.ProjectManager.ProjectRename(project, cmd.Args[0]); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Project renamed to %s", project.Name), nil
}

func handleProjectDelete(s *Session, cmd model.Command) (interface{}, error) {
	project := s.Project
	if len(cmd.Args) == 1 {
		found, err := s.DataManager.ProjectManager.ProjectFind(cmd.Args[0])
		if err != nil {
			return nil, err
		}
		project = found
	}
	if project == nil {
		return nil, ErrNoProject
	}

	if err := s.DataManager.ProjectManager.ProjectDelete(project); err != nil {
		return nil, err
	}
	if s.Project != nil && s.Project.ID == project.ID {
		s.ProjectSet(nil)
		s.logger.Debug(context.Background(), "Cleared current project from session", log.Fields{"projectID": project.ID})
	}
	return fmt.Sprintf("Project %s deleted", project.Name), nil
}

func handleProjectExport(s *Session, cmd model.Command) (interface{}, error) {
	project, err := s.ProjectGet()
	if err != nil {
		return nil, err
	}
	filename, format := fileArgs(cmd.Args)
	if err := s.DataManager.ProjectExport(project, filename, format); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Project %s exported to %s", project.Name, filename), nil
}

func handleProjectImport(s *Session, cmd model.Command) (interface{}, error) {
	filename, format := fileArgs(cmd.Args)
	project, err := s.DataManager.ProjectImport(filename, format)
	if err != nil {
		return nil, err
	}
	s.ProjectSet(project)
	return fmt.Sprintf("Project %s imported and selected", project.Name), nil
}

// fileArgs returns the filename and format, inferring the format from the extension.
func fileArgs(args []string) (string, string) {
	if len(args) > 1 {
		return args[0], strings.ToLower(args[1])
	}
	return args[0], storage.FormatFromPath(args[0])
}

