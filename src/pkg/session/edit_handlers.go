package session

import (
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/editor"
	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/model"
)

// initSelectCommandHandlers initializes selection command handlers
func initSelectCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"set":    handleSelectSet,
		"many":   handleSelectMany,
		"toggle": handleSelectToggle,
		"all":    handleSelectAll,
		"clear":  handleSelectClear,
		"show":   handleSelectShow,
	}
}

// initArrangeCommandHandlers initializes arrange command handlers
func initArrangeCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"group":      handleArrangeGroup,
		"ungroup":    handleArrangeUngroup,
		"align":      handleArrangeAlign,
		"distribute": handleArrangeDistribute,
		"reparent":   handleArrangeReparent,
	}
}

// initEditCommandHandlers initializes edit command handlers
func initEditCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"undo":      handleEditUndo,
		"redo":      handleEditRedo,
		"copy":      handleEditCopy,
		"cut":       handleEditCut,
		"paste":     handleEditPaste,
		"duplicate": handleEditDuplicate,
		"delete":    handleEditDelete,
		"history":   handleEditHistory,
	}
}

func selectionSummary(s *Session) string {
	switch s.Store.SelectionState() {
	case editor.SingleSelected:
		return "Selected " + s.Store.SelectedElementID()
	case editor.MultiSelected:
		return fmt.Sprintf("Selected %s (primary %s)", strings.Join(s.Store.MultipleSelection(), ", "), s.Store.SelectedElementID())
	default:
		return "Nothing selected"
	}
}

func handleSelectSet(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	s.Store.SelectElement(id)
	return selectionSummary(s), nil
}

func handleSelectMany(s *Session, cmd model.Command) (interface{}, error) {
	s.Store.SelectMultipleElements(s.resolveAll(cmd.Args))
	return selectionSummary(s), nil
}

func handleSelectToggle(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	s.Store.ToggleElementSelection(id)
	return selectionSummary(s), nil
}

func handleSelectAll(s *Session, cmd model.Command) (interface{}, error) {
	var ids []string
	for _, e := range s.Store.Elements() {
		if e.Parent == "" {
			ids = append(ids, e.ID)
		}
	}
	s.Store.SelectMultipleElements(ids)
	return selectionSummary(s), nil
}

func handleSelectClear(s *Session, cmd model.Command) (interface{}, error) {
	s.Store.SelectElement("")
	return selectionSummary(s), nil
}

func handleSelectShow(s *Session, cmd model.Command) (interface{}, error) {
	return selectionSummary(s), nil
}

func handleArrangeGroup(s *Session, cmd model.Command) (interface{}, error) {
	ids := s.targets(cmd.Args)
	if !s.Store.CanGroup(ids) {
		return "Select at least two elements to group", nil
	}
	return fmt.Sprintf("Grouped into %s", s.Store.GroupElements(ids)), nil
}

func handleArrangeUngroup(s *Session, cmd model.Command) (interface{}, error) {
	ids := s.targets(cmd.Args)
	if len(ids) != 1 || !s.Store.CanUngroup(ids[0]) {
		return "Select a non-empty group to ungroup", nil
	}
	children := s.Store.UngroupElements(ids[0])
	return fmt.Sprintf("Ungrouped %s", strings.Join(children, ", ")), nil
}

func handleArrangeAlign(s *Session, cmd model.Command) (interface{}, error) {
	alignment := editor.Alignment(strings.ToLower(cmd.Args[0]))
	ids := s.targets(cmd.Args[1:])
	if !s.Store.CanAlign(ids, alignment) {
		return "Alignment needs a valid edge and at least two elements", nil
	}
	s.Store.AlignElements(ids, alignment)
	return nil, nil
}

func handleArrangeDistribute(s *Session, cmd model.Command) (interface{}, error) {
	axis := editor.Axis(strings.ToLower(cmd.Args[0]))
	ids := s.targets(cmd.Args[1:])
	if !s.Store.CanDistribute(ids, axis) {
		return "Distribution needs a valid axis and at least three elements", nil
	}
	s.Store.DistributeElements(ids, axis)
	return nil, nil
}

func handleArrangeReparent(s *Session, cmd model.Command) (interface{}, error) {
	child, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	parent := ""
	if len(cmd.Args) > 1 {
		if parent, ok = s.resolve(cmd.Args[1]); !ok {
			return missing(cmd.Args[1]), nil
		}
	}
	before, _ := s.Store.Element(child)
	s.Store.Reparent(child, parent)
	after, _ := s.Store.Element(child)
	if before.Parent == after.Parent {
		return fmt.Sprintf("%s was not moved", child), nil
	}
	return nil, nil
}

func handleEditUndo(s *Session, cmd model.Command) (interface{}, error) {
	if !s.Store.CanUndo() {
		return "Nothing to undo", nil
	}
	s.Store.Undo()
	return nil, nil
}

func handleEditRedo(s *Session, cmd model.Command) (interface{}, error) {
	if !s.Store.CanRedo() {
		return "Nothing to redo", nil
	}
	s.Store.Redo()
	return nil, nil
}

func handleEditCopy(s *Session, cmd model.Command) (interface{}, error) {
	ids := s.targets(cmd.Args)
	if len(ids) == 0 {
		return "Nothing to copy", nil
	}
	s.Store.Copy(ids)
	return fmt.Sprintf("Copied %d element(s)", s.Store.ClipboardLen()), nil
}

func handleEditCut(s *Session, cmd model.Command) (interface{}, error) {
	ids := s.targets(cmd.Args)
	if len(ids) == 0 {
		return "Nothing to cut", nil
	}
	s.Store.Cut(ids)
	return fmt.Sprintf("Cut %d element(s)", s.Store.ClipboardLen()), nil
}

func handleEditPaste(s *Session, cmd model.Command) (interface{}, error) {
	if !s.Store.CanPaste() {
		return "Nothing to paste", nil
	}
	var at *geometry.Point
	switch len(cmd.Args) {
	case 0:
	case 2:
		x, err := parseFloat("x", cmd.Args[0])
		if err != nil {
			return nil, err
		}
		y, err := parseFloat("y", cmd.Args[1])
		if err != nil {
			return nil, err
		}
		at = &geometry.Point{X: x, Y: y}
	default:
		return nil, fmt.Errorf("edit paste takes no arguments or both x and y")
	}
	pasted := s.Store.Paste(at)
	return fmt.Sprintf("Pasted %s", strings.Join(pasted, ", ")), nil
}

func handleEditDuplicate(s *Session, cmd model.Command) (interface{}, error) {
	copies := s.Store.DuplicateSelectedElements()
	if len(copies) == 0 {
		return "Nothing selected", nil
	}
	return fmt.Sprintf("Duplicated as %s", strings.Join(copies, ", ")), nil
}

func handleEditDelete(s *Session, cmd model.Command) (interface{}, error) {
	if s.Store.SelectionState() == editor.NoSelection {
		return "Nothing selected", nil
	}
	before := s.Store.Len()
	s.Store.DeleteSelectedElements()
	return fmt.Sprintf("Deleted %d element(s)", before-s.Store.Len()), nil
}

func handleEditHistory(s *Session, cmd model.Command) (interface{}, error) {
	clipboard := "empty"
	if mode := s.Store.ClipboardMode(); mode != editor.ClipboardEmpty {
		clipboard = fmt.Sprintf("%d element(s) from %s", s.Store.ClipboardLen(), mode)
	}
	return fmt.Sprintf("History %d/%d, undo %t, redo %t, clipboard %s",
		s.Store.HistoryIndex()+1, s.Store.HistoryLen(), s.Store.CanUndo(), s.Store.CanRedo(), clipboard), nil
}
