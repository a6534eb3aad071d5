package editor

// SelectionState classifies the current selection.
type SelectionState int

const (
	NoSelection SelectionState = iota
	SingleSelected
	MultiSelected
)

func (st SelectionState) String() string {
	switch st {
	case SingleSelected:
		return "single"
	case MultiSelected:
		return "multiple"
	default:
		return "none"
	}
}

// SelectedElementID returns the primary selected element, or "".
func (s *ElementStore) SelectedElementID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// MultipleSelection returns a copy of the multi-selection.
func (s *ElementStore) MultipleSelection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.multi...)
}

// SelectionState reports whether nothing, one element or several elements are selected.
func (s *ElementStore) SelectionState() SelectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case len(s.multi) > 1:
		return MultiSelected
	case len(s.multi) == 1 || s.selectedID != "":
		return SingleSelected
	default:
		return NoSelection
	}
}

// SelectElement makes id the only selected element. An empty id clears the selection.
func (s *ElementStore) SelectElement(id string) {
	s.apply("select", func() change {
		if id == "" {
			if s.selectedID == "" && len(s.multi) == 0 {
				return 0
			}
			s.selectedID = ""
			s.multi = nil
			return changeSelection
		}
		if s.indexOf(id) < 0 {
			return 0
		}
		if s.selectedID == id && len(s.multi) == 1 && s.multi[0] == id {
			return 0
		}
		s.selectedID = id
		s.multi = []string{id}
		return changeSelection
	})
}

// SelectMultipleElements replaces the selection with the existing ids among ids.
func (s *ElementStore) SelectMultipleElements(ids []string) {
	s.apply("select-multiple", func() change {
		seen := map[string]bool{}
		var multi []string
		for _, id := range ids {
			if seen[id] || s.indexOf(id) < 0 {
				continue
			}
			seen[id] = true
			multi = append(multi, id)
		}

		primary := ""
		if len(multi) > 0 {
			primary = multi[0]
		}
		if primary == s.selectedID && equalStrings(multi, s.multi) {
			return 0
		}
		s.selectedID = primary
		s.multi = multi
		return changeSelection
	})
}

// ToggleElementSelection adds id to the selection or removes it when already present.
func (s *ElementStore) ToggleElementSelection(id string) {
	s.apply("toggle-select", func() change {
		if s.indexOf(id) < 0 {
			return 0
		}

		multi := s.selectionIDs()
		found := -1
		for i, sel := range multi {
			if sel == id {
				found = i
				break
			}
		}
		if found >= 0 {
			multi = append(multi[:found], multi[found+1:]...)
		} else {
			multi = append(multi, id)
		}

		s.multi = multi
		switch {
		case len(multi) == 0:
			s.selectedID = ""
		case !containsString(multi, s.selectedID):
			s.selectedID = multi[0]
		}
		return changeSelection
	})
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
