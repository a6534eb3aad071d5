package editor

import (
	"fmt"

	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/model"
)

// CheckInvariants validates the structural consistency of an element collection and
// returns one error per violation found.
func CheckInvariants(elements []model.Element) []error {
	var errs []error
	byID := make(map[string]*model.Element, len(elements))

	for i := range elements {
		e := &elements[i]
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("element at index %d has no id", i))
			continue
		}
		if _, dup := byID[e.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate element id %q", e.ID))
			continue
		}
		byID[e.ID] = e
	}

	for i := range elements {
		e := &elements[i]
		if e.ID == "" {
			continue
		}
		if !e.Type.Valid() {
			errs = append(errs, fmt.Errorf("element %q has unknown type %q", e.ID, e.Type))
		}
		if !geometry.Finite(e.X, e.Y, e.Width, e.Height) {
			errs = append(errs, fmt.Errorf("element %q has non-finite geometry", e.ID))
		}
		if e.Width < 0 || e.Height < 0 {
			errs = append(errs, fmt.Errorf("element %q has negative size %vx%v", e.ID, e.Width, e.Height))
		}

		for _, childID := range e.Children {
			child, ok := byID[childID]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("element %q references missing child %q", e.ID, childID))
			case child.Parent != e.ID:
				errs = append(errs, fmt.Errorf("child %q of %q has parent %q", childID, e.ID, child.Parent))
			}
		}

		if e.Parent != "" {
			parent, ok := byID[e.Parent]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("element %q references missing parent %q", e.ID, e.Parent))
			case !containsString(parent.Children, e.ID):
				errs = append(errs, fmt.Errorf("parent %q does not list child %q", e.Parent, e.ID))
			}
		}
	}

	// Parent chains must terminate
	for i := range elements {
		id := elements[i].ID
		if byID[id] != &elements[i] {
			continue
		}
		seen := map[string]bool{}
		for cur := id; cur != ""; {
			if seen[cur] {
				errs = append(errs, fmt.Errorf("element %q is part of a parent cycle", id))
				break
			}
			seen[cur] = true
			next, ok := byID[cur]
			if !ok {
				break
			}
			cur = next.Parent
		}
	}

	return errs
}
