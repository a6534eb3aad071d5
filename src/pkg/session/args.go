package session

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"sitecraft/local-app/src/pkg/model"
)

func parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a number: %q", name, v)
	}
	return f, nil
}

func parseInt(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", name, v)
	}
	return n, nil
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", v)
}

// parsePairs reads key=value arguments.
func parsePairs(args []string) (map[string]string, error) {
	pairs := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		pairs[key] = value
	}
	return pairs, nil
}

// resolve maps an element reference to an id. A reference is an id or a unique id prefix.
func (s *Session) resolve(ref string) (string, bool) {
	if s.Store.HasElement(ref) {
		return ref, true
	}
	match := ""
	for _, e := range s.Store.Elements() {
		if strings.HasPrefix(e.ID, ref) {
			if match != "" {
				return "", false
			}
			match = e.ID
		}
	}
	return match, match != ""
}

// resolveAll maps references to ids, dropping unknown ones.
func (s *Session) resolveAll(refs []string) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id, ok := s.resolve(ref); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// targets resolves refs, or falls back to the current selection when refs is empty.
func (s *Session) targets(refs []string) []string {
	if len(refs) > 0 {
		return s.resolveAll(refs)
	}
	if multi := s.Store.MultipleSelection(); len(multi) > 0 {
		return multi
	}
	if id := s.Store.SelectedElementID(); id != "" {
		return []string{id}
	}
	return nil
}

func missing(ref string) string {
	return fmt.Sprintf("element %s not found", ref)
}

func describeElement(e model.Element) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s at (%s, %s) size %sx%s z=%d", e.ID, e.Type,
		num(e.X), num(e.Y), num(e.Width), num(e.Height), e.ZIndex)
	if e.Parent != "" {
		fmt.Fprintf(&b, " parent=%s", e.Parent)
	}
	if len(e.Children) > 0 {
		fmt.Fprintf(&b, " children=%s", strings.Join(e.Children, ","))
	}
	if !e.Visible {
		b.WriteString(" hidden")
	}
	if e.Locked {
		b.WriteString(" locked")
	}
	if e.Content != "" {
		content := e.Content
		if len(content) > 40 {
			content = content[:40] + "..."
		}
		fmt.Fprintf(&b, " %q", content)
	}
	return b.String()
}

func describeStyles(styles map[string]string) string {
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + styles[k]
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func equalElements(a, b []model.Element) bool {
	return reflect.DeepEqual(a, b)
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
