// Package editor holds the live element collection of one page together with its
// selection, undo/redo history and clipboard.
package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sitecraft/local-app/src/pkg/event"
	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

// duplicateOffset shifts duplicates away from their source.
const duplicateOffset = 20

// Options configures an ElementStore.
type Options struct {
	GridSize     float64
	SnapToGrid   bool
	HistoryLimit int
	IDGenerator  func() string
	Clock        func() time.Time
}

// Change is the payload of every event published by an ElementStore.
type Change struct {
	Store     *ElementStore
	Operation string
}

type change uint8

const (
	changeElements change = 1 << iota
	changeSelection
	changeHistory
	changeClipboard
)

// ElementStore is the single owner of a page's element collection. Every mutation
// goes through its methods; reads return deep copies.
type ElementStore struct {
	mu         sync.RWMutex
	elements   []model.Element
	selectedID string
	multi      []string
	history    *HistoryManager
	clipboard  *ClipboardManager
	opts       Options
	newID      func() string
	now        func() time.Time
	events     *event.EventManager
	logger     *log.Logger
}

// NewElementStore creates an empty store whose history starts with the empty collection.
func NewElementStore(eventManager *event.EventManager, logger *log.Logger, opts Options) (*ElementStore, error) {
	if eventManager == nil {
		return nil, errors.New("event manager is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	s := &ElementStore{
		elements:  []model.Element{},
		history:   NewHistoryManager(nil, opts.HistoryLimit),
		clipboard: NewClipboardManager(),
		opts:      opts,
		newID:     opts.IDGenerator,
		now:       opts.Clock,
		events:    eventManager,
		logger:    logger,
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}

	logger.Debug(context.Background(), "Element store created", log.Fields{
		"gridSize":     opts.GridSize,
		"snapToGrid":   opts.SnapToGrid,
		"historyLimit": opts.HistoryLimit,
	})
	return s, nil
}

// apply runs fn under the write lock and publishes the changes it reports.
func (s *ElementStore) apply(op string, fn func() change) {
	s.mu.Lock()
	c := fn()
	s.mu.Unlock()

	if c == 0 {
		s.logger.Debug(context.Background(), "Store operation was a no-op", log.Fields{"operation": op})
		return
	}
	s.logger.Debug(context.Background(), "Store operation applied", log.Fields{"operation": op})
	s.notify(op, c)
}

func (s *ElementStore) notify(op string, c change) {
	payload := Change{Store: s, Operation: op}
	if c&changeElements != 0 {
		s.events.Publish(event.Event{Type: event.ElementsChanged, Data: payload})
	}
	if c&changeSelection != 0 {
		s.events.Publish(event.Event{Type: event.SelectionChanged, Data: payload})
	}
	if c&changeHistory != 0 {
		s.events.Publish(event.Event{Type: event.HistoryChanged, Data: payload})
	}
	if c&changeClipboard != 0 {
		s.events.Publish(event.Event{Type: event.ClipboardChanged, Data: payload})
	}
}

// snapshot records the live collection in the history.
func (s *ElementStore) snapshot() change {
	s.history.HistoryAdd(s.elements)
	return changeHistory
}

// indexOf returns the collection index of id or -1.
func (s *ElementStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.elements {
		if s.elements[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ElementStore) find(id string) *model.Element {
	if i := s.indexOf(id); i >= 0 {
		return &s.elements[i]
	}
	return nil
}

func (s *ElementStore) touch(e *model.Element) {
	e.UpdatedAt = s.now()
}

// freshID returns a generated id that is not present in the collection.
func (s *ElementStore) freshID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// absolutePosition walks the parent chain and returns the canvas position of e.
func (s *ElementStore) absolutePosition(e *model.Element) geometry.Point {
	p := geometry.Point{X: e.X, Y: e.Y}
	seen := map[string]bool{e.ID: true}
	for parentID := e.Parent; parentID != "" && !seen[parentID]; {
		parent := s.find(parentID)
		if parent == nil {
			break
		}
		seen[parentID] = true
		p.X += parent.X
		p.Y += parent.Y
		parentID = parent.Parent
	}
	return p
}

func (s *ElementStore) absoluteRect(e *model.Element) geometry.Rect {
	p := s.absolutePosition(e)
	return geometry.Rect{X: p.X, Y: p.Y, Width: e.Width, Height: e.Height}
}

// Elements returns a deep copy of the collection in collection order.
func (s *ElementStore) Elements() []model.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneElements(s.elements)
}

// Element returns a deep copy of one element.
func (s *ElementStore) Element(id string) (model.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.find(id)
	if e == nil {
		return model.Element{}, false
	}
	return cloneElement(*e), true
}

// Len returns the number of elements in the collection.
func (s *ElementStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// AbsolutePosition returns the canvas position of an element, resolving group nesting.
func (s *ElementStore) AbsolutePosition(id string) (geometry.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.find(id)
	if e == nil {
		return geometry.Point{}, false
	}
	return s.absolutePosition(e), true
}

// HistoryIndex returns the undo cursor.
func (s *ElementStore) HistoryIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Index()
}

// HistoryLen returns the number of snapshots in the undo log.
func (s *ElementStore) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// ClipboardMode returns how the clipboard was last filled.
func (s *ElementStore) ClipboardMode() ClipboardMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clipboard.Mode()
}

// ClipboardLen returns the number of elements on the clipboard.
func (s *ElementStore) ClipboardLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clipboard.items)
}

// Validate runs the structural invariant checks over the live collection.
func (s *ElementStore) Validate() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CheckInvariants(s.elements)
}

// AddElement creates an element from info, selects it and records a snapshot.
// It returns the new id, or "" when info.Type is unknown or the geometry is not finite.
func (s *ElementStore) AddElement(info model.ElementInfo) string {
	var id string
	s.apply("add", func() change {
		if !info.Type.Valid() || !geometry.Finite(info.X, info.Y, info.Width, info.Height) {
			return 0
		}

		id = info.ID
		if id == "" || s.indexOf(id) >= 0 {
			id = s.freshID()
		}

		rect := geometry.Rect{X: info.X, Y: info.Y, Width: max(info.Width, 0), Height: max(info.Height, 0)}
		if s.opts.SnapToGrid {
			rect = geometry.SnapRect(rect, s.opts.GridSize)
		}

		transform := info.Transform
		if transform == (model.Transform{}) {
			transform = model.IdentityTransform()
		}

		styles := cloneStringMap(info.Styles)
		if styles == nil {
			styles = map[string]string{}
		}

		now := s.now()
		e := model.Element{
			ID:             id,
			Type:           info.Type,
			X:              rect.X,
			Y:              rect.Y,
			Width:          rect.Width,
			Height:         rect.Height,
			ZIndex:         len(s.elements) + 1,
			Styles:         styles,
			CSSClasses:     cloneStrings(info.CSSClasses),
			HTMLAttributes: cloneStringMap(info.HTMLAttributes),
			Content:        info.Content,
			Src:            info.Src,
			Alt:            info.Alt,
			Children:       []string{},
			Animations:     []model.Animation{},
			Actions:        []model.Action{},
			Transform:      transform,
			Responsive:     map[model.DeviceType]model.ResponsiveOverride{},
			Visible:        true,
			Locked:         false,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if info.CustomCode != nil {
			code := *info.CustomCode
			e.CustomCode = &code
		}
		e.DataConnection = cloneDataConnection(info.DataConnection)

		s.elements = append(s.elements, e)
		s.selectedID = id
		s.multi = []string{id}
		return changeElements | changeSelection | s.snapshot()
	})
	return id
}

// UpdateElementPosition translates an element by dx, dy. No snapshot is recorded.
func (s *ElementStore) UpdateElementPosition(id string, dx, dy float64) {
	s.apply("move", func() change {
		e := s.find(id)
		if e == nil || (dx == 0 && dy == 0) || !geometry.Finite(dx, dy) {
			return 0
		}
		e.X += dx
		e.Y += dy
		s.touch(e)
		return changeElements
	})
}

// UpdateElementSize merges the geometry fields selected by filter. No snapshot is recorded.
func (s *ElementStore) UpdateElementSize(id string, info model.ElementInfo, filter model.ElementFilter) {
	s.apply("resize", func() change {
		e := s.find(id)
		if e == nil || !geometry.Finite(info.X, info.Y, info.Width, info.Height) {
			return 0
		}
		before := geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
		if filter.X {
			e.X = info.X
		}
		if filter.Y {
			e.Y = info.Y
		}
		if filter.Width {
			e.Width = max(info.Width, 0)
		}
		if filter.Height {
			e.Height = max(info.Height, 0)
		}
		if before == (geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}) {
			return 0
		}
		s.touch(e)
		return changeElements
	})
}

// UpdateElementStyles shallow-merges styles into the element's style map.
func (s *ElementStore) UpdateElementStyles(id string, styles map[string]string) {
	s.apply("style", func() change {
		e := s.find(id)
		if e == nil || len(styles) == 0 {
			return 0
		}
		if e.Styles == nil {
			e.Styles = map[string]string{}
		}
		for k, v := range styles {
			e.Styles[k] = v
		}
		s.touch(e)
		return changeElements
	})
}

// RemoveElementStyle deletes a single style property.
func (s *ElementStore) RemoveElementStyle(id, property string) {
	s.apply("unstyle", func() change {
		e := s.find(id)
		if e == nil {
			return 0
		}
		if _, ok := e.Styles[property]; !ok {
			return 0
		}
		delete(e.Styles, property)
		s.touch(e)
		return changeElements
	})
}

// UpdateElementContent applies the fields selected by filter. Identity fields never change.
func (s *ElementStore) UpdateElementContent(id string, info model.ElementInfo, filter model.ElementFilter) {
	s.apply("update", func() change {
		e := s.find(id)
		if e == nil || filter == (model.ElementFilter{}) || !geometry.Finite(info.X, info.Y, info.Width, info.Height) {
			return 0
		}
		if filter.X {
			e.X = info.X
		}
		if filter.Y {
			e.Y = info.Y
		}
		if filter.Width {
			e.Width = max(info.Width, 0)
		}
		if filter.Height {
			e.Height = max(info.Height, 0)
		}
		if filter.Styles {
			if e.Styles == nil {
				e.Styles = map[string]string{}
			}
			for k, v := range info.Styles {
				e.Styles[k] = v
			}
		}
		if filter.CSSClasses {
			e.CSSClasses = cloneStrings(info.CSSClasses)
		}
		if filter.HTMLAttributes {
			if e.HTMLAttributes == nil {
				e.HTMLAttributes = map[string]string{}
			}
			for k, v := range info.HTMLAttributes {
				e.HTMLAttributes[k] = v
			}
		}
		if filter.CustomCode {
			if info.CustomCode == nil {
				e.CustomCode = nil
			} else {
				code := *info.CustomCode
				e.CustomCode = &code
			}
		}
		if filter.Content {
			e.Content = info.Content
		}
		if filter.Src {
			e.Src = info.Src
		}
		if filter.Alt {
			e.Alt = info.Alt
		}
		if filter.Transform {
			e.Transform = info.Transform
		}
		if filter.DataConnection {
			e.DataConnection = cloneDataConnection(info.DataConnection)
		}
		if filter.Visible {
			e.Visible = info.Visible
		}
		if filter.Locked {
			e.Locked = info.Locked
		}
		s.touch(e)
		return changeElements
	})
}

// UpdateElementVisibility shows or hides an element.
func (s *ElementStore) UpdateElementVisibility(id string, visible bool) {
	s.apply("visibility", func() change {
		e := s.find(id)
		if e == nil || e.Visible == visible {
			return 0
		}
		e.Visible = visible
		s.touch(e)
		return changeElements
	})
}

// LockElement sets the locked flag of an element.
func (s *ElementStore) LockElement(id string, locked bool) {
	s.apply("lock", func() change {
		e := s.find(id)
		if e == nil || e.Locked == locked {
			return 0
		}
		e.Locked = locked
		s.touch(e)
		return changeElements
	})
}

// descendants returns id and every element reachable from it through children.
func (s *ElementStore) descendants(id string) map[string]bool {
	set := map[string]bool{}
	var walk func(string)
	walk = func(cur string) {
		if set[cur] {
			return
		}
		e := s.find(cur)
		if e == nil {
			return
		}
		set[cur] = true
		for _, child := range e.Children {
			walk(child)
		}
	}
	walk(id)
	return set
}

// removeSet drops every element in set and unlinks them from surviving parents.
func (s *ElementStore) removeSet(set map[string]bool) {
	kept := s.elements[:0]
	for _, e := range s.elements {
		if !set[e.ID] {
			kept = append(kept, e)
		}
	}
	// Zero the tail so dropped elements are not retained by the backing array
	for i := len(kept); i < len(s.elements); i++ {
		s.elements[i] = model.Element{}
	}
	s.elements = kept

	for i := range s.elements {
		e := &s.elements[i]
		if len(e.Children) == 0 {
			continue
		}
		children := e.Children[:0]
		for _, child := range e.Children {
			if !set[child] {
				children = append(children, child)
			}
		}
		e.Children = children
	}
}

// pruneSelection drops deleted ids from the selection. It reports whether anything changed.
func (s *ElementStore) pruneSelection(removed func(string) bool) bool {
	if s.selectedID != "" && removed(s.selectedID) {
		s.selectedID = ""
		s.multi = nil
		return true
	}
	changed := false
	multi := s.multi[:0]
	for _, id := range s.multi {
		if removed(id) {
			changed = true
			continue
		}
		multi = append(multi, id)
	}
	s.multi = multi
	return changed
}

// deleteCascade removes id and every descendant. It reports what changed.
func (s *ElementStore) deleteCascade(id string) change {
	if s.indexOf(id) < 0 {
		return 0
	}
	set := s.descendants(id)
	s.removeSet(set)

	c := changeElements
	if s.pruneSelection(func(x string) bool { return set[x] }) {
		c |= changeSelection
	}
	return c
}

// DeleteElement removes an element together with all of its descendants.
func (s *ElementStore) DeleteElement(id string) {
	s.apply("delete", func() change {
		c := s.deleteCascade(id)
		if c == 0 {
			return 0
		}
		return c | s.snapshot()
	})
}

// DeleteSelectedElements removes exactly the selected elements. Children of a removed
// element are detached to the canvas at their drawn position rather than deleted.
func (s *ElementStore) DeleteSelectedElements() {
	s.apply("delete-selected", func() change {
		ids := s.selectionIDs()
		set := map[string]bool{}
		for _, id := range ids {
			if s.indexOf(id) >= 0 {
				set[id] = true
			}
		}
		if len(set) == 0 {
			return 0
		}

		// Resolve orphan positions before their parents disappear
		type orphan struct {
			index int
			pos   geometry.Point
		}
		var orphans []orphan
		for i := range s.elements {
			e := &s.elements[i]
			if set[e.ID] || e.Parent == "" || !set[e.Parent] {
				continue
			}
			orphans = append(orphans, orphan{index: i, pos: s.absolutePosition(e)})
		}
		for _, o := range orphans {
			e := &s.elements[o.index]
			e.X, e.Y = o.pos.X, o.pos.Y
			e.Parent = ""
			s.touch(e)
		}

		s.removeSet(set)
		s.selectedID = ""
		s.multi = nil
		return changeElements | changeSelection | s.snapshot()
	})
}

// selectionIDs returns the multi-selection, falling back to the single selection.
func (s *ElementStore) selectionIDs() []string {
	if len(s.multi) > 0 {
		return append([]string(nil), s.multi...)
	}
	if s.selectedID != "" {
		return []string{s.selectedID}
	}
	return nil
}

// detachedCopy returns a copy of e at its drawn position with a fresh id and no hierarchy.
func (s *ElementStore) detachedCopy(e *model.Element, dx, dy float64) model.Element {
	pos := s.absolutePosition(e)
	c := cloneElement(*e)
	c.ID = s.freshID()
	c.X = pos.X + dx
	c.Y = pos.Y + dy
	c.Parent = ""
	c.Children = []string{}
	c.ZIndex = len(s.elements) + 1
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c
}

// DuplicateElement copies an element, offsets the copy and selects it.
func (s *ElementStore) DuplicateElement(id string) string {
	var newID string
	s.apply("duplicate", func() change {
		e := s.find(id)
		if e == nil {
			return 0
		}
		c := s.detachedCopy(e, duplicateOffset, duplicateOffset)
		s.elements = append(s.elements, c)
		newID = c.ID
		s.selectedID = newID
		s.multi = []string{newID}
		return changeElements | changeSelection | s.snapshot()
	})
	return newID
}

// DuplicateSelectedElements duplicates every selected element and selects the copies.
func (s *ElementStore) DuplicateSelectedElements() []string {
	var copies []string
	s.apply("duplicate-selected", func() change {
		for _, id := range s.selectionIDs() {
			e := s.find(id)
			if e == nil {
				continue
			}
			c := s.detachedCopy(e, duplicateOffset, duplicateOffset)
			s.elements = append(s.elements, c)
			copies = append(copies, c.ID)
		}
		if len(copies) == 0 {
			return 0
		}
		s.selectedID = copies[0]
		s.multi = append([]string(nil), copies...)
		return changeElements | changeSelection | s.snapshot()
	})
	return copies
}

// LoadTemplate replaces the collection with a copy of elements and records a snapshot.
func (s *ElementStore) LoadTemplate(elements []model.Element) {
	s.apply("load-template", func() change {
		s.elements = cloneElements(elements)
		if s.elements == nil {
			s.elements = []model.Element{}
		}
		s.selectedID = ""
		s.multi = nil
		return changeElements | changeSelection | s.snapshot()
	})
}

// Reset replaces the collection with a copy of elements and restarts the history from it.
// The clipboard survives so content can be carried between pages.
func (s *ElementStore) Reset(elements []model.Element) {
	s.apply("reset", func() change {
		s.elements = cloneElements(elements)
		if s.elements == nil {
			s.elements = []model.Element{}
		}
		s.selectedID = ""
		s.multi = nil
		s.history.HistoryReset(s.elements)
		return changeElements | changeSelection | changeHistory
	})
}

// ClearCanvas empties the collection and records a snapshot.
func (s *ElementStore) ClearCanvas() {
	s.apply("clear", func() change {
		s.elements = []model.Element{}
		s.selectedID = ""
		s.multi = nil
		return changeElements | changeSelection | s.snapshot()
	})
}

// CommitHistory records a snapshot when the collection differs from the one under the cursor.
// Callers use it to close a run of position, size or style edits as one undo step.
func (s *ElementStore) CommitHistory() {
	s.apply("commit", func() change {
		if s.history.Matches(s.elements) {
			return 0
		}
		return s.snapshot()
	})
}

// Undo restores the previous snapshot.
func (s *ElementStore) Undo() {
	s.apply("undo", func() change {
		elements, ok := s.history.Undo()
		if !ok {
			return 0
		}
		return s.restore(elements)
	})
}

// Redo restores the next snapshot.
func (s *ElementStore) Redo() {
	s.apply("redo", func() change {
		elements, ok := s.history.Redo()
		if !ok {
			return 0
		}
		return s.restore(elements)
	})
}

func (s *ElementStore) restore(elements []model.Element) change {
	if elements == nil {
		elements = []model.Element{}
	}
	s.elements = elements
	c := changeElements | changeHistory
	if s.pruneSelection(func(id string) bool { return s.indexOf(id) < 0 }) {
		c |= changeSelection
	}
	return c
}
