package session

import (
	"errors"
	"fmt"
	"strings"

	"sitecraft/local-app/src/pkg/editor"
	"sitecraft/local-app/src/pkg/model"
	"sitecraft/local-app/src/pkg/storage"
)

// initElementCommandHandlers initializes element command handlers
func initElementCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":        handleElementAdd,
		"list":       handleElementList,
		"show":       handleElementShow,
		"move":       handleElementMove,
		"place":      handleElementPlace,
		"resize":     handleElementResize,
		"style":      handleElementStyle,
		"unstyle":    handleElementUnstyle,
		"content":    handleElementContent,
		"media":      handleElementMedia,
		"attr":       handleElementAttr,
		"class":      handleElementClass,
		"transform":  handleElementTransform,
		"visible":    handleElementVisible,
		"lock":       handleElementLock,
		"responsive": handleElementResponsive,
		"code":       handleElementCode,
		"data":       handleElementData,
		"delete":     handleElementDelete,
		"duplicate":  handleElementDuplicate,
		"front":      handleElementZOrder,
		"back":       handleElementZOrder,
		"up":         handleElementZOrder,
		"down":       handleElementZOrder,
		"template":   handleElementTemplate,
		"clear":      handleElementClear,
		"commit":     handleElementCommit,
	}
}

// defaultSizes gives new elements a usable footprint when no size is supplied.
var defaultSizes = map[model.ElementType][2]float64{
	model.TypeText:      {200, 40},
	model.TypeHeading:   {400, 60},
	model.TypeParagraph: {400, 120},
	model.TypeButton:    {120, 40},
	model.TypeImage:     {300, 200},
	model.TypeVideo:     {480, 270},
	model.TypeDivider:   {400, 2},
	model.TypeInput:     {240, 36},
	model.TypeCheckbox:  {20, 20},
	model.TypeIcon:      {32, 32},
}

func handleElementAdd(s *Session, cmd model.Command) (interface{}, error) {
	typ := model.ElementType(cmd.Args[0])
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown element type %q", cmd.Args[0])
	}

	info := model.ElementInfo{Type: typ, Width: 200, Height: 100}
	if size, ok := defaultSizes[typ]; ok {
		info.Width, info.Height = size[0], size[1]
	}
	fields := []*float64{&info.X, &info.Y, &info.Width, &info.Height}
	names := []string{"x", "y", "width", "height"}
	for i, arg := range cmd.Args[1:] {
		if i == len(fields) {
			info.Content = arg
			break
		}
		v, err := parseFloat(names[i], arg)
		if err != nil {
			return nil, err
		}
		*fields[i] = v
	}

	id := s.Store.AddElement(info)
	return fmt.Sprintf("Added %s %s", typ, id), nil
}

func handleElementList(s *Session, cmd model.Command) (interface{}, error) {
	elements := s.Store.Elements()
	if len(elements) == 0 {
		return "Canvas is empty", nil
	}
	byID := make(map[string]model.Element, len(elements))
	for _, e := range elements {
		byID[e.ID] = e
	}

	var b strings.Builder
	var walk func(e model.Element, depth int)
	walk = func(e model.Element, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(describeElement(e))
		b.WriteByte('\n')
		for _, childID := range e.Children {
			if child, ok := byID[childID]; ok && child.Parent == e.ID {
				walk(child, depth+1)
			}
		}
	}
	for _, e := range elements {
		if _, ok := byID[e.Parent]; !ok {
			walk(e, 0)
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func handleElementShow(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	e, _ := s.Store.Element(id)
	lines := []string{describeElement(e)}
	if pos, ok := s.Store.AbsolutePosition(id); ok && e.Parent != "" {
		lines = append(lines, fmt.Sprintf("absolute position: (%s, %s)", num(pos.X), num(pos.Y)))
	}
	if len(e.Styles) > 0 {
		lines = append(lines, "styles: "+describeStyles(e.Styles))
	}
	if len(e.CSSClasses) > 0 {
		lines = append(lines, "classes: "+strings.Join(e.CSSClasses, " "))
	}
	if len(e.HTMLAttributes) > 0 {
		lines = append(lines, "attributes: "+describeStyles(e.HTMLAttributes))
	}
	if e.Src != "" {
		lines = append(lines, "src: "+e.Src)
	}
	if !e.Transform.IsIdentity() {
		lines = append(lines, fmt.Sprintf("transform: %+v", e.Transform))
	}
	for device, override := range e.Responsive {
		if len(override.Styles) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", device, describeStyles(override.Styles)))
		}
	}
	if len(e.Animations) > 0 {
		lines = append(lines, fmt.Sprintf("animations: %d", len(e.Animations)))
	}
	if len(e.Actions) > 0 {
		lines = append(lines, fmt.Sprintf("actions: %d", len(e.Actions)))
	}
	if e.DataConnection != nil {
		lines = append(lines, "data: "+e.DataConnection.Source)
	}
	return strings.Join(lines, "\n"), nil
}

func handleElementMove(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	dx, err := parseFloat("dx", cmd.Args[1])
	if err != nil {
		return nil, err
	}
	dy, err := parseFloat("dy", cmd.Args[2])
	if err != nil {
		return nil, err
	}
	s.Store.UpdateElementPosition(id, dx, dy)
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementPlace(s *Session, cmd model.Command) (interface{}, error) {
	return updateGeometry(s, cmd, "x", "y", model.ElementFilter{X: true, Y: true}, func(info *model.ElementInfo, a, b float64) {
		info.X, info.Y = a, b
	})
}

func handleElementResize(s *Session, cmd model.Command) (interface{}, error) {
	return updateGeometry(s, cmd, "width", "height", model.ElementFilter{Width: true, Height: true}, func(info *model.ElementInfo, a, b float64) {
		info.Width, info.Height = a, b
	})
}

func updateGeometry(s *Session, cmd model.Command, nameA, nameB string, filter model.ElementFilter, set func(*model.ElementInfo, float64, float64)) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	a, err := parseFloat(nameA, cmd.Args[1])
	if err != nil {
		return nil, err
	}
	b, err := parseFloat(nameB, cmd.Args[2])
	if err != nil {
		return nil, err
	}
	var info model.ElementInfo
	set(&info, a, b)
	s.Store.UpdateElementSize(id, info, filter)
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementStyle(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	styles, err := parsePairs(cmd.Args[1:])
	if err != nil {
		return nil, err
	}
	s.Store.UpdateElementStyles(id, styles)
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementUnstyle(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	s.Store.RemoveElementStyle(id, cmd.Args[1])
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementContent(s *Session, cmd model.Command) (interface{}, error) {
	return updateContent(s, cmd.Args[0], model.ElementInfo{Content: cmd.Args[1]}, model.ElementFilter{Content: true})
}

func handleElementMedia(s *Session, cmd model.Command) (interface{}, error) {
	info := model.ElementInfo{Src: cmd.Args[1]}
	filter := model.ElementFilter{Src: true}
	if len(cmd.Args) > 2 {
		info.Alt = cmd.Args[2]
		filter.Alt = true
	}
	return updateContent(s, cmd.Args[0], info, filter)
}

func handleElementAttr(s *Session, cmd model.Command) (interface{}, error) {
	attrs, err := parsePairs(cmd.Args[1:])
	if err != nil {
		return nil, err
	}
	return updateContent(s, cmd.Args[0], model.ElementInfo{HTMLAttributes: attrs}, model.ElementFilter{HTMLAttributes: true})
}

func handleElementClass(s *Session, cmd model.Command) (interface{}, error) {
	return updateContent(s, cmd.Args[0], model.ElementInfo{CSSClasses: cmd.Args[1:]}, model.ElementFilter{CSSClasses: true})
}

func handleElementTransform(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	e, _ := s.Store.Element(id)
	t := e.Transform
	pairs, err := parsePairs(cmd.Args[1:])
	if err != nil {
		return nil, err
	}
	fields := map[string]*float64{
		"rotate": &t.Rotate,
		"scaleX": &t.ScaleX,
		"scaleY": &t.ScaleY,
		"skewX":  &t.SkewX,
		"skewY":  &t.SkewY,
	}
	for key, value := range pairs {
		field, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("unknown transform component %q", key)
		}
		if *field, err = parseFloat(key, value); err != nil {
			return nil, err
		}
	}
	return updateContent(s, id, model.ElementInfo{Transform: t}, model.ElementFilter{Transform: true})
}

func handleElementVisible(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	visible, err := parseSwitch(cmd.Args[1])
	if err != nil {
		return nil, err
	}
	s.Store.UpdateElementVisibility(id, visible)
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementLock(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	locked, err := parseSwitch(cmd.Args[1])
	if err != nil {
		return nil, err
	}
	s.Store.LockElement(id, locked)
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementResponsive(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	device := model.DeviceType(cmd.Args[1])
	switch device {
	case model.DeviceDesktop, model.DeviceTablet, model.DeviceMobile:
	default:
		return nil, fmt.Errorf("unknown device %q", cmd.Args[1])
	}
	styles, err := parsePairs(cmd.Args[2:])
	if err != nil {
		return nil, err
	}
	s.Store.UpdateResponsiveStyles(id, device, styles)
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementCode(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	e, _ := s.Store.Element(id)
	var code model.CustomCode
	if e.CustomCode != nil {
		code = *e.CustomCode
	}
	switch strings.ToLower(cmd.Args[1]) {
	case "html":
		code.HTML = cmd.Args[2]
	case "css":
		code.CSS = cmd.Args[2]
	case "js":
		code.JS = cmd.Args[2]
	default:
		return nil, fmt.Errorf("custom code kind must be html, css or js")
	}
	return updateContent(s, id, model.ElementInfo{CustomCode: &code}, model.ElementFilter{CustomCode: true})
}

func handleElementData(s *Session, cmd model.Command) (interface{}, error) {
	conn := &model.DataConnection{Source: cmd.Args[1]}
	if len(cmd.Args) > 2 {
		conn.Operation = cmd.Args[2]
	}
	return updateContent(s, cmd.Args[0], model.ElementInfo{DataConnection: conn}, model.ElementFilter{DataConnection: true})
}

func updateContent(s *Session, ref string, info model.ElementInfo, filter model.ElementFilter) (interface{}, error) {
	id, ok := s.resolve(ref)
	if !ok {
		return missing(ref), nil
	}
	s.Store.UpdateElementContent(id, info, filter)
	s.Store.CommitHistory()
	return nil, nil
}

func handleElementDelete(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	before := s.Store.Len()
	s.Store.DeleteElement(id)
	return fmt.Sprintf("Deleted %d element(s)", before-s.Store.Len()), nil
}

func handleElementDuplicate(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	return fmt.Sprintf("Duplicated as %s", s.Store.DuplicateElement(id)), nil
}

func handleElementZOrder(s *Session, cmd model.Command) (interface{}, error) {
	id, ok := s.resolve(cmd.Args[0])
	if !ok {
		return missing(cmd.Args[0]), nil
	}
	before := paintIDs(s)
	switch cmd.Operation {
	case "front":
		s.Store.MoveElementToFront(id)
	case "back":
		s.Store.MoveElementToBack(id)
	case "up":
		s.Store.MoveElementUp(id)
	case "down":
		s.Store.MoveElementDown(id)
	}
	if equalStrings(before, paintIDs(s)) {
		edge := "front"
		if cmd.Operation == "back" || cmd.Operation == "down" {
			edge = "back"
		}
		return fmt.Sprintf("%s is already at the %s", id, edge), nil
	}
	return nil, nil
}

// paintIDs lists element ids from back to front.
func paintIDs(s *Session) []string {
	elements := s.Store.Elements()
	ids := make([]string, 0, len(elements))
	for _, i := range editor.PaintOrder(elements) {
		ids = append(ids, elements[i].ID)
	}
	return ids
}

func handleElementTemplate(s *Session, cmd model.Command) (interface{}, error) {
	filename, format := fileArgs(cmd.Args)
	elements, err := storage.ElementsImport(filename, format)
	if err != nil {
		return nil, err
	}
	if problems := editor.CheckInvariants(elements); len(problems) > 0 {
		return nil, fmt.Errorf("template %s is inconsistent: %w", filename, errors.Join(problems...))
	}
	s.Store.LoadTemplate(elements)
	return fmt.Sprintf("Loaded %d element(s) from %s", len(elements), filename), nil
}

func handleElementClear(s *Session, cmd model.Command) (interface{}, error) {
	s.Store.ClearCanvas()
	return "Canvas cleared", nil
}

func handleElementCommit(s *Session, cmd model.Command) (interface{}, error) {
	s.Store.CommitHistory()
	return fmt.Sprintf("History at %d/%d", s.Store.HistoryIndex()+1, s.Store.HistoryLen()), nil
}
