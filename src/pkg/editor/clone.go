package editor

import "sitecraft/local-app/src/pkg/model"

// cloneElement returns a structural deep copy of e. Nil maps and slices stay nil.
func cloneElement(e model.Element) model.Element {
	c := e
	c.Styles = cloneStringMap(e.Styles)
	c.CSSClasses = cloneStrings(e.CSSClasses)
	c.HTMLAttributes = cloneStringMap(e.HTMLAttributes)
	c.Children = cloneStrings(e.Children)

	if e.CustomCode != nil {
		code := *e.CustomCode
		c.CustomCode = &code
	}

	if e.Animations != nil {
		c.Animations = make([]model.Animation, len(e.Animations))
		copy(c.Animations, e.Animations)
	}
	if e.Actions != nil {
		c.Actions = make([]model.Action, len(e.Actions))
		copy(c.Actions, e.Actions)
	}

	if e.Responsive != nil {
		c.Responsive = make(map[model.DeviceType]model.ResponsiveOverride, len(e.Responsive))
		for device, override := range e.Responsive {
			c.Responsive[device] = model.ResponsiveOverride{Styles: cloneStringMap(override.Styles)}
		}
	}

	c.DataConnection = cloneDataConnection(e.DataConnection)

	return c
}

func cloneDataConnection(dc *model.DataConnection) *model.DataConnection {
	if dc == nil {
		return nil
	}
	c := *dc
	c.Fields = cloneStrings(dc.Fields)
	c.Filters = cloneStringMap(dc.Filters)
	return &c
}

func cloneElements(elements []model.Element) []model.Element {
	if elements == nil {
		return nil
	}
	out := make([]model.Element, len(elements))
	for i, e := range elements {
		out[i] = cloneElement(e)
	}
	return out
}

// CloneElements returns a deep copy of a collection for callers outside the store.
func CloneElements(elements []model.Element) []model.Element {
	return cloneElements(elements)
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
