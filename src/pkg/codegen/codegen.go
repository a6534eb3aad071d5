// Package codegen serializes an element collection into a standalone HTML document.
//
// Generation is pure and deterministic: the same collection and options always yield
// byte-identical output. Content, attributes and custom code are emitted verbatim.
package codegen

import (
	"html"
	"sort"
	"strconv"
	"strings"

	"sitecraft/local-app/src/pkg/model"
)

// Options controls the document skeleton.
type Options struct {
	Title             string
	Lang              string
	IncludeBaseStyles bool
}

// DefaultOptions returns the options used when exporting without overrides.
func DefaultOptions() Options {
	return Options{Title: "Generated Page", Lang: "en", IncludeBaseStyles: true}
}

const baseStyles = `* { box-sizing: border-box; }
body { margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; }
img, video { display: block; max-width: none; }
button { cursor: pointer; }`

var voidTags = map[string]bool{"img": true, "hr": true, "input": true}

// tagFor maps an element type onto the HTML tag it is emitted as.
func tagFor(t model.ElementType) string {
	switch t {
	case model.TypeHeading:
		return "h2"
	case model.TypeText, model.TypeParagraph:
		return "p"
	case model.TypeButton:
		return "button"
	case model.TypeImage:
		return "img"
	case model.TypeVideo:
		return "video"
	case model.TypeDivider:
		return "hr"
	case model.TypeInput, model.TypeCheckbox:
		return "input"
	case model.TypeSelect:
		return "select"
	case model.TypeForm:
		return "form"
	case model.TypeSection:
		return "section"
	case model.TypeIcon:
		return "i"
	default:
		return "div"
	}
}

// generator holds the indexes built once per Generate call.
type generator struct {
	elements []model.Element
	byID     map[string]int
	rendered []bool
}

func newGenerator(elements []model.Element) *generator {
	g := &generator{
		elements: elements,
		byID:     make(map[string]int, len(elements)),
		rendered: make([]bool, len(elements)),
	}
	for i, e := range elements {
		if _, dup := g.byID[e.ID]; !dup {
			g.byID[e.ID] = i
		}
	}
	return g
}

// paintSorted returns the indices sorted by zIndex, ties in the given order.
func (g *generator) paintSorted(indices []int) []int {
	out := append([]int(nil), indices...)
	sort.SliceStable(out, func(a, b int) bool {
		return g.elements[out[a]].ZIndex < g.elements[out[b]].ZIndex
	})
	return out
}

// roots returns the elements drawn directly on the canvas.
func (g *generator) roots() []int {
	var roots []int
	for i, e := range g.elements {
		if e.Parent == "" {
			roots = append(roots, i)
			continue
		}
		p, ok := g.byID[e.Parent]
		if !ok || !listsChild(g.elements[p], e.ID) {
			roots = append(roots, i)
		}
	}
	return roots
}

// children returns the indices of e's children whose parent link agrees.
func (g *generator) children(e model.Element) []int {
	var out []int
	for _, id := range e.Children {
		i, ok := g.byID[id]
		if ok && g.elements[i].Parent == e.ID && !g.rendered[i] {
			out = append(out, i)
		}
	}
	return out
}

// Generate renders the complete HTML document for elements.
func Generate(elements []model.Element, opts Options) string {
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	g := newGenerator(elements)

	var body strings.Builder
	roots := g.paintSorted(g.roots())
	canvasHeight := 0.0
	for _, i := range roots {
		e := g.elements[i]
		if e.Visible {
			canvasHeight = max(canvasHeight, e.Y+e.Height)
		}
		g.writeElement(&body, i, 2)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="` + html.EscapeString(opts.Lang) + "\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + html.EscapeString(opts.Title) + "</title>\n")
	if css := g.stylesheet(opts.IncludeBaseStyles); css != "" {
		b.WriteString("  <style>\n")
		b.WriteString(css)
		b.WriteString("  </style>\n")
	}
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString(`  <div class="sitecraft-canvas" style="position: relative; width: 100%; min-height: ` + formatNumber(canvasHeight) + "px;\">\n")
	b.WriteString(body.String())
	b.WriteString("  </div>\n")
	if script := g.script(); script != "" {
		b.WriteString("  <script>\n")
		b.WriteString(script)
		b.WriteString("  </script>\n")
	}
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	return b.String()
}

// writeElement emits one visible element and, nested inside it, its children.
func (g *generator) writeElement(b *strings.Builder, i, depth int) {
	e := g.elements[i]
	if !e.Visible || g.rendered[i] {
		return
	}
	g.rendered[i] = true
	indent := strings.Repeat("  ", depth)

	if e.Type == model.TypeCustom && e.CustomCode != nil && e.CustomCode.HTML != "" {
		b.WriteString(indent + e.CustomCode.HTML + "\n")
		return
	}

	tag := tagFor(e.Type)
	b.WriteString(indent + "<" + tag + g.attributes(e) + ">")
	if voidTags[tag] {
		b.WriteString("\n")
		return
	}

	children := g.paintSorted(g.children(e))
	if len(children) == 0 {
		b.WriteString(e.Content + "</" + tag + ">\n")
		return
	}

	b.WriteString(e.Content + "\n")
	for _, c := range children {
		g.writeElement(b, c, depth+1)
	}
	b.WriteString(indent + "</" + tag + ">\n")
}

// attributes renders the attribute list of an element's opening tag.
func (g *generator) attributes(e model.Element) string {
	var b strings.Builder
	b.WriteString(` id="` + e.ID + `"`)

	classes := append([]string(nil), e.CSSClasses...)
	if extra, ok := e.HTMLAttributes["class"]; ok && extra != "" {
		classes = append(classes, extra)
	}
	if len(classes) > 0 {
		b.WriteString(` class="` + strings.Join(classes, " ") + `"`)
	}

	switch e.Type {
	case model.TypeImage:
		b.WriteString(` src="` + e.Src + `" alt="` + e.Alt + `"`)
	case model.TypeVideo:
		b.WriteString(` src="` + e.Src + `" controls`)
	case model.TypeCheckbox:
		b.WriteString(` type="checkbox"`)
	}

	b.WriteString(` style="` + inlineStyle(e) + `"`)

	keys := make([]string, 0, len(e.HTMLAttributes))
	for k := range e.HTMLAttributes {
		switch k {
		case "id", "class", "style":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" " + k + `="` + e.HTMLAttributes[k] + `"`)
	}
	return b.String()
}

func listsChild(parent model.Element, id string) bool {
	for _, c := range parent.Children {
		if c == id {
			return true
		}
	}
	return false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
