package codegen

import (
	"sort"
	"strings"
	"unicode"

	"sitecraft/local-app/src/pkg/model"
)

// mediaQueries lists the responsive breakpoints in emission order.
var mediaQueries = []struct {
	device model.DeviceType
	query  string
}{
	{model.DeviceDesktop, "(min-width: 1025px)"},
	{model.DeviceTablet, "(max-width: 1024px)"},
	{model.DeviceMobile, "(max-width: 768px)"},
}

// cssProperty converts a camelCase style key into its CSS property name.
// Keys that already look like CSS, including custom properties, pass through.
func cssProperty(key string) string {
	if strings.HasPrefix(key, "--") || strings.ContainsRune(key, '-') {
		return key
	}
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 || len(key) > 1 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// inlineStyle builds the positioned style attribute of an element.
func inlineStyle(e model.Element) string {
	parts := []string{
		"position: absolute",
		"left: " + formatNumber(e.X) + "px",
		"top: " + formatNumber(e.Y) + "px",
		"width: " + formatNumber(e.Width) + "px",
		"height: " + formatNumber(e.Height) + "px",
		"z-index: " + formatNumber(float64(e.ZIndex)),
	}
	for _, k := range sortedKeys(e.Styles) {
		parts = append(parts, cssProperty(k)+": "+e.Styles[k])
	}
	if !e.Transform.IsIdentity() {
		parts = append(parts, "transform: "+transformValue(e.Transform))
	}
	return strings.Join(parts, "; ") + ";"
}

func transformValue(t model.Transform) string {
	scaleX, scaleY := t.ScaleX, t.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	var parts []string
	if t.Rotate != 0 {
		parts = append(parts, "rotate("+formatNumber(t.Rotate)+"deg)")
	}
	if scaleX != 1 || scaleY != 1 {
		parts = append(parts, "scale("+formatNumber(scaleX)+", "+formatNumber(scaleY)+")")
	}
	if t.SkewX != 0 || t.SkewY != 0 {
		parts = append(parts, "skew("+formatNumber(t.SkewX)+"deg, "+formatNumber(t.SkewY)+"deg)")
	}
	return strings.Join(parts, " ")
}

// stylesheet assembles the head style block: base resets, custom css and responsive rules.
func (g *generator) stylesheet(includeBase bool) string {
	var b strings.Builder
	if includeBase {
		for _, line := range strings.Split(baseStyles, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}

	for i, e := range g.elements {
		if !g.rendered[i] || e.CustomCode == nil || e.CustomCode.CSS == "" {
			continue
		}
		b.WriteString(e.CustomCode.CSS + "\n")
	}

	for _, mq := range mediaQueries {
		var rules strings.Builder
		for i, e := range g.elements {
			override, ok := e.Responsive[mq.device]
			if !g.rendered[i] || !ok || len(override.Styles) == 0 {
				continue
			}
			rules.WriteString("      #" + e.ID + " {")
			for _, k := range sortedKeys(override.Styles) {
				v := override.Styles[k]
				if !strings.Contains(v, "!important") {
					v += " !important"
				}
				rules.WriteString(" " + cssProperty(k) + ": " + v + ";")
			}
			rules.WriteString(" }\n")
		}
		if rules.Len() > 0 {
			b.WriteString("    @media " + mq.query + " {\n")
			b.WriteString(rules.String())
			b.WriteString("    }\n")
		}
	}
	return b.String()
}
