package codegen

import (
	"encoding/json"
	"strings"

	"sitecraft/local-app/src/pkg/model"
)

const animateHelper = `    function animate(el, prop, from, to, duration, delay, easing) {
      if (!el) return;
      el.style[prop] = from;
      el.style.transition = prop + ' ' + duration + 's ' + easing + ' ' + delay + 's';
      requestAnimationFrame(function() {
        requestAnimationFrame(function() { el.style[prop] = to; });
      });
    }
`

const actionHelpers = `    function target(ref) {
      var el = document.getElementById(ref);
      if (el) return el;
      try { return document.querySelector(ref); } catch (e) { return null; }
    }
    function bind(id, type, handler) {
      var el = document.getElementById(id);
      if (el) el.addEventListener(type, handler);
    }
`

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(out)
}

// script assembles the trailing script block for every rendered element.
func (g *generator) script() string {
	var b strings.Builder

	var animations strings.Builder
	for i, e := range g.elements {
		if !g.rendered[i] {
			continue
		}
		for _, a := range e.Animations {
			animations.WriteString(animationCall(e.ID, a))
		}
	}
	if animations.Len() > 0 {
		b.WriteString("    document.addEventListener('DOMContentLoaded', function() {\n")
		b.WriteString(indentBlock(animateHelper, "  "))
		b.WriteString(animations.String())
		b.WriteString("    });\n")
	}

	var actions strings.Builder
	for i, e := range g.elements {
		if !g.rendered[i] {
			continue
		}
		for _, a := range e.Actions {
			actions.WriteString(actionBinding(e.ID, a))
		}
	}
	if actions.Len() > 0 {
		b.WriteString("    document.addEventListener('DOMContentLoaded', function() {\n")
		b.WriteString(indentBlock(actionHelpers, "  "))
		b.WriteString(actions.String())
		b.WriteString("    });\n")
	}

	for i, e := range g.elements {
		if !g.rendered[i] || e.CustomCode == nil || e.CustomCode.JS == "" {
			continue
		}
		b.WriteString(e.CustomCode.JS + "\n")
	}
	return b.String()
}

// animationCall returns the animate() invocation for one animation, or "" for types
// without generated behaviour.
func animationCall(id string, a model.Animation) string {
	var prop, from, to string
	switch a.Type {
	case model.AnimationFade:
		prop, from, to = "opacity", "0", "1"
	case model.AnimationSlide:
		prop = "transform"
		switch a.Direction {
		case "down":
			from, to = "translateY(-20px)", "translateY(0)"
		case "left":
			from, to = "translateX(20px)", "translateX(0)"
		case "right":
			from, to = "translateX(-20px)", "translateX(0)"
		default:
			from, to = "translateY(20px)", "translateY(0)"
		}
	default:
		return ""
	}

	easing := a.Easing
	if easing == "" {
		easing = "ease"
	}
	return "      animate(document.getElementById(" + jsString(id) + "), " +
		jsString(prop) + ", " + jsString(from) + ", " + jsString(to) + ", " +
		formatNumber(a.Duration) + ", " + formatNumber(a.Delay) + ", " + jsString(easing) + ");\n"
}

// actionEffect returns the handler body for an action.
func actionEffect(a model.Action) string {
	switch a.Type {
	case model.ActionLink:
		if a.OpenInNewTab {
			return "window.open(" + jsString(a.URL) + ", '_blank');"
		}
		return "window.location.href = " + jsString(a.URL) + ";"
	case model.ActionScroll:
		return "var t = target(" + jsString(a.Target) + "); if (t) t.scrollIntoView({ behavior: 'smooth' });"
	case model.ActionToggle:
		return "var t = target(" + jsString(a.Target) + "); if (t) t.style.display = t.style.display === 'none' ? 'block' : 'none';"
	case model.ActionModal:
		return "var t = target(" + jsString(a.Target) + "); if (t) t.style.display = 'block';"
	case model.ActionAPI:
		method := a.Method
		if method == "" {
			method = "GET"
		}
		return "fetch(" + jsString(a.URL) + ", { method: " + jsString(strings.ToUpper(method)) + " });"
	case model.ActionCustom:
		return a.Script
	default:
		return ""
	}
}

// actionBinding wires one action to its triggering event.
func actionBinding(id string, a model.Action) string {
	effect := actionEffect(a)
	if effect == "" {
		return ""
	}
	handler := "function() { " + effect + " }"

	switch a.EventType {
	case model.EventLoad:
		return "      (" + handler + ")();\n"
	case model.EventScroll:
		return "      window.addEventListener('scroll', " + handler + ");\n"
	case model.EventHover:
		return "      bind(" + jsString(id) + ", 'mouseenter', " + handler + ");\n"
	case model.EventCustom:
		if a.CustomEvent == "" {
			return ""
		}
		return "      bind(" + jsString(id) + ", " + jsString(a.CustomEvent) + ", " + handler + ");\n"
	default:
		return "      bind(" + jsString(id) + ", 'click', " + handler + ");\n"
	}
}

func indentBlock(block, prefix string) string {
	lines := strings.SplitAfter(block, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(prefix + line)
	}
	return b.String()
}
