package codegen

import (
	"strings"
	"testing"

	"sitecraft/local-app/src/pkg/model"
)

func element(id string, typ model.ElementType, x, y, w, h float64, z int) model.Element {
	return model.Element{
		ID: id, Type: typ, X: x, Y: y, Width: w, Height: h, ZIndex: z,
		Styles: map[string]string{}, Children: []string{}, Visible: true,
		Transform: model.IdentityTransform(),
	}
}

func TestGenerateSkeleton(t *testing.T) {
	out := Generate(nil, Options{Title: "Shop & Co", Lang: "de", IncludeBaseStyles: true})

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="de">`,
		`<meta charset="UTF-8">`,
		`<meta name="viewport" content="width=device-width, initial-scale=1.0">`,
		"<title>Shop &amp; Co</title>",
		"box-sizing: border-box",
		"</html>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("empty collection should not emit a script block")
	}

	bare := Generate(nil, Options{Title: "x"})
	if strings.Contains(bare, "<style>") {
		t.Error("style block emitted without base styles or custom css")
	}
}

func TestGenerateElementMarkup(t *testing.T) {
	btn := element("b1", model.TypeButton, 10, 20, 120, 40, 1)
	btn.Content = "Go"
	btn.Styles = map[string]string{"backgroundColor": "#ff0000", "color": "white", "border-radius": "4px"}
	btn.CSSClasses = []string{"cta", "primary"}
	btn.HTMLAttributes = map[string]string{"data-track": "hero", "aria-label": "Go now"}

	img := element("i1", model.TypeImage, 0, 0, 50, 50, 2)
	img.Src = "/logo.png"
	img.Alt = "Logo"

	out := Generate([]model.Element{btn, img}, DefaultOptions())

	wantBtn := `<button id="b1" class="cta primary" style="position: absolute; left: 10px; top: 20px; width: 120px; height: 40px; z-index: 1; background-color: #ff0000; border-radius: 4px; color: white;" aria-label="Go now" data-track="hero">Go</button>`
	if !strings.Contains(out, wantBtn) {
		t.Errorf("button markup missing:\n%s", out)
	}
	wantImg := `<img id="i1" src="/logo.png" alt="Logo" style="position: absolute; left: 0px; top: 0px; width: 50px; height: 50px; z-index: 2;">`
	if !strings.Contains(out, wantImg) {
		t.Errorf("image markup missing:\n%s", out)
	}
	if strings.Contains(out, "</img>") {
		t.Error("void tag closed")
	}
}

func TestGenerateTagMapping(t *testing.T) {
	tests := map[model.ElementType]string{
		model.TypeHeading:     "<h2 ",
		model.TypeParagraph:   "<p ",
		model.TypeText:        "<p ",
		model.TypeDivider:     "<hr ",
		model.TypeCheckbox:    `<input id="x" type="checkbox"`,
		model.TypeSection:     "<section ",
		model.TypeContainer:   "<div ",
		model.TypeProductCard: "<div ",
	}
	for typ, want := range tests {
		out := Generate([]model.Element{element("x", typ, 0, 0, 1, 1, 1)}, Options{})
		if !strings.Contains(out, want) {
			t.Errorf("%s: missing %q", typ, want)
		}
	}
}

func TestGeneratePaintOrderAndVisibility(t *testing.T) {
	top := element("top", model.TypeText, 0, 0, 10, 10, 5)
	bottom := element("bottom", model.TypeText, 0, 0, 10, 10, 1)
	tieA := element("tieA", model.TypeText, 0, 0, 10, 10, 3)
	tieB := element("tieB", model.TypeText, 0, 0, 10, 10, 3)
	hidden := element("hidden", model.TypeText, 0, 0, 10, 10, 2)
	hidden.Visible = false

	out := Generate([]model.Element{top, tieB, bottom, hidden, tieA}, Options{})

	order := []string{`id="bottom"`, `id="tieB"`, `id="tieA"`, `id="top"`}
	last := -1
	for _, marker := range order {
		pos := strings.Index(out, marker)
		if pos <= last {
			t.Fatalf("%s out of paint order:\n%s", marker, out)
		}
		last = pos
	}
	if strings.Contains(out, `id="hidden"`) {
		t.Error("hidden element emitted")
	}
}

func TestGenerateNestsGroupChildren(t *testing.T) {
	group := element("g", model.TypeGroup, 10, 10, 290, 40, 3)
	group.Children = []string{"a", "b"}
	a := element("a", model.TypeButton, 0, 0, 120, 40, 1)
	a.Parent = "g"
	b := element("b", model.TypeText, 190, 0, 100, 30, 2)
	b.Parent = "g"

	out := Generate([]model.Element{a, b, group}, Options{})

	gStart := strings.Index(out, `<div id="g"`)
	aPos := strings.Index(out, `<button id="a"`)
	bPos := strings.Index(out, `<p id="b"`)
	gEnd := strings.LastIndex(out, "</div>\n  </div>")
	if gStart < 0 || aPos < gStart || bPos < aPos || gEnd < bPos {
		t.Errorf("children not nested in group:\n%s", out)
	}
	if strings.Count(out, `id="a"`) != 1 {
		t.Error("child emitted more than once")
	}
}

func TestGenerateContentIsNotEscaped(t *testing.T) {
	e := element("x", model.TypeParagraph, 0, 0, 10, 10, 1)
	e.Content = `<b>bold</b><script>alert("hi")</script>`
	out := Generate([]model.Element{e}, Options{})
	if !strings.Contains(out, `<b>bold</b><script>alert("hi")</script></p>`) {
		t.Errorf("content altered:\n%s", out)
	}
}

func TestGenerateCustomCode(t *testing.T) {
	custom := element("c", model.TypeCustom, 0, 0, 10, 10, 1)
	custom.CustomCode = &model.CustomCode{
		HTML: `<marquee>raw</marquee>`,
		CSS:  `marquee { color: red; }`,
		JS:   `console.log("first");`,
	}
	other := element("d", model.TypeContainer, 0, 0, 10, 10, 2)
	other.CustomCode = &model.CustomCode{JS: `console.log("second");`}

	out := Generate([]model.Element{custom, other}, Options{})

	if !strings.Contains(out, "    <marquee>raw</marquee>\n") || strings.Contains(out, `id="c"`) {
		t.Errorf("custom html not emitted verbatim:\n%s", out)
	}
	if !strings.Contains(out, "marquee { color: red; }") {
		t.Error("custom css missing")
	}
	first := strings.Index(out, `console.log("first");`)
	second := strings.Index(out, `console.log("second");`)
	if first < 0 || second < first {
		t.Errorf("custom js not in collection order:\n%s", out)
	}
}

func TestGenerateAnimations(t *testing.T) {
	e := element("h", model.TypeHeading, 0, 0, 10, 10, 1)
	e.Animations = []model.Animation{
		{Type: model.AnimationFade, Duration: 1, Delay: 0.5, Easing: "ease-in"},
		{Type: model.AnimationSlide, Duration: 2, Direction: "down"},
		{Type: model.AnimationRotate, Duration: 1},
	}
	out := Generate([]model.Element{e}, Options{})

	if strings.Count(out, "DOMContentLoaded") != 1 {
		t.Errorf("expected one listener:\n%s", out)
	}
	for _, want := range []string{
		`animate(document.getElementById("h"), "opacity", "0", "1", 1, 0.5, "ease-in");`,
		`animate(document.getElementById("h"), "transform", "translateY(-20px)", "translateY(0)", 2, 0, "ease");`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "rotate") {
		t.Error("rotate animation should not generate behaviour")
	}
}

func TestGenerateActions(t *testing.T) {
	e := element("btn", model.TypeButton, 0, 0, 10, 10, 1)
	e.Actions = []model.Action{
		{Type: model.ActionLink, EventType: model.EventClick, URL: "/shop"},
		{Type: model.ActionLink, EventType: model.EventClick, URL: "https://x.test", OpenInNewTab: true},
		{Type: model.ActionScroll, EventType: model.EventClick, Target: "pricing"},
		{Type: model.ActionToggle, EventType: model.EventHover, Target: "menu"},
		{Type: model.ActionCustom, EventType: model.EventCustom, CustomEvent: "dblclick", Script: `alert('x')`},
		{Type: model.ActionAPI, EventType: model.EventLoad, URL: "/api/ping", Method: "post"},
	}
	out := Generate([]model.Element{e}, Options{})

	for _, want := range []string{
		`bind("btn", 'click', function() { window.location.href = "/shop"; });`,
		`bind("btn", 'click', function() { window.open("https://x.test", '_blank'); });`,
		`var t = target("pricing"); if (t) t.scrollIntoView({ behavior: 'smooth' });`,
		`bind("btn", 'mouseenter', function() { var t = target("menu"); if (t) t.style.display = t.style.display === 'none' ? 'block' : 'none'; });`,
		`bind("btn", "dblclick", function() { alert('x') });`,
		`(function() { fetch("/api/ping", { method: "POST" }); })();`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateResponsiveAndTransform(t *testing.T) {
	e := element("s", model.TypeSection, 0, 0, 10, 10, 1)
	e.Transform = model.Transform{Rotate: 45, ScaleX: 1, ScaleY: 1}
	e.Responsive = map[model.DeviceType]model.ResponsiveOverride{
		model.DeviceMobile: {Styles: map[string]string{"display": "none"}},
		model.DeviceTablet: {Styles: map[string]string{"fontSize": "12px"}},
	}
	out := Generate([]model.Element{e}, Options{})

	if !strings.Contains(out, "transform: rotate(45deg);") {
		t.Errorf("transform missing:\n%s", out)
	}
	tablet := strings.Index(out, "@media (max-width: 1024px)")
	mobile := strings.Index(out, "@media (max-width: 768px)")
	if tablet < 0 || mobile < tablet {
		t.Errorf("media rules missing or misordered:\n%s", out)
	}
	if !strings.Contains(out, "#s { font-size: 12px !important; }") || !strings.Contains(out, "#s { display: none !important; }") {
		t.Errorf("responsive rules wrong:\n%s", out)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	e := element("x", model.TypeButton, 1.5, 2.25, 10, 10, 1)
	e.Styles = map[string]string{"a": "1", "b": "2", "c": "3", "d": "4", "e": "5"}
	e.HTMLAttributes = map[string]string{"data-a": "1", "data-b": "2", "data-c": "3"}
	e.Responsive = map[model.DeviceType]model.ResponsiveOverride{
		model.DeviceMobile:  {Styles: map[string]string{"x": "1", "y": "2"}},
		model.DeviceDesktop: {Styles: map[string]string{"z": "3"}},
	}
	elements := []model.Element{e}

	first := Generate(elements, DefaultOptions())
	for i := 0; i < 20; i++ {
		if got := Generate(elements, DefaultOptions()); got != first {
			t.Fatalf("output differs on run %d", i)
		}
	}
}

func TestCSSProperty(t *testing.T) {
	tests := map[string]string{
		"color":           "color",
		"backgroundColor": "background-color",
		"font-size":       "font-size",
		"WebkitTransform": "-webkit-transform",
		"--brand":         "--brand",
	}
	for in, want := range tests {
		if got := cssProperty(in); got != want {
			t.Errorf("cssProperty(%q) = %q, want %q", in, got, want)
		}
	}
}
