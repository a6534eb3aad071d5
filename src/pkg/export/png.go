package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"sitecraft/local-app/src/pkg/editor"
	"sitecraft/local-app/src/pkg/geometry"
	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

const (
	pngPadding   = 20
	pngMaxSide   = 4096
	pngLabelSize = 11.0
	pngMaxLabel  = 32
)

type drawable struct {
	rect  geometry.Rect
	label string
	fill  color.Color
}

// layout resolves the drawn rectangle of every visible element in paint order.
func layout(elements []model.Element) []drawable {
	byID := make(map[string]model.Element, len(elements))
	for _, e := range elements {
		byID[e.ID] = e
	}

	// An element is drawn only when it and every ancestor are visible
	resolve := func(e model.Element) (geometry.Rect, bool) {
		r := geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
		if !e.Visible {
			return r, false
		}
		seen := map[string]bool{e.ID: true}
		for p := e.Parent; p != "" && !seen[p]; {
			parent, ok := byID[p]
			if !ok {
				break
			}
			if !parent.Visible {
				return r, false
			}
			seen[p] = true
			r = r.Translate(parent.X, parent.Y)
			p = parent.Parent
		}
		return r, true
	}

	var out []drawable
	for _, i := range editor.PaintOrder(elements) {
		e := elements[i]
		r, ok := resolve(e)
		if !ok {
			continue
		}
		out = append(out, drawable{rect: r, label: label(e), fill: fillColor(e)})
	}
	return out
}

func label(e model.Element) string {
	text := string(e.Type)
	if content := strings.Join(strings.Fields(e.Content), " "); content != "" && !strings.Contains(content, "<") {
		text += ": " + content
	}
	if len(text) > pngMaxLabel {
		text = text[:pngMaxLabel-3] + "..."
	}
	return text
}

// fillColor uses the element's background colour when it is a hex value.
func fillColor(e model.Element) color.Color {
	for _, key := range []string{"backgroundColor", "background-color", "background"} {
		if c, ok := parseHex(e.Styles[key]); ok {
			return c
		}
	}
	if e.Type == model.TypeGroup {
		return color.NRGBA{R: 0, G: 0, B: 0, A: 0}
	}
	return color.NRGBA{R: 235, G: 240, B: 248, A: 255}
}

func parseHex(v string) (color.Color, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return nil, false
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, true
}

// RenderPNG draws a wireframe of the page: element outlines in paint order with type labels.
func RenderPNG(elements []model.Element) (image.Image, error) {
	items := layout(elements)

	width, height := float64(pngPadding*2), float64(pngPadding*2)
	for _, it := range items {
		width = math.Max(width, it.rect.Right()+pngPadding)
		height = math.Max(height, it.rect.Bottom()+pngPadding)
	}
	w := int(math.Min(math.Ceil(width), pngMaxSide))
	h := int(math.Min(math.Ceil(height), pngMaxSide))

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngLabelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, it := range items {
		r := it.rect
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.SetColor(it.fill)
		dc.FillPreserve()
		dc.SetLineWidth(1.0)
		dc.SetColor(color.NRGBA{R: 60, G: 72, B: 88, A: 255})
		dc.Stroke()

		if r.Width > 0 && r.Height > 0 {
			dc.SetColor(color.Black)
			dc.DrawString(it.label, r.X+3, r.Y+pngLabelSize+2)
		}
	}

	return dc.Image(), nil
}

// WritePNG renders the wireframe of elements into name.png and returns the path.
func (x *Exporter) WritePNG(name string, elements []model.Element) (string, error) {
	path, err := x.path(name, ".png")
	if err != nil {
		return "", err
	}
	img, err := RenderPNG(elements)
	if err != nil {
		return "", err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	x.logger.Info(context.Background(), "PNG exported", log.Fields{"path": path, "elements": len(elements)})
	return path, nil
}
