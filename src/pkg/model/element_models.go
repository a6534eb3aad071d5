package model

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// ElementType names the kind of visual node an Element renders as.
type ElementType string

const (
	TypeContainer      ElementType = "container"
	TypeText           ElementType = "text"
	TypeHeading        ElementType = "heading"
	TypeParagraph      ElementType = "paragraph"
	TypeButton         ElementType = "button"
	TypeImage          ElementType = "image"
	TypeVideo          ElementType = "video"
	TypeIcon           ElementType = "icon"
	TypeGrid           ElementType = "grid"
	TypeFlexbox        ElementType = "flexbox"
	TypeSection        ElementType = "section"
	TypeDivider        ElementType = "divider"
	TypeInput          ElementType = "input"
	TypeCheckbox       ElementType = "checkbox"
	TypeSelect         ElementType = "select"
	TypeForm           ElementType = "form"
	TypeProductCard    ElementType = "productCard"
	TypeCart           ElementType = "cart"
	TypeCheckout       ElementType = "checkout"
	TypeProductGallery ElementType = "productGallery"
	TypeCarousel       ElementType = "carousel"
	TypeGroup          ElementType = "group"
	TypeCustom         ElementType = "custom"
)

var elementTypes = []ElementType{
	TypeContainer, TypeText, TypeHeading, TypeParagraph, TypeButton, TypeImage, TypeVideo,
	TypeIcon, TypeGrid, TypeFlexbox, TypeSection, TypeDivider, TypeInput, TypeCheckbox,
	TypeSelect, TypeForm, TypeProductCard, TypeCart, TypeCheckout, TypeProductGallery,
	TypeCarousel, TypeGroup, TypeCustom,
}

// ElementTypes returns every known element type in declaration order.
func ElementTypes() []ElementType {
	return append([]ElementType(nil), elementTypes...)
}

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	for _, known := range elementTypes {
		if known == t {
			return true
		}
	}
	return false
}

// DeviceType keys responsive overrides.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceTablet  DeviceType = "tablet"
	DeviceMobile  DeviceType = "mobile"
)

// Element represents a single visual node on the canvas.
type Element struct {
	ID             string                            `json:"id" yaml:"id"`
	Type           ElementType                       `json:"type" yaml:"type"`
	X              float64                           `json:"x" yaml:"x"`
	Y              float64                           `json:"y" yaml:"y"`
	Width          float64                           `json:"width" yaml:"width"`
	Height         float64                           `json:"height" yaml:"height"`
	ZIndex         int                               `json:"zIndex" yaml:"zIndex"`
	Styles         map[string]string                 `json:"styles" yaml:"styles"`
	CSSClasses     []string                          `json:"cssClasses,omitempty" yaml:"cssClasses,omitempty"`
	HTMLAttributes map[string]string                 `json:"htmlAttributes,omitempty" yaml:"htmlAttributes,omitempty"`
	CustomCode     *CustomCode                       `json:"customCode,omitempty" yaml:"customCode,omitempty"`
	Content        string                            `json:"content,omitempty" yaml:"content,omitempty"`
	Src            string                            `json:"src,omitempty" yaml:"src,omitempty"`
	Alt            string                            `json:"alt,omitempty" yaml:"alt,omitempty"`
	Children       []string                          `json:"children" yaml:"children"`
	Parent         string                            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Animations     []Animation                       `json:"animations" yaml:"animations"`
	Actions        []Action                          `json:"actions" yaml:"actions"`
	Transform      Transform                         `json:"transform" yaml:"transform"`
	Responsive     map[DeviceType]ResponsiveOverride `json:"responsive" yaml:"responsive"`
	DataConnection *DataConnection                   `json:"dataConnection,omitempty" yaml:"dataConnection,omitempty"`
	Visible        bool                              `json:"visible" yaml:"visible"`
	Locked         bool                              `json:"locked" yaml:"locked"`
	CreatedAt      time.Time                         `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      time.Time                         `json:"updatedAt" yaml:"updatedAt"`
}

// UnmarshalJSON decodes an element. A missing visible key means visible.
func (e *Element) UnmarshalJSON(data []byte) error {
	type plain Element
	p := plain{Visible: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Element(p)
	return nil
}

// UnmarshalYAML decodes an element. A missing visible key means visible.
func (e *Element) UnmarshalYAML(value *yaml.Node) error {
	type plain Element
	p := plain{Visible: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = Element(p)
	return nil
}

// CustomCode holds raw markup, styles and script that override generated output.
type CustomCode struct {
	HTML string `json:"html,omitempty" yaml:"html,omitempty"`
	CSS  string `json:"css,omitempty" yaml:"css,omitempty"`
	JS   string `json:"js,omitempty" yaml:"js,omitempty"`
}

type AnimationType string

const (
	AnimationFade   AnimationType = "fade"
	AnimationSlide  AnimationType = "slide"
	AnimationScale  AnimationType = "scale"
	AnimationRotate AnimationType = "rotate"
	AnimationCustom AnimationType = "custom"
)

// Animation describes an entrance effect applied once the page loads.
type Animation struct {
	Type            AnimationType `json:"type" yaml:"type"`
	Duration        float64       `json:"duration" yaml:"duration"`
	Delay           float64       `json:"delay,omitempty" yaml:"delay,omitempty"`
	Easing          string        `json:"easing,omitempty" yaml:"easing,omitempty"`
	Direction       string        `json:"direction,omitempty" yaml:"direction,omitempty"`
	Repeat          int           `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	CustomKeyframes string        `json:"customKeyframes,omitempty" yaml:"customKeyframes,omitempty"`
}

type ActionType string

const (
	ActionLink   ActionType = "link"
	ActionScroll ActionType = "scroll"
	ActionToggle ActionType = "toggle"
	ActionModal  ActionType = "modal"
	ActionAPI    ActionType = "api"
	ActionCustom ActionType = "custom"
)

type ActionEvent string

const (
	EventClick  ActionEvent = "click"
	EventHover  ActionEvent = "hover"
	EventLoad   ActionEvent = "load"
	EventScroll ActionEvent = "scroll"
	EventCustom ActionEvent = "custom"
)

// Action describes an interaction bound to a DOM event on the element.
type Action struct {
	Type         ActionType  `json:"type" yaml:"type"`
	EventType    ActionEvent `json:"eventType" yaml:"eventType"`
	CustomEvent  string      `json:"customEvent,omitempty" yaml:"customEvent,omitempty"`
	URL          string      `json:"url,omitempty" yaml:"url,omitempty"`
	Target       string      `json:"target,omitempty" yaml:"target,omitempty"`
	Script       string      `json:"script,omitempty" yaml:"script,omitempty"`
	OpenInNewTab bool        `json:"openInNewTab,omitempty" yaml:"openInNewTab,omitempty"`
	Method       string      `json:"method,omitempty" yaml:"method,omitempty"`
}

// Transform is a 2D CSS transform. The zero value is treated as identity.
type Transform struct {
	Rotate float64 `json:"rotate" yaml:"rotate"`
	ScaleX float64 `json:"scaleX" yaml:"scaleX"`
	ScaleY float64 `json:"scaleY" yaml:"scaleY"`
	SkewX  float64 `json:"skewX" yaml:"skewX"`
	SkewY  float64 `json:"skewY" yaml:"skewY"`
}

// IdentityTransform returns the transform that leaves an element unchanged.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// IsIdentity reports whether the transform has no visual effect.
func (t Transform) IsIdentity() bool {
	scaleX, scaleY := t.ScaleX, t.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	return t.Rotate == 0 && t.SkewX == 0 && t.SkewY == 0 && scaleX == 1 && scaleY == 1
}

// ResponsiveOverride carries the styles applied on a specific device class.
type ResponsiveOverride struct {
	Styles map[string]string `json:"styles" yaml:"styles"`
}

// DataConnection binds an element to an external data source. The editor passes it through untouched.
type DataConnection struct {
	Source      string            `json:"source" yaml:"source"`
	Operation   string            `json:"operation,omitempty" yaml:"operation,omitempty"`
	Fields      []string          `json:"fields,omitempty" yaml:"fields,omitempty"`
	Filters     map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	CustomQuery string            `json:"customQuery,omitempty" yaml:"customQuery,omitempty"`
	Template    string            `json:"template,omitempty" yaml:"template,omitempty"`
}

// ElementInfo contains the caller supplied values for a new or updated element.
type ElementInfo struct {
	ID             string
	Type           ElementType
	X              float64
	Y              float64
	Width          float64
	Height         float64
	Styles         map[string]string
	CSSClasses     []string
	HTMLAttributes map[string]string
	CustomCode     *CustomCode
	Content        string
	Src            string
	Alt            string
	Transform      Transform
	DataConnection *DataConnection
	Visible        bool
	Locked         bool
}

// ElementFilter defines which ElementInfo fields an update applies.
type ElementFilter struct {
	X              bool
	Y              bool
	Width          bool
	Height         bool
	Styles         bool
	CSSClasses     bool
	HTMLAttributes bool
	CustomCode     bool
	Content        bool
	Src            bool
	Alt            bool
	Transform      bool
	DataConnection bool
	Visible        bool
	Locked         bool
}
