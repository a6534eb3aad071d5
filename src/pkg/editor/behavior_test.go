package editor

import (
	"reflect"
	"testing"

	"sitecraft/local-app/src/pkg/model"
)

func TestAnimationCRUD(t *testing.T) {
	s := newTestStore(t, Options{})
	id := add(s, model.TypeHeading, 0, 0, 100, 20)

	s.AddAnimation(id, model.Animation{Type: model.AnimationFade, Duration: 1})
	s.AddAnimation(id, model.Animation{Type: model.AnimationSlide, Duration: 0.5})
	s.UpdateAnimation(id, 1, model.Animation{Type: model.AnimationSlide, Duration: 2, Direction: "down"})
	s.UpdateAnimation(id, 7, model.Animation{Type: model.AnimationRotate})
	s.RemoveAnimation(id, 0)
	s.RemoveAnimation(id, -1)
	s.RemoveAnimation(id, 5)

	got := mustElement(t, s, id).Animations
	want := []model.Animation{{Type: model.AnimationSlide, Duration: 2, Direction: "down"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("animations = %+v, want %+v", got, want)
	}
}

func TestActionCRUD(t *testing.T) {
	s := newTestStore(t, Options{})
	id := add(s, model.TypeButton, 0, 0, 100, 20)

	s.AddAction(id, model.Action{Type: model.ActionLink, EventType: model.EventClick, URL: "/a"})
	s.UpdateAction(id, 0, model.Action{Type: model.ActionLink, EventType: model.EventClick, URL: "/b"})
	s.UpdateAction(id, 3, model.Action{Type: model.ActionCustom})
	s.AddAction(id, model.Action{Type: model.ActionToggle, EventType: model.EventHover, Target: "menu"})
	s.RemoveAction(id, 9)

	got := mustElement(t, s, id).Actions
	if len(got) != 2 || got[0].URL != "/b" || got[1].Target != "menu" {
		t.Errorf("actions = %+v", got)
	}
	s.RemoveAction(id, 0)
	if got := mustElement(t, s, id).Actions; len(got) != 1 || got[0].Type != model.ActionToggle {
		t.Errorf("actions after remove = %+v", got)
	}
}

func TestUpdateResponsiveStylesMerges(t *testing.T) {
	s := newTestStore(t, Options{})
	id := add(s, model.TypeSection, 0, 0, 100, 20)

	s.UpdateResponsiveStyles(id, model.DeviceMobile, map[string]string{"display": "none"})
	s.UpdateResponsiveStyles(id, model.DeviceMobile, map[string]string{"color": "red"})
	s.UpdateResponsiveStyles(id, model.DeviceTablet, map[string]string{"width": "50%"})

	r := mustElement(t, s, id).Responsive
	if !reflect.DeepEqual(r[model.DeviceMobile].Styles, map[string]string{"display": "none", "color": "red"}) {
		t.Errorf("mobile = %v", r[model.DeviceMobile].Styles)
	}
	if r[model.DeviceTablet].Styles["width"] != "50%" {
		t.Errorf("tablet = %v", r[model.DeviceTablet].Styles)
	}
}

func TestDataConnectionPassesThrough(t *testing.T) {
	s := newTestStore(t, Options{})
	dc := &model.DataConnection{Source: "products", Fields: []string{"name", "price"}, Filters: map[string]string{"active": "true"}}
	id := s.AddElement(model.ElementInfo{Type: model.TypeProductGallery, DataConnection: dc})
	dc.Fields[0] = "mutated"

	dup := s.DuplicateElement(id)
	got := mustElement(t, s, dup).DataConnection
	if got == nil || got.Source != "products" || got.Fields[0] != "name" || got.Filters["active"] != "true" {
		t.Errorf("data connection = %+v", got)
	}
}
