package editor

import (
	"math"
	"reflect"
	"testing"

	"sitecraft/local-app/src/pkg/model"
)

func TestCheckInvariants(t *testing.T) {
	tests := []struct {
		name     string
		elements []model.Element
		wantErrs int
	}{
		{"empty", nil, 0},
		{
			"consistent group",
			[]model.Element{
				{ID: "g", Type: model.TypeGroup, Children: []string{"a"}},
				{ID: "a", Type: model.TypeText, Parent: "g"},
			},
			0,
		},
		{
			"duplicate id",
			[]model.Element{{ID: "a", Type: model.TypeText}, {ID: "a", Type: model.TypeText}},
			1,
		},
		{
			"dangling child",
			[]model.Element{{ID: "g", Type: model.TypeGroup, Children: []string{"missing"}}},
			1,
		},
		{
			"parent not listing child",
			[]model.Element{
				{ID: "g", Type: model.TypeGroup},
				{ID: "a", Type: model.TypeText, Parent: "g"},
			},
			1,
		},
		{
			"missing parent",
			[]model.Element{{ID: "a", Type: model.TypeText, Parent: "nowhere"}},
			1,
		},
		{
			"negative size and bad type",
			[]model.Element{{ID: "a", Type: "blink", Width: -1}},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := CheckInvariants(tt.elements)
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d errors %v, want %d", len(errs), errs, tt.wantErrs)
			}
		})
	}
}

func TestCheckInvariantsDetectsCycles(t *testing.T) {
	elements := []model.Element{
		{ID: "a", Type: model.TypeGroup, Parent: "b", Children: []string{"b"}},
		{ID: "b", Type: model.TypeGroup, Parent: "a", Children: []string{"a"}},
	}
	errs := CheckInvariants(elements)
	if len(errs) < 2 {
		t.Errorf("cycle not reported: %v", errs)
	}
}

func TestCheckInvariantsIsDeterministic(t *testing.T) {
	elements := []model.Element{
		{ID: "c", Type: model.TypeGroup, Parent: "a", Children: []string{"b"}},
		{ID: "a", Type: model.TypeGroup, Parent: "b", Children: []string{"c"}},
		{ID: "b", Type: model.TypeGroup, Parent: "c", Children: []string{"a"}},
		{ID: "n", Type: model.TypeText, X: math.NaN()},
	}
	messages := func() []string {
		var out []string
		for _, err := range CheckInvariants(elements) {
			out = append(out, err.Error())
		}
		return out
	}

	first := messages()
	want := []string{
		`element "c" is part of a parent cycle`,
		`element "a" is part of a parent cycle`,
		`element "b" is part of a parent cycle`,
	}
	if len(first) < len(want) || !reflect.DeepEqual(first[len(first)-len(want):], want) {
		t.Fatalf("cycle errors not in collection order: %v", first)
	}
	if !containsString(first, `element "n" has non-finite geometry`) {
		t.Errorf("non-finite geometry not reported: %v", first)
	}
	for i := 0; i < 20; i++ {
		if got := messages(); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%v\n%v", i, got, first)
		}
	}
}
