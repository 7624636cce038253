package reactive

import (
	"math"
	"testing"
)

type named int

func TestLooseEqual(t *testing.T) {
	m := map[string]any{}
	s := []int{1}
	var nilPtr *State

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int int", 1, 1, true},
		{"int float", 1, 1.0, true},
		{"int string", 1, "1", true},
		{"string int", "1", 1, true},
		{"padded string", " 2 ", 2, true},
		{"empty string zero", "", 0, true},
		{"hex string", "0x10", 16, true},
		{"garbage string", "abc", 0, false},
		{"string string", "1", "1.0", false},
		{"bool int", true, 1, true},
		{"bool string", false, "0", true},
		{"bool bool", true, false, false},
		{"nil nil", nil, nil, true},
		{"nil typed nil", nil, nilPtr, true},
		{"nil zero", nil, 0, false},
		{"nil false", nil, false, false},
		{"named int", named(3), 3, true},
		{"uint int", uint8(4), int64(4), true},
		{"nan", math.NaN(), math.NaN(), false},
		{"same map", m, m, true},
		{"different maps", map[string]any{}, map[string]any{}, false},
		{"same slice", s, s, true},
		{"different slices", []int{1}, []int{1}, false},
		{"int vs slice", 1, []int{1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooseEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("LooseEqual(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStrictEqual(t *testing.T) {
	type point struct{ X, Y int }
	type boxed struct{ V any }
	p := &point{1, 2}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int int", 1, 1, true},
		{"int float", 1, 1.0, false},
		{"int string", 1, "1", false},
		{"string string", "a", "a", true},
		{"nil nil", nil, nil, true},
		{"nil zero", nil, 0, false},
		{"same pointer", p, p, true},
		{"equal pointees", &point{1, 2}, &point{1, 2}, false},
		{"struct values", point{1, 2}, point{1, 2}, true},
		{"struct holding slice", boxed{[]int{1}}, boxed{[]int{1}}, false},
		{"func", func() {}, func() {}, false},
		{"nan", math.NaN(), math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrictEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("StrictEqual(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
