package exif

import (
	"math"
	"testing"
)

func TestDMSToDecimal(t *testing.T) {
	tests := []struct {
		name       string
		components []any
		ref        string
		want       float64
		ok         bool
	}{
		{"san francisco latitude", []any{"37/1", "46/1", "2964/100"}, "N", 37.7749, true},
		{"san francisco longitude", []any{"122/1", "25/1", "984/100"}, "W", -122.4194, true},
		{"south negates", []any{"10/1", "30/1", "0/1"}, "S", -10.5, true},
		{"unknown marker stays positive", []any{"10/1", "30/1", "0/1"}, "X", 10.5, true},
		{"absent marker stays positive", []any{"10/1", "30/1", "0/1"}, "", 10.5, true},
		{"lowercase marker stays positive", []any{"10/1", "30/1", "0/1"}, "s", 10.5, true},
		{"plain numbers", []any{52, 31, 12.0}, "N", 52.52, true},
		{"two components", []any{"10/1", "30/1"}, "N", 0, false},
		{"no components", nil, "N", 0, false},
		{"bad degrees", []any{"x/1", "30/1", "0/1"}, "N", 0, false},
		{"bad minutes", []any{"10/1", "30/0", "0/1"}, "N", 0, false},
		{"bad seconds", []any{"10/1", "30/1", "oops"}, "N", 0, false},
		{"out of range passes through", []any{"120/1", "0/1", "0/1"}, "N", 120.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DMSToDecimal(tt.components, tt.ref)
			if ok != tt.ok {
				t.Fatalf("DMSToDecimal(%v, %q) ok = %v, want %v", tt.components, tt.ref, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-4 {
				t.Fatalf("DMSToDecimal(%v, %q) = %v, want %v", tt.components, tt.ref, got, tt.want)
			}
		})
	}
}

// Negating hemispheres must mirror the positive result exactly for any
// parseable triple.
func TestDMSToDecimalNegationSymmetry(t *testing.T) {
	triples := [][]any{
		{"37/1", "46/1", "2964/100"},
		{"0/1", "0/1", "1/1"},
		{"89/1", "59/1", "599/10"},
		{1, 2, 3},
	}

	for _, triple := range triples {
		pos, ok := DMSToDecimal(triple, "N")
		if !ok {
			t.Fatalf("DMSToDecimal(%v, N) unexpectedly failed", triple)
		}

		for _, ref := range []string{"S", "W"} {
			neg, ok := DMSToDecimal(triple, ref)
			if !ok {
				t.Fatalf("DMSToDecimal(%v, %s) unexpectedly failed", triple, ref)
			}
			if neg != -pos {
				t.Errorf("DMSToDecimal(%v, %s) = %v, want %v", triple, ref, neg, -pos)
			}
		}

		for _, ref := range []string{"E", ""} {
			same, ok := DMSToDecimal(triple, ref)
			if !ok || same != pos {
				t.Errorf("DMSToDecimal(%v, %q) = %v (%v), want %v", triple, ref, same, ok, pos)
			}
		}
	}
}
