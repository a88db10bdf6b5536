package sequence

import (
	"errors"
	"reflect"
	"testing"
)

func TestRangeLen(t *testing.T) {
	if got := New("1", 10, 25).Len(); got != 15 {
		t.Errorf("Len() = %d, want 15", got)
	}
	if got := New("1", 10, 10).Len(); got != 0 {
		t.Errorf("Len() of empty range = %d, want 0", got)
	}
}

func TestNewMutantReverse(t *testing.T) {
	// With reverse set the payload is stored in genomic sense.
	r := NewMutant("1", 10, 13, "acg", "tga", true)
	if r.Mutation != "tca" {
		t.Errorf("Mutation = %q, want %q", r.Mutation, "tca")
	}
	if r.Reference != "acg" {
		t.Errorf("Reference = %q, want %q (stored as declared)", r.Reference, "acg")
	}
	if !r.Mutant || !r.Reverse {
		t.Errorf("Mutant = %v, Reverse = %v, want both true", r.Mutant, r.Reverse)
	}

	plain := NewMutant("1", 10, 13, "acg", "tga", false)
	if plain.Mutation != "tga" {
		t.Errorf("Mutation = %q, want %q", plain.Mutation, "tga")
	}
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"abutting left-right", New("1", 0, 5), New("1", 5, 10), true},
		{"abutting right-left", New("1", 5, 10), New("1", 0, 5), true},
		{"gap", New("1", 0, 5), New("1", 6, 10), false},
		{"overlap", New("1", 0, 6), New("1", 5, 10), false},
		{"different chromosome", New("1", 0, 5), New("2", 5, 10), false},
		{"reverse mismatch", New("1", 0, 5), NewReverse("1", 5, 10), false},
		{"mutant mismatch", New("1", 0, 5), NewMutant("1", 5, 10, "", "a", false), false},
		{"empty range abutting", New("1", 5, 5), New("1", 5, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Adjacent(tt.b); got != tt.want {
				t.Errorf("%v.Adjacent(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestConcat(t *testing.T) {
	a := New("1", 0, 5)
	b := New("1", 5, 10)

	combined, err := a.Concat(b)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if combined != New("1", 0, 10) {
		t.Errorf("Concat = %v, want 1:[0,10)", combined)
	}

	// Order independent
	combined, err = b.Concat(a)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if combined != New("1", 0, 10) {
		t.Errorf("Concat = %v, want 1:[0,10)", combined)
	}

	_, err = a.Concat(New("1", 6, 10))
	var adjErr *AdjacencyError
	if !errors.As(err, &adjErr) {
		t.Errorf("Concat of non-adjacent ranges: got %v, want *AdjacencyError", err)
	}
}

func TestCondense(t *testing.T) {
	tests := []struct {
		name   string
		ranges []Range
		want   []Range
	}{
		{
			"empty",
			nil,
			nil,
		},
		{
			"single",
			[]Range{New("1", 0, 5)},
			[]Range{New("1", 0, 5)},
		},
		{
			"all adjacent",
			[]Range{New("1", 0, 5), New("1", 5, 10), New("1", 10, 12)},
			[]Range{New("1", 0, 12)},
		},
		{
			"gap splits runs",
			[]Range{New("1", 0, 5), New("1", 5, 10), New("1", 20, 30), New("1", 30, 31)},
			[]Range{New("1", 0, 10), New("1", 20, 31)},
		},
		{
			"chromosome change splits runs",
			[]Range{New("1", 0, 5), New("2", 5, 10)},
			[]Range{New("1", 0, 5), New("2", 5, 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Condense(tt.ranges...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Condense(%v) = %v, want %v", tt.ranges, got, tt.want)
			}
		})
	}
}
