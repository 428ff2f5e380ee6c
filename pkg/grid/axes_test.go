package grid

import "testing"

func TestAxesCombinators(t *testing.T) {
	x := Of(3, 5)
	y := Of(10, 20)

	if got := MapAxes(x, func(v int) int { return v * 2 }); got != Of(6, 10) {
		t.Errorf("MapAxes = %v, want %v", got, Of(6, 10))
	}
	if got := ZipAxes(x, y, func(a, b int) int { return b - a }); got != Of(7, 15) {
		t.Errorf("ZipAxes = %v, want %v", got, Of(7, 15))
	}
	if got := CombineAxes(x, func(a, b int) int { return a * b }); got != 15 {
		t.Errorf("CombineAxes = %d, want 15", got)
	}
	if got := Add(x, y); got != Of(13, 25) {
		t.Errorf("Add = %v, want %v", got, Of(13, 25))
	}
	if got := Sub(y, x); got != Of(7, 15) {
		t.Errorf("Sub = %v, want %v", got, Of(7, 15))
	}
}

func TestAxesGetWith(t *testing.T) {
	x := Of("a", "b")
	if x.Get(AxisA) != "a" || x.Get(AxisB) != "b" {
		t.Errorf("Get = %q/%q, want a/b", x.Get(AxisA), x.Get(AxisB))
	}
	if got := x.With(AxisB, "z"); got != Of("a", "z") {
		t.Errorf("With(B) = %v, want %v", got, Of("a", "z"))
	}
	if x.B != "b" {
		t.Error("With should not modify the receiver")
	}
}

func TestAnyAll(t *testing.T) {
	tests := []struct {
		in       Axes[bool]
		any, all bool
	}{
		{Of(false, false), false, false},
		{Of(true, false), true, false},
		{Of(false, true), true, false},
		{Of(true, true), true, true},
	}
	for _, tt := range tests {
		if Any(tt.in) != tt.any || All(tt.in) != tt.all {
			t.Errorf("Any/All(%v) = %v/%v, want %v/%v", tt.in, Any(tt.in), All(tt.in), tt.any, tt.all)
		}
	}
}

func TestDirectionSpan(t *testing.T) {
	tests := []struct {
		dir               Direction
		offset, size      int
		leading, trailing int
		diff              int
	}{
		{End, 10, 4, 10, 14, 1},
		{Start, 10, 4, 6, 10, -1},
		{End, -3, 3, -3, 0, 1},
	}
	for _, tt := range tests {
		l, r := tt.dir.Span(tt.offset, tt.size)
		if l != tt.leading || r != tt.trailing {
			t.Errorf("%v.Span(%d, %d) = (%d, %d), want (%d, %d)", tt.dir, tt.offset, tt.size, l, r, tt.leading, tt.trailing)
		}
		if tt.dir.Diff() != tt.diff {
			t.Errorf("%v.Diff() = %d, want %d", tt.dir, tt.dir.Diff(), tt.diff)
		}
	}
}
