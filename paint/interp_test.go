package paint

import (
	"math"
	"testing"
)

func TestParseInterpolationMode(t *testing.T) {
	cases := []struct {
		in     string
		want   InterpolationMode
		wantOK bool
	}{
		{"linear", Linear, true},
		{"EaseIn", EaseIn, true},
		{"EASEOUT", EaseOut, true},
		{"SmoothStep", Smoothstep, true},
		{"Step", Step, true},
		{" EaseIn ", Linear, false},
		{"bogus", Linear, false},
		{"", Linear, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, ok := ParseInterpolationMode(c.in)
			if got != c.want || ok != c.wantOK {
				t.Fatalf("ParseInterpolationMode(%q) = %v, %v", c.in, got, ok)
			}
		})
	}
}

func TestInterpolationApply(t *testing.T) {
	cases := []struct {
		mode InterpolationMode
		t    float64
		want float64
	}{
		{Linear, 0.25, 0.25},
		{EaseIn, 0.5, 0.25},
		{EaseOut, 0.5, 0.75},
		{Smoothstep, 0.5, 0.5},
		{Smoothstep, 0.25, 0.15625},
		{Step, 0.99, 0},
		{Step, 1, 1},
		{EaseIn, -1, 0},
		{EaseOut, 2, 1},
	}
	for _, c := range cases {
		if got := c.mode.Apply(c.t); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%v.Apply(%v) = %v, want %v", c.mode, c.t, got, c.want)
		}
	}
}

func TestInterpolationCurvesAreMonotonic(t *testing.T) {
	for _, mode := range []InterpolationMode{Linear, EaseIn, EaseOut, Smoothstep, Step} {
		prev := mode.Apply(0)
		for i := 1; i <= 100; i++ {
			cur := mode.Apply(float64(i) / 100)
			if cur < prev {
				t.Fatalf("%v decreased at %d", mode, i)
			}
			prev = cur
		}
		if prev != 1 {
			t.Fatalf("%v does not end at 1", mode)
		}
	}
}
