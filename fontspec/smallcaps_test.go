package fontspec_test

import (
	"reflect"
	"testing"

	"github.com/ByLCY/labelwrap/fontspec"
)

func TestSmallCapsRuns(t *testing.T) {
	got := fontspec.SmallCapsRuns("The Avengers 2")
	want := []fontspec.Run{
		{Text: "T"},
		{Text: "HE", Small: true},
		{Text: " A"},
		{Text: "VENGERS", Small: true},
		{Text: " 2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected runs: %#v", got)
	}
	if runs := fontspec.SmallCapsRuns(""); len(runs) != 0 {
		t.Fatalf("expected no runs, got %#v", runs)
	}
}

func TestSmallCapsFace(t *testing.T) {
	spec := fontspec.MustParse("small-caps bold 20px serif")
	small := spec.SmallCapsFace()
	if small.SmallCaps {
		t.Fatalf("small face must not be small-caps again")
	}
	if small.SizePX() != 14 {
		t.Fatalf("expected 14px, got %g", small.SizePX())
	}
	if !small.Bold() || small.Families[0] != "serif" {
		t.Fatalf("weight and family must be kept: %+v", small)
	}
}

func TestLineHeightPX(t *testing.T) {
	cases := map[string]float64{
		"10px/1.5 sans-serif":  15,
		"10px/2em sans-serif":  20,
		"10px/120% sans-serif": 12,
		"10px/14px sans-serif": 14,
		"10px/0.5in serif":     48,
	}
	for in, want := range cases {
		got, ok := fontspec.MustParse(in).LineHeightPX()
		if !ok || got != want {
			t.Fatalf("%s: expected %g, got %g (%v)", in, want, got, ok)
		}
	}
	if _, ok := fontspec.Default().LineHeightPX(); ok {
		t.Fatalf("default font has no line height")
	}
}
