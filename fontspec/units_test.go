package fontspec

import (
	"math"
	"testing"
)

// TestPxPtRoundTrip 验证 px↔pt 换算的往返精度（允许极小的浮点误差）。
func TestPxPtRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 10, 12, 14.4, 72, 96, 1000}
	for _, px := range samples {
		pt := px * PxToPt
		back := pt * PtToPx
		if diff := math.Abs(back - px); diff > 1e-9 {
			t.Fatalf("px→pt→px 往返误差过大: in=%gpx pt=%g back=%g diff=%g", px, pt, back, diff)
		}
	}
}

// TestLengthToPX 覆盖 Length 在常见单位上换算为像素的正确性。
func TestLengthToPX(t *testing.T) {
	cases := []struct {
		in   Length
		want float64
	}{
		{Length{Value: 1, Unit: UnitIN}, 96},
		{Length{Value: 2.54, Unit: UnitCM}, 96},
		{Length{Value: 25.4, Unit: UnitMM}, 96},
		{Length{Value: 12, Unit: UnitPT}, 16},
		{Length{Value: 10, Unit: UnitPX}, 10},
		{Length{Value: 10, Unit: UnitNone}, 10},
		{Length{Value: 1.5, Unit: UnitEM}, 24},
		{Length{Value: 1, Unit: UnitREM}, 16},
		{Length{Value: 50, Unit: UnitPercent}, 8},
	}
	for _, c := range cases {
		if got := c.in.ToPX(); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s 转 px 期望 %g，实际 %g", c.in, c.want, got)
		}
	}
}

func TestParseLength(t *testing.T) {
	l, err := ParseLength(" 7.5PT ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if l.Unit != UnitPT || l.Value != 7.5 {
		t.Fatalf("unexpected length: %#v", l)
	}
	rem, err := ParseLength("2rem")
	if err != nil || rem.Unit != UnitREM {
		t.Fatalf("rem must not be read as em: %#v %v", rem, err)
	}
	if _, err := ParseLength("px"); err == nil {
		t.Fatalf("expected error for missing number")
	}
}
