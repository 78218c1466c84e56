package sfntmeasure

import (
	"errors"
	"math"
	"testing"

	"github.com/ByLCY/labelwrap/fonts"
	"github.com/ByLCY/labelwrap/fontspec"
	canvasmeasure "github.com/ByLCY/labelwrap/measure/canvas"
	"github.com/ByLCY/labelwrap/wrap"
)

func measure(t *testing.T, m *Measurer, text, font string) float64 {
	t.Helper()
	w, err := m.Measure(text, fontspec.MustParse(font))
	if err != nil {
		t.Fatalf("measure %q in %q: %v", text, font, err)
	}
	return w
}

func TestMeasureProportionalAndLinear(t *testing.T) {
	m := New(nil)
	t.Cleanup(func() { _ = m.Close() })

	narrow := measure(t, m, "llllllllll", "10px sans-serif")
	wide := measure(t, m, "MMMMMMMMMM", "10px sans-serif")
	if wide <= 2*narrow {
		t.Fatalf("expected M to be much wider than l: M=%g l=%g", wide, narrow)
	}

	w10 := measure(t, m, "Inception", "10px sans-serif")
	w30 := measure(t, m, "Inception", "30px sans-serif")
	if ratio := w30 / w10; math.Abs(ratio-3) > 0.05 {
		t.Fatalf("tripling the size should triple the width, ratio=%g", ratio)
	}
}

func TestMeasureAgreesWithCanvasEngine(t *testing.T) {
	s := New(nil)
	t.Cleanup(func() { _ = s.Close() })
	c := canvasmeasure.New(nil)

	for _, spec := range []string{"10px sans-serif", "bold 14px sans-serif", "12px serif", "11px monospace", "small-caps 10px sans-serif"} {
		a := measure(t, s, "Pirates of the Caribbean", spec)
		b, err := c.Measure("Pirates of the Caribbean", fontspec.MustParse(spec))
		if err != nil {
			t.Fatalf("canvas measure %q: %v", spec, err)
		}
		if math.Abs(a-b)/b >= 0.1 {
			t.Fatalf("%s: sfnt=%g canvas=%g", spec, a, b)
		}
	}
}

func TestMeasureSmallCaps(t *testing.T) {
	m := New(nil)
	t.Cleanup(func() { _ = m.Close() })

	caps := measure(t, m, "abc", "small-caps 10px sans-serif")
	if normal := measure(t, m, "abc", "10px sans-serif"); caps == normal {
		t.Fatalf("small-caps must change the width, both are %g", caps)
	}
	if upper := measure(t, m, "ABC", "7px sans-serif"); math.Abs(caps-upper) > 1e-9 {
		t.Fatalf("expected synthesized width %g, got %g", upper, caps)
	}
}

func TestMeasureUnavailableFont(t *testing.T) {
	reg := fonts.NewRegistry("")
	reg.Register("Garbage", fonts.Resource{Bytes: []byte("nope")})
	m := New(reg)

	if _, err := m.Measure("x", fontspec.MustParse("10px Garbage")); !errors.Is(err, wrap.ErrMeasurerUnavailable) {
		t.Fatalf("expected ErrMeasurerUnavailable, got %v", err)
	}

	_, err := m.Measure("x", fontspec.MustParse("10px Missing"))
	if !errors.Is(err, wrap.ErrMeasurerUnavailable) || !errors.Is(err, fonts.ErrNoFont) {
		t.Fatalf("expected ErrMeasurerUnavailable and ErrNoFont, got %v", err)
	}
}

func TestNilMeasurerIsUnavailable(t *testing.T) {
	var m *Measurer
	if _, err := m.Measure("x", fontspec.Default()); !errors.Is(err, wrap.ErrMeasurerUnavailable) {
		t.Fatalf("expected ErrMeasurerUnavailable, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("closing a nil measurer: %v", err)
	}

	w, err := wrap.New(m, wrap.DefaultOptions())
	if err != nil {
		t.Fatalf("new wrapper: %v", err)
	}
	if _, err := w.Wrap("Toy Story 3", 80); !errors.Is(err, wrap.ErrMeasurerUnavailable) {
		t.Fatalf("expected ErrMeasurerUnavailable from wrap, got %v", err)
	}
}

func TestWrapWithSfntMetrics(t *testing.T) {
	m := New(nil)
	t.Cleanup(func() { _ = m.Close() })

	lines, err := wrap.Wrap(m, "Supercalifragilisticexpialidocious", 10)
	if err != nil || len(lines) != 1 || lines[0] != "Supercalifragilisticexpialidocious" {
		t.Fatalf("oversized token must stay on one line: %q, %v", lines, err)
	}

	lines, err = wrap.Wrap(m, "Toy Story 3", 400)
	if err != nil || len(lines) != 1 || lines[0] != "Toy Story 3" {
		t.Fatalf("expected a single line at 400px: %q, %v", lines, err)
	}
}
