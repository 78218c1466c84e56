// Package canvasmeasure measures text with github.com/tdewolff/canvas font faces.
package canvasmeasure

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/labelwrap/fonts"
	"github.com/ByLCY/labelwrap/fontspec"
	"github.com/ByLCY/labelwrap/wrap"
)

// Measurer resolves fonts through a fonts.Registry and reports advance widths
// in CSS pixels.
type Measurer struct {
	registry *fonts.Registry

	mu       sync.Mutex
	families map[string]*familyEntry
}

var _ wrap.TextMeasurer = (*Measurer)(nil)

type familyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// New creates a measurer. A nil registry uses the built-in fonts only.
func New(registry *fonts.Registry) *Measurer {
	if registry == nil {
		registry = fonts.NewRegistry("")
	}
	return &Measurer{
		registry: registry,
		families: map[string]*familyEntry{},
	}
}

// Measure implements wrap.TextMeasurer.
func (m *Measurer) Measure(text string, font fontspec.Spec) (float64, error) {
	segs, err := m.Segments(text, font, canvas.Black)
	if err != nil {
		return 0, err
	}
	var width float64
	for _, seg := range segs {
		width += seg.Width
	}
	return width, nil
}

// Segment 是使用同一字体面绘制的一段文本，Width 为像素宽度。
type Segment struct {
	Text  string
	Face  *canvas.FontFace
	Width float64
}

// Segments 将 text 拆为可直接绘制的段。普通字体只有一段；small-caps 时
// 小写字母以缩小的大写字母合成，与测量结果一致。
func (m *Measurer) Segments(text string, font fontspec.Spec, col color.Color) ([]Segment, error) {
	if !font.SmallCaps {
		face, err := m.Face(font, col)
		if err != nil {
			return nil, err
		}
		return []Segment{newSegment(text, face)}, nil
	}

	full, err := m.Face(font, col)
	if err != nil {
		return nil, err
	}
	small, err := m.Face(font.SmallCapsFace(), col)
	if err != nil {
		return nil, err
	}
	runs := fontspec.SmallCapsRuns(text)
	segs := make([]Segment, 0, len(runs))
	for _, run := range runs {
		face := full
		if run.Small {
			face = small
		}
		segs = append(segs, newSegment(run.Text, face))
	}
	return segs, nil
}

func newSegment(text string, face *canvas.FontFace) Segment {
	// canvas works in millimetres.
	return Segment{Text: text, Face: face, Width: face.TextWidth(text) * fontspec.MmToPx}
}

// Face returns a canvas font face for font in the given colour. Failure to
// resolve or load any family wraps wrap.ErrMeasurerUnavailable.
func (m *Measurer) Face(font fontspec.Spec, col color.Color) (*canvas.FontFace, error) {
	if m == nil || m.registry == nil {
		return nil, fmt.Errorf("%w: canvas measurer is nil", wrap.ErrMeasurerUnavailable)
	}
	size := font.Size.ToPT()
	if size <= 0 {
		return nil, fmt.Errorf("%w: font %q has no size", wrap.ErrMeasurerUnavailable, font.String())
	}
	entry, err := m.ensureFamily(font)
	if err != nil {
		return nil, err
	}
	return entry.family.Face(size, col, entry.style, canvas.FontNormal), nil
}

func (m *Measurer) ensureFamily(font fontspec.Spec) (*familyEntry, error) {
	face, err := m.registry.Resolve(font)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wrap.ErrMeasurerUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.families[face.Key]; ok {
		return entry, nil
	}

	style := fontStyle(face)
	family := canvas.NewFontFamily(face.Family)
	if err := family.LoadFont(face.Data, 0, style); err != nil {
		return nil, fmt.Errorf("%w: load font %s: %w", wrap.ErrMeasurerUnavailable, face.Family, err)
	}
	entry := &familyEntry{family: family, style: style}
	m.families[face.Key] = entry
	return entry, nil
}

func fontStyle(face fonts.Face) canvas.FontStyle {
	style := canvas.FontRegular
	if face.Bold {
		style = canvas.FontBold
	}
	if face.Italic {
		style |= canvas.FontItalic
	}
	return style
}
