// Package sfntmeasure measures text with golang.org/x/image/font/opentype faces.
// Advances are unhinted so widths scale linearly with the font size.
package sfntmeasure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/ByLCY/labelwrap/fonts"
	"github.com/ByLCY/labelwrap/fontspec"
	"github.com/ByLCY/labelwrap/wrap"
)

type faceKey struct {
	font string
	size float64
}

// Measurer is safe for concurrent use; font.Face values are not, so each
// measurement holds the lock.
type Measurer struct {
	registry *fonts.Registry

	mu     sync.Mutex
	parsed map[string]*opentype.Font
	faces  map[faceKey]font.Face
}

var _ wrap.TextMeasurer = (*Measurer)(nil)

// New creates a measurer. A nil registry uses the built-in fonts only.
func New(registry *fonts.Registry) *Measurer {
	if registry == nil {
		registry = fonts.NewRegistry("")
	}
	return &Measurer{
		registry: registry,
		parsed:   map[string]*opentype.Font{},
		faces:    map[faceKey]font.Face{},
	}
}

// Measure implements wrap.TextMeasurer. small-caps is synthesized from
// uppercase glyphs at fontspec.SmallCapsScale of the font size.
func (m *Measurer) Measure(text string, spec fontspec.Spec) (float64, error) {
	if m == nil || m.registry == nil {
		return 0, fmt.Errorf("%w: sfnt measurer is nil", wrap.ErrMeasurerUnavailable)
	}
	size := spec.SizePX()
	if size <= 0 {
		return 0, fmt.Errorf("%w: font %q has no size", wrap.ErrMeasurerUnavailable, spec.String())
	}
	resolved, err := m.registry.Resolve(spec)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", wrap.ErrMeasurerUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !spec.SmallCaps {
		return m.advance(resolved, size, text)
	}

	var width float64
	for _, run := range fontspec.SmallCapsRuns(text) {
		px := size
		if run.Small {
			px = spec.SmallCapsFace().SizePX()
		}
		w, err := m.advance(resolved, px, run.Text)
		if err != nil {
			return 0, err
		}
		width += w
	}
	return width, nil
}

// advance must be called with m.mu held.
func (m *Measurer) advance(resolved fonts.Face, sizePX float64, text string) (float64, error) {
	face, err := m.face(resolved, sizePX)
	if err != nil {
		return 0, err
	}
	return float64(font.MeasureString(face, text)) / 64, nil
}

// Close releases all cached faces.
func (m *Measurer) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var first error
	for k, f := range m.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(m.faces, k)
	}
	return first
}

// face must be called with m.mu held.
func (m *Measurer) face(resolved fonts.Face, sizePX float64) (font.Face, error) {
	key := faceKey{font: resolved.Key, size: sizePX}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	parsed, ok := m.parsed[resolved.Key]
	if !ok {
		var err error
		parsed, err = opentype.Parse(resolved.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: parse font %s: %w", wrap.ErrMeasurerUnavailable, resolved.Family, err)
		}
		m.parsed[resolved.Key] = parsed
	}
	// 以 96 DPI 的磅值创建字体面，使 1 个输出像素等于 1 个 CSS 像素。
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePX * fontspec.PxToPt,
		DPI:     fontspec.PxPerIn,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: face %s: %w", wrap.ErrMeasurerUnavailable, resolved.Family, err)
	}
	m.faces[key] = f
	return f, nil
}
