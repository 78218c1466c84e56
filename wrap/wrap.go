// Package wrap 将标签按测得的文本宽度贪心折行，使每行适应给定的像素宽度。
package wrap

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/labelwrap/fontspec"
)

var (
	// ErrEmptyLabel 表示标签为空或只含空白。
	ErrEmptyLabel = errors.New("wrap: empty label")
	// ErrInvalidWidth 表示宽度为负数、NaN 或无穷大。
	ErrInvalidWidth = errors.New("wrap: invalid box width")
	// ErrInvalidPadding 表示边距为负数、NaN 或无穷大。
	ErrInvalidPadding = errors.New("wrap: invalid padding")
	// ErrMeasurerUnavailable 表示没有可用的文本测量能力。
	ErrMeasurerUnavailable = errors.New("wrap: text measurer unavailable")
)

// Wrapper 持有测量能力与折行参数；自身没有可变状态，可在多次调用间复用。
type Wrapper struct {
	measurer TextMeasurer
	font     fontspec.Spec
	padding  float64
}

// New 创建 Wrapper。opts.Font 为空时使用 10px sans-serif。
func New(m TextMeasurer, opts Options) (*Wrapper, error) {
	if m == nil {
		return nil, ErrMeasurerUnavailable
	}
	if opts.Padding < 0 || math.IsNaN(opts.Padding) || math.IsInf(opts.Padding, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidPadding, opts.Padding)
	}
	font := opts.Font
	if font.IsZero() {
		font = fontspec.Default()
	}
	return &Wrapper{measurer: m, font: font, padding: opts.Padding}, nil
}

// Wrap 使用默认参数折行，等价于 New(m, DefaultOptions()).Wrap(label, boxWidth)。
func Wrap(m TextMeasurer, label string, boxWidth float64) ([]string, error) {
	w, err := New(m, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return w.Wrap(label, boxWidth)
}

// Font returns the font used for measuring.
func (w *Wrapper) Font() fontspec.Spec { return w.font }

// Padding returns the margin subtracted from every box width.
func (w *Wrapper) Padding() float64 { return w.padding }

// Wrap 将 label 按空白切分为词，逐词尝试追加到当前行：
// 候选行宽度严格小于 boxWidth-padding 时接受，否则结束当前行并以该词开始新行。
// 单个超宽的词独占一行且不会被拆开。
func (w *Wrapper) Wrap(label string, boxWidth float64) ([]string, error) {
	if boxWidth < 0 || math.IsNaN(boxWidth) || math.IsInf(boxWidth, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidWidth, boxWidth)
	}
	words := strings.Fields(label)
	if len(words) == 0 {
		return nil, ErrEmptyLabel
	}

	limit := boxWidth - w.padding
	lines := make([]string, 0, 2)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		width, err := w.measurer.Measure(candidate, w.font)
		if err != nil {
			return nil, fmt.Errorf("测量 %q 失败: %w", candidate, err)
		}
		if width < limit {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current), nil
}
