package wrap

import "github.com/ByLCY/labelwrap/fontspec"

// DefaultPadding 是从盒子宽度中扣除的固定边距（像素），为标签左右留出视觉空隙。
const DefaultPadding = 6.0

// Options 配置换行时使用的字体与边距。
type Options struct {
	Font    fontspec.Spec
	Padding float64 // 从 boxWidth 中扣除的像素，必须 >= 0
}

// DefaultOptions 返回 10px sans-serif 与 6px 边距。
func DefaultOptions() Options {
	return Options{
		Font:    fontspec.Default(),
		Padding: DefaultPadding,
	}
}

// TextMeasurer 返回文本在给定字体下的渲染宽度（CSS 像素）。
// 实现必须基于真实的字形度量，而不是按字符数估算。
type TextMeasurer interface {
	Measure(text string, font fontspec.Spec) (float64, error)
}

// MeasureFunc adapts an ordinary function to TextMeasurer.
type MeasureFunc func(text string, font fontspec.Spec) (float64, error)

// Measure calls f(text, font).
func (f MeasureFunc) Measure(text string, font fontspec.Spec) (float64, error) {
	return f(text, font)
}
