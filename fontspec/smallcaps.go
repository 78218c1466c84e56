package fontspec

import (
	"strings"
	"unicode"
)

// SmallCapsScale 是合成小型大写字母相对于字号的比例。
const SmallCapsScale = 0.7

// Run 是一段使用同一字号绘制的文本。Small 为 true 时以缩小字号绘制。
type Run struct {
	Text  string
	Small bool
}

// SmallCapsRuns 将小写字母转为大写并标记为 Small，其余字符保持原字号。
// 相邻同类字符合并为一段。
func SmallCapsRuns(text string) []Run {
	var (
		runs []Run
		buf  strings.Builder
		cur  bool
	)
	flush := func() {
		if buf.Len() > 0 {
			runs = append(runs, Run{Text: buf.String(), Small: cur})
			buf.Reset()
		}
	}
	for _, r := range text {
		small := unicode.IsLower(r)
		if small != cur {
			flush()
			cur = small
		}
		if small {
			r = unicode.ToUpper(r)
		}
		buf.WriteRune(r)
	}
	flush()
	return runs
}

// SmallCapsFace 返回绘制 Small 段所用的字体：去掉 small-caps，字号乘以 SmallCapsScale。
func (s Spec) SmallCapsFace() Spec {
	s.SmallCaps = false
	s.Size = PX(s.SizePX() * SmallCapsScale)
	return s
}

// LineHeightPX 返回简写中给出的行高（像素）。无单位数值、em 与百分比相对字号计算。
func (s Spec) LineHeightPX() (float64, bool) {
	if s.LineHeight == nil {
		return 0, false
	}
	lh := *s.LineHeight
	switch lh.Unit {
	case UnitNone, UnitEM:
		return lh.Value * s.SizePX(), true
	case UnitPercent:
		return lh.Value / 100 * s.SizePX(), true
	default:
		return lh.ToPX(), true
	}
}
