// Package fontspec 描述测量文本所用的字体：字号、字重、样式与候选字体族列表。
package fontspec

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid 表示字体简写无法解析。
var ErrInvalid = errors.New("fontspec: invalid font shorthand")

// Weight is a CSS numeric font weight.
type Weight int

const (
	WeightThin   Weight = 100
	WeightNormal Weight = 400
	WeightBold   Weight = 700
)

// Generic family names understood by every measurer.
const (
	SansSerif = "sans-serif"
	Serif     = "serif"
	Monospace = "monospace"
)

// Default size and family used by the label wrapper.
const (
	DefaultSizePX = 10.0
	DefaultFamily = SansSerif
)

// Spec 是解析后的字体描述。Families 按优先级排列，测量方使用第一个可加载的字体族。
type Spec struct {
	Size       Length   `json:"size" yaml:"size"`
	LineHeight *Length  `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	Families   []string `json:"families" yaml:"families"`
	Weight     Weight   `json:"weight" yaml:"weight"`
	Italic     bool     `json:"italic,omitempty" yaml:"italic,omitempty"`
	SmallCaps  bool     `json:"smallCaps,omitempty" yaml:"smallCaps,omitempty"`
}

// Default 返回 10px sans-serif。
func Default() Spec {
	return Spec{
		Size:     PX(DefaultSizePX),
		Families: []string{DefaultFamily},
		Weight:   WeightNormal,
	}
}

// IsZero reports whether no size or family was set.
func (s Spec) IsZero() bool { return s.Size.IsZero() && len(s.Families) == 0 }

// SizePX returns the font size in CSS pixels.
func (s Spec) SizePX() float64 { return s.Size.ToPX() }

// Bold reports whether the weight should select a bold face.
func (s Spec) Bold() bool { return s.Weight >= 600 }

// WithSize returns a copy of s using a pixel size.
func (s Spec) WithSize(px float64) Spec {
	s.Size = PX(px)
	return s
}

var bareFamily = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*(?: -?[A-Za-z_][A-Za-z0-9_-]*)*$`)

// String 输出规范化的简写形式，可再次被 Parse 解析，也作为测量缓存的键。
func (s Spec) String() string {
	var parts []string
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.SmallCaps {
		parts = append(parts, "small-caps")
	}
	if s.Weight != 0 && s.Weight != WeightNormal {
		parts = append(parts, strconv.Itoa(int(s.Weight)))
	}
	size := s.Size.String()
	if s.LineHeight != nil {
		size += "/" + s.LineHeight.String()
	}
	parts = append(parts, size)

	families := make([]string, 0, len(s.Families))
	for _, f := range s.Families {
		if bareFamily.MatchString(f) {
			families = append(families, f)
		} else {
			families = append(families, "'"+strings.ReplaceAll(f, "'", "")+"'")
		}
	}
	return strings.Join(parts, " ") + " " + strings.Join(families, ", ")
}
