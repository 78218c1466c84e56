package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// ParseColor 解析 #rgb、#rrggbb 或 #rrggbbaa（忽略 alpha）。
func ParseColor(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(v) {
	case 3:
		v = strings.Repeat(v[0:1], 2) + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2)
	case 6:
	case 8:
		v = v[:6]
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}

func mustColor(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

// Category10 是常用的十色分类配色。
var Category10 = []Color{
	mustColor("#1f77b4"), mustColor("#ff7f0e"), mustColor("#2ca02c"), mustColor("#d62728"),
	mustColor("#9467bd"), mustColor("#8c564b"), mustColor("#e377c2"), mustColor("#7f7f7f"),
	mustColor("#bcbd22"), mustColor("#17becf"),
}

// Palette 将分类映射为颜色：按分类首次出现的顺序依次取色，颜色用尽后循环。
type Palette struct {
	colors []Color
	index  map[string]int
}

// NewPalette creates a palette over an ordered category domain. An empty
// colour list uses Category10.
func NewPalette(categories []string, colors []Color) *Palette {
	if len(colors) == 0 {
		colors = Category10
	}
	p := &Palette{colors: colors, index: map[string]int{}}
	for _, c := range categories {
		p.add(c)
	}
	return p
}

func (p *Palette) add(category string) int {
	key := strings.TrimSpace(category)
	if i, ok := p.index[key]; ok {
		return i
	}
	i := len(p.index)
	p.index[key] = i
	return i
}

// Color returns the colour of category, extending the domain for categories
// not seen before.
func (p *Palette) Color(category string) Color {
	return p.colors[p.add(category)%len(p.colors)]
}
