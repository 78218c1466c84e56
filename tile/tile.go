// Package tile 将数据集叶子排布为带标签的矩形：折行后的标签按固定行距放入矩形内。
// 坐标与尺寸均为 CSS 像素，原点在左上角。
package tile

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/labelwrap/dataset"
	"github.com/ByLCY/labelwrap/wrap"
)

// Tspan 是标签中的一行，坐标相对于所在矩形的左上角。
type Tspan struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Text string  `json:"text" yaml:"text"`
}

// LabelLayout 描述标签行在矩形内的放置方式。
type LabelLayout struct {
	OffsetX       float64 `json:"offsetX" yaml:"offsetX"`
	FirstBaseline float64 `json:"firstBaseline" yaml:"firstBaseline"`
	LineHeight    float64 `json:"lineHeight" yaml:"lineHeight"`
}

// DefaultLabelLayout 返回 x=4、首行基线 y=12、行距 10 的布局。
func DefaultLabelLayout() LabelLayout {
	return LabelLayout{OffsetX: 4, FirstBaseline: 12, LineHeight: 10}
}

// Place 第 i 行位于 (OffsetX, FirstBaseline + i*LineHeight)。
func (l LabelLayout) Place(lines []string) []Tspan {
	out := make([]Tspan, 0, len(lines))
	for i, line := range lines {
		out = append(out, Tspan{
			X:    l.OffsetX,
			Y:    l.FirstBaseline + float64(i)*l.LineHeight,
			Text: line,
		})
	}
	return out
}

// Tile 是一个已定位、已着色的矩形及其标签。
type Tile struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Value    float64  `json:"value"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Fill     Color    `json:"fill"`
	Lines    []string `json:"lines"`
	Label    []Tspan  `json:"label"`
}

// GridOptions 控制叶子矩形的行优先网格排布。
type GridOptions struct {
	Columns    int
	TileWidth  float64
	TileHeight float64
	Padding    float64 // 相邻矩形之间的间隙
	OriginX    float64
	OriginY    float64
}

// Grid 按行优先顺序为每个叶子生成一个矩形，颜色取自 palette。
func Grid(leaves []*dataset.Node, palette *Palette, opts GridOptions) []Tile {
	cols := opts.Columns
	if cols <= 0 {
		cols = 1
	}
	tiles := make([]Tile, 0, len(leaves))
	for i, leaf := range leaves {
		col, row := i%cols, i/cols
		category := strings.TrimSpace(leaf.Category)
		tiles = append(tiles, Tile{
			Name:     leaf.Name,
			Category: category,
			Value:    leaf.Value,
			X:        opts.OriginX + float64(col)*opts.TileWidth,
			Y:        opts.OriginY + float64(row)*opts.TileHeight,
			Width:    math.Max(opts.TileWidth-opts.Padding, 0),
			Height:   math.Max(opts.TileHeight-opts.Padding, 0),
			Fill:     palette.Color(category),
		})
	}
	return tiles
}

// Labeler 为矩形生成折行标签。
type Labeler struct {
	Wrapper *wrap.Wrapper
	Layout  LabelLayout
}

// Label 以矩形宽度为预算折行每个名称；名称为空的矩形不带标签。
// 全部成功后才写回 tiles；出错时 tiles 保持不变。
func (l Labeler) Label(tiles []Tile) error {
	if l.Wrapper == nil {
		return wrap.ErrMeasurerUnavailable
	}
	lines := make([][]string, len(tiles))
	for i := range tiles {
		wrapped, err := l.Wrapper.Wrap(tiles[i].Name, tiles[i].Width)
		if errors.Is(err, wrap.ErrEmptyLabel) {
			continue
		}
		if err != nil {
			return fmt.Errorf("标签 %q 折行失败: %w", tiles[i].Name, err)
		}
		lines[i] = wrapped
	}
	for i := range tiles {
		tiles[i].Lines = lines[i]
		tiles[i].Label = nil
		if lines[i] != nil {
			tiles[i].Label = l.Layout.Place(lines[i])
		}
	}
	return nil
}
