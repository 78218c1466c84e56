package tile

import (
	"fmt"
	"math"

	"github.com/ByLCY/labelwrap/dataset"
	"github.com/ByLCY/labelwrap/wrap"
)

const (
	titleBaseline       = 40.0
	descriptionBaseline = 65.0
	tilesTop            = 80.0
	legendGap           = 20.0
)

// LegendItem 是图例中的一个色块与说明文字，坐标为绝对坐标。
type LegendItem struct {
	Text  string  `json:"text"`
	Fill  Color   `json:"fill"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	TextX float64 `json:"textX"`
	TextY float64 `json:"textY"`
}

// LegendOptions 控制图例网格。
type LegendOptions struct {
	PerRow   int
	SpacingX float64
	SpacingY float64
	ItemSize float64
	OriginX  float64
	OriginY  float64
}

// DefaultLegendOptions 每行 3 项，间距 150×30，色块 20。
func DefaultLegendOptions() LegendOptions {
	return LegendOptions{PerRow: 3, SpacingX: 150, SpacingY: 30, ItemSize: 20}
}

// Legend 为每个分类生成一个图例项，文字位于色块右侧 5px、底边上方 5px。
func Legend(categories []string, palette *Palette, opts LegendOptions) []LegendItem {
	perRow := opts.PerRow
	if perRow <= 0 {
		perRow = 1
	}
	items := make([]LegendItem, 0, len(categories))
	for i, c := range categories {
		x := opts.OriginX + float64(i%perRow)*opts.SpacingX
		y := opts.OriginY + float64(i/perRow)*opts.SpacingY
		items = append(items, LegendItem{
			Text:  c,
			Fill:  palette.Color(c),
			X:     x,
			Y:     y,
			Size:  opts.ItemSize,
			TextX: x + opts.ItemSize + 5,
			TextY: y + opts.ItemSize - 5,
		})
	}
	return items
}

// Sheet 是一张可直接渲染的预览页。
type Sheet struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Tiles       []Tile       `json:"tiles"`
	Legend      []LegendItem `json:"legend"`
}

// SheetOptions 配置预览页。零值字段使用默认值。
type SheetOptions struct {
	Title       string
	Description string
	Width       float64
	Grid        GridOptions
	Legend      LegendOptions
	Layout      LabelLayout
	Colors      []Color
}

// DefaultSheetOptions 返回 1000px 宽、120×60 矩形的预览页配置。
func DefaultSheetOptions() SheetOptions {
	return SheetOptions{
		Title:       "Movie Sales",
		Description: "Top grossing movies grouped by genre",
		Width:       1000,
		Grid:        GridOptions{TileWidth: 120, TileHeight: 60, Padding: 1},
		Legend:      DefaultLegendOptions(),
		Layout:      DefaultLabelLayout(),
	}
}

// NewSheet 排布 root 的全部叶子并用 w 为其生成标签。
func NewSheet(root *dataset.Node, w *wrap.Wrapper, opts SheetOptions) (*Sheet, error) {
	if root == nil {
		return nil, fmt.Errorf("数据集为空")
	}
	defaults := DefaultSheetOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.Grid.TileWidth <= 0 {
		opts.Grid.TileWidth = defaults.Grid.TileWidth
	}
	if opts.Grid.TileHeight <= 0 {
		opts.Grid.TileHeight = defaults.Grid.TileHeight
	}
	if opts.Legend.PerRow <= 0 {
		opts.Legend = defaults.Legend
	}
	if opts.Layout == (LabelLayout{}) {
		opts.Layout = defaults.Layout
	}
	if opts.Grid.Columns <= 0 {
		opts.Grid.Columns = int(math.Max(1, math.Floor(opts.Width/opts.Grid.TileWidth)))
	}

	leaves := root.Leaves()
	categories := dataset.Categories(leaves)
	palette := NewPalette(categories, opts.Colors)

	opts.Grid.OriginY = tilesTop
	tiles := Grid(leaves, palette, opts.Grid)
	if err := (Labeler{Wrapper: w, Layout: opts.Layout}).Label(tiles); err != nil {
		return nil, err
	}

	rows := (len(tiles) + opts.Grid.Columns - 1) / opts.Grid.Columns
	opts.Legend.OriginX = opts.Grid.OriginX
	opts.Legend.OriginY = tilesTop + float64(rows)*opts.Grid.TileHeight + legendGap
	legend := Legend(categories, palette, opts.Legend)

	legendRows := (len(categories) + opts.Legend.PerRow - 1) / opts.Legend.PerRow
	height := opts.Legend.OriginY + float64(legendRows)*opts.Legend.SpacingY + legendGap

	return &Sheet{
		Width:       math.Max(opts.Width, opts.Grid.OriginX+float64(opts.Grid.Columns)*opts.Grid.TileWidth),
		Height:      height,
		Title:       opts.Title,
		Description: opts.Description,
		Tiles:       tiles,
		Legend:      legend,
	}, nil
}

// TitleBaseline returns the y coordinate of the title baseline.
func (s *Sheet) TitleBaseline() float64 { return titleBaseline }

// DescriptionBaseline returns the y coordinate of the description baseline.
func (s *Sheet) DescriptionBaseline() float64 { return descriptionBaseline }
