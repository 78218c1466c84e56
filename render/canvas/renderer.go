package canvasrender

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/labelwrap/fontspec"
	canvasmeasure "github.com/ByLCY/labelwrap/measure/canvas"
	"github.com/ByLCY/labelwrap/render"
	"github.com/ByLCY/labelwrap/tile"
)

// Format selects the output file type.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "svg" or "pdf" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q（可选 svg、pdf）", s)
	}
}

// Options configures fonts and output format. Zero fonts use the defaults below.
type Options struct {
	Format          Format
	LabelFont       fontspec.Spec
	TitleFont       fontspec.Spec
	DescriptionFont fontspec.Spec
	LegendFont      fontspec.Spec
}

// DefaultOptions returns SVG output with 10px white labels, a 24px title and
// 12px legend text.
func DefaultOptions() Options {
	return Options{
		Format:          FormatSVG,
		LabelFont:       fontspec.Default(),
		TitleFont:       fontspec.Default().WithSize(24),
		DescriptionFont: fontspec.Default().WithSize(14),
		LegendFont:      fontspec.Default().WithSize(12),
	}
}

// Renderer draws sheets via github.com/tdewolff/canvas, sharing font faces
// with the measurer that wrapped the labels.
type Renderer struct {
	faces *canvasmeasure.Measurer
	opts  Options
}

var _ render.Renderer = (*Renderer)(nil)

var (
	labelColor  = canvas.White
	textColor   = canvas.Hex("#333333")
	mutedColor  = canvas.Hex("#666666")
	transparent = color.RGBA{0, 0, 0, 0}
)

// New creates a renderer. A nil measurer uses the built-in fonts.
func New(faces *canvasmeasure.Measurer, opts Options) *Renderer {
	if faces == nil {
		faces = canvasmeasure.New(nil)
	}
	def := DefaultOptions()
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.LabelFont.IsZero() {
		opts.LabelFont = def.LabelFont
	}
	if opts.TitleFont.IsZero() {
		opts.TitleFont = def.TitleFont
	}
	if opts.DescriptionFont.IsZero() {
		opts.DescriptionFont = def.DescriptionFont
	}
	if opts.LegendFont.IsZero() {
		opts.LegendFont = def.LegendFont
	}
	return &Renderer{faces: faces, opts: opts}
}

// Render renders the sheet into SVG or PDF bytes.
func (r *Renderer) Render(sheet *tile.Sheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("预览页为空")
	}
	if sheet.Width <= 0 || sheet.Height <= 0 {
		return nil, fmt.Errorf("预览页尺寸无效: %gx%g", sheet.Width, sheet.Height)
	}

	// 布局使用 CSS 像素，canvas 使用毫米。
	width, height := mm(sheet.Width), mm(sheet.Height)
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if err := r.drawSheet(ctx, sheet); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch r.opts.Format {
	case FormatSVG:
		writer := svg.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case FormatPDF:
		writer := pdf.New(&buf, width, height, nil)
		writer.SetInfo(sheet.Title, sheet.Description, "", "", "labelwrap")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", r.opts.Format)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawSheet(ctx *canvas.Context, sheet *tile.Sheet) error {
	center := sheet.Width / 2
	if sheet.Title != "" {
		if err := r.drawText(ctx, center, sheet.TitleBaseline(), sheet.Title, r.opts.TitleFont, textColor, canvas.Center); err != nil {
			return err
		}
	}
	if sheet.Description != "" {
		if err := r.drawText(ctx, center, sheet.DescriptionBaseline(), sheet.Description, r.opts.DescriptionFont, mutedColor, canvas.Center); err != nil {
			return err
		}
	}

	for _, t := range sheet.Tiles {
		drawRect(ctx, t.X, t.Y, t.Width, t.Height, colorFromTile(t.Fill))
		for _, span := range t.Label {
			if err := r.drawText(ctx, t.X+span.X, t.Y+span.Y, span.Text, r.opts.LabelFont, labelColor, canvas.Left); err != nil {
				return err
			}
		}
	}

	for _, item := range sheet.Legend {
		drawRect(ctx, item.X, item.Y, item.Size, item.Size, colorFromTile(item.Fill))
		if err := r.drawText(ctx, item.TextX, item.TextY, item.Text, r.opts.LegendFont, textColor, canvas.Left); err != nil {
			return err
		}
	}
	return nil
}

// drawText 在像素坐标 (x, baseline) 处绘制一行文本，按测量器给出的段逐段绘制。
func (r *Renderer) drawText(ctx *canvas.Context, x, baseline float64, text string, font fontspec.Spec, col color.Color, align canvas.TextAlign) error {
	segs, err := r.faces.Segments(text, font, col)
	if err != nil {
		return err
	}
	var total float64
	for _, seg := range segs {
		total += seg.Width
	}
	switch align {
	case canvas.Center:
		x -= total / 2
	case canvas.Right:
		x -= total
	}
	for _, seg := range segs {
		ctx.DrawText(mm(x), mm(baseline), canvas.NewTextLine(seg.Face, seg.Text, canvas.Left))
		x += seg.Width
	}
	return nil
}

func drawRect(ctx *canvas.Context, x, y, w, h float64, fill color.Color) {
	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(transparent)
	ctx.SetStrokeWidth(0)
	ctx.DrawPath(mm(x), mm(y), canvas.Rectangle(mm(w), mm(h)))
}

func colorFromTile(c tile.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// mm 将 CSS 像素转换为毫米。
func mm(px float64) float64 { return fontspec.PX(px).ToMM() }
