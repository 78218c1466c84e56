package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ByLCY/labelwrap/dataset"
	"github.com/ByLCY/labelwrap/internal/config"
	canvasrender "github.com/ByLCY/labelwrap/render/canvas"
	"github.com/ByLCY/labelwrap/tile"
)

func renderCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render <dataset.json>",
		Short: "Render a preview sheet of wrapped labels to SVG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			format, err := canvasrender.ParseFormat(a.cfg.Format)
			if err != nil {
				return err
			}

			root, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			w, release, err := a.wrapper()
			if err != nil {
				return err
			}
			defer release()

			opts := tile.DefaultSheetOptions()
			opts.Title = a.cfg.Title
			opts.Description = a.cfg.Description
			opts.Grid.TileWidth = a.cfg.Tile.Width
			opts.Grid.TileHeight = a.cfg.Tile.Height
			opts.Grid.Columns = a.cfg.Tile.Columns
			opts.Layout = tile.LabelLayout{
				OffsetX:       a.cfg.Label.OffsetX,
				FirstBaseline: a.cfg.Label.FirstBaseline,
				LineHeight:    a.cfg.LabelLineHeight(),
			}

			sheet, err := tile.NewSheet(root, w, opts)
			if err != nil {
				return fmt.Errorf("排布预览页失败: %w", err)
			}

			r := canvasrender.New(a.faces, canvasrender.Options{Format: format, LabelFont: a.cfg.FontSpec()})
			data, err := r.Render(sheet)
			if err != nil {
				return fmt.Errorf("渲染失败: %w", err)
			}

			if out == "" {
				out = "labels." + string(format)
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("创建输出目录失败: %w", err)
				}
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("写入文件失败: %w", err)
			}
			a.log.Infow("已生成预览页", "file", out, "format", format, "tiles", len(sheet.Tiles), "bytes", len(data), "elapsed", time.Since(start))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&out, "out", "", "输出文件路径（默认 labels.<format>）")
	flags.String(config.FormatKey, "svg", "输出格式：svg 或 pdf")
	flags.String(config.TitleKey, "", "标题")
	flags.String(config.DescriptionKey, "", "副标题")
	flags.Int("columns", 0, "每行矩形数量，0 表示按页宽计算")
	flags.Float64("tile-width", 120, "矩形宽度（像素）")
	flags.Float64("tile-height", 60, "矩形高度（像素）")
	_ = a.v.BindPFlag(config.FormatKey, flags.Lookup(config.FormatKey))
	_ = a.v.BindPFlag(config.TitleKey, flags.Lookup(config.TitleKey))
	_ = a.v.BindPFlag(config.DescriptionKey, flags.Lookup(config.DescriptionKey))
	_ = a.v.BindPFlag(config.ColumnsKey, flags.Lookup("columns"))
	_ = a.v.BindPFlag(config.TileWidthKey, flags.Lookup("tile-width"))
	_ = a.v.BindPFlag(config.TileHeightKey, flags.Lookup("tile-height"))
	return cmd
}
