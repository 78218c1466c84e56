package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/labelwrap/dataset"
	"github.com/ByLCY/labelwrap/internal/config"
	"github.com/ByLCY/labelwrap/wrap"
)

// lineRecord 是 lines 命令为每个叶子输出的一条记录。
type lineRecord struct {
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Value    float64  `json:"value" yaml:"value"`
	Lines    []string `json:"lines" yaml:"lines"`
	Caption  string   `json:"caption" yaml:"caption"`
}

func linesCmd(a *app) *cobra.Command {
	var (
		width   float64
		caption string
	)

	cmd := &cobra.Command{
		Use:   "lines <dataset.json>",
		Short: "Wrap the name of every leaf in a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Tile.Width
			}
			start := time.Now()

			root, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			w, release, err := a.wrapper()
			if err != nil {
				return err
			}
			defer release()

			formatter := dataset.NewFormatter(a.cfg.Lang)
			leaves := root.Leaves()
			records := make([]lineRecord, 0, len(leaves))
			for _, leaf := range leaves {
				lines, err := w.Wrap(leaf.Name, width)
				switch {
				case errors.Is(err, wrap.ErrEmptyLabel):
					lines = []string{}
				case err != nil:
					return fmt.Errorf("换行 %q 失败: %w", leaf.Name, err)
				}
				records = append(records, lineRecord{
					Name:     leaf.Name,
					Category: leaf.Category,
					Value:    leaf.Value,
					Lines:    lines,
					Caption:  formatter.Expand(caption, leaf),
				})
			}

			if err := writeRecords(cmd.OutOrStdout(), a.cfg.Output, records); err != nil {
				return err
			}
			a.log.Infow("换行完成", "file", args[0], "leaves", len(records), "width", width, "elapsed", time.Since(start))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", 0, "矩形宽度（像素），未指定时取 tile.width")
	cmd.Flags().StringVar(&caption, "caption", dataset.DefaultCaption, "说明文字模板")
	cmd.Flags().StringP(config.OutputKey, "o", "json", "输出格式：json 或 yaml")
	cmd.Flags().String(config.LangKey, "en", "数字格式使用的语言")
	_ = a.v.BindPFlag(config.OutputKey, cmd.Flags().Lookup(config.OutputKey))
	_ = a.v.BindPFlag(config.LangKey, cmd.Flags().Lookup(config.LangKey))
	return cmd
}

func writeRecords(out io.Writer, format string, records []lineRecord) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("不支持的输出格式 %q（可选 json、yaml）", format)
	}
}
