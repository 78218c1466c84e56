package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ByLCY/labelwrap/fontspec"
	"github.com/ByLCY/labelwrap/wrap"
)

const (
	configName = ".labelwrap"
	envPrefix  = "LABELWRAP"
)

const (
	FontKey          = "font"
	PaddingKey       = "padding"
	MeasurerKey      = "measurer"
	FontDirKey       = "font-dir"
	LogLevelKey      = "log-level"
	TileWidthKey     = "tile.width"
	TileHeightKey    = "tile.height"
	ColumnsKey       = "tile.columns"
	OffsetXKey       = "label.offset-x"
	FirstBaselineKey = "label.first-baseline"
	LineHeightKey    = "label.line-height"
	FormatKey        = "format"
	OutputKey        = "output"
	LangKey          = "lang"
	TitleKey         = "title"
	DescriptionKey   = "description"
)

const (
	MeasurerCanvas = "canvas"
	MeasurerSFNT   = "sfnt"
)

var ErrInvalid = errors.New("配置无效")

type Tile struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	Columns int     `mapstructure:"columns"`
}

type Label struct {
	OffsetX       float64 `mapstructure:"offset-x"`
	FirstBaseline float64 `mapstructure:"first-baseline"`
	LineHeight    float64 `mapstructure:"line-height"`
}

// Config 是合并默认值、配置文件、环境变量与命令行参数后的最终配置。
type Config struct {
	Font        string  `mapstructure:"font"`
	Padding     float64 `mapstructure:"padding"`
	Measurer    string  `mapstructure:"measurer"`
	FontDir     string  `mapstructure:"font-dir"`
	LogLevel    string  `mapstructure:"log-level"`
	Tile        Tile    `mapstructure:"tile"`
	Label       Label   `mapstructure:"label"`
	Format      string  `mapstructure:"format"`
	Output      string  `mapstructure:"output"`
	Lang        string  `mapstructure:"lang"`
	Title       string  `mapstructure:"title"`
	Description string  `mapstructure:"description"`
}

// SetDefaults 写入所有键的默认值。
func SetDefaults(v *viper.Viper) {
	v.SetDefault(FontKey, fontspec.Default().String())
	v.SetDefault(PaddingKey, wrap.DefaultPadding)
	v.SetDefault(MeasurerKey, MeasurerCanvas)
	v.SetDefault(FontDirKey, "")
	v.SetDefault(LogLevelKey, "info")
	v.SetDefault(TileWidthKey, 120.0)
	v.SetDefault(TileHeightKey, 60.0)
	v.SetDefault(ColumnsKey, 0)
	v.SetDefault(OffsetXKey, 4.0)
	v.SetDefault(FirstBaselineKey, 12.0)
	v.SetDefault(LineHeightKey, 10.0)
	v.SetDefault(FormatKey, "svg")
	v.SetDefault(OutputKey, "json")
	v.SetDefault(LangKey, "en")
	v.SetDefault(TitleKey, "Movie Sales")
	v.SetDefault(DescriptionKey, "Top grossing movies grouped by genre")
}

// Init 配置 v：默认值、LABELWRAP_* 环境变量，以及 file 或 $HOME/.labelwrap.yaml。
// 缺少默认配置文件不算错误。
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("读取配置文件 %s 失败: %w", file, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("读取配置文件 %s 失败: %w", filepath.Join(home, configName+".yaml"), err)
	}
	return nil
}

// Load 解析 v 中的配置并校验。
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	spec, err := fontspec.Parse(c.Font)
	if err != nil {
		return fmt.Errorf("%w: font: %w", ErrInvalid, err)
	}
	if lh, ok := spec.LineHeightPX(); ok && lh <= 0 {
		return fmt.Errorf("%w: font 行高必须为正数", ErrInvalid)
	}
	if c.Padding < 0 {
		return fmt.Errorf("%w: padding 不能为负数: %g", ErrInvalid, c.Padding)
	}
	switch strings.ToLower(c.Measurer) {
	case MeasurerCanvas, MeasurerSFNT:
	default:
		return fmt.Errorf("%w: 未知的 measurer %q（可选 canvas、sfnt）", ErrInvalid, c.Measurer)
	}
	if c.Tile.Width <= 0 || c.Tile.Height <= 0 {
		return fmt.Errorf("%w: tile 尺寸必须为正数", ErrInvalid)
	}
	if c.Tile.Columns < 0 {
		return fmt.Errorf("%w: tile.columns 不能为负数", ErrInvalid)
	}
	if c.Label.LineHeight <= 0 {
		return fmt.Errorf("%w: label.line-height 必须为正数", ErrInvalid)
	}
	return nil
}

// FontSpec 返回解析后的标签字体。
func (c Config) FontSpec() fontspec.Spec {
	spec, err := fontspec.Parse(c.Font)
	if err != nil {
		return fontspec.Default()
	}
	return spec
}

// LabelLineHeight 返回标签行距：字体简写带 /line-height 时以其为准，否则取 label.line-height。
func (c Config) LabelLineHeight() float64 {
	if lh, ok := c.FontSpec().LineHeightPX(); ok {
		return lh
	}
	return c.Label.LineHeight
}
