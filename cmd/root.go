package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ByLCY/labelwrap/fonts"
	"github.com/ByLCY/labelwrap/internal/config"
	"github.com/ByLCY/labelwrap/internal/logging"
	canvasmeasure "github.com/ByLCY/labelwrap/measure/canvas"
	sfntmeasure "github.com/ByLCY/labelwrap/measure/sfnt"
	"github.com/ByLCY/labelwrap/wrap"
)

var (
	version = "dev"
	commit  = "unknown"
)

// app 保存一次命令执行所需的配置与依赖。
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *zap.SugaredLogger

	registry *fonts.Registry
	faces    *canvasmeasure.Measurer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "labelwrap",
		Short:         "labelwrap wraps labels into fixed-width boxes using real font metrics.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "配置文件路径（默认 $HOME/.labelwrap.yaml）")
	flags.String(config.FontKey, "", "CSS 字体简写，例如 \"10px sans-serif\"")
	flags.Float64(config.PaddingKey, wrap.DefaultPadding, "行宽余量（像素）")
	flags.String(config.MeasurerKey, config.MeasurerCanvas, "测量引擎：canvas 或 sfnt")
	flags.String(config.FontDirKey, "", "额外字体目录（.ttf/.otf）")
	flags.String(config.LogLevelKey, "info", "日志级别：debug、info、warn、error")
	for _, key := range []string{config.FontKey, config.PaddingKey, config.MeasurerKey, config.FontDirKey, config.LogLevelKey} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(wrapCmd(a), linesCmd(a), renderCmd(a))
	return root
}

// Execute 运行根命令，出错时以状态码 1 退出。
func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debugw("已加载配置文件", "path", used)
	}

	a.registry = fonts.NewRegistry("")
	if cfg.FontDir != "" {
		n, err := a.registry.RegisterDir(cfg.FontDir)
		if err != nil {
			return fmt.Errorf("加载字体目录失败: %w", err)
		}
		a.log.Infow("已注册字体", "dir", cfg.FontDir, "count", n)
	}
	a.faces = canvasmeasure.New(a.registry)
	return nil
}

// measurer 按配置返回带缓存的测量器与释放函数。
func (a *app) measurer() (wrap.TextMeasurer, func(), error) {
	switch strings.ToLower(a.cfg.Measurer) {
	case config.MeasurerCanvas:
		return wrap.NewCachingMeasurer(a.faces), func() {}, nil
	case config.MeasurerSFNT:
		m := sfntmeasure.New(a.registry)
		return wrap.NewCachingMeasurer(m), func() {
			if err := m.Close(); err != nil {
				a.log.Warnw("释放字体失败", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("未知的测量引擎 %q", a.cfg.Measurer)
	}
}

func (a *app) wrapper() (*wrap.Wrapper, func(), error) {
	m, release, err := a.measurer()
	if err != nil {
		return nil, nil, err
	}
	w, err := wrap.New(m, wrap.Options{Font: a.cfg.FontSpec(), Padding: a.cfg.Padding})
	if err != nil {
		release()
		return nil, nil, err
	}
	a.log.Debugw("测量器就绪", "measurer", a.cfg.Measurer, "font", w.Font().String(), "padding", w.Padding())
	return w, release, nil
}
