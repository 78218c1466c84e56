// Package fonts 解析字体族名称到字体文件字节：内置通用字体族，或通过 Registry 注册的外部字体。
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ByLCY/labelwrap/fontspec"
)

// ErrNoFont 表示候选字体族中没有任何一个可以加载。
var ErrNoFont = errors.New("fonts: no usable font family")

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// Face 是解析出的单个字体文件。Key 唯一标识字体族与变体，可作为缓存键。
type Face struct {
	Family string
	Key    string
	Data   []byte
	Bold   bool
	Italic bool
}

type variantKey struct {
	family string
	bold   bool
	italic bool
}

// Registry 保存外部注册的字体，未注册的名称回退到内置通用字体族。
// 可并发使用。
type Registry struct {
	baseDir string

	mu     sync.Mutex
	custom map[variantKey]Resource
	blobs  map[variantKey][]byte
}

// NewRegistry creates a registry resolving relative font paths against baseDir.
func NewRegistry(baseDir string) *Registry {
	return &Registry{
		baseDir: baseDir,
		custom:  map[variantKey]Resource{},
		blobs:   map[variantKey][]byte{},
	}
}

// Register 注册字体族的常规变体。
func (r *Registry) Register(family string, res Resource) {
	r.RegisterVariant(family, false, false, res)
}

// RegisterVariant 注册字体族的某个粗体/斜体变体；同名重复注册时后者生效。
func (r *Registry) RegisterVariant(family string, bold, italic bool, res Resource) {
	key := variantKey{family: normalizeFamily(family), bold: bold, italic: italic}
	if key.family == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[key] = res
	delete(r.blobs, key)
}

// RegisterDir 注册目录下的 .ttf/.otf 文件。文件名中第一个 "-" 之前为字体族名，
// 之后的部分包含 Bold/Italic/Oblique 时注册为对应变体，例如 Quicksand-BoldItalic.ttf。
func (r *Registry) RegisterDir(dir string) (int, error) {
	path := dir
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, fmt.Errorf("读取字体目录 %s 失败: %w", dir, err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		family, variant, _ := strings.Cut(stem, "-")
		v := strings.ToLower(variant)
		bold := strings.Contains(v, "bold")
		italic := strings.Contains(v, "italic") || strings.Contains(v, "oblique")
		r.RegisterVariant(family, bold, italic, Resource{Path: filepath.Join(path, e.Name())})
		n++
	}
	return n, nil
}

// Resolve 按 spec.Families 的顺序查找第一个可加载的字体族。
// 外部字体缺少所需变体时使用其常规变体；内置字体族总能提供所需变体。
func (r *Registry) Resolve(spec fontspec.Spec) (Face, error) {
	if len(spec.Families) == 0 {
		return Face{}, fmt.Errorf("%w: font %q lists no family", ErrNoFont, spec.String())
	}
	bold, italic := spec.Bold(), spec.Italic
	var errs []error
	for _, family := range spec.Families {
		face, ok, err := r.lookupCustom(family, bold, italic)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return face, nil
		}
		if data, ok := Builtin(family, bold, italic); ok {
			return Face{
				Family: family,
				Key:    fmt.Sprintf("builtin|%s|%t|%t", normalizeFamily(family), bold, italic),
				Data:   data,
				Bold:   bold,
				Italic: italic,
			}, nil
		}
		errs = append(errs, fmt.Errorf("font family %q is not available", family))
	}
	return Face{}, fmt.Errorf("%w for %q: %w", ErrNoFont, spec.String(), errors.Join(errs...))
}

func (r *Registry) lookupCustom(family string, bold, italic bool) (Face, bool, error) {
	if r == nil {
		return Face{}, false, nil
	}
	name := normalizeFamily(family)
	for _, key := range []variantKey{
		{family: name, bold: bold, italic: italic},
		{family: name},
	} {
		data, ok, err := r.load(key)
		if err != nil {
			return Face{}, false, err
		}
		if ok {
			return Face{
				Family: family,
				Key:    fmt.Sprintf("custom|%s|%t|%t", key.family, key.bold, key.italic),
				Data:   data,
				Bold:   key.bold,
				Italic: key.italic,
			}, true, nil
		}
	}
	return Face{}, false, nil
}

func (r *Registry) load(key variantKey) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if blob, ok := r.blobs[key]; ok {
		return blob, true, nil
	}
	res, ok := r.custom[key]
	if !ok {
		return nil, false, nil
	}
	if len(res.Bytes) > 0 {
		r.blobs[key] = res.Bytes
		return res.Bytes, true, nil
	}
	if res.Path == "" {
		return nil, false, fmt.Errorf("字体 %s 缺少 src", key.family)
	}
	path := res.Path
	if !filepath.IsAbs(path) {
		if r.baseDir == "" {
			return nil, false, fmt.Errorf("未指定资源目录时不允许使用相对字体路径：%s", res.Path)
		}
		path = filepath.Join(r.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("读取字体 %s 失败: %w", res.Path, err)
	}
	r.blobs[key] = data
	return data, true, nil
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
