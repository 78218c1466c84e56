package fonts

import (
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/labelwrap/fontspec"
)

// builtin 以 [regular, bold, italic, bold-italic] 顺序保存内置字体字节。
var builtin = map[string][4][]byte{
	fontspec.SansSerif: {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	fontspec.Monospace: {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
	fontspec.Serif:     {lmroman10regular.TTF, lmroman10bold.TTF, lmroman10italic.TTF, lmroman10bolditalic.TTF},
}

// aliases 将常见字体名映射到内置字体族。
var aliases = map[string]string{
	"go":                 fontspec.SansSerif,
	"go mono":            fontspec.Monospace,
	"latin modern roman": fontspec.Serif,
	"system-ui":          fontspec.SansSerif,
	"ui-sans-serif":      fontspec.SansSerif,
	"ui-serif":           fontspec.Serif,
	"ui-monospace":       fontspec.Monospace,
}

// Builtin returns the embedded font for a generic family (or one of its
// aliases), picking the bold and italic variant requested.
func Builtin(family string, bold, italic bool) ([]byte, bool) {
	key := strings.ToLower(strings.TrimSpace(family))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	faces, ok := builtin[key]
	if !ok {
		return nil, false
	}
	idx := 0
	if bold {
		idx |= 1
	}
	if italic {
		idx |= 2
	}
	return faces[idx], true
}
