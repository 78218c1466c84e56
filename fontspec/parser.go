package fontspec

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	shorthandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Length", Pattern: `(?:\d+\.\d*|\.\d+|\d+)(?i:rem|px|pt|mm|cm|in|em|%)`},
		{Name: "Number", Pattern: `\d+\.\d*|\.\d+|\d+`},
		{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
		{Name: "Ident", Pattern: `-?[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[,/]`},
	})

	shorthandParser = participle.MustBuild[shorthand](
		participle.Lexer(shorthandLexer),
		participle.Elide("Whitespace"),
	)
)

// shorthand is the AST of a CSS font shorthand:
//
//	[style | variant | weight]* <size>[/<line-height>] <family>[, <family>]*
type shorthand struct {
	Prefix     []*prefixToken `parser:"@@*"`
	Size       string         `parser:"@Length"`
	LineHeight *string        `parser:"( '/' @( Length | Number ) )?"`
	Families   []*familyName  `parser:"@@ ( ',' @@ )*"`
}

type prefixToken struct {
	Keyword *string `parser:"  @Ident"`
	Weight  *string `parser:"| @Number"`
}

type familyName struct {
	Quoted quotedName `parser:"  @String"`
	Words  []string   `parser:"| @Ident+"`
}

// quotedName strips the single or double quotes around a family name on capture.
type quotedName string

// Capture implements participle.Capture.
func (q *quotedName) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("quoted family requires value")
	}
	v := values[0]
	if len(v) < 2 {
		return fmt.Errorf("malformed quoted family %s", v)
	}
	*q = quotedName(v[1 : len(v)-1])
	return nil
}

// Parse 解析 CSS font 简写，例如 "10px sans-serif" 或 "italic bold 12px 'Quicksand', sans-serif"。
func Parse(s string) (Spec, error) {
	ast, err := shorthandParser.ParseString("", s)
	if err != nil {
		return Spec{}, fmt.Errorf("%w %q: %v", ErrInvalid, s, err)
	}
	spec, err := ast.spec()
	if err != nil {
		return Spec{}, fmt.Errorf("%w %q: %v", ErrInvalid, s, err)
	}
	return spec, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Spec {
	spec, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return spec
}

func (a *shorthand) spec() (Spec, error) {
	spec := Spec{Weight: WeightNormal}
	for _, tok := range a.Prefix {
		if err := tok.apply(&spec); err != nil {
			return Spec{}, err
		}
	}

	size, err := ParseLength(a.Size)
	if err != nil {
		return Spec{}, err
	}
	if size.Value <= 0 {
		return Spec{}, fmt.Errorf("font size must be positive, got %s", a.Size)
	}
	spec.Size = size

	if a.LineHeight != nil {
		lh, err := ParseLength(*a.LineHeight)
		if err != nil {
			return Spec{}, err
		}
		spec.LineHeight = &lh
	}

	for _, f := range a.Families {
		name := string(f.Quoted)
		if len(f.Words) > 0 {
			name = strings.Join(f.Words, " ")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return Spec{}, fmt.Errorf("empty font family")
		}
		spec.Families = append(spec.Families, name)
	}
	return spec, nil
}

func (t *prefixToken) apply(spec *Spec) error {
	if t.Weight != nil {
		w, err := ParseLength(*t.Weight)
		if err != nil {
			return err
		}
		if w.Value < 1 || w.Value > 1000 {
			return fmt.Errorf("font weight %s out of range 1..1000", *t.Weight)
		}
		spec.Weight = Weight(w.Value)
		return nil
	}
	switch kw := strings.ToLower(*t.Keyword); kw {
	case "normal":
	case "italic", "oblique":
		spec.Italic = true
	case "small-caps":
		spec.SmallCaps = true
	case "bold", "bolder":
		spec.Weight = WeightBold
	case "lighter":
		spec.Weight = WeightThin
	default:
		return fmt.Errorf("unknown font keyword %q", *t.Keyword)
	}
	return nil
}
