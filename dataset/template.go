package dataset

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCaption 与原始提示框内容一致：名称、分类与带千分位的金额。
const DefaultCaption = "${name}\n${category}\n$${value}"

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Formatter 将 ${field} 占位符替换为节点字段。支持 name、category、value 与 sum；
// 未知字段保持原样。value 与 sum 按语言习惯加千分位。
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for the given language tag; an unparsable
// tag falls back to English.
func NewFormatter(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Expand 替换 tmpl 中的占位符。
func (f *Formatter) Expand(tmpl string, n *Node) string {
	if n == nil {
		return tmpl
	}
	return exprPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		switch strings.TrimSpace(groups[1]) {
		case "name":
			return strings.TrimSpace(n.Name)
		case "category":
			return strings.TrimSpace(n.Category)
		case "value":
			return f.Number(n.Value)
		case "sum":
			return f.Number(n.Sum())
		default:
			return match
		}
	})
}

// Number formats v with digit grouping, without decimals when v is integral.
func (f *Formatter) Number(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return f.printer.Sprintf("%d", int64(v))
	}
	return f.printer.Sprintf("%.2f", v)
}
