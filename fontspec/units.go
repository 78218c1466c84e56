package fontspec

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe lengths for font sizes and line heights.

// Unit represents the original unit of a length value as written in a font shorthand.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers like line-height factors
	UnitPX                  // CSS pixels
	UnitPT                  // points
	UnitMM                  // millimeters
	UnitCM                  // centimeters
	UnitIN                  // inches
	UnitEM                  // relative to the medium font size
	UnitREM                 // relative to the root font size
	UnitPercent             // percent of the medium font size
)

// Conversion constants. CSS fixes 1in = 96px = 72pt.
const (
	PxPerIn = 96.0
	PtPerIn = 72.0
	MmPerIn = 25.4

	PxToPt = PtPerIn / PxPerIn
	PtToPx = PxPerIn / PtPerIn
	PxToMm = MmPerIn / PxPerIn
	MmToPx = PxPerIn / MmPerIn

	// MediumPX is the CSS "medium" font size that em, rem and % resolve against.
	MediumPX = 16.0
)

var unitSuffixes = []struct {
	s string
	u Unit
}{
	{"rem", UnitREM}, {"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM},
	{"cm", UnitCM}, {"in", UnitIN}, {"em", UnitEM}, {"%", UnitPercent},
}

// String returns the CSS suffix for a Unit value.
func (u Unit) String() string {
	for _, suf := range unitSuffixes {
		if suf.u == u {
			return suf.s
		}
	}
	return ""
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit"`
}

// PX returns a pixel length.
func PX(v float64) Length { return Length{Value: v, Unit: UnitPX} }

func (l Length) IsZero() bool { return l.Value == 0 }

// ToPX converts the length to CSS pixels. Unit-less values are taken as pixels.
func (l Length) ToPX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	case UnitCM:
		return l.Value * 10 * MmToPx
	case UnitIN:
		return l.Value * PxPerIn
	case UnitEM, UnitREM:
		return l.Value * MediumPX
	case UnitPercent:
		return l.Value / 100 * MediumPX
	default:
		return l.Value
	}
}

func (l Length) ToPT() float64 { return l.ToPX() * PxToPt }
func (l Length) ToMM() float64 { return l.ToPX() * PxToMm }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ParseLength parses a length such as "10px", "7.5pt" or "1.2".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitNone
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
