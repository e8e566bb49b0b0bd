// name.go — File names derived from a Spec.
package palette

import (
	"strconv"
	"strings"
)

// NameFormat selects how HSL components are written into file names.
type NameFormat int

const (
	// UniformNames writes every component in shortest decimal form, so
	// whole numbers never carry a fraction: 224_1_0.9.png.
	UniformNames NameFormat = iota

	// LegacyNames reproduces the names of earlier runs: sweep saturation and
	// lightness always carry a fraction (224_1.0_0.9.png) while Integral
	// triples do not (0_1_1.png).
	LegacyNames
)

// FileName returns the base file name (with .png extension) for s.
func (s Spec) FileName(f NameFormat) string {
	if s.Kind == KindName {
		return s.Name + ".png"
	}

	frac := formatUniform
	if f == LegacyNames && !s.Integral {
		frac = formatFloat
	}

	return formatUniform(s.H) + "_" + frac(s.S) + "_" + frac(s.L) + ".png"
}

func formatUniform(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFloat always keeps a fractional part, like 1.0.
func formatFloat(v float64) string {
	s := formatUniform(v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
