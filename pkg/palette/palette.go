// Package palette produces ordered sequences of fill colors.
//
// A sequence comes either from user-supplied color-name tokens or from a
// fixed hue/saturation/lightness sweep. Nothing here resolves a color to
// pixels; that is left to the generator package.
package palette

import (
	"fmt"
	"strings"
)

// Kind tells which half of a Spec is meaningful.
type Kind int

const (
	KindName Kind = iota // Name holds an upper-cased color token
	KindHSL              // H, S, L hold an explicit triple
)

// Spec describes a single fill color. Values are immutable once produced.
type Spec struct {
	Kind Kind
	Name string  // canonical (upper-case) token, KindName only
	H    float64 // degrees, [0,360)
	S    float64 // [0,1]
	L    float64 // [0,1]

	// Integral marks a triple declared with whole-number components.
	// It only changes how LegacyNames renders the file name.
	Integral bool
}

// Name returns a named-color Spec for token, normalized to upper case.
func Name(token string) Spec {
	return Spec{Kind: KindName, Name: strings.ToUpper(token)}
}

// HSL returns an explicit hue/saturation/lightness Spec.
func HSL(h, s, l float64) Spec {
	return Spec{Kind: KindHSL, H: h, S: s, L: l}
}

// Named converts tokens to Specs in input order. Duplicates are kept.
// No validation happens here; unknown names fail at resolution time.
func Named(tokens []string) []Spec {
	specs := make([]Spec, 0, len(tokens))
	for _, t := range tokens {
		specs = append(specs, Name(t))
	}
	return specs
}

// String renders the Spec for log output.
func (s Spec) String() string {
	if s.Kind == KindName {
		return s.Name
	}
	return fmt.Sprintf("hsl(%s, %s, %s)", formatUniform(s.H), formatUniform(s.S), formatUniform(s.L))
}
