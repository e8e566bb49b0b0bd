// color.go — Color resolution and solid image creation.
package generator

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/m-mizutani/goerr/v2"
	"github.com/xob0t/swatchgen/pkg/palette"
	"golang.org/x/image/colornames"
)

// Resolve returns the opaque pixel value a Spec describes.
func Resolve(s palette.Spec) (color.RGBA, error) {
	switch s.Kind {
	case palette.KindName:
		return ResolveName(s.Name)
	case palette.KindHSL:
		return HSL(s.H, s.S, s.L), nil
	default:
		return color.RGBA{}, goerr.New("unknown color kind", goerr.V("kind", s.Kind))
	}
}

// ResolveName looks name up in the CSS color table, ignoring case.
// Names starting with "#" are read as "#rrggbb".
func ResolveName(name string) (color.RGBA, error) {
	if strings.HasPrefix(name, "#") {
		r, g, b, err := ParseColor(name)
		if err != nil {
			return color.RGBA{}, goerr.Wrap(fmt.Errorf("%w: %w", ErrInvalidColorName, err), "failed to parse hex color", goerr.V("name", name))
		}
		return toRGBA(r, g, b), nil
	}

	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, goerr.Wrap(ErrInvalidColorName, "unknown color name", goerr.V("name", name))
	}
	return c, nil
}

// HSL converts hue (degrees), saturation and lightness ([0,1]) to an opaque color.
func HSL(h, s, l float64) color.RGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return toRGBA(r, g, b)
}

// ParseColor parses a "#rrggbb" string. Hex digits may be either case.
func ParseColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, goerr.New("invalid color: expected 6-char hex", goerr.V("color", s))
	}

	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, goerr.Wrap(err, "invalid red channel", goerr.V("color", s))
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, goerr.Wrap(err, "invalid green channel", goerr.V("color", s))
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, goerr.Wrap(err, "invalid blue channel", goerr.V("color", s))
	}

	return uint8(rv), uint8(gv), uint8(bv), nil
}

// NewSolidImage creates a uniform solid-color image using draw.Draw.
func NewSolidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func toRGBA(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
