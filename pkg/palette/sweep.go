// sweep.go — Fixed HSL sweep used to populate sample/solid_colors.
package palette

const (
	hueSteps = 8
	hueStep  = 32
)

// Saturations and Lightnesses are the sweep's inner axes, ascending.
var (
	Saturations = []float64{0.2, 0.4, 0.6, 0.8, 1.0}
	Lightnesses = []float64{0.2, 0.4, 0.6, 0.8, 0.9}
)

// Hues returns the sweep's hue axis: h*32 for h in 0..7.
func Hues() []float64 {
	hues := make([]float64, hueSteps)
	for h := range hues {
		hues[h] = float64(h * hueStep)
	}
	return hues
}

// Sweep returns the full HSL palette: the hue x saturation x lightness
// product (hue outermost, lightness innermost) followed by black and white.
// The result always has 202 entries in the same order.
func Sweep() []Spec {
	hues := Hues()
	specs := make([]Spec, 0, len(hues)*len(Saturations)*len(Lightnesses)+2)
	for _, h := range hues {
		for _, s := range Saturations {
			for _, l := range Lightnesses {
				specs = append(specs, HSL(h, s, l))
			}
		}
	}

	// Lightness 1 is white whatever the hue and saturation.
	black := HSL(0, 0, 0)
	black.Integral = true
	white := HSL(0, 1, 1)
	white.Integral = true

	return append(specs, black, white)
}
