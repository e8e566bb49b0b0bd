// Package mosaic rebuilds an image out of indexed library tiles.
//
// The source is resized (nearest neighbor) so both sides are a multiple of
// the group size, then every GroupSize x GroupSize region is replaced by the
// library tile whose average color is closest to the region's, scaled by the
// magnification factor.
package mosaic

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xob0t/swatchgen/pkg/library"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var (
	// ErrEmptyLibrary is returned when the library has no tiles to choose from.
	ErrEmptyLibrary = errors.New("tile library is empty")

	// ErrTooSmall is returned when the source rounds down to zero regions.
	ErrTooSmall = errors.New("source image is smaller than one region")
)

// Config holds mosaic parameters.
type Config struct {
	GroupSize     int  // side of a source region in pixels (default: 16)
	Magnification int  // output scale factor (default: 2)
	ColorCache    bool // reuse the match for repeated region averages
}

// DefaultConfig matches the command-line defaults.
var DefaultConfig = Config{GroupSize: 16, Magnification: 2}

// Stats counts the work done by Build.
type Stats struct {
	Regions   int
	CacheHits int
}

// Builder assembles mosaics from one library.
type Builder struct {
	lib     *library.Library
	cfg     Config
	logger  *slog.Logger
	matches map[[3]uint8]string
	tiles   map[string]*image.RGBA
	stats   Stats
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a Builder over lib.
func New(lib *library.Library, cfg Config, opts ...Option) *Builder {
	b := &Builder{
		lib:     lib,
		cfg:     cfg,
		logger:  slog.New(slog.DiscardHandler),
		matches: make(map[[3]uint8]string),
		tiles:   make(map[string]*image.RGBA),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Stats returns counters accumulated over all Build calls.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Dimensions rounds w and h to the nearest multiple of group.
func Dimensions(w, h, group int) (int, int) {
	round := func(v int) int {
		return int(math.Round(float64(v)/float64(group))) * group
	}
	return round(w), round(h)
}

// Build returns the mosaic for src.
func (b *Builder) Build(src image.Image) (*image.RGBA, error) {
	g, m := b.cfg.GroupSize, b.cfg.Magnification
	if g <= 0 || m <= 0 {
		return nil, goerr.New("group size and magnification must be positive",
			goerr.V("group_size", g), goerr.V("magnification", m))
	}

	w, h := Dimensions(src.Bounds().Dx(), src.Bounds().Dy(), g)
	if w == 0 || h == 0 {
		return nil, goerr.Wrap(ErrTooSmall, "cannot build mosaic",
			goerr.V("width", src.Bounds().Dx()), goerr.V("height", src.Bounds().Dy()), goerr.V("group_size", g))
	}
	b.logger.Debug("resizing source", "width", w, "height", h)

	resized := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(resized, resized.Bounds(), src, src.Bounds(), draw.Src, nil)

	side := g * m
	out := image.NewRGBA(image.Rect(0, 0, w*m, h*m))
	for ox := 0; ox < w/g; ox++ {
		for oy := 0; oy < h/g; oy++ {
			region := resized.SubImage(image.Rect(ox*g, oy*g, (ox+1)*g, (oy+1)*g))
			path, err := b.closest(library.Average(region))
			if err != nil {
				return nil, err
			}
			tile, err := b.tile(path, side)
			if err != nil {
				return nil, err
			}

			dst := image.Rect(ox*side, oy*side, (ox+1)*side, (oy+1)*side)
			draw.Draw(out, dst, tile, image.Point{}, draw.Src)
			b.stats.Regions++
		}
	}
	return out, nil
}

func (b *Builder) closest(avg [3]uint8) (string, error) {
	if b.cfg.ColorCache {
		if path, ok := b.matches[avg]; ok {
			b.stats.CacheHits++
			return path, nil
		}
	}

	path, ok := b.lib.Closest(color.RGBA{R: avg[0], G: avg[1], B: avg[2], A: 255})
	if !ok {
		return "", goerr.Wrap(ErrEmptyLibrary, "no tile to match", goerr.V("dir", b.lib.Dir))
	}
	if b.cfg.ColorCache {
		b.matches[avg] = path
	}
	return path, nil
}

// tile returns the tile at path scaled to side x side.
func (b *Builder) tile(path string, side int) (*image.RGBA, error) {
	if t, ok := b.tiles[path]; ok {
		return t, nil
	}

	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	t := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(t, t.Bounds(), img, img.Bounds(), draw.Src, nil)
	b.tiles[path] = t
	return t, nil
}

// Load decodes the image file at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open image", goerr.V("path", path))
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode image", goerr.V("path", path))
	}
	return img, nil
}
