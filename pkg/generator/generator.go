// Package generator turns palette Specs into solid-color PNG files.
//
// Every Spec goes through the same steps: resolve the fill color, build a
// uniform image of the profile's size, write it as PNG under the profile's
// directory and print a "wrote <path>" line. Specs are processed one at a
// time and the first failure stops the run.
package generator

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xob0t/swatchgen/pkg/palette"
)

// Profile fixes the output directory and image size of a run.
type Profile struct {
	Name      string
	Dir       string // relative to the emitter root
	Width     int
	Height    int
	CreateDir bool // create Dir (with parents) before the first write
}

// Built-in profiles.
var (
	ColorImages = Profile{Name: "color_images", Dir: "color_images", Width: 16, Height: 16}
	Images      = Profile{Name: "images", Dir: "images", Width: 8, Height: 8}
	SweepImages = Profile{Name: "sweep", Dir: filepath.Join("sample", "solid_colors"), Width: 16, Height: 16, CreateDir: true}
)

// Profiles maps profile names accepted on the command line to profiles.
var Profiles = map[string]Profile{
	ColorImages.Name: ColorImages,
	Images.Name:      Images,
}

// ImageSpec is the image built for one Spec.
type ImageSpec struct {
	Width  int
	Height int
	Fill   palette.Spec
}

// Render resolves the fill color and returns the filled image.
func (s ImageSpec) Render() (*image.RGBA, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, goerr.New("image dimensions must be positive",
			goerr.V("width", s.Width), goerr.V("height", s.Height))
	}

	c, err := Resolve(s.Fill)
	if err != nil {
		return nil, err
	}
	return NewSolidImage(s.Width, s.Height, c), nil
}

// Emitter writes one PNG per Spec.
type Emitter struct {
	profile Profile
	root    string
	format  palette.NameFormat
	out     io.Writer
	saver   Saver
	logger  *slog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithRoot sets the directory the profile directory is resolved against.
func WithRoot(root string) Option {
	return func(e *Emitter) {
		e.root = root
	}
}

// WithNameFormat sets how HSL components are rendered into file names.
func WithNameFormat(f palette.NameFormat) Option {
	return func(e *Emitter) {
		e.format = f
	}
}

// WithOutput sets where "wrote <path>" lines are printed.
func WithOutput(w io.Writer) Option {
	return func(e *Emitter) {
		e.out = w
	}
}

// WithSaver replaces the PNG file writer.
func WithSaver(s Saver) Option {
	return func(e *Emitter) {
		e.saver = s
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) {
		e.logger = logger
	}
}

// New creates an Emitter for profile p.
func New(p Profile, opts ...Option) *Emitter {
	e := &Emitter{
		profile: p,
		root:    ".",
		format:  palette.UniformNames,
		out:     io.Discard,
		saver:   PNGSaver,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the directory files are written to.
func (e *Emitter) Dir() string {
	return filepath.Join(e.root, e.profile.Dir)
}

// Path returns the output path for s.
func (e *Emitter) Path(s palette.Spec) string {
	return filepath.Join(e.Dir(), s.FileName(e.format))
}

// Emit renders s, writes it and prints the confirmation line.
func (e *Emitter) Emit(s palette.Spec) (string, error) {
	path := e.Path(s)

	img, err := ImageSpec{Width: e.profile.Width, Height: e.profile.Height, Fill: s}.Render()
	if err != nil {
		return "", goerr.Wrap(err, "failed to render image", goerr.V("color", s.String()))
	}

	if err := e.saver.Save(path, img); err != nil {
		return "", err
	}

	e.logger.Debug("image written", "path", path, "color", s.String(),
		"width", e.profile.Width, "height", e.profile.Height)
	fmt.Fprintf(e.out, "wrote %s\n", path)
	return path, nil
}

// Run emits specs in order and returns the paths written. On failure the
// files already written stay in place and the paths so far are returned
// alongside the error.
func (e *Emitter) Run(specs []palette.Spec) ([]string, error) {
	if e.profile.CreateDir {
		if err := mkdir(e.Dir()); err != nil {
			return nil, err
		}
	}

	written := make([]string, 0, len(specs))
	seen := make(map[string]palette.Spec, len(specs))
	for _, s := range specs {
		path := e.Path(s)
		if prev, ok := seen[path]; ok {
			e.logger.Warn("output path written twice, overwriting",
				"path", path, "previous", prev.String(), "color", s.String())
		}
		seen[path] = s

		if _, err := e.Emit(s); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	e.logger.Info("run finished", "profile", e.profile.Name, "files", len(written))
	return written, nil
}
