// Package library indexes a directory of tile images by average color.
//
// The index lives next to the tiles in a JSON file named .mosaic_index and
// maps each tile path to its md5 digest and average color. Re-indexing only
// decodes files whose digest changed.
package library

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// IndexFile is the name of the index stored in a library directory.
const IndexFile = ".mosaic_index"

// ErrIndexCorrupt is returned when an existing index cannot be parsed.
var ErrIndexCorrupt = errors.New("mosaic index is corrupt")

// Entry is the indexed state of one tile.
type Entry struct {
	Hash    string   `json:"hash"`
	Average [3]uint8 `json:"average"`
}

// Library is a loaded tile index.
type Library struct {
	Dir     string
	Entries map[string]Entry
}

// Option configures Index.
type Option func(*indexer)

type indexer struct {
	out    io.Writer
	logger *slog.Logger
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(x *indexer) {
		x.out = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(x *indexer) {
		x.logger = logger
	}
}

// Index loads dir's index, refreshes it against the files present and
// writes it back.
func Index(dir string, opts ...Option) (*Library, error) {
	x := &indexer{out: io.Discard, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(x)
	}
	indexPath := filepath.Join(dir, IndexFile)

	entries, err := readIndex(indexPath)
	switch {
	case err == nil:
		fmt.Fprintln(x.out, "Existing index found")
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(x.out, "No index found")
		entries = make(map[string]Entry)
	default:
		return nil, err
	}

	// Drop entries whose backing file is gone.
	for path := range entries {
		if _, err := os.Stat(path); err != nil {
			x.logger.Debug("dropping missing tile", "path", path)
			delete(entries, path)
		}
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read library directory", goerr.V("dir", dir))
	}

	fmt.Fprintln(x.out, "Indexing...")
	for _, f := range files {
		if f.IsDir() || f.Name() == IndexFile {
			continue
		}
		path := filepath.Join(dir, f.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read tile", goerr.V("path", path))
		}
		sum := md5.Sum(data)
		hash := hex.EncodeToString(sum[:])

		if e, ok := entries[path]; ok && e.Hash == hash {
			x.logger.Debug("tile unchanged", "path", path)
			continue
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			fmt.Fprintf(x.out, "Skipping unsupported file %s\n", path)
			x.logger.Debug("tile not decodable", "path", path, "error", err)
			delete(entries, path)
			continue
		}
		entries[path] = Entry{Hash: hash, Average: Average(img)}
	}

	if err := writeIndex(indexPath, entries); err != nil {
		return nil, err
	}
	x.logger.Debug("index written", "path", indexPath, "tiles", len(entries))
	return &Library{Dir: dir, Entries: entries}, nil
}

// Load reads dir's index without refreshing it.
func Load(dir string) (*Library, error) {
	entries, err := readIndex(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, err
	}
	return &Library{Dir: dir, Entries: entries}, nil
}

// Paths returns the indexed tile paths in sorted order.
func (l *Library) Paths() []string {
	paths := make([]string, 0, len(l.Entries))
	for p := range l.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Closest returns the tile whose average color is nearest to c, comparing
// squared channel values. Ties go to the first path in sorted order.
// The boolean is false for an empty library.
func (l *Library) Closest(c color.Color) (string, bool) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	target := [3]uint8{rgba.R, rgba.G, rgba.B}

	best, bestDist := "", math.MaxInt
	for _, p := range l.Paths() {
		d := distance(l.Entries[p].Average, target)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, best != ""
}

func distance(a, b [3]uint8) int {
	var sum float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		sum += math.Abs(x*x - y*y)
	}
	return int(math.Sqrt(sum))
}

// Average returns the root-mean-square color of img.
func Average(img image.Image) [3]uint8 {
	b := img.Bounds()
	n := uint64(b.Dx() * b.Dy())
	if n == 0 {
		return [3]uint8{}
	}

	var r, g, bl uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			r += uint64(c.R) * uint64(c.R)
			g += uint64(c.G) * uint64(c.G)
			bl += uint64(c.B) * uint64(c.B)
		}
	}

	rms := func(sum uint64) uint8 {
		return uint8(math.Sqrt(float64(sum / n)))
	}
	return [3]uint8{rms(r), rms(g), rms(bl)}
}

func readIndex(path string) (map[string]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to read index", goerr.V("path", path))
	}

	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrIndexCorrupt, err), "failed to parse index", goerr.V("path", path))
	}
	return entries, nil
}

func writeIndex(path string, entries map[string]Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return goerr.Wrap(err, "failed to encode index")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write index", goerr.V("path", path))
	}
	return nil
}
