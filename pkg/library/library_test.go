package library_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/xob0t/swatchgen/pkg/generator"
	"github.com/xob0t/swatchgen/pkg/library"
	"github.com/xob0t/swatchgen/pkg/palette"
)

// writeTiles fills root/images with 8x8 tiles for names.
func writeTiles(t *testing.T, root string, names ...string) string {
	t.Helper()
	dir := filepath.Join(root, "images")
	gt.NoError(t, os.MkdirAll(dir, 0755))

	_, err := generator.New(generator.Images, generator.WithRoot(root)).Run(palette.Named(names))
	gt.NoError(t, err)
	return dir
}

func TestIndex(t *testing.T) {
	dir := writeTiles(t, t.TempDir(), "red", "blue", "white")
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644))

	lib, err := library.Index(dir)
	gt.NoError(t, err)
	gt.Equal(t, lib.Paths(), []string{
		filepath.Join(dir, "BLUE.png"),
		filepath.Join(dir, "RED.png"),
		filepath.Join(dir, "WHITE.png"),
	})
	gt.Equal(t, lib.Entries[filepath.Join(dir, "RED.png")].Average, [3]uint8{255, 0, 0})
	gt.Equal(t, lib.Entries[filepath.Join(dir, "WHITE.png")].Average, [3]uint8{255, 255, 255})
	gt.Equal(t, len(lib.Entries[filepath.Join(dir, "BLUE.png")].Hash), 32)

	loaded, err := library.Load(dir)
	gt.NoError(t, err)
	gt.Equal(t, loaded.Entries, lib.Entries)
}

func TestIndexKeepsUnchangedEntries(t *testing.T) {
	dir := writeTiles(t, t.TempDir(), "red")
	red := filepath.Join(dir, "RED.png")

	lib, err := library.Index(dir)
	gt.NoError(t, err)
	hash := lib.Entries[red].Hash

	// A stale average with the current hash is trusted as-is.
	stale := map[string]library.Entry{red: {Hash: hash, Average: [3]uint8{1, 2, 3}}}
	data, err := json.Marshal(stale)
	gt.NoError(t, err)
	gt.NoError(t, os.WriteFile(filepath.Join(dir, library.IndexFile), data, 0644))

	lib, err = library.Index(dir)
	gt.NoError(t, err)
	gt.Equal(t, lib.Entries[red].Average, [3]uint8{1, 2, 3})
}

func TestIndexDropsMissingFiles(t *testing.T) {
	dir := writeTiles(t, t.TempDir(), "red", "blue")

	_, err := library.Index(dir)
	gt.NoError(t, err)
	gt.NoError(t, os.Remove(filepath.Join(dir, "BLUE.png")))

	lib, err := library.Index(dir)
	gt.NoError(t, err)
	gt.Equal(t, lib.Paths(), []string{filepath.Join(dir, "RED.png")})
}

func TestIndexCorrupt(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, library.IndexFile), []byte("{"), 0644))

	_, err := library.Index(dir)
	gt.True(t, errors.Is(err, library.ErrIndexCorrupt))
}

func TestLoadMissingIndex(t *testing.T) {
	_, err := library.Load(t.TempDir())
	gt.True(t, errors.Is(err, os.ErrNotExist))
}

func TestClosest(t *testing.T) {
	dir := writeTiles(t, t.TempDir(), "red", "blue", "black", "white")
	lib, err := library.Index(dir)
	gt.NoError(t, err)

	testCases := []struct {
		name string
		c    color.Color
		want string
	}{
		{"exact", color.RGBA{R: 255, A: 255}, "RED.png"},
		{"dark red", color.RGBA{R: 200, G: 10, A: 255}, "RED.png"},
		{"dark blue", color.RGBA{B: 200, A: 255}, "BLUE.png"},
		{"near black", color.RGBA{R: 5, G: 5, B: 5, A: 255}, "BLACK.png"},
		{"light gray", color.RGBA{R: 240, G: 240, B: 240, A: 255}, "WHITE.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := lib.Closest(tc.c)
			gt.True(t, ok)
			gt.Equal(t, got, filepath.Join(dir, tc.want))
		})
	}
}

func TestClosestEmpty(t *testing.T) {
	lib := &library.Library{Entries: map[string]library.Entry{}}
	_, ok := lib.Closest(color.Black)
	gt.False(t, ok)
}

func TestAverage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{A: 255})

	// sqrt((255^2 + 0) / 2) = 180.3
	gt.Equal(t, library.Average(img), [3]uint8{180, 0, 0})
	gt.Equal(t, library.Average(image.NewRGBA(image.Rect(0, 0, 0, 0))), [3]uint8{})
}

func TestIndexOutput(t *testing.T) {
	dir := writeTiles(t, t.TempDir(), "red")
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644))

	var out bytes.Buffer
	_, err := library.Index(dir, library.WithOutput(&out))
	gt.NoError(t, err)
	gt.Equal(t, out.String(), "No index found\nIndexing...\nSkipping unsupported file "+filepath.Join(dir, "notes.txt")+"\n")

	out.Reset()
	_, err = library.Index(dir, library.WithOutput(&out))
	gt.NoError(t, err)
	gt.Equal(t, out.String(), "Existing index found\nIndexing...\nSkipping unsupported file "+filepath.Join(dir, "notes.txt")+"\n")
}

func TestIndexCorruptKeepsCause(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, library.IndexFile), []byte(`{"a": 1}`), 0644))

	_, err := library.Index(dir)
	gt.True(t, errors.Is(err, library.ErrIndexCorrupt))

	var typeErr *json.UnmarshalTypeError
	gt.True(t, errors.As(err, &typeErr))
}
