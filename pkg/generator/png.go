// png.go — PNG file writer.
package generator

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/m-mizutani/goerr/v2"
)

// writePNG encodes img to a PNG file at the given path, replacing any
// existing file.
func writePNG(output string, img image.Image) (err error) {
	f, err := os.Create(output)
	if err != nil {
		return fsError(err, "failed to create file", output)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fsError(cerr, "failed to close file", output)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fsError(err, "failed to encode PNG", output)
	}
	return nil
}

// mkdir creates dir and any missing parents.
func mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fsError(err, "failed to create directory", dir)
	}
	return nil
}

func fsError(err error, msg, path string) error {
	return goerr.Wrap(fmt.Errorf("%w: %w", ErrFilesystem, err), msg, goerr.V("path", path))
}
