package generator

import (
	"errors"
	"image"
)

var (
	// ErrInvalidColorName is returned when a named token has no known color.
	ErrInvalidColorName = errors.New("invalid color name")

	// ErrFilesystem wraps directory creation and file write failures.
	ErrFilesystem = errors.New("filesystem error")
)

// Saver persists an encoded image at a path.
type Saver interface {
	Save(path string, img image.Image) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(path string, img image.Image) error

// Save calls f(path, img).
func (f SaverFunc) Save(path string, img image.Image) error {
	return f(path, img)
}

// PNGSaver writes PNG files to the local filesystem.
var PNGSaver Saver = SaverFunc(writePNG)
