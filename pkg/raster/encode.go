package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnknownFormat = errors.New("unknown image format")

type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// FormatFromPath picks an image format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".bmp":
		return BMP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Encode writes m to w in format f.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, m)
	case TIFF:
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case BMP:
		return bmp.Encode(w, m)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Save writes the canvas to path, in the format named by its extension.
func (c *Canvas) Save(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	err = Encode(out, c.img, f)
	if err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
