package imaging

import (
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// JPEGQuality is used for every JPEG encode
const JPEGQuality = 95

// Formats lists every supported format
var Formats = []Format{FormatPPM, FormatPNG, FormatJPEG, FormatBMP, FormatTIFF}

// ParseFormat accepts a format name or file extension, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
	}
}

// FormatFromPath picks a format from the file extension of path
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Wrapf(ErrUnsupportedFormat, "no extension in %q", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// Encode writes img to w in the given format. Raster formats store the same
// row order as PPM: row 0 at the top.
func Encode(w io.Writer, img *Image, format Format) error {
	if format == FormatPPM {
		return WritePPM(w, img)
	}

	switch format {
	case FormatPNG, FormatJPEG, FormatBMP, FormatTIFF:
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	rgba, err := img.ToRGBA()
	if err != nil {
		return err
	}
	if len(img.Pixels) == 0 {
		return errors.Wrapf(ErrEmptyImage, "cannot encode %s", format)
	}

	switch format {
	case FormatPNG:
		err = png.Encode(w, rgba)
	case FormatJPEG:
		err = jpeg.Encode(w, rgba, &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		err = bmp.Encode(w, rgba)
	case FormatTIFF:
		err = tiff.Encode(w, rgba, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", format)
	}
	return nil
}

// Save writes img to path, choosing the format from the extension.
// Parent directories are created as needed.
func Save(path string, img *Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	// Fail before touching the filesystem
	if err := img.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(err, "failed to close output file")
	}
	return nil
}
