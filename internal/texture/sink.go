package texture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatTGA  Format = "tga"
)

// ErrUnknownFormat is returned for format names and file extensions that
// have no encoder.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat converts a format name to a Format. Names are case-insensitive
// and "tif" is accepted for TIFF.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "tga":
		return FormatTGA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ext returns the conventional file extension, with the dot.
func (f Format) Ext() string {
	if f == FormatTIFF {
		return ".tif"
	}
	return "." + string(f)
}

// Encode writes img to w in format f.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatTGA:
		return EncodeTGA(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// Sink receives finished images.
type Sink interface {
	Write(path string, img image.Image) error
}

// FileSink writes images to files under Dir.
type FileSink struct {
	// Dir is prepended to relative paths. Empty means the working directory.
	Dir string

	// Format forces an encoder. Empty infers it from each path's extension.
	Format Format
}

// NewFileSink creates a sink writing into dir.
func NewFileSink(dir string, format Format) *FileSink {
	return &FileSink{Dir: dir, Format: format}
}

// Resolve returns the path a Write to path would create.
func (s *FileSink) Resolve(path string) string {
	if s.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Dir, path)
}

// Write encodes img to path, creating parent directories as needed.
// The file handle is closed on every path; a close failure is reported
// together with any encode failure.
func (s *FileSink) Write(path string, img image.Image) (err error) {
	format := s.Format
	if format == "" {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	path = s.Resolve(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	if err := format.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}
