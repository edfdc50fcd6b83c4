// Package imghdr identifies PNG and JPEG files and extracts their pixel
// dimensions by parsing only the minimal structural headers - pixel data is
// never decoded.
package imghdr

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// pngSignature is the fixed 8-byte PNG file signature.
var pngSignature = [...]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A} //nolint:gochecknoglobals

// Format is a supported image format tag.
type Format uint8

// Supported image formats.
const (
	FormatPNG Format = iota + 1
	FormatJPEG
)

// String returns the format name in a string representation.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "PNG"

	case FormatJPEG:
		return "JPEG"
	}

	return "unknown"
}

// Dimensions is a pair of pixel sizes extracted from an image header.
type Dimensions struct {
	Width, Height uint32
}

// File represents a successfully identified image. It is constructed by Open
// only (there is no "empty" or partially-initialized state) and must not be
// mutated afterwards. No OS handle is retained past the Open call.
type File struct {
	Path   string     // filesystem path the file was identified at
	Format Format     // identified image format
	Size   Dimensions // pixel dimensions extracted from the header
}

type openOptions struct {
	mode string
}

// OpenOption allows to setup some Open properties from outside.
type OpenOption func(*openOptions)

// WithMode sets the open mode. Only read mode ("r") is supported; any other
// value is rejected before any I/O occurs.
func WithMode(mode string) OpenOption { return func(o *openOptions) { o.mode = mode } }

// Open identifies the image file at the given path and returns a File with
// the detected format and pixel dimensions. The file is opened, read and
// closed within this call.
func Open(path string, options ...OpenOption) (*File, error) {
	var opt = openOptions{mode: "r"}

	for _, option := range options {
		option(&opt)
	}

	if opt.mode != "r" {
		return nil, errors.Wrapf(ErrUnsupportedMode, "mode %q", opt.mode)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, path)
		}

		return nil, err
	}

	format, size, err := identify(path)
	if err != nil {
		return nil, err
	}

	return &File{Path: path, Format: format, Size: size}, nil
}

// Verify re-parses the file to ensure it remains readable. The re-parsed
// result is discarded - it is not compared against the stored format and
// dimensions.
func (f *File) Verify() error {
	_, _, err := identify(f.Path)

	return err
}

// Close is a no-op, kept for callers expecting guaranteed cleanup - the file
// handle is closed before Open returns.
func (f *File) Close() error { return nil }

// identify sniffs the leading bytes of the file and dispatches to the
// format-specific parser. Exactly one file handle is opened and closed for
// the duration of the call.
func identify(path string) (Format, Dimensions, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) { // the file may disappear between the calls
			return 0, Dimensions{}, errors.Wrap(ErrNotFound, path)
		}

		return 0, Dimensions{}, openErr
	}

	defer func() { _ = file.Close() }()

	var signature [8]byte

	if _, err := io.ReadFull(file, signature[:]); err != nil {
		return 0, Dimensions{}, errors.Wrap(ErrUnidentifiedFormat, path)
	}

	switch {
	case signature == pngSignature: // the stream is positioned right after the signature
		size, err := readPNGHeader(file)
		if err != nil {
			return 0, Dimensions{}, err
		}

		return FormatPNG, size, nil

	case signature[0] == 0xFF && signature[1] == 0xD8: // SOI marker
		if _, err := file.Seek(0, io.SeekStart); err != nil { // the scanner re-reads the SOI itself
			return 0, Dimensions{}, err
		}

		content, err := io.ReadAll(file)
		if err != nil {
			return 0, Dimensions{}, err
		}

		size, scanErr := scanJPEG(content)
		if scanErr != nil {
			return 0, Dimensions{}, scanErr
		}

		return FormatJPEG, size, nil
	}

	return 0, Dimensions{}, errors.Wrap(ErrUnidentifiedFormat, path)
}
