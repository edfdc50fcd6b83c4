package imghdr_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgprobe/imgprobe/pkg/imghdr"
)

// validPNG returns the bytes of a minimal well-formed PNG header: signature,
// IHDR chunk (13 bytes of data) with width 256 and height 200.
func validPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // signature
		0x00, 0x00, 0x00, 0x0D, // chunk length (13)
		0x49, 0x48, 0x44, 0x52, // "IHDR"
		0x00, 0x00, 0x01, 0x00, // width (256)
		0x00, 0x00, 0x00, 0xC8, // height (200)
		0x08, 0x02, 0x00, 0x00, 0x00, // bit depth, color type, etc.
	}
}

// validJPEG returns the bytes of a minimal well-formed JPEG: SOI followed by
// a SOF0 segment with height 100 and width 200.
func validJPEG() []byte {
	return []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xC0, // SOF0
		0x00, 0x11, // segment length (17, including these two bytes)
		0x08,       // sample precision
		0x00, 0x64, // height (100)
		0x00, 0xC8, // width (200)
		0x03,                                                 // components count
		0x01, 0x22, 0x00, 0x02, 0x11, 0x01, 0x03, 0x11, 0x01, // components
	}
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	var path = filepath.Join(t.TempDir(), name)

	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestOpen_PNG(t *testing.T) {
	var path = writeFile(t, "image.png", validPNG())

	file, err := imghdr.Open(path)
	require.NoError(t, err)

	assert.Equal(t, path, file.Path)
	assert.Equal(t, imghdr.FormatPNG, file.Format)
	assert.Equal(t, imghdr.Dimensions{Width: 256, Height: 200}, file.Size)

	assert.NoError(t, file.Close())
}

func TestOpen_JPEG(t *testing.T) {
	var path = writeFile(t, "image.jpg", validJPEG())

	file, err := imghdr.Open(path)
	require.NoError(t, err)

	assert.Equal(t, imghdr.FormatJPEG, file.Format)
	assert.Equal(t, imghdr.Dimensions{Width: 200, Height: 100}, file.Size)
}

func TestOpen_NotFound(t *testing.T) {
	file, err := imghdr.Open(filepath.Join(t.TempDir(), "nope.png"))

	assert.Nil(t, file)
	assert.ErrorIs(t, err, imghdr.ErrNotFound)
	assert.Contains(t, err.Error(), "nope.png")
}

func TestOpen_UnsupportedMode(t *testing.T) {
	// rejected before any I/O - the path does not even have to exist
	file, err := imghdr.Open(filepath.Join(t.TempDir(), "whatever.png"), imghdr.WithMode("w"))

	assert.Nil(t, file)
	assert.ErrorIs(t, err, imghdr.ErrUnsupportedMode)
}

func TestOpen_ReadModeExplicitly(t *testing.T) {
	var path = writeFile(t, "image.png", validPNG())

	file, err := imghdr.Open(path, imghdr.WithMode("r"))

	require.NoError(t, err)
	assert.Equal(t, imghdr.FormatPNG, file.Format)
}

func TestOpen_EmptyFile(t *testing.T) {
	// the file exists, but 8 signature bytes cannot be read
	var path = writeFile(t, "empty.png", []byte{})

	file, err := imghdr.Open(path)

	assert.Nil(t, file)
	assert.ErrorIs(t, err, imghdr.ErrUnidentifiedFormat)
	assert.NotErrorIs(t, err, imghdr.ErrNotFound)
}

func TestOpen_UnknownSignature(t *testing.T) {
	var path = writeFile(t, "readme.txt", []byte("definitely not an image, but long enough"))

	_, err := imghdr.Open(path)

	assert.ErrorIs(t, err, imghdr.ErrUnidentifiedFormat)
}

func TestFile_Verify(t *testing.T) {
	var path = writeFile(t, "image.png", validPNG())

	file, err := imghdr.Open(path)
	require.NoError(t, err)

	for i := 0; i < 10; i++ { // verification is idempotent
		assert.NoError(t, file.Verify())
	}

	// the handle reflects the same values no matter how many times the
	// underlying file was re-identified
	assert.Equal(t, imghdr.FormatPNG, file.Format)
	assert.Equal(t, imghdr.Dimensions{Width: 256, Height: 200}, file.Size)
}

func TestFile_VerifyAfterCorruption(t *testing.T) {
	var path = writeFile(t, "image.jpg", validJPEG())

	file, err := imghdr.Open(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	assert.ErrorIs(t, file.Verify(), imghdr.ErrUnidentifiedFormat)
}

func TestFile_VerifyAfterRemoval(t *testing.T) {
	var path = writeFile(t, "image.jpg", validJPEG())

	file, err := imghdr.Open(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	var err2 = file.Verify()

	assert.ErrorIs(t, err2, imghdr.ErrNotFound)
	assert.NotErrorIs(t, err2, imghdr.ErrUnidentifiedFormat)
	assert.Contains(t, err2.Error(), "image.jpg")
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "PNG", imghdr.FormatPNG.String())
	assert.Equal(t, "JPEG", imghdr.FormatJPEG.String())
	assert.Equal(t, "unknown", imghdr.Format(0).String())
}
