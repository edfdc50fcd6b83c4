package imghdr_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgprobe/imgprobe/pkg/imghdr"
)

func pngFile(t *testing.T, content []byte) string {
	t.Helper()

	var path = filepath.Join(t.TempDir(), "fixture.png")

	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestPNG_WrongChunkType(t *testing.T) {
	var content = []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D,
		0x41, 0x42, 0x43, 0x44, // "ABCD" instead of "IHDR"
		0x00, 0x00, 0x01, 0x00,
		0x00, 0x00, 0x00, 0xC8,
		0x08, 0x02, 0x00, 0x00, 0x00,
	}

	_, err := imghdr.Open(pngFile(t, content))

	assert.ErrorIs(t, err, imghdr.ErrMalformedStructure)
	assert.Contains(t, err.Error(), "missing IHDR")
}

func TestPNG_IHDRTooShortDeclared(t *testing.T) {
	// declared chunk length is less than 8 - not enough for width+height
	var content = []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x07,
		0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x01, 0x00,
		0x00, 0x00, 0x00,
	}

	_, err := imghdr.Open(pngFile(t, content))

	assert.ErrorIs(t, err, imghdr.ErrMalformedStructure)
	assert.Contains(t, err.Error(), "missing IHDR")
}

func TestPNG_TruncatedIHDRData(t *testing.T) {
	// 13 bytes declared, only 6 available
	var content = []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D,
		0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x01, 0x00,
		0x00, 0x00,
	}

	_, err := imghdr.Open(pngFile(t, content))

	assert.ErrorIs(t, err, imghdr.ErrMalformedStructure)
	assert.Contains(t, err.Error(), "truncated PNG IHDR")
}

func TestPNG_IncompleteChunkHeader(t *testing.T) {
	// signature only, no chunk header at all
	var content = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

	_, err := imghdr.Open(pngFile(t, content))

	assert.ErrorIs(t, err, imghdr.ErrMalformedStructure)
	assert.Contains(t, err.Error(), "incomplete PNG header")
}

func TestPNG_HugeDeclaredChunkLength(t *testing.T) {
	// the chunk claims ~4 GiB of data while the file holds 8 bytes; parsing
	// must fail fast without buffering the declared length
	var content = []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0xFF, 0xFF, 0xFF, 0x00, // chunk length (4294967040)
		0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x01, 0x00,
		0x00, 0x00, 0x00, 0xC8,
	}

	_, err := imghdr.Open(pngFile(t, content))

	assert.ErrorIs(t, err, imghdr.ErrMalformedStructure)
	assert.Contains(t, err.Error(), "truncated PNG IHDR")
}

func TestPNG_LargeDimensions(t *testing.T) {
	var content = []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D,
		0x49, 0x48, 0x44, 0x52,
		0x00, 0x01, 0x00, 0x00, // width (65536)
		0x7F, 0xFF, 0xFF, 0xFF, // height (2147483647)
		0x08, 0x06, 0x00, 0x00, 0x00,
	}

	file, err := imghdr.Open(pngFile(t, content))
	require.NoError(t, err)

	assert.Equal(t, imghdr.Dimensions{Width: 65536, Height: 2147483647}, file.Size)
}
