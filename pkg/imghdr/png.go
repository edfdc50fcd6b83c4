package imghdr

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// minIHDRLength is the minimum IHDR chunk length needed to hold the width and
// height fields.
const minIHDRLength = 8

// readPNGHeader reads the mandatory first chunk of a PNG file (which must be
// IHDR) and extracts the pixel dimensions from it. The reader must be
// positioned right after the 8-byte signature. Chunk CRCs are not validated -
// only structural well-formedness is checked.
func readPNGHeader(r io.Reader) (Dimensions, error) {
	var header [8]byte // 4-byte chunk length + 4-byte chunk type

	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Dimensions{}, errors.Wrap(ErrMalformedStructure, "incomplete PNG header")
	}

	var length = binary.BigEndian.Uint32(header[0:4])

	if string(header[4:8]) != "IHDR" || length < minIHDRLength {
		return Dimensions{}, errors.Wrap(ErrMalformedStructure, "PNG missing IHDR chunk")
	}

	// width and height are the first 8 bytes of the chunk data, each a
	// big-endian unsigned 32-bit integer; the declared length is attacker
	// controlled, so the remainder is drained instead of being buffered
	var data [minIHDRLength]byte

	if _, err := io.ReadFull(r, data[:]); err != nil {
		return Dimensions{}, errors.Wrap(ErrMalformedStructure, "truncated PNG IHDR data")
	}

	if _, err := io.CopyN(io.Discard, r, int64(length)-minIHDRLength); err != nil {
		return Dimensions{}, errors.Wrap(ErrMalformedStructure, "truncated PNG IHDR data")
	}

	return Dimensions{
		Width:  binary.BigEndian.Uint32(data[0:4]),
		Height: binary.BigEndian.Uint32(data[4:8]),
	}, nil
}
