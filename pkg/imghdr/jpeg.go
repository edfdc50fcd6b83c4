package imghdr

import (
	"bytes"
	"encoding/binary"
	"iter"

	"github.com/pkg/errors"
)

// JPEG marker bytes.
const (
	markerPadding byte = 0xFF // fill byte, one or more precede every marker code
	markerEOI     byte = 0xD9 // end of image
	markerSOS     byte = 0xDA // start of scan
)

// jpegSignature is the SOI marker opening every JPEG stream.
var jpegSignature = []byte{0xFF, 0xD8} //nolint:gochecknoglobals

// segment is a single marker-delimited JPEG segment (the payload excludes the
// two length bytes). Segments are transient - they exist only within the
// scanning loop and are never retained after the scan completes.
type segment struct {
	marker byte
	data   []byte
}

// isSOFMarker reports whether the marker is one of the Start-Of-Frame markers
// carrying the frame dimensions (C4, C8 and CC are DHT/JPG/DAC and carry
// none).
func isSOFMarker(m byte) bool {
	switch m {
	case 0xC0, 0xC1, 0xC2, 0xC3, 0xC5, 0xC6, 0xC7, 0xC9, 0xCA, 0xCB, 0xCD, 0xCE, 0xCF:
		return true
	}

	return false
}

// scanJPEG walks the marker-delimited segments of the passed JPEG content
// (starting at offset 0) until the first SOF segment is found and extracts
// the frame dimensions from it. Scanning stops at SOS or EOI.
func scanJPEG(content []byte) (Dimensions, error) {
	if !bytes.HasPrefix(content, jpegSignature) {
		return Dimensions{}, errors.Wrap(ErrMalformedStructure, "invalid JPEG signature")
	}

	for seg, err := range jpegSegments(content) {
		if err != nil {
			return Dimensions{}, err
		}

		if !isSOFMarker(seg.marker) {
			continue
		}

		// SOF payload layout: [precision 1][height 2][width 2][components...]
		if len(seg.data) < 5 {
			return Dimensions{}, errors.Wrap(ErrMalformedStructure, "JPEG SOF segment too short")
		}

		return Dimensions{
			Width:  uint32(binary.BigEndian.Uint16(seg.data[3:5])),
			Height: uint32(binary.BigEndian.Uint16(seg.data[1:3])),
		}, nil
	}

	return Dimensions{}, errors.Wrap(ErrDimensionsNotFound, "no SOF segment found")
}

// jpegSegments returns a finite, forward-only iterator over the segments of
// the passed JPEG content. Iteration stops at the EOI marker or right after
// the SOS segment header (the entropy-coded data is never inspected). Each
// call re-walks the content from the beginning - the sequence must not be
// cached or reused.
func jpegSegments(content []byte) iter.Seq2[segment, error] {
	return func(yield func(segment, error) bool) {
		var offset, end = len(jpegSignature), len(content)

		for offset < end {
			if content[offset] != markerPadding {
				yield(segment{}, errors.Wrap(ErrMalformedStructure, "malformed JPEG marker"))

				return
			}

			for offset < end && content[offset] == markerPadding { // skip the fill bytes
				offset++
			}

			if offset >= end {
				return
			}

			var marker = content[offset]

			offset++

			if marker == 0x00 { // a stuffed byte is not a real marker
				yield(segment{}, errors.Wrap(ErrMalformedStructure, "malformed JPEG marker"))

				return
			}

			if marker == markerEOI {
				return
			}

			if marker == markerSOS {
				if offset+2 > end {
					yield(segment{}, errors.Wrap(ErrMalformedStructure, "truncated JPEG scan header"))
				}

				return // nothing after the scan header is ever inspected
			}

			if offset+2 > end {
				yield(segment{}, errors.Wrap(ErrMalformedStructure, "truncated JPEG segment length"))

				return
			}

			// the declared length includes the two length bytes themselves
			var length = int(binary.BigEndian.Uint16(content[offset : offset+2]))

			offset += 2

			if length < 2 || offset+length-2 > end {
				yield(segment{}, errors.Wrap(ErrMalformedStructure, "incomplete JPEG segment"))

				return
			}

			if !yield(segment{marker: marker, data: content[offset : offset+length-2]}, nil) {
				return
			}

			offset += length - 2
		}
	}
}
