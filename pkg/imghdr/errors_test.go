package imghdr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imgprobe/imgprobe/pkg/imghdr"
)

func TestError_Error(t *testing.T) {
	for name, tt := range map[string]struct {
		giveError imghdr.Error
		wantText  string
	}{
		"not found":          {giveError: imghdr.ErrNotFound, wantText: "imghdr: file does not exist"},
		"unsupported mode":   {giveError: imghdr.ErrUnsupportedMode, wantText: "imghdr: unsupported usage (only read mode is allowed)"},
		"unidentified":       {giveError: imghdr.ErrUnidentifiedFormat, wantText: "imghdr: unidentified image format"},
		"malformed":          {giveError: imghdr.ErrMalformedStructure, wantText: "imghdr: malformed image structure"},
		"dimensions missing": {giveError: imghdr.ErrDimensionsNotFound, wantText: "imghdr: could not determine image dimensions"},
		"unknown":            {giveError: imghdr.Error(255), wantText: "imghdr: unknown error"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.wantText, tt.giveError.Error())
		})
	}
}
