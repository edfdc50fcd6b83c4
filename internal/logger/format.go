package logger

import (
	"bytes"
	"fmt"
)

// Format determines the encoding of the log records.
type Format uint8

const (
	ConsoleFormat Format = iota // colored single-line records (for humans)
	JSONFormat                  // one json object per record (for aggregators)
)

// AllFormats returns every supported logging format.
func AllFormats() []Format { return []Format{ConsoleFormat, JSONFormat} }

// AllFormatStrings returns string representations of every supported logging format.
func AllFormatStrings() []string {
	var result = make([]string, 0, len(AllFormats()))

	for _, f := range AllFormats() {
		result = append(result, f.String())
	}

	return result
}

// String returns the format name in a lower-case string representation.
func (f Format) String() string {
	switch f {
	case ConsoleFormat:
		return "console"
	case JSONFormat:
		return "json"
	}

	return fmt.Sprintf("format(%d)", f)
}

// ParseFormat converts a textual format name (case-insensitive, an empty value
// falls back to the console format) into a Format value.
func ParseFormat(text []byte) (Format, error) {
	switch string(bytes.ToLower(text)) {
	case "console", "":
		return ConsoleFormat, nil
	case "json":
		return JSONFormat, nil
	}

	return Format(0), fmt.Errorf("unrecognized logging format: %q", text)
}
