package logger

import (
	"bytes"
	"fmt"
)

// Level limits the verbosity of the log records.
type Level int8

const (
	DebugLevel Level = iota - 1
	InfoLevel        // zero-value, the default
	WarnLevel
	ErrorLevel
)

// AllLevels returns every supported logging level, ordered by verbosity.
func AllLevels() []Level { return []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel} }

// AllLevelStrings returns string representations of every supported logging level.
func AllLevelStrings() []string {
	var result = make([]string, 0, len(AllLevels()))

	for _, l := range AllLevels() {
		result = append(result, l.String())
	}

	return result
}

// String returns the level name in a lower-case string representation.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	}

	return fmt.Sprintf("level(%d)", l)
}

// ParseLevel converts a textual level name (case-insensitive, an empty value
// falls back to the info level) into a Level value. A few aliases for the
// debug level are accepted for convenience.
func ParseLevel(text []byte) (Level, error) {
	switch string(bytes.ToLower(text)) {
	case "debug", "verbose", "trace":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}

	return Level(0), fmt.Errorf("unrecognized logging level: %q", text)
}
