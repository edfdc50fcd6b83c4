// Package shared contains CLI flags that are used by multiple commands.
package shared

import (
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/imgprobe/imgprobe/internal/env"
)

// FileExtensionsFlag is a flag for the image file extensions (without leading dots).
var FileExtensionsFlag = &cli.StringSliceFlag{ //nolint:gochecknoglobals
	Name:    "ext",
	Aliases: []string{"e"},
	Usage:   "image file extensions (without leading dots)",
	Value:   cli.NewStringSlice("jpg", "JPG", "jpeg", "JPEG", "png", "PNG"),
}

// RecursiveFlag is a flag for the recursive directories walking.
var RecursiveFlag = &cli.BoolFlag{ //nolint:gochecknoglobals
	Name:    "recursive",
	Aliases: []string{"r"},
	Usage:   "search for files in listed directories recursively",
}

// ThreadsCountFlag is a flag for the processing threads count.
var ThreadsCountFlag = &cli.UintFlag{ //nolint:gochecknoglobals
	Name:    "threads",
	Aliases: []string{"t"},
	Usage:   "threads count",
	Value:   uint(runtime.NumCPU()),
	EnvVars: []string{env.ThreadsCount.String()},
}
