package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imgprobe/imgprobe/internal/cli"
)

// exitFn is a function for application exiting.
var exitFn = os.Exit //nolint:gochecknoglobals

// main CLI application entrypoint.
func main() { exitFn(run()) }

// run this CLI application.
//
// It is a separate function for the testing purposes.
func run() int {
	var app = cli.NewApp()

	app.Name = filepath.Base(os.Args[0])

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: "+err.Error())

		return 1
	}

	return 0
}
