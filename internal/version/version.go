// Package version is used as a single application version value container.
package version

import "strings"

// version value will be set during compilation.
var version = "v0.0.0@undefined" //nolint:gochecknoglobals

// Version returns version value (without `v` prefix).
func Version() string { return strings.TrimLeft(version, "vV ") }
