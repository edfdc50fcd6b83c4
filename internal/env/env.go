// Package env holds the environment variables recognized by this application.
package env

import "os"

type envVariable string

const (
	LogLevel  envVariable = "LOG_LEVEL"  // logging level
	LogFormat envVariable = "LOG_FORMAT" // logging format

	ThreadsCount envVariable = "THREADS_COUNT" // parallel workers count
)

// String returns the name of the environment variable.
func (e envVariable) String() string { return string(e) }

// Lookup retrieves the value of the environment variable. The boolean reports
// whether the variable is present in the environment at all (a present but
// empty value yields an empty string and true).
func (e envVariable) Lookup() (string, bool) { return os.LookupEnv(string(e)) }
