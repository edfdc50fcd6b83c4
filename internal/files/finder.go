// Package files contains a filesystem walking helper for locating the files to process.
package files

import (
	"context"
	"os"
	"path/filepath"
)

// finderOptions is a set of options for the finder.
type finderOptions struct {
	recursive bool
	filesExt  map[string]struct{}
}

// extIsAllowed checks if the given extension is allowed (exists in the extensions map).
func (o *finderOptions) extIsAllowed(ext string) (ok bool) {
	if o.filesExt == nil {
		return true
	}

	_, ok = o.filesExt[ext]

	return
}

// FinderOption is a function that can be used to modify the finder options.
type FinderOption func(*finderOptions)

// WithRecursive enables the recursive directories walking.
func WithRecursive(recursive bool) FinderOption {
	return func(o *finderOptions) { o.recursive = recursive }
}

// WithFilesExt sets the allowed file extensions (WITHOUT the leading dot).
func WithFilesExt(filesExt ...string) FinderOption {
	return func(o *finderOptions) {
		if len(filesExt) == 0 {
			return
		}

		o.filesExt = make(map[string]struct{}, len(filesExt))

		for _, ext := range filesExt {
			o.filesExt[ext] = struct{}{}
		}
	}
}

// FindFiles finds all files in the given locations (without duplicates) and calls fn for each of them.
// Important note - extension checking is ignored for the directly listed files.
func FindFiles(ctx context.Context, where []string, fn func(absPath string), opts ...FinderOption) error { //nolint:gocognit
	if len(where) == 0 { // fast terminator
		return nil
	}

	var options finderOptions

	for _, opt := range opts {
		opt(&options)
	}

	var locations = make(map[string]struct{}, len(where)) // unique location paths

	for i := 0; i < len(where); i++ { // convert relative paths to absolute
		abs, err := filepath.Abs(where[i])
		if err != nil {
			return err
		}

		locations[abs] = struct{}{}
	}

	var history = make(map[string]struct{}) // for the duplicates detection

	var emit = func(path string) {
		if _, ok := history[path]; !ok {
			history[path] = struct{}{}

			fn(path)
		}
	}

	for location := range locations {
		if err := ctx.Err(); err != nil {
			return err
		}

		locationStat, statErr := os.Stat(location)
		if statErr != nil {
			return statErr
		}

		switch mode := locationStat.Mode(); {
		case mode.IsRegular(): // regular file (eg.: `./picture.png`)
			emit(location)

		case mode.IsDir() && options.recursive: // deep directory walking
			if err := filepath.Walk(location, func(path string, info os.FileInfo, err error) error {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}

				if err != nil || !info.Mode().IsRegular() {
					return err
				}

				if ext := filepath.Ext(info.Name()); len(ext) > 0 && options.extIsAllowed(ext[1:]) {
					emit(path)
				}

				return nil
			}); err != nil {
				return err
			}

		case mode.IsDir(): // flat directory listing
			entries, readDirErr := os.ReadDir(location)
			if readDirErr != nil {
				return readDirErr
			}

			for _, entry := range entries {
				if err := ctx.Err(); err != nil {
					return err
				}

				if !entry.Type().IsRegular() {
					continue
				}

				if ext := filepath.Ext(entry.Name()); len(ext) > 0 && options.extIsAllowed(ext[1:]) {
					emit(filepath.Join(location, entry.Name()))
				}
			}
		}
	}

	return nil
}
