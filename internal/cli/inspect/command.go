// Package inspect contains CLI `inspect` command implementation.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/imgprobe/imgprobe/internal/breaker"
	"github.com/imgprobe/imgprobe/internal/cli/shared"
	appFiles "github.com/imgprobe/imgprobe/internal/files"
	"github.com/imgprobe/imgprobe/pkg/imghdr"
)

type command struct {
	log *zap.Logger
	c   *cli.Command
}

// NewCommand creates `inspect` command.
func NewCommand(log *zap.Logger) *cli.Command {
	const maxErrorsToStopFlagName = "max-errors"

	var cmd = command{log: log}

	cmd.c = &cli.Command{
		Name:      "inspect",
		ArgsUsage: "<target-files-and-directories...>",
		Aliases:   []string{"i"},
		Usage:     "Inspect images (format and pixel dimensions, without decoding the pixel data)",
		Action: func(c *cli.Context) error {
			var (
				fileExtensions  = c.StringSlice(shared.FileExtensionsFlag.Name)
				threadsCount    = c.Uint(shared.ThreadsCountFlag.Name)
				maxErrorsToStop = c.Uint(maxErrorsToStopFlagName)
				recursive       = c.Bool(shared.RecursiveFlag.Name)
				paths           = c.Args().Slice()
			)

			log.Debug("Run args",
				zap.Strings("fileExtensions", fileExtensions),
				zap.Uint("threadsCount", threadsCount),
				zap.Uint("maxErrorsToStop", maxErrorsToStop),
				zap.Bool("recursive", recursive),
				zap.Strings("args", paths),
			)

			if len(paths) == 0 {
				return errors.New("no files or directories specified")
			}

			if threadsCount == 0 {
				threadsCount = 1
			}

			if maxErrorsToStop == 0 { // zero means "do not stop at all"
				maxErrorsToStop = math.MaxUint32
			}

			return cmd.Run(c.Context, paths, fileExtensions, recursive, threadsCount, maxErrorsToStop)
		},
		Flags: []cli.Flag{
			shared.FileExtensionsFlag,
			shared.ThreadsCountFlag,
			&cli.UintFlag{
				Name:  maxErrorsToStopFlagName,
				Usage: "maximum errors count to stop the process (set 0 to disable)",
				Value: 10, //nolint:gomnd
			},
			shared.RecursiveFlag,
		},
	}

	return cmd.c
}

// Run current command.
func (cmd *command) Run( //nolint:funlen
	pCtx context.Context,
	paths, fileExt []string,
	recursive bool,
	threadsCount, maxErrorsToStop uint,
) error {
	var (
		ctx, cancel = context.WithCancel(pCtx)  // main context creation
		oss         = breaker.NewOSSignals(ctx) // OS signals listener
	)

	oss.Subscribe(func(sig os.Signal) {
		cmd.log.Debug("Stopping by OS signal..", zap.String("signal", sig.String()))

		cancel()
	})

	defer func() {
		cancel()   // call cancellation function after all for "service" goroutines stopping
		oss.Stop() // stop system signals listening
	}()

	files, findErr := cmd.FindFiles(ctx, paths, fileExt, recursive)
	if findErr != nil {
		if errors.Is(findErr, context.Canceled) {
			return errors.New("images searching was canceled")
		}

		return findErr
	}

	if len(files) == 0 {
		return errors.New("nothing to inspect (files not found)")
	}

	var (
		stats   = NewStatsStorage(len(files))
		watcher = make(ErrorsWatcher, 1)

		errorsCount uint32
	)

	go stats.Watch(ctx)
	defer stats.Close()

	var watcherDone = make(chan struct{})

	go func() {
		defer close(watcherDone)

		watcher.Watch(ctx, maxErrorsToStop,
			WithOnErrorHandler(func(err error) {
				errorsCount++

				cmd.log.Warn("Inspection failed", zap.Error(err))
			}),
			WithLimitExceededHandler(func() {
				cmd.log.Error("Maximum errors count reached, stopping the process")

				cancel()
			}),
		)
	}()

	var (
		pw      = newProgressBar(len(files))
		overall = progress.Tracker{Message: "Inspecting", Total: int64(len(files)), Units: unitsAsIs}
	)

	pw.AppendTracker(&overall)

	go pw.Render()

	var (
		queue     = make(chan string, threadsCount)
		wg        sync.WaitGroup
		succeeded uint32 // atomic usage only
	)

	go func() { // fill-up the queue
		defer close(queue)

		for _, filePath := range files {
			select {
			case <-ctx.Done():
				return

			case queue <- filePath:
			}
		}
	}()

	wg.Add(int(threadsCount))

	for i := uint(0); i < threadsCount; i++ { // run the workers
		go func() {
			defer wg.Done()

			for filePath := range queue {
				if ctx.Err() != nil {
					return
				}

				if cmd.processFile(ctx, filePath, stats, watcher) {
					atomic.AddUint32(&succeeded, 1)
				}

				overall.Increment(1)
			}
		}()
	}

	wg.Wait()

	overall.MarkAsDone()
	pw.Stop()

	for pw.IsRenderInProgress() { // wait for the rendering goroutine
		<-time.After(time.Millisecond)
	}

	close(watcher)
	<-watcherDone

	for ctx.Err() == nil && stats.TotalFiles() < atomic.LoadUint32(&succeeded) { // let the collector drain
		<-time.After(time.Millisecond)
	}

	renderResultsTable(os.Stdout, stats)

	if ctx.Err() != nil {
		return errors.New("images inspecting was canceled")
	}

	if errorsCount > 0 {
		return fmt.Errorf("%d file(s) could not be inspected", errorsCount)
	}

	return nil
}

// processFile identifies a single image file and pushes the result into the stats storage (or the error into
// the errors watcher). True is returned for a successfully inspected file.
func (cmd *command) processFile(ctx context.Context, filePath string, stats StatsCollector, watcher ErrorsWatcher) bool {
	img, err := imghdr.Open(filePath)
	if err != nil {
		watcher.Push(ctx, err)

		return false
	}

	defer func() { _ = img.Close() }()

	var fileSize uint64

	if stat, statErr := os.Stat(filePath); statErr == nil {
		fileSize = uint64(stat.Size())
	}

	stats.Push(ctx, InspectionStat{
		FilePath: img.Path,
		FileType: img.Format.String(),
		Width:    img.Size.Width,
		Height:   img.Size.Height,
		FileSize: fileSize,
	})

	return true
}

// FindFiles searches for the files to process in the passed paths.
func (cmd *command) FindFiles(ctx context.Context, where, filesExt []string, recursive bool) ([]string, error) {
	if len(where) == 0 || len(filesExt) == 0 { // fast terminator
		return []string{}, nil
	}

	var (
		spin      = spinner.New([]string{" ⣾ ", " ⣽ ", " ⣻ ", " ⢿ ", " ⡿ ", " ⣟ ", " ⣯ ", " ⣷ "}, time.Millisecond*70) //nolint:gomnd,lll
		startedAt = time.Now()
		prefix    = color.New(color.Bold).Sprint("Images searching")
	)

	if !color.NoColor {
		_ = spin.Color("green")
	}

	spin.PreUpdate = func(s *spinner.Spinner) {
		s.Prefix = prefix + " " + time.Since(startedAt).Round(time.Second).String()
	}

	spin.Start()
	defer spin.Stop()

	var found = make([]string, 0, len(where))

	if err := appFiles.FindFiles(ctx, where, func(absPath string) {
		spin.Suffix = absPath
		found = append(found, absPath)
	}, appFiles.WithRecursive(recursive), appFiles.WithFilesExt(filesExt...)); err != nil {
		return nil, err
	}

	sort.Strings(found)

	return found, nil
}
