// Package verify contains CLI `verify` command implementation.
package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/imgprobe/imgprobe/internal/breaker"
	"github.com/imgprobe/imgprobe/internal/cli/shared"
	appFiles "github.com/imgprobe/imgprobe/internal/files"
	"github.com/imgprobe/imgprobe/internal/retry"
	"github.com/imgprobe/imgprobe/pkg/imghdr"
)

type command struct {
	log *zap.Logger
	c   *cli.Command
}

// NewCommand creates `verify` command.
func NewCommand(log *zap.Logger) *cli.Command {
	const attemptsFlagName = "attempts"

	var cmd = command{log: log}

	cmd.c = &cli.Command{
		Name:      "verify",
		ArgsUsage: "<target-files-and-directories...>",
		Aliases:   []string{"v"},
		Usage:     "Verify that previously identified images are still readable",
		Action: func(c *cli.Context) error {
			var (
				fileExtensions = c.StringSlice(shared.FileExtensionsFlag.Name)
				attempts       = c.Uint(attemptsFlagName)
				recursive      = c.Bool(shared.RecursiveFlag.Name)
				paths          = c.Args().Slice()
			)

			log.Debug("Run args",
				zap.Strings("fileExtensions", fileExtensions),
				zap.Uint("attempts", attempts),
				zap.Bool("recursive", recursive),
				zap.Strings("args", paths),
			)

			if len(paths) == 0 {
				return errors.New("no files or directories specified")
			}

			if attempts == 0 {
				attempts = 1
			}

			return cmd.Run(c.Context, paths, fileExtensions, recursive, attempts)
		},
		Flags: []cli.Flag{
			shared.FileExtensionsFlag,
			&cli.UintFlag{
				Name:  attemptsFlagName,
				Usage: "verification attempts for each file (for the flaky network mounts)",
				Value: 1,
			},
			shared.RecursiveFlag,
		},
	}

	return cmd.c
}

// Run current command.
func (cmd *command) Run(pCtx context.Context, paths, fileExt []string, recursive bool, attempts uint) error {
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

	var found = make([]string, 0, len(paths))

	if err := appFiles.FindFiles(ctx, paths, func(absPath string) {
		found = append(found, absPath)
	}, appFiles.WithRecursive(recursive), appFiles.WithFilesExt(fileExt...)); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("images searching was canceled")
		}

		return err
	}

	if len(found) == 0 {
		return errors.New("nothing to verify (files not found)")
	}

	sort.Strings(found)

	var failed uint

	for _, filePath := range found {
		if ctx.Err() != nil {
			return errors.New("images verification was canceled")
		}

		if err := cmd.verifyFile(ctx, filePath, attempts); err != nil {
			failed++

			cmd.log.Debug("Verification failed", zap.String("file", filePath), zap.Error(err))

			_, _ = fmt.Fprintf(os.Stdout, "%s %s (%v)\n", color.RedString("FAIL"), filePath, err)

			continue
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", color.GreenString("  OK"), filePath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed the verification", failed, len(found))
	}

	return nil
}

// verifyFile re-parses the file (with retries) to ensure it is still a readable image. Retrying a file that
// does not exist or is not an image at all makes no sense, so these errors stop the loop immediately.
func (cmd *command) verifyFile(ctx context.Context, filePath string, attempts uint) error {
	_, lastErr := retry.Do(func(attemptNum uint) error {
		img, err := imghdr.Open(filePath)
		if err != nil {
			return err
		}

		defer func() { _ = img.Close() }()

		return img.Verify()
	},
		retry.WithContext(ctx),
		retry.Attempts(attempts),
		retry.StopOnError(imghdr.ErrNotFound, imghdr.ErrUnidentifiedFormat),
	)

	return lastErr
}
