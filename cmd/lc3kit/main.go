// Package main is the entry point for the lc3kit CLI.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/yaklabco/lc3kit/internal/cli"
	"github.com/yaklabco/lc3kit/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	ctx := logging.WithLogger(context.Background(), logging.Default())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// ErrIssuesFound is only an exit code signal, not a failure to log.
		if !errors.Is(err, cli.ErrIssuesFound) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
