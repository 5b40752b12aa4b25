package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lc3kit/internal/logging"
	"github.com/yaklabco/lc3kit/pkg/pipeline"
	"github.com/yaklabco/lc3kit/pkg/runner"
)

type fmtFlags struct {
	check       bool
	printConfig bool
	ignore      []string
	jobs        int
}

func newFmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format LC-3 assembly files",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.check, "check", false,
		"report a diff instead of rewriting files; exit 1 when any file differs")
	cmd.Flags().BoolVar(&flags.printConfig, "print-config", false,
		"print the effective configuration and exit")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

const fmtLongDescription = `Format LC-3 assembly files into the canonical layout.

By default, rewrites all .asm files in the current directory and
subdirectories in place. Specify paths to format specific files or
directories.

Examples:
  lc3kit fmt                   # Format current directory
  lc3kit fmt src/              # Format a directory
  lc3kit fmt loop.asm          # Format a single file
  lc3kit fmt --check           # Show diffs without writing
  lc3kit fmt --print-config    # Dump the effective configuration`

func runFmt(cmd *cobra.Command, args []string, flags *fmtFlags) error {
	logger := logging.FromContext(cmd.Context())

	loadResult, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	if flags.printConfig {
		out, err := cfg.ToTOML()
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	formatter := &pipeline.Formatter{Style: cfg.Format, Check: flags.check}
	fmtRunner := runner.New(formatter)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldCheck, flags.check,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := fmtRunner.Run(cmd.Context(), runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()

	var internalErr error
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			reportFileError(cmd.ErrOrStderr(), styles, outcome)
			if internalErr == nil && isInternal(outcome.Error) {
				internalErr = outcome.Error
			}
			continue
		}
		if flags.check && outcome.Result.Diff.HasChanges() {
			fmt.Fprint(out, styles.FormatDiff(outcome.Result.Diff))
		}
		if outcome.Result.Written {
			logger.Debug("formatted file", logging.FieldPath, outcome.Path)
		}
	}

	logger.Debug("format run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
	)

	if !flags.check {
		plural := ""
		if result.Stats.FilesWritten != 1 {
			plural = "s"
		}
		fmt.Fprintf(out, "Formatted %d file%s.\n", result.Stats.FilesWritten, plural)
	}

	if internalErr != nil {
		return internalErr
	}
	if result.HasIssues() {
		return ErrIssuesFound
	}
	return nil
}
