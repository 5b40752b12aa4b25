package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lc3kit/internal/logging"
	"github.com/yaklabco/lc3kit/pkg/asm"
	"github.com/yaklabco/lc3kit/pkg/pipeline"
	"github.com/yaklabco/lc3kit/pkg/runner"
)

type lintFlags struct {
	printConfig bool
	noContext   bool
	ignore      []string
	jobs        int
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint LC-3 assembly files for naming style",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.printConfig, "print-config", false,
		"print the effective configuration and exit")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false,
		"hide source line context in output")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

const lintLongDescription = `Lint LC-3 assembly files for naming style issues.

Checks labels, mnemonics and directives against the configured case
styles and enforces the label colon convention. By default, lints all
.asm files in the current directory and subdirectories.

Examples:
  lc3kit lint                   # Lint current directory
  lc3kit lint src/              # Lint a directory
  lc3kit lint loop.asm          # Lint a single file
  lc3kit lint --print-config    # Dump the effective configuration`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
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

	linter := &pipeline.Linter{Style: cfg.Lint}
	lintRunner := runner.New(linter)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: flags.ignore,
		Jobs:         flags.jobs,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(cmd.Context(), runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
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

		res := outcome.Result
		if len(res.Violations) == 0 {
			continue
		}
		fmt.Fprintln(out, styles.FormatFileHeader(res.Path, len(res.Violations)))
		for _, v := range res.Violations {
			loc, locErr := res.Index.LocateSpan(v.Span)
			if locErr != nil {
				loc = asm.SourceLocation{Line: 1, Column: 1}
			}
			sourceLine := ""
			if !flags.noContext {
				sourceLine = res.Index.LineText(res.Content, loc.Line)
			}
			fmt.Fprint(out, styles.FormatViolation(res.Path, loc, v, sourceLine))
		}
	}

	logger.Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldViolationsTotal, result.Stats.ViolationsTotal,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
	)

	if internalErr != nil {
		return internalErr
	}
	if result.HasIssues() {
		return ErrIssuesFound
	}
	return nil
}
