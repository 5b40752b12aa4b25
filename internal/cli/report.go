package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lc3kit/internal/configloader"
	"github.com/yaklabco/lc3kit/internal/ui/pretty"
	"github.com/yaklabco/lc3kit/pkg/parser"
	"github.com/yaklabco/lc3kit/pkg/pipeline"
	"github.com/yaklabco/lc3kit/pkg/runner"
)

// isInternal reports whether err is an internal invariant failure rather
// than a problem with the user's input.
func isInternal(err error) bool {
	var malformed *parser.MalformedTreeError
	return errors.As(err, &malformed)
}

// loadConfig resolves the effective configuration for a command, honoring
// the persistent --config flag.
func loadConfig(cmd *cobra.Command) (*configloader.LoadResult, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}
	return loadResult, nil
}

// commandStyles builds the output styles from the persistent --color flag.
func commandStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}

// reportFileError renders one file's processing error. Syntax errors get
// location and caret context; everything else a plain error line.
func reportFileError(w io.Writer, styles *pretty.Styles, outcome runner.FileOutcome) {
	var parseErr *pipeline.ParseError
	if errors.As(outcome.Error, &parseErr) {
		fmt.Fprint(w, styles.FormatSyntaxError(parseErr.Path, parseErr.Loc, parseErr.Err, parseErr.SourceLine))
		return
	}
	fmt.Fprintf(w, "  %s  %s  %v\n",
		styles.FilePath.Render(outcome.Path),
		styles.Error.Render("error"),
		outcome.Error,
	)
}
