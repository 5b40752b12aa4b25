package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/lc3kit/pkg/parser"
)

// Exit codes for lc3kit.
const (
	// ExitSuccess indicates successful execution with no findings.
	ExitSuccess = 0

	// ExitIssues indicates the run completed but found issues: style
	// violations, non-canonical files in check mode, or syntax errors.
	ExitIssues = 1

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error, such as a malformed
	// parse tree reaching the adapter.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound signals a clean run that found issues; it selects the
// exit code without being logged as a failure.
var ErrIssuesFound = errors.New("issues found")

// ErrConfig wraps configuration loading failures for exit code mapping.
var ErrConfig = errors.New("configuration error")

// ExitCodeFromError maps a command error to the process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var malformed *parser.MalformedTreeError
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.As(err, &malformed):
		return ExitInternalError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitIssues
	}
}
