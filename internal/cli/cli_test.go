package cli_test

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/yaklabco/lc3kit/internal/cli"
	"github.com/yaklabco/lc3kit/pkg/parser"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if cmd.Use != "lc3kit" {
		t.Errorf("expected Use to be 'lc3kit', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	expectedSubcommands := []string{"fmt", "lint", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestFmtCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	fmtCmd, _, err := cmd.Find([]string{"fmt"})
	if err != nil {
		t.Fatalf("fmt command not found: %v", err)
	}

	for _, name := range []string{"check", "print-config", "ignore", "jobs"} {
		if fmtCmd.Flags().Lookup(name) == nil {
			t.Errorf("fmt command is missing flag %q", name)
		}
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	for _, name := range []string{"print-config", "no-context", "ignore", "jobs"} {
		if lintCmd.Flags().Lookup(name) == nil {
			t.Errorf("lint command is missing flag %q", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	for _, want := range []string{"1.2.3", "abc", "today"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("version output %q is missing %q", stdout.String(), want)
		}
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, cli.ExitSuccess},
		{"issues found", cli.ErrIssuesFound, cli.ExitIssues},
		{"wrapped issues found", errors.Join(errors.New("run"), cli.ErrIssuesFound), cli.ExitIssues},
		{"config error", errors.Join(cli.ErrConfig, errors.New("bad toml")), cli.ExitConfigError},
		{"malformed tree", &parser.MalformedTreeError{}, cli.ExitInternalError},
		{"path error", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, cli.ExitIOError},
		{"unclassified error", errors.New("boom"), cli.ExitIssues},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromError(testCase.err); got != testCase.want {
				t.Errorf("ExitCodeFromError(%v) = %d, want %d", testCase.err, got, testCase.want)
			}
		})
	}
}
