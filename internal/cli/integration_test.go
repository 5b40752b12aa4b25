package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lc3kit/internal/cli"
)

// testSourceUnformatted is a small program whose layout differs from the
// canonical form, so fmt always has work to do.
const testSourceUnformatted = "loop ADD R1, R1, #1\nRET\n"

func buildInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

// writeConfig writes a minimal project config and returns its path, so
// tests never pick up a real config discovered above the temp dir.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lc3kit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegrationFmtWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asmFile := filepath.Join(dir, "prog.asm")
	require.NoError(t, os.WriteFile(asmFile, []byte(testSourceUnformatted), 0o644))

	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"fmt",
		"--config", writeConfig(t, ""),
		"--color", "never",
		asmFile,
	})

	require.NoError(t, cmd.Execute())

	formatted, err := os.ReadFile(asmFile)
	require.NoError(t, err)
	assert.Equal(t, "loop\n    ADD R1, R1, #1\n    RET\n", string(formatted))
	assert.Contains(t, stdout.String(), "Formatted 1 file.")
}

func TestIntegrationFmtCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asmFile := filepath.Join(dir, "prog.asm")
	require.NoError(t, os.WriteFile(asmFile, []byte(testSourceUnformatted), 0o644))

	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"fmt",
		"--check",
		"--config", writeConfig(t, ""),
		"--color", "never",
		asmFile,
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssues, cli.ExitCodeFromError(err))

	// The file is untouched and the diff shows the pending change.
	onDisk, readErr := os.ReadFile(asmFile)
	require.NoError(t, readErr)
	assert.Equal(t, testSourceUnformatted, string(onDisk))
	assert.Contains(t, stdout.String(), "@@")
	assert.Contains(t, stdout.String(), "+    ADD R1, R1, #1")
}

func TestIntegrationFmtCheckCleanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asmFile := filepath.Join(dir, "prog.asm")
	require.NoError(t, os.WriteFile(asmFile, []byte("loop\n    ADD R1, R1, #1\n    RET\n"), 0o644))

	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"fmt",
		"--check",
		"--config", writeConfig(t, ""),
		"--color", "never",
		asmFile,
	})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())
}

func TestIntegrationLintReportsViolations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asmFile := filepath.Join(dir, "prog.asm")
	require.NoError(t, os.WriteFile(asmFile, []byte("loop add R1, R1, #1\n"), 0o644))

	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", writeConfig(t, ""),
		"--no-context",
		"--color", "never",
		asmFile,
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrIssuesFound)

	output := stdout.String()
	assert.Contains(t, output, "prog.asm")
	assert.Contains(t, output, `"loop"`)
	assert.Contains(t, output, `"add"`)
	assert.Contains(t, output, "SCREAMING_SNAKE_CASE")
}

func TestIntegrationLintCleanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asmFile := filepath.Join(dir, "prog.asm")
	require.NoError(t, os.WriteFile(asmFile, []byte("LOOP ADD R1, R1, #1\n"), 0o644))

	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", writeConfig(t, ""),
		"--color", "never",
		asmFile,
	})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())
}

func TestIntegrationLintCustomStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asmFile := filepath.Join(dir, "prog.asm")
	require.NoError(t, os.WriteFile(asmFile, []byte("loop_start: ADD R1, R1, #1\n"), 0o644))

	configContent := `
[lint-style]
colon-after-label = true
label-style = "snake_case"
`
	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", writeConfig(t, configContent),
		"--color", "never",
		asmFile,
	})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())
}

func TestIntegrationSyntaxError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asmFile := filepath.Join(dir, "prog.asm")
	require.NoError(t, os.WriteFile(asmFile, []byte("ADD R1 R2, R3\n"), 0o644))

	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", writeConfig(t, ""),
		"--color", "never",
		asmFile,
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitIssues, cli.ExitCodeFromError(err))
	assert.Contains(t, stderr.String(), "expected")
	assert.Contains(t, stderr.String(), "prog.asm")
}

func TestIntegrationPrintConfig(t *testing.T) {
	t.Parallel()

	for _, sub := range []string{"fmt", "lint"} {
		cmd := cli.NewRootCommand(buildInfo())
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{
			sub,
			"--print-config",
			"--config", writeConfig(t, ""),
			"--color", "never",
		})

		require.NoError(t, cmd.Execute(), "subcommand %s", sub)
		assert.Contains(t, stdout.String(), "[format-style]")
		assert.Contains(t, stdout.String(), "[lint-style]")
		assert.Contains(t, stdout.String(), "indent-instruction")
	}
}

func TestIntegrationInvalidConfig(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(buildInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", writeConfig(t, "[lint-style]\nlabel-style = \"bogus\"\n"),
		"--color", "never",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}
