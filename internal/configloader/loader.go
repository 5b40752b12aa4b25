// Package configloader resolves the effective configuration: upward
// project-file discovery, an explicit --config override, and defaults.
package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"github.com/yaklabco/lc3kit/pkg/config"
)

// projectFileNames are the project config file names searched for, in
// priority order within one directory.
//
//nolint:gochecknoglobals // Fixed search list.
var projectFileNames = []string{
	"lc3kit.toml",
	".lc3kit.toml",
	".lc3kit.yml",
	".lc3kit.yaml",
}

// legacyFileNames are the per-tool config files used before lc3kit
// unified them. Their keys sit at the top level rather than under a
// section table.
//
//nolint:gochecknoglobals // Fixed search list.
var legacyFileNames = []string{
	"lc3-format.toml",
	"lc3-lint.toml",
}

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is the directory the upward search starts from.
	// Empty means the process working directory.
	WorkingDir string

	// ExplicitPath is the --config flag value. When set, project
	// discovery is skipped.
	ExplicitPath string

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool
}

// LoadResult is the resolved configuration plus provenance.
type LoadResult struct {
	// Config is the effective configuration.
	Config *config.Config

	// LoadedFrom is the config file that was applied, empty when only
	// defaults are in effect.
	LoadedFrom string

	// Warnings holds non-fatal issues found while loading.
	Warnings []string
}

// Load resolves the effective configuration. An explicit path wins over
// project discovery; with neither, the defaults apply.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config: %w", ctx.Err())
	default:
	}

	result := &LoadResult{}

	path := opts.ExplicitPath
	workDir := opts.WorkingDir
	if path == "" {
		if workDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
			workDir = wd
		}
		found, err := discoverProjectFile(workDir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	if path == "" {
		cfg := config.NewConfig()
		if err := applyLegacyConfigs(workDir, opts, cfg, result); err != nil {
			return nil, err
		}
		result.Config = cfg
		return result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	result.Config = cfg
	result.LoadedFrom = path
	return result, nil
}

// discoverProjectFile walks from dir toward the filesystem root and
// returns the first project config file found.
func discoverProjectFile(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		for _, name := range projectFileNames {
			candidate := filepath.Join(abs, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// applyLegacyConfigs handles per-tool config files left over from before
// lc3kit. When one is present and the session is interactive, the user is
// asked whether to apply it to this run; otherwise a warning points at the
// unified file.
func applyLegacyConfigs(workDir string, opts LoadOptions, cfg *config.Config, result *LoadResult) error {
	for _, name := range legacyFileNames {
		candidate := filepath.Join(workDir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		// In non-interactive mode, don't prompt
		if opts.NonInteractive || !isInteractive() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("found %s but no lc3kit.toml; move its keys under the matching section of lc3kit.toml", name))
			continue
		}

		apply, err := promptLegacyApply(name)
		if err != nil {
			return err
		}
		if !apply {
			continue
		}

		if err := parseLegacyFile(candidate, name, cfg); err != nil {
			return err
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("applied %s; move its keys under the matching section of lc3kit.toml", name))
	}
	return nil
}

// parseLegacyFile decodes a legacy per-tool file, whose keys sit at the
// top level, into the section of cfg it predates.
func parseLegacyFile(path, name string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch name {
	case "lc3-format.toml":
		if err := toml.Unmarshal(data, &cfg.Format); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case "lc3-lint.toml":
		if err := toml.Unmarshal(data, &cfg.Lint); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// promptLegacyApply asks the user whether to apply a legacy config file
// to the current run.
func promptLegacyApply(name string) (bool, error) {
	fmt.Fprintf(os.Stderr, "Found %s. Apply it to this run? [Y/n] ", name)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
