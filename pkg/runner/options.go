// Package runner orchestrates processing of many source files with a
// bounded worker pool and deterministic result ordering.
package runner

// Options controls discovery and concurrency for one run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// Empty means the current working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process
	// working directory.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, leading dot)
	// treated as assembly sources. Empty means DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// matched against paths relative to WorkingDir.
	ExcludeGlobs []string

	// Jobs caps the number of concurrent workers. Zero or negative
	// means one worker per CPU.
	Jobs int
}

// DefaultExtensions returns the extensions recognized as assembly source.
func DefaultExtensions() []string {
	return []string{".asm"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
