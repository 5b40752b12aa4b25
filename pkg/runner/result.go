package runner

import "github.com/yaklabco/lc3kit/pkg/pipeline"

// FileOutcome pairs one file's pipeline result with any processing error.
type FileOutcome struct {
	// Path is the absolute file path that was processed.
	Path string

	// Result is the per-file outcome. Nil when Error is set.
	Result *pipeline.FileResult

	// Error is set when the file could not be processed, including
	// syntax errors in the source.
	Error error
}

// Stats aggregates counts over one run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files processed without error.
	FilesProcessed int

	// FilesErrored is the number of files that failed to process.
	FilesErrored int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// FilesWithIssues is the number of files with at least one finding.
	FilesWithIssues int

	// ViolationsTotal is the number of style violations across all files.
	ViolationsTotal int
}

// Result is the aggregate outcome of one run. Files are ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasIssues reports whether any file produced a finding or failed.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesWithIssues > 0 || r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}
	r.Stats.ViolationsTotal += len(outcome.Result.Violations)
	if outcome.Result.HasIssues() {
		r.Stats.FilesWithIssues++
	}
}
