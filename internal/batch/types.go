package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

// Config holds the settings of one batch.
// This maps to the restore command's flags.
type Config struct {
	Concurrency  int
	Strict       bool
	KeepResource bool
	// Catalogs are the handler catalogs tried; nil means all of them.
	Catalogs []*csvm.Catalog
	// Runtime overrides the location of the VM runtime module.
	Runtime   string
	CacheSize int

	// Output settings
	Output   string
	Progress bool
	Verbose  bool
}

// Report is the outcome for one input module.
type Report struct {
	Path     string
	Module   *snapshot.Module
	VMName   string
	Outcome  *csvm.Outcome
	Err      error
	Duration time.Duration
}

// Protected reports whether the module carried VM methods.
func (r *Report) Protected() bool { return r.VMName != "" && r.Outcome != nil }

// Failed reports whether the module could not be processed at all.
func (r *Report) Failed() bool { return r.Err != nil }

// ExecutionStats tracks batch execution metrics.
type ExecutionStats struct {
	StartTime time.Time
	EndTime   time.Time
	Modules   int
	Protected int
	Failed    int
	Converted int
	Warned    int
	Skipped   int
	Errors    []error
}

// Duration returns the total execution time.
func (s *ExecutionStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

func (s *ExecutionStats) add(r *Report) {
	s.Modules++
	if r.Failed() {
		s.Failed++
		s.Errors = append(s.Errors, fmt.Errorf("%s: %w", r.Path, r.Err))
	}
	if r.Outcome == nil {
		return
	}
	if r.Protected() {
		s.Protected++
	}
	s.Converted += r.Outcome.Converted
	s.Warned += r.Outcome.Warned
	s.Skipped += r.Outcome.Skipped
}

// Summary renders the statistics on a few lines.
func (s *ExecutionStats) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Modules:   %s (%s protected, %s failed)\n",
		humanize.Comma(int64(s.Modules)), humanize.Comma(int64(s.Protected)), humanize.Comma(int64(s.Failed)))
	fmt.Fprintf(&sb, "Methods:   %s converted, %s with warnings, %s skipped\n",
		humanize.Comma(int64(s.Converted)), humanize.Comma(int64(s.Warned)), humanize.Comma(int64(s.Skipped)))
	fmt.Fprintf(&sb, "Duration:  %s", s.Duration().Round(time.Millisecond))
	return sb.String()
}
