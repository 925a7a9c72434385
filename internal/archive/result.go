package archive

import "fmt"

// Result is the structured outcome of one import run. Messages is the
// ordered, human-readable decision log: every heuristic choice (header row,
// layout mode, fuzzy match, validation mismatch) is appended here, not only
// failures. Counters feed the one-line Summary.
type Result struct {
	RunID   string
	Success bool

	PeriodsImported int
	RecordsImported int
	DraftPicks      int
	StandingRows    int
	FuzzyMatches    int
	Unmatched       int
	Warnings        int

	Messages []string
}

// Logf appends a decision message.
func (r *Result) Logf(format string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// Warnf appends a warning message and bumps the warning counter.
func (r *Result) Warnf(format string, args ...interface{}) {
	r.Warnings++
	r.Messages = append(r.Messages, "warning: "+fmt.Sprintf(format, args...))
}

// Errorf appends an error message. It does not by itself fail the run;
// the caller decides whether the error is fatal.
func (r *Result) Errorf(format string, args ...interface{}) {
	r.Messages = append(r.Messages, "error: "+fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	status := "ok"
	if !r.Success {
		status = "FAILED"
	}
	return fmt.Sprintf(
		"periods=%d records=%d draft=%d standings=%d fuzzy=%d unmatched=%d warnings=%d status=%s",
		r.PeriodsImported, r.RecordsImported, r.DraftPicks, r.StandingRows,
		r.FuzzyMatches, r.Unmatched, r.Warnings, status,
	)
}
