// Package ingest parses tournament match logs (CSV) into rating matches.
package ingest

import "fmt"

// Result tracks counts and row-level errors from one ingest operation.
type Result struct {
	RowsRead      int
	MatchesParsed int
	MatchesStored int
	TeamsUpserted int
	Errors        []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.RowsRead += other.RowsRead
	r.MatchesParsed += other.MatchesParsed
	r.MatchesStored += other.MatchesStored
	r.TeamsUpserted += other.TeamsUpserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the ingest operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"rows=%d parsed=%d stored=%d teams=%d errors=%d",
		r.RowsRead, r.MatchesParsed, r.MatchesStored, r.TeamsUpserted, len(r.Errors),
	)
}
