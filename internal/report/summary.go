package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Summary holds the counters of one pipeline run. Pipelines are sequential,
// so the counters are updated without synchronisation.
type Summary struct {
	Pipeline   string    `json:"pipeline"`
	Rows       int       `json:"rows,omitempty"`
	Success    int       `json:"success"`
	Errors     int       `json:"errors"`
	Skipped    int       `json:"skipped"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func New(pipeline string) *Summary {
	return &Summary{Pipeline: pipeline, StartedAt: time.Now()}
}

func (s *Summary) Succeeded(n int) { s.Success += n }
func (s *Summary) Failed(n int)    { s.Errors += n }
func (s *Summary) Skip()           { s.Skipped++ }

func (s *Summary) Finish() {
	s.FinishedAt = time.Now()
}

func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Print writes the human-readable end-of-run banner.
func (s *Summary) Print(w io.Writer) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s finished in %s\n", s.Pipeline, s.Duration().Round(time.Millisecond))
	if s.Rows > 0 {
		fmt.Fprintf(w, "Total rows: %d\n", s.Rows)
	}
	fmt.Fprintf(w, "Succeeded:  %d\n", s.Success)
	fmt.Fprintf(w, "Failed:     %d\n", s.Errors)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "Skipped:    %d\n", s.Skipped)
	}
	fmt.Fprintln(w, rule)
}
