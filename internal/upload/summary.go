package upload

import "fmt"

// Failure records one row that could not be uploaded.
type Failure struct {
	Line   int
	Reason string
}

// Summary is the outcome of an upload run.
type Summary struct {
	Succeeded int
	Failures  []Failure
}

// Failed returns the number of rows that did not make it.
func (s *Summary) Failed() int {
	return len(s.Failures)
}

// Render returns the one-line result users scan for.
func (s *Summary) Render() string {
	return fmt.Sprintf("%d successful, %d failed", s.Succeeded, s.Failed())
}

func (s *Summary) fail(line int, reason string) {
	s.Failures = append(s.Failures, Failure{Line: line, Reason: reason})
}
