package batch

import (
	"errors"
	"fmt"
)

// Status is the outcome of one file in a batch.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result records what happened to one file. Destination is only set by
// rename operations.
type Result struct {
	Path        string
	Destination string
	Status      Status
	Err         error
}

// Summary collects the results of a batch in processing order.
type Summary struct {
	Results []Result
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
}

func (s *Summary) ok(path, dst string) {
	s.add(Result{Path: path, Destination: dst, Status: StatusOK})
}

func (s *Summary) skip(path, dst string, err error) {
	s.add(Result{Path: path, Destination: dst, Status: StatusSkipped, Err: err})
}

func (s *Summary) fail(path, dst string, err error) {
	s.add(Result{Path: path, Destination: dst, Status: StatusFailed, Err: err})
}

// Count returns the number of results with the given status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any file failed.
func (s *Summary) Failed() bool {
	return s.Count(StatusFailed) > 0
}

// Err joins the errors of all failed files, or returns nil.
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d ok, %d skipped, %d failed",
		s.Count(StatusOK), s.Count(StatusSkipped), s.Count(StatusFailed))
}
