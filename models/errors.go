package models

import "fmt"

// InvalidRangeError reports a requested interval with start >= end.
// The operation that returns it has not mutated anything.
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalidRange: start %q is not before end %q", e.Start, e.End)
}

// OutOfBoundsError reports a resize/delete target that is not contained in
// the parent interval, or a create that would overlap an existing slot.
type OutOfBoundsError struct {
	Message string
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("outOfBounds: %s", e.Message)
}

// NotFoundError reports a reference to a non-existent id or key.
type NotFoundError struct {
	Kind string // "slot", "person", "note", "row"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notFound: %s %q", e.Kind, e.Key)
}

// PersistenceError wraps a failed backing-store call. RateLimited marks the
// store's throttling responses; callers surface these without retrying.
type PersistenceError struct {
	Op          string
	Table       string
	RateLimited bool
	Err         error
}

func (e *PersistenceError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("persistence: %s on %s rate-limited: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("persistence: %s on %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
