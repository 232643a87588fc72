package vrm

import "fmt"

// ConflictError rejects an operation that would violate the dispute state
// machine: duplicate active disputes, illegal or re-applied transitions, lost
// optimistic-concurrency races. It is surfaced to the caller, never retried.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

func conflictf(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown vendor, finding, dispute, or remediation.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
