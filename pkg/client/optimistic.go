package client

import (
	"errors"
	"sync"
)

// ErrSubmissionInFlight is returned when a form already has a pending
// submission.
var ErrSubmissionInFlight = errors.New("client: submission already in flight")

// Apply prepends a speculative entry so the UI reflects the mutation
// before the server confirms it. The input slice is not mutated.
func Apply[T any](list []T, pending T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, pending)
	return append(out, list...)
}

// Commit replaces the speculative entry with the authoritative server
// record. id extracts the identity of an entry; a missing pendingID
// leaves the list unchanged.
func Commit[T any](list []T, pendingID string, authoritative T, id func(T) string) []T {
	out := make([]T, len(list))
	for i, item := range list {
		if id(item) == pendingID {
			out[i] = authoritative
		} else {
			out[i] = item
		}
	}
	return out
}

// Rollback removes the speculative entry after a failed submission.
func Rollback[T any](list []T, pendingID string, id func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if id(item) != pendingID {
			out = append(out, item)
		}
	}
	return out
}

// FormState is the lifecycle of one submission. There are no
// intermediate states and no cancellation; a started submission runs
// to success or failure.
type FormState string

// Form states.
const (
	StateIdle       FormState = "idle"
	StateSubmitting FormState = "submitting"
	StateSucceeded  FormState = "succeeded"
	StateFailed     FormState = "failed"
)

// Form serializes submissions: at most one in flight at a time,
// mirroring a disabled submit control.
type Form struct {
	mu    sync.Mutex
	state FormState
}

// NewForm constructs an idle Form.
func NewForm() *Form {
	return &Form{state: StateIdle}
}

// State reports the current lifecycle state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit runs fn under the single-flight guard. fn reports whether the
// action envelope was a success; the terminal state is readable until
// the next Submit resets it to idle.
func (f *Form) Submit(fn func() (success bool)) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	success := fn()

	f.mu.Lock()
	if success {
		f.state = StateSucceeded
	} else {
		f.state = StateFailed
	}
	f.mu.Unlock()
	return nil
}

// Reset returns a terminal form to idle.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitting {
		f.state = StateIdle
	}
}
