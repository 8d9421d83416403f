// Package booking submits a viewer's single-seat selection to the booking
// system of record and classifies the answer.
package booking

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned when a submission is attempted with nothing
// selected.  No request is made in that case.
var ErrNoSelection = errors.New("no seat selected")

// ErrNetwork marks transport failures: the booking system could not be
// reached or its answer could not be read.  Retrying is up to the viewer.
var ErrNetwork = errors.New("booking service unreachable")

// ReasonNetwork is the Result.Reason reported for transport failures.
const ReasonNetwork = "network"

// SeatConflictError is returned when the booking system explicitly rejects
// a submission, typically because the seat was taken by someone else after
// the map was loaded or because the viewer already holds a booking.
// Callers should reload occupancy before allowing another attempt.
type SeatConflictError struct {
	SeatID string
	Reason string
}

func (e *SeatConflictError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("booking rejected for seat %s", e.SeatID)
	}
	return fmt.Sprintf("booking rejected for seat %s: %s", e.SeatID, e.Reason)
}

// networkError wraps the underlying transport failure while still matching
// ErrNetwork.
type networkError struct{ err error }

func (e *networkError) Error() string   { return ErrNetwork.Error() + ": " + e.err.Error() }
func (e *networkError) Unwrap() []error { return []error{ErrNetwork, e.err} }

// NetworkError wraps err so that errors.Is(result, ErrNetwork) holds.
func NetworkError(err error) error {
	if err == nil {
		return ErrNetwork
	}
	return &networkError{err: err}
}
