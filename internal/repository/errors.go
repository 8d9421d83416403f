// Package repository defines error types that are reused across the MySQL
// repositories.  These sentinel values allow higher layers to distinguish
// between different failure scenarios.
package repository

import "errors"

// ErrConflict is returned when a write cannot proceed because of existing
// state, such as inserting a booking for a seat that is already taken.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Rejection messages returned to viewers.  They match the wording of the
// external booking API so both backends read the same.
const (
	msgAlreadyBooked = "You have already booked a seat for this event."
	msgSeatTakenFmt  = "Seat %s is already booked."
	msgMissingFields = "USN and EventID required"
)
