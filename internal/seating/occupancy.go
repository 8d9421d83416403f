package seating

import (
	"sort"
	"strings"
)

// BookingRecord is the slice of a booking the occupancy logic cares about:
// who owns it and the raw, comma-separated seat field.
type BookingRecord struct {
	Owner string
	Seats string
}

// Occupancy is the set of taken seat ids for one event and schedule plus
// whether the current viewer already holds a booking there.
type Occupancy struct {
	Taken               map[string]struct{}
	ViewerAlreadyBooked bool
}

// Has reports whether seatID is taken.
func (o Occupancy) Has(seatID string) bool {
	_, ok := o.Taken[seatID]
	return ok
}

// Len returns the number of taken seats.
func (o Occupancy) Len() int { return len(o.Taken) }

// Sorted returns the taken ids in lexical order.  Used for the mirror and
// for stable JSON.
func (o Occupancy) Sorted() []string {
	out := make([]string, 0, len(o.Taken))
	for id := range o.Taken {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// With returns a copy of o with seatID added.
func (o Occupancy) With(seatID string) Occupancy {
	taken := make(map[string]struct{}, len(o.Taken)+1)
	for id := range o.Taken {
		taken[id] = struct{}{}
	}
	if seatID != "" {
		taken[seatID] = struct{}{}
	}
	return Occupancy{Taken: taken, ViewerAlreadyBooked: o.ViewerAlreadyBooked}
}

// SplitSeatField splits a stored seat field ("A1, A2,,B3") into trimmed,
// non-empty seat ids.
func SplitSeatField(field string) []string {
	var out []string
	for _, tok := range strings.Split(field, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// SameViewer compares two viewer identifiers the way the booking system
// does: case-insensitively and ignoring surrounding whitespace.  Empty ids
// never match.
func SameViewer(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// ResolveOccupancy folds booking records into an Occupancy.  The result does
// not depend on the order of bookings.
func ResolveOccupancy(bookings []BookingRecord, viewerID string) Occupancy {
	occ := Occupancy{Taken: make(map[string]struct{})}
	for _, b := range bookings {
		for _, id := range SplitSeatField(b.Seats) {
			occ.Taken[id] = struct{}{}
		}
		if SameViewer(b.Owner, viewerID) {
			occ.ViewerAlreadyBooked = true
		}
	}
	return occ
}

// OccupancyFromSeats builds an Occupancy from a plain list of ids, e.g. one
// read back from the occupancy mirror.
func OccupancyFromSeats(seats []string, viewerAlreadyBooked bool) Occupancy {
	occ := Occupancy{Taken: make(map[string]struct{}, len(seats)), ViewerAlreadyBooked: viewerAlreadyBooked}
	for _, id := range seats {
		if id = strings.TrimSpace(id); id != "" {
			occ.Taken[id] = struct{}{}
		}
	}
	return occ
}
