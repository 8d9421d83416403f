// Package seating turns auditorium layouts and booking records into the seat
// map a viewer interacts with. Everything here is pure: no I/O, no clocks, no
// shared state. Callers feed it layouts and bookings and get back maps,
// occupancy sets, activation boundaries and selection transitions.
package seating

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SeatTypeCode classifies a single cell of a layout grid.  The numeric values
// are the codes used by the layout editor and stored with events and
// auditoriums, so they must not be renumbered.
type SeatTypeCode int

const (
	Gap      SeatTypeCode = 0 // walkway or empty space, never selectable
	Standard SeatTypeCode = 1 // regular seat
	VIP      SeatTypeCode = 2 // premium seat, selectable like Standard
	Blocked  SeatTypeCode = 3 // physically present but not sellable
)

// String returns the lower-case name used in JSON views.
func (t SeatTypeCode) String() string {
	switch t {
	case Gap:
		return "gap"
	case Standard:
		return "standard"
	case VIP:
		return "vip"
	case Blocked:
		return "blocked"
	}
	return fmt.Sprintf("SeatTypeCode(%d)", int(t))
}

// Valid reports whether t is one of the four known codes.
func (t SeatTypeCode) Valid() bool { return t >= Gap && t <= Blocked }

// Selectable reports whether a cell of this type can ever be picked.
func (t SeatTypeCode) Selectable() bool { return t == Standard || t == VIP }

// SeatLayout is the stored, authored description of an auditorium floor.
// JSON form: {"rows":R,"cols":C,"grid":[[...],...]}.
type SeatLayout struct {
	Rows int              `json:"rows"`
	Cols int              `json:"cols"`
	Grid [][]SeatTypeCode `json:"grid"`
}

// Capacity counts the cells that hold a physical seat (anything but Gap).
// This matches how the layout editor reports capacity.
func (l SeatLayout) Capacity() int {
	n := 0
	for _, row := range l.Grid {
		for _, c := range row {
			if c != Gap {
				n++
			}
		}
	}
	return n
}

// SeatCell is one position in a rendered row.  Gap cells have an empty ID and
// a zero Number; every other cell carries the row label plus its seat number.
type SeatCell struct {
	ID     string       `json:"id,omitempty"`
	Type   SeatTypeCode `json:"type"`
	Number int          `json:"number,omitempty"`
}

// IsGap reports whether the cell is empty space.
func (c SeatCell) IsGap() bool { return c.Type == Gap }

// SeatRow is a labelled, ordered list of cells.
type SeatRow struct {
	Label string     `json:"label"`
	Cells []SeatCell `json:"cells"`
}

// SeatMap is the derived structure handed to the renderer and the selection
// logic.  Rows are ordered front to back.
type SeatMap struct {
	Rows []SeatRow `json:"rows"`
}

// Len returns the number of rows.
func (m SeatMap) Len() int { return len(m.Rows) }

// Lookup finds the cell with the given seat id.  It returns the row index and
// the cell; ok is false for unknown ids and for the empty id.
func (m SeatMap) Lookup(seatID string) (rowIndex int, cell SeatCell, ok bool) {
	id := strings.TrimSpace(seatID)
	if id == "" {
		return -1, SeatCell{}, false
	}
	for ri, row := range m.Rows {
		for _, c := range row.Cells {
			if c.ID == id {
				return ri, c, true
			}
		}
	}
	return -1, SeatCell{}, false
}

// SeatIDs lists every non-gap seat id in row-major order.
func (m SeatMap) SeatIDs() []string {
	var ids []string
	for _, row := range m.Rows {
		for _, c := range row.Cells {
			if c.ID != "" {
				ids = append(ids, c.ID)
			}
		}
	}
	return ids
}

// Capacity counts the non-gap cells of the map.
func (m SeatMap) Capacity() int {
	n := 0
	for _, row := range m.Rows {
		for _, c := range row.Cells {
			if !c.IsGap() {
				n++
			}
		}
	}
	return n
}

// String renders the map as one line per row, e.g. "A: A1 A2 _ A3".  It is
// handy in logs and test failures.
func (m SeatMap) String() string {
	var b strings.Builder
	for i, row := range m.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(row.Label)
		b.WriteByte(':')
		for _, c := range row.Cells {
			b.WriteByte(' ')
			if c.IsGap() {
				b.WriteByte('_')
				continue
			}
			b.WriteString(c.ID)
		}
	}
	return b.String()
}

// MarshalJSON keeps an empty map encoded as {"rows":[]} rather than null.
func (m SeatMap) MarshalJSON() ([]byte, error) {
	rows := m.Rows
	if rows == nil {
		rows = []SeatRow{}
	}
	return json.Marshal(struct {
		Rows []SeatRow `json:"rows"`
	}{rows})
}
