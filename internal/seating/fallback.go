package seating

import "strconv"

const (
	// DefaultSeatsPerRow is the row width used when an event has no layout.
	DefaultSeatsPerRow = 10
	// DefaultCapacity applies when an event carries no usable capacity.
	DefaultCapacity = 100
)

// GenerateFallback synthesizes a rectangular map of Standard seats for events
// without a usable layout.  Rows hold seatsPerRow seats each and the last row
// is partial when capacity is not a multiple of the width.  A non-positive
// width falls back to DefaultSeatsPerRow; a non-positive capacity yields an
// empty map.
func GenerateFallback(capacity, seatsPerRow int) SeatMap {
	if seatsPerRow <= 0 {
		seatsPerRow = DefaultSeatsPerRow
	}
	if capacity <= 0 {
		return SeatMap{Rows: []SeatRow{}}
	}
	rowCount := (capacity + seatsPerRow - 1) / seatsPerRow
	m := SeatMap{Rows: make([]SeatRow, 0, rowCount)}
	remaining := capacity
	for r := 0; r < rowCount; r++ {
		width := seatsPerRow
		if remaining < width {
			width = remaining
		}
		label := RowLabel(r)
		cells := make([]SeatCell, width)
		for n := 1; n <= width; n++ {
			cells[n-1] = SeatCell{ID: label + strconv.Itoa(n), Type: Standard, Number: n}
		}
		m.Rows = append(m.Rows, SeatRow{Label: label, Cells: cells})
		remaining -= width
	}
	return m
}
