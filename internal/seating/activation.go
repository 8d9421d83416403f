package seating

// RowFilled reports whether no seat in row can be sold any more: every cell
// is a Gap, Blocked, or already taken.
func RowFilled(row SeatRow, occ Occupancy) bool {
	for _, c := range row.Cells {
		if c.Type == Gap || c.Type == Blocked {
			continue
		}
		if !occ.Has(c.ID) {
			return false
		}
	}
	return true
}

// ActivationBoundary returns the index of the frontmost row that still has a
// sellable seat.  Rows behind it are locked.  When every row is filled the
// result equals the number of rows, so nothing is locked.
func ActivationBoundary(m SeatMap, occ Occupancy) int {
	for i, row := range m.Rows {
		if !RowFilled(row, occ) {
			return i
		}
	}
	return len(m.Rows)
}

// RowLocked reports whether rowIndex lies behind the boundary.
func RowLocked(rowIndex, boundary int) bool { return rowIndex > boundary }
