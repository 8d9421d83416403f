package seating

// SeatStatus is how a cell is presented to the viewer.
type SeatStatus string

const (
	StatusGap       SeatStatus = "gap"
	StatusBlocked   SeatStatus = "blocked"
	StatusBooked    SeatStatus = "booked"
	StatusSelected  SeatStatus = "selected"
	StatusLocked    SeatStatus = "locked"
	StatusAvailable SeatStatus = "available"
)

// CellView is one rendered cell.
type CellView struct {
	ID       string     `json:"id,omitempty"`
	Type     string     `json:"type"`
	Number   int        `json:"number,omitempty"`
	Status   SeatStatus `json:"status"`
	Disabled bool       `json:"disabled"`
}

// RowView is one rendered row.
type RowView struct {
	Index  int        `json:"index"`
	Label  string     `json:"label"`
	Locked bool       `json:"locked"`
	Seats  []CellView `json:"seats"`
}

// MapView is everything a client needs to draw the seat picker.
type MapView struct {
	Rows                []RowView `json:"rows"`
	ActiveRow           int       `json:"active_row"`
	Selected            string    `json:"selected,omitempty"`
	ViewerAlreadyBooked bool      `json:"viewer_already_booked"`
	Capacity            int       `json:"capacity"`
	Taken               int       `json:"taken"`
	Source              MapSource `json:"source,omitempty"`
	Stale               bool      `json:"stale"`
}

// StatusOf classifies a single cell.  Precedence: gap, blocked, booked,
// selected, locked, available.
func StatusOf(cell SeatCell, rowIndex int, c Controller, sel Selection) SeatStatus {
	switch {
	case cell.Type == Gap:
		return StatusGap
	case cell.Type == Blocked:
		return StatusBlocked
	case c.Occupancy.Has(cell.ID):
		return StatusBooked
	case !sel.Empty() && sel.SeatID() == cell.ID:
		return StatusSelected
	case RowLocked(rowIndex, c.Boundary):
		return StatusLocked
	}
	return StatusAvailable
}

// BuildView renders the controller snapshot and selection into a MapView.
// Source and Stale are left for the caller to fill in.
func BuildView(c Controller, sel Selection) MapView {
	v := MapView{
		Rows:                make([]RowView, 0, len(c.Map.Rows)),
		ActiveRow:           c.Boundary,
		Selected:            sel.SeatID(),
		ViewerAlreadyBooked: c.Occupancy.ViewerAlreadyBooked,
		Capacity:            c.Map.Capacity(),
		Taken:               c.Occupancy.Len(),
	}
	for ri, row := range c.Map.Rows {
		rv := RowView{
			Index:  ri,
			Label:  row.Label,
			Locked: RowLocked(ri, c.Boundary),
			Seats:  make([]CellView, 0, len(row.Cells)),
		}
		for _, cell := range row.Cells {
			st := StatusOf(cell, ri, c, sel)
			rv.Seats = append(rv.Seats, CellView{
				ID:     cell.ID,
				Type:   cell.Type.String(),
				Number: cell.Number,
				Status: st,
				Disabled: st == StatusGap || st == StatusBlocked || st == StatusBooked ||
					st == StatusLocked || c.Occupancy.ViewerAlreadyBooked,
			})
		}
		v.Rows = append(v.Rows, rv)
	}
	return v
}
