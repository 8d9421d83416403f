package seating

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrLayoutParse is matched by every *LayoutParseError via errors.Is.
var ErrLayoutParse = errors.New("invalid seat layout")

// LayoutParseError describes why a stored layout could not be turned into a
// seat map.  Row and Col point at the offending cell when the problem is local
// to one; they are -1 otherwise.
type LayoutParseError struct {
	Reason string
	Row    int
	Col    int
	Err    error // underlying decode error, if any
}

func (e *LayoutParseError) Error() string {
	msg := "invalid seat layout: " + e.Reason
	if e.Row >= 0 {
		msg += " (row " + strconv.Itoa(e.Row)
		if e.Col >= 0 {
			msg += ", col " + strconv.Itoa(e.Col)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LayoutParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLayoutParse) true for any LayoutParseError.
func (e *LayoutParseError) Is(target error) bool { return target == ErrLayoutParse }

func parseErr(reason string, row, col int) *LayoutParseError {
	return &LayoutParseError{Reason: reason, Row: row, Col: col}
}

// Validate checks the structural invariants of a layout: positive
// dimensions, a grid of exactly Rows x Cols cells and known cell codes.
func (l SeatLayout) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return parseErr(fmt.Sprintf("dimensions must be positive, got %dx%d", l.Rows, l.Cols), -1, -1)
	}
	if len(l.Grid) != l.Rows {
		return parseErr(fmt.Sprintf("grid has %d rows, expected %d", len(l.Grid), l.Rows), -1, -1)
	}
	for r, row := range l.Grid {
		if len(row) != l.Cols {
			return parseErr(fmt.Sprintf("row has %d cells, expected %d", len(row), l.Cols), r, -1)
		}
		for c, code := range row {
			if !code.Valid() {
				return parseErr(fmt.Sprintf("unknown cell code %d", int(code)), r, c)
			}
		}
	}
	return nil
}

// ParseLayoutJSON decodes the stored JSON form of a layout and derives its
// seat map.  Empty input, malformed JSON and structural violations all
// produce a *LayoutParseError.
func ParseLayoutJSON(raw []byte) (SeatMap, error) {
	if len(raw) == 0 {
		return SeatMap{}, parseErr("empty layout", -1, -1)
	}
	var l SeatLayout
	if err := json.Unmarshal(raw, &l); err != nil {
		return SeatMap{}, &LayoutParseError{Reason: "malformed json", Row: -1, Col: -1, Err: err}
	}
	return ParseLayout(l)
}

// ParseLayout derives a seat map from a layout.
//
// Rows consisting only of Gap cells are dropped and do not consume a label,
// so the next rendered row takes the next letter.  Within a row, seat numbers
// count only non-gap cells, which means a leading walkway does not shift the
// numbering.  The result is fully determined by the input.
func ParseLayout(l SeatLayout) (SeatMap, error) {
	if err := l.Validate(); err != nil {
		return SeatMap{}, err
	}
	m := SeatMap{Rows: make([]SeatRow, 0, l.Rows)}
	labelIdx := 0
	for _, gridRow := range l.Grid {
		if allGap(gridRow) {
			continue
		}
		label := RowLabel(labelIdx)
		labelIdx++

		cells := make([]SeatCell, 0, len(gridRow))
		num := 0
		for _, code := range gridRow {
			if code == Gap {
				cells = append(cells, SeatCell{Type: Gap})
				continue
			}
			num++
			cells = append(cells, SeatCell{
				ID:     label + strconv.Itoa(num),
				Type:   code,
				Number: num,
			})
		}
		m.Rows = append(m.Rows, SeatRow{Label: label, Cells: cells})
	}
	return m, nil
}

func allGap(row []SeatTypeCode) bool {
	for _, c := range row {
		if c != Gap {
			return false
		}
	}
	return true
}
