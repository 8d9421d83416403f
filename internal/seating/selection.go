package seating

// RowLockedNotice is the message callers show when a click lands behind the
// activation boundary.
const RowLockedNotice = "Please fill the front rows first!"

// Selection is the viewer's current pick.  The zero value is the Empty state;
// otherwise it holds exactly one seat id.
type Selection struct {
	seatID string
}

// Selected returns a selection holding seatID.  An empty id yields Empty.
func Selected(seatID string) Selection { return Selection{seatID: seatID} }

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return s.seatID == "" }

// SeatID returns the held seat id, or "" when Empty.
func (s Selection) SeatID() string { return s.seatID }

func (s Selection) String() string {
	if s.Empty() {
		return "Empty"
	}
	return "Selected(" + s.seatID + ")"
}

// ClickOutcome tells the caller what a click did.
type ClickOutcome int

const (
	OutcomeSelected             ClickOutcome = iota // Empty -> Selected
	OutcomeDeselected                               // Selected(x), click x -> Empty
	OutcomeReplaced                                 // Selected(x), click y -> Selected(y)
	OutcomeIgnoredAlreadyBooked                     // viewer already holds a booking
	OutcomeIgnoredUnselectable                      // Gap or Blocked cell
	OutcomeIgnoredTaken                             // seat booked by someone
	OutcomeIgnoredRowLocked                         // row behind the activation boundary
	OutcomeIgnoredUnknownSeat                       // id not in the current map
)

var outcomeNames = map[ClickOutcome]string{
	OutcomeSelected:             "selected",
	OutcomeDeselected:           "deselected",
	OutcomeReplaced:             "replaced",
	OutcomeIgnoredAlreadyBooked: "ignored_already_booked",
	OutcomeIgnoredUnselectable:  "ignored_unselectable",
	OutcomeIgnoredTaken:         "ignored_taken",
	OutcomeIgnoredRowLocked:     "ignored_row_locked",
	OutcomeIgnoredUnknownSeat:   "ignored_unknown_seat",
}

func (o ClickOutcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Changed reports whether the click produced a transition.
func (o ClickOutcome) Changed() bool {
	return o == OutcomeSelected || o == OutcomeDeselected || o == OutcomeReplaced
}

// Notice is the caller-facing message for an outcome, empty when none is due.
func (o ClickOutcome) Notice() string {
	if o == OutcomeIgnoredRowLocked {
		return RowLockedNotice
	}
	return ""
}

// ClickEvent is a click on one rendered cell.
type ClickEvent struct {
	SeatID   string
	RowIndex int
	Type     SeatTypeCode
}

// Controller evaluates clicks against a fixed snapshot of map, occupancy and
// boundary.  Build a new one whenever occupancy is refreshed.
type Controller struct {
	Map       SeatMap
	Occupancy Occupancy
	Boundary  int
}

// NewController derives the boundary from m and occ.
func NewController(m SeatMap, occ Occupancy) Controller {
	return Controller{Map: m, Occupancy: occ, Boundary: ActivationBoundary(m, occ)}
}

// Click applies ev to cur and returns the next selection.  Guards are
// evaluated in a fixed order and the first one that fires wins; ignored
// clicks return cur unchanged.
func (c Controller) Click(cur Selection, ev ClickEvent) (Selection, ClickOutcome) {
	switch {
	case c.Occupancy.ViewerAlreadyBooked:
		return cur, OutcomeIgnoredAlreadyBooked
	case !ev.Type.Selectable():
		return cur, OutcomeIgnoredUnselectable
	case c.Occupancy.Has(ev.SeatID):
		return cur, OutcomeIgnoredTaken
	case RowLocked(ev.RowIndex, c.Boundary):
		return cur, OutcomeIgnoredRowLocked
	}
	if ev.SeatID == "" {
		return cur, OutcomeIgnoredUnknownSeat
	}
	if cur.Empty() {
		return Selected(ev.SeatID), OutcomeSelected
	}
	if cur.SeatID() == ev.SeatID {
		return Selection{}, OutcomeDeselected
	}
	return Selected(ev.SeatID), OutcomeReplaced
}

// ClickSeat resolves seatID against the map and applies the click.  Ids
// that are not on the map are ignored.
func (c Controller) ClickSeat(cur Selection, seatID string) (Selection, ClickOutcome) {
	ri, cell, ok := c.Map.Lookup(seatID)
	if !ok {
		if c.Occupancy.ViewerAlreadyBooked {
			return cur, OutcomeIgnoredAlreadyBooked
		}
		return cur, OutcomeIgnoredUnknownSeat
	}
	return c.Click(cur, ClickEvent{SeatID: cell.ID, RowIndex: ri, Type: cell.Type})
}

// Reconcile drops a held seat that is no longer valid under this snapshot:
// gone from the map, taken, behind the boundary, or the viewer has booked in
// the meantime.
func (c Controller) Reconcile(cur Selection) Selection {
	if cur.Empty() {
		return cur
	}
	if c.Occupancy.ViewerAlreadyBooked {
		return Selection{}
	}
	ri, cell, ok := c.Map.Lookup(cur.SeatID())
	if !ok || !cell.Type.Selectable() || c.Occupancy.Has(cell.ID) || RowLocked(ri, c.Boundary) {
		return Selection{}
	}
	return cur
}
