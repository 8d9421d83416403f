package seating

import "testing"

func twoByTwo(t *testing.T) SeatMap {
	t.Helper()
	m, err := ParseLayoutJSON([]byte(`{"rows":2,"cols":2,"grid":[[1,1],[1,1]]}`))
	if err != nil {
		t.Fatalf("ParseLayoutJSON() error = %v", err)
	}
	return m
}

func TestActivationBoundary_ScenarioA(t *testing.T) {
	m := twoByTwo(t)
	if got := ActivationBoundary(m, ResolveOccupancy(nil, "")); got != 0 {
		t.Fatalf("boundary = %d, want 0", got)
	}
}

func TestActivationBoundary_ScenarioB(t *testing.T) {
	m := twoByTwo(t)
	occ := ResolveOccupancy([]BookingRecord{{Owner: "x", Seats: "A1"}, {Owner: "y", Seats: "A2"}}, "")
	if got := ActivationBoundary(m, occ); got != 1 {
		t.Fatalf("boundary = %d, want 1", got)
	}
}

func TestActivationBoundary_BlockedAndGapsCountAsFilled(t *testing.T) {
	m, err := ParseLayout(SeatLayout{Rows: 3, Cols: 3, Grid: [][]SeatTypeCode{
		{3, 0, 3},
		{1, 0, 1},
		{1, 1, 1},
	}})
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	occ := OccupancyFromSeats([]string{"B1"}, false)
	if got := ActivationBoundary(m, occ); got != 1 {
		t.Fatalf("boundary = %d, want 1", got)
	}
	occ = occ.With("B2")
	if got := ActivationBoundary(m, occ); got != 2 {
		t.Fatalf("boundary = %d, want 2", got)
	}
}

func TestActivationBoundary_AllFilled(t *testing.T) {
	m := twoByTwo(t)
	occ := OccupancyFromSeats([]string{"A1", "A2", "B1", "B2"}, false)
	if got := ActivationBoundary(m, occ); got != 2 {
		t.Fatalf("boundary = %d, want row count 2", got)
	}
	if got := ActivationBoundary(SeatMap{}, occ); got != 0 {
		t.Fatalf("empty map boundary = %d, want 0", got)
	}
}

func TestActivationBoundary_Monotonic(t *testing.T) {
	m := GenerateFallback(30, 5)
	occ := OccupancyFromSeats(nil, false)
	prev := ActivationBoundary(m, occ)
	for _, id := range m.SeatIDs() {
		occ = occ.With(id)
		b := ActivationBoundary(m, occ)
		if b < prev {
			t.Fatalf("boundary decreased from %d to %d after booking %s", prev, b, id)
		}
		prev = b
	}
	if prev != m.Len() {
		t.Fatalf("final boundary = %d, want %d", prev, m.Len())
	}
}

func TestController_ScenarioD(t *testing.T) {
	c := NewController(twoByTwo(t), OccupancyFromSeats(nil, false))
	sel, out := c.ClickSeat(Selection{}, "B1")
	if !sel.Empty() || out != OutcomeIgnoredRowLocked {
		t.Fatalf("got %v/%v, want Empty/ignored_row_locked", sel, out)
	}
	if out.Notice() != RowLockedNotice {
		t.Fatalf("notice = %q", out.Notice())
	}
}

func TestController_ScenarioE(t *testing.T) {
	c := NewController(twoByTwo(t), OccupancyFromSeats(nil, false))
	sel, out := c.ClickSeat(Selected("A1"), "A1")
	if !sel.Empty() || out != OutcomeDeselected {
		t.Fatalf("got %v/%v, want Empty/deselected", sel, out)
	}
}

func TestController_ScenarioF(t *testing.T) {
	c := NewController(twoByTwo(t), OccupancyFromSeats(nil, false))
	sel, out := c.ClickSeat(Selected("A1"), "A2")
	if sel.SeatID() != "A2" || out != OutcomeReplaced {
		t.Fatalf("got %v/%v, want Selected(A2)/replaced", sel, out)
	}
}

func TestController_Guards(t *testing.T) {
	m, err := ParseLayout(SeatLayout{Rows: 2, Cols: 3, Grid: [][]SeatTypeCode{
		{1, 3, 1},
		{1, 1, 1},
	}})
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	occ := OccupancyFromSeats([]string{"A1"}, false)
	c := NewController(m, occ)

	tests := []struct {
		name string
		cur  Selection
		ev   ClickEvent
		want Selection
		out  ClickOutcome
	}{
		{"gap", Selection{}, ClickEvent{RowIndex: 0, Type: Gap}, Selection{}, OutcomeIgnoredUnselectable},
		{"blocked", Selection{}, ClickEvent{SeatID: "A2", RowIndex: 0, Type: Blocked}, Selection{}, OutcomeIgnoredUnselectable},
		{"taken", Selected("A3"), ClickEvent{SeatID: "A1", RowIndex: 0, Type: Standard}, Selected("A3"), OutcomeIgnoredTaken},
		{"locked row", Selected("A3"), ClickEvent{SeatID: "B1", RowIndex: 1, Type: Standard}, Selected("A3"), OutcomeIgnoredRowLocked},
		{"select", Selection{}, ClickEvent{SeatID: "A3", RowIndex: 0, Type: Standard}, Selected("A3"), OutcomeSelected},
		{"vip selectable", Selection{}, ClickEvent{SeatID: "A3", RowIndex: 0, Type: VIP}, Selected("A3"), OutcomeSelected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, out := c.Click(tt.cur, tt.ev)
			if got != tt.want || out != tt.out {
				t.Fatalf("Click() = %v/%v, want %v/%v", got, out, tt.want, tt.out)
			}
		})
	}
}

func TestController_AlreadyBookedGuardWins(t *testing.T) {
	c := NewController(twoByTwo(t), OccupancyFromSeats(nil, true))
	for _, cur := range []Selection{{}, Selected("A1")} {
		sel, out := c.ClickSeat(cur, "A2")
		if sel != cur || out != OutcomeIgnoredAlreadyBooked {
			t.Fatalf("from %v got %v/%v, want unchanged/ignored_already_booked", cur, sel, out)
		}
	}
}

func TestController_UnknownSeat(t *testing.T) {
	c := NewController(twoByTwo(t), OccupancyFromSeats(nil, false))
	sel, out := c.ClickSeat(Selected("A1"), "Z9")
	if sel.SeatID() != "A1" || out != OutcomeIgnoredUnknownSeat {
		t.Fatalf("got %v/%v", sel, out)
	}
}

func TestController_NeverHoldsSeatBehindBoundary(t *testing.T) {
	m := GenerateFallback(9, 3)
	occ := OccupancyFromSeats(nil, false)
	sel := Selection{}
	ids := append(m.SeatIDs(), m.SeatIDs()...)
	for i, id := range ids {
		c := NewController(m, occ)
		sel, _ = c.ClickSeat(sel, id)
		if !sel.Empty() {
			ri, _, _ := m.Lookup(sel.SeatID())
			if ri > c.Boundary {
				t.Fatalf("holding %s in row %d beyond boundary %d", sel.SeatID(), ri, c.Boundary)
			}
		}
		// every third click books the front-most free seat, moving the boundary
		if i%3 == 2 {
			for _, cand := range m.SeatIDs() {
				if !occ.Has(cand) {
					occ = occ.With(cand)
					break
				}
			}
			sel = NewController(m, occ).Reconcile(sel)
		}
	}
}

func TestController_Reconcile(t *testing.T) {
	m := twoByTwo(t)
	c := NewController(m, OccupancyFromSeats([]string{"A2"}, false))
	if got := c.Reconcile(Selected("A1")); got.SeatID() != "A1" {
		t.Fatalf("valid selection dropped: %v", got)
	}
	if got := c.Reconcile(Selected("A2")); !got.Empty() {
		t.Fatalf("taken seat kept: %v", got)
	}
	if got := c.Reconcile(Selected("B1")); !got.Empty() {
		t.Fatalf("locked seat kept: %v", got)
	}
	if got := c.Reconcile(Selected("Q7")); !got.Empty() {
		t.Fatalf("unknown seat kept: %v", got)
	}
	booked := NewController(m, OccupancyFromSeats(nil, true))
	if got := booked.Reconcile(Selected("A1")); !got.Empty() {
		t.Fatalf("selection kept after viewer booked: %v", got)
	}
}

func TestBuildView(t *testing.T) {
	m, err := ParseLayout(SeatLayout{Rows: 2, Cols: 3, Grid: [][]SeatTypeCode{
		{1, 0, 3},
		{2, 1, 1},
	}})
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}
	c := NewController(m, OccupancyFromSeats([]string{"B2"}, false))
	v := BuildView(c, Selected("A1"))

	if v.ActiveRow != 0 || v.Selected != "A1" || v.Capacity != 5 || v.Taken != 1 {
		t.Fatalf("view header = %+v", v)
	}
	want := [][]SeatStatus{
		{StatusSelected, StatusGap, StatusBlocked},
		{StatusLocked, StatusBooked, StatusLocked},
	}
	for ri, row := range v.Rows {
		for ci, cell := range row.Seats {
			if cell.Status != want[ri][ci] {
				t.Errorf("row %d cell %d status = %s, want %s", ri, ci, cell.Status, want[ri][ci])
			}
		}
	}
	if !v.Rows[1].Locked || v.Rows[0].Locked {
		t.Fatalf("lock flags = %v/%v", v.Rows[0].Locked, v.Rows[1].Locked)
	}
	if v.Rows[0].Seats[0].Disabled {
		t.Fatalf("selected seat should stay clickable")
	}
	if v.Rows[1].Seats[0].Type != "vip" {
		t.Fatalf("type = %q, want vip", v.Rows[1].Seats[0].Type)
	}
}
