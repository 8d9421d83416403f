package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Event is a bookable session held in an auditorium.  Field names follow the
// booking system's records; the same struct is scanned from MySQL and
// decoded from the REST API.
//
// Fields:
//
//	ID         – event identifier (events.id).
//	Name       – display name.
//	Auditorium – auditorium name, used to find a shared layout.
//	SeatLayout – stored layout JSON; empty when the event has none.
//	Capacity   – seat count for the fallback map; 0 when unknown.
//	Date, Time – free-form schedule strings shown to viewers.
type Event struct {
	ID         FlexString `json:"ID"`
	Name       string     `json:"Name"`
	Auditorium string     `json:"Auditorium"`
	SeatLayout FlexString `json:"SeatLayout"`
	Capacity   FlexString `json:"Capacity"`
	Date       string     `json:"Date"`
	Time       string     `json:"Time"`
}

// CapacityInt parses Capacity, returning 0 when it is missing or not a
// positive integer.
func (e Event) CapacityInt() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(e.Capacity)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FlexString accepts a JSON string, number, bool, object or array and keeps
// its textual form.  Sheet-backed records are not consistent about whether
// ids and capacities are numbers or strings, and layouts may arrive either as
// an embedded object or as an encoded string.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

func (f FlexString) String() string { return string(f) }
