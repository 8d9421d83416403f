package seating

import "strings"

// MapSource names where a derived seat map came from.
type MapSource string

const (
	SourceEvent      MapSource = "event"      // layout stored on the event itself
	SourceAuditorium MapSource = "auditorium" // layout of the event's auditorium
	SourceFallback   MapSource = "fallback"   // synthesized from capacity
)

// LayoutSources gathers every input the map resolution chain may consult.
// Layouts are raw stored JSON; empty strings mean "not configured".
type LayoutSources struct {
	EventLayout      string
	AuditoriumLayout string
	Capacity         int
	SeatsPerRow      int
}

// Resolution is the outcome of ResolveSeatMap.  Skipped records layouts that
// were present but rejected, in the order they were tried, so callers can log
// them.
type Resolution struct {
	Map     SeatMap
	Source  MapSource
	Skipped []error
}

// ResolveSeatMap picks the first usable layout: the event's own, then the
// auditorium's, then a capacity-based fallback.  It never fails; a layout
// that does not parse is recorded in Skipped and the next source is tried.
func ResolveSeatMap(src LayoutSources) Resolution {
	var res Resolution
	candidates := []struct {
		raw    string
		source MapSource
	}{
		{src.EventLayout, SourceEvent},
		{src.AuditoriumLayout, SourceAuditorium},
	}
	for _, cand := range candidates {
		raw := strings.TrimSpace(cand.raw)
		if raw == "" || raw == "null" {
			continue
		}
		m, err := ParseLayoutJSON([]byte(raw))
		if err != nil {
			res.Skipped = append(res.Skipped, err)
			continue
		}
		res.Map = m
		res.Source = cand.source
		return res
	}
	capacity := src.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	res.Map = GenerateFallback(capacity, src.SeatsPerRow)
	res.Source = SourceFallback
	return res
}
