package model

// Auditorium is a venue whose layout events may share.
//
// Fields:
//
//	Name       – unique auditorium name (auditoriums.name).
//	Capacity   – advertised capacity.
//	SeatLayout – stored layout JSON, empty when none is authored.
//	Status     – free-form availability flag.
type Auditorium struct {
	Name       string     `json:"Name"`
	Capacity   FlexString `json:"Capacity"`
	SeatLayout FlexString `json:"SeatLayout"`
	Status     string     `json:"Status"`
}
