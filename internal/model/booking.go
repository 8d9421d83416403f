package model

// Booking records one viewer's seat for an event.
//
// Fields:
//
//	BookingID – opaque id, "BK-" followed by 8 upper-case hex chars.
//	USN       – viewer identifier (university serial number).
//	EventID   – event the booking belongs to.
//	Seats     – comma-separated seat ids; normally a single id.
//	Schedule  – schedule the seat was booked for.
//	Status    – CONFIRMED or CHECKED_IN.
//	Timestamp – creation time as Unix seconds.
//
// Sheet-backed records may hold any cell as a number (a numeric USN, a
// schedule typed as a bare hour), so every free-text field is a FlexString.
type Booking struct {
	BookingID FlexString `json:"BookingID"`
	USN       FlexString `json:"USN"`
	EventID   FlexString `json:"EventID"`
	Seats     FlexString `json:"Seats"`
	Schedule  FlexString `json:"Schedule"`
	Status    FlexString `json:"Status"`
	Timestamp FlexString `json:"Timestamp"`
}

// Booking statuses.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCheckedIn = "CHECKED_IN"
)
