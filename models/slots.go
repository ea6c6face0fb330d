package models

// OperatingWindow is a contiguous interval of a day during which the court
// can be booked. Minutes from midnight, End is exclusive and never past 1440.
type OperatingWindow struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Contains reports whether the non-empty interval [start, end) lies entirely
// inside the window.
func (w OperatingWindow) Contains(start, end int) bool {
	return start < end && start >= w.Start && end <= w.End
}

// CandidateSlot is a possible booking start generated from a window.
type CandidateSlot struct {
	Start       int `json:"start"`
	WindowIndex int `json:"windowIndex"`
}

// SlotView is a candidate slot as shown on the daily board.
type SlotView struct {
	Start       int    `json:"start"`
	Label       string `json:"label"` // "HH:MM"
	WindowIndex int    `json:"windowIndex"`
	Occupied    bool   `json:"occupied"`
	BookingID   string `json:"bookingId,omitempty"`
	BookedBy    string `json:"bookedBy,omitempty"`
	PartnerName string `json:"partnerName,omitempty"`
}

// SlotBoard is the availability board of a single date.
type SlotBoard struct {
	Date    string            `json:"date"`
	Windows []OperatingWindow `json:"windows"`
	Slots   []SlotView        `json:"slots"`
}

// SuggestedStart is the default date and start offered by the booking form.
type SuggestedStart struct {
	Date      string `json:"date"`
	Start     int    `json:"start"`
	StartTime string `json:"startTime"`
}
