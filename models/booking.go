package models

import "time"

// BookingStatusConfirmed is the only status a booking can have. Bookings are
// never cancelled or edited once admitted.
const BookingStatusConfirmed = "confirmed"

// Booking represents a confirmed court booking.
type Booking struct {
	ID            string    `bson:"id" json:"id"`                                       // Unique booking identifier (UUID)
	MemberID      string    `bson:"member_id" json:"memberId"`                          // Member who owns the booking
	Date          string    `bson:"date" json:"date"`                                   // Booking date in "YYYY-MM-DD" format
	StartMinute   int       `bson:"start" json:"start"`                                 // minutes from midnight (e.g., 960 for 16:00)
	DurationHours int       `bson:"duration_hours" json:"durationHours"`                // whole hours, always > 0
	PartnerName   string    `bson:"partner_name,omitempty" json:"partnerName,omitempty"` // optional playing partner
	GameType      string    `bson:"game_type,omitempty" json:"gameType,omitempty"`       // e.g., "singles", "doubles"
	AmountDue     float64   `bson:"amount_due" json:"amountDue"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// EndMinute is the exclusive end of the booked interval.
func (b Booking) EndMinute() int {
	return b.StartMinute + b.DurationHours*60
}

// BookingRequest is a validated-shape admission request. StartMinute is
// already converted from "HH:MM".
type BookingRequest struct {
	MemberID      string
	Date          string
	StartMinute   int
	DurationHours int
	PartnerName   string
	GameType      string
}

// BookingInput is the payload accepted by the booking endpoint.
type BookingInput struct {
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"startTime" binding:"required"` // "HH:MM"
	DurationHours int    `json:"durationHours"`
	PartnerName   string `json:"partnerName,omitempty"`
	GameType      string `json:"gameType,omitempty"`
}

// BookingFilter narrows admin and statement listings. Empty fields match all.
type BookingFilter struct {
	Date     string
	FromDate string // inclusive
	ToDate   string // inclusive
	MemberID string
}

// UpcomingBookings is the member dashboard view of future bookings.
type UpcomingBookings struct {
	Bookings  []Booking `json:"bookings"`
	Remaining int       `json:"remaining"`
}
