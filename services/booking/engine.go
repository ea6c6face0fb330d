package booking

import (
	"fmt"
	"time"

	"clubhouse/models"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// AdmissionPolicy holds the tunables used by AdmitBooking.
type AdmissionPolicy struct {
	AlignMinutes int     // requested starts must be a multiple of this; <= 0 means 1
	HourlyRate   float64 // price per booked hour
	NewID        func() string
	Now          func() time.Time
}

// DefaultPolicy is the club's standard admission policy.
func DefaultPolicy() AdmissionPolicy {
	return AdmissionPolicy{
		AlignMinutes: 30,
		HourlyRate:   DefaultHourlyRate,
		NewID:        func() string { return uuid.New().String() },
		Now:          time.Now,
	}
}

// GenerateSlots lists every candidate start in each window, stepping by
// granularity. Windows are visited in the order given.
func GenerateSlots(windows []models.OperatingWindow, granularity int) []models.CandidateSlot {
	if granularity <= 0 {
		return nil
	}
	var slots []models.CandidateSlot
	for i, w := range windows {
		for t := w.Start; t < w.End; t += granularity {
			slots = append(slots, models.CandidateSlot{Start: t, WindowIndex: i})
		}
	}
	return slots
}

// IsOccupied reports whether the slot start falls inside any booking.
// Booking intervals are half-open, so a slot starting where a booking ends is free.
func IsOccupied(slot models.CandidateSlot, bookings []models.Booking) bool {
	return occupant(slot.Start, bookings) != nil
}

func occupant(minute int, bookings []models.Booking) *models.Booking {
	for i := range bookings {
		if bookings[i].StartMinute <= minute && minute < bookings[i].EndMinute() {
			return &bookings[i]
		}
	}
	return nil
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// windowFor returns the index of the single window fully containing
// [start, end), or -1.
func windowFor(windows []models.OperatingWindow, start, end int) int {
	for i, w := range windows {
		if w.Contains(start, end) {
			return i
		}
	}
	return -1
}

// AdmitBooking decides whether req can be added to the bookings already held
// for its date. Checks run in a fixed order and the first failure wins:
// input shape, operating hours, then conflicts. On success the returned
// booking is confirmed and priced but not yet persisted.
func AdmitBooking(req models.BookingRequest, existing []models.Booking, windows []models.OperatingWindow, policy AdmissionPolicy) (*models.Booking, error) {
	align := policy.AlignMinutes
	if align <= 0 {
		align = 1
	}

	switch {
	case req.MemberID == "":
		return nil, reject(ReasonInvalidInput, "member is required")
	case req.Date == "":
		return nil, reject(ReasonInvalidInput, "date is required")
	case req.DurationHours <= 0:
		return nil, reject(ReasonInvalidInput, "duration must be at least one hour")
	case req.DurationHours > minutesPerDay/60:
		return nil, reject(ReasonInvalidInput, "duration of %d hours exceeds a day", req.DurationHours)
	case req.StartMinute < 0 || req.StartMinute >= minutesPerDay:
		return nil, reject(ReasonInvalidInput, "start time is out of range")
	case req.StartMinute%align != 0:
		return nil, reject(ReasonInvalidInput, "start time must be on a %d minute boundary", align)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, reject(ReasonInvalidInput, "date %q is not YYYY-MM-DD", req.Date)
	}

	start := req.StartMinute
	end := AddHours(start, req.DurationHours)
	if windowFor(windows, start, end) < 0 {
		return nil, reject(ReasonOutsideOperatingHours,
			"%s-%s is not within a single club session", FormatClock(start), FormatClock(end))
	}

	for _, b := range existing {
		if Overlaps(start, end, b.StartMinute, b.EndMinute()) {
			return nil, reject(ReasonSlotUnavailable,
				"%s-%s conflicts with an existing booking at %s", FormatClock(start), FormatClock(end), FormatClock(b.StartMinute))
		}
	}

	newID := policy.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	now := policy.Now
	if now == nil {
		now = time.Now
	}

	return &models.Booking{
		ID:            newID(),
		MemberID:      req.MemberID,
		Date:          req.Date,
		StartMinute:   start,
		DurationHours: req.DurationHours,
		PartnerName:   req.PartnerName,
		GameType:      req.GameType,
		AmountDue:     AmountDue(req.DurationHours, policy.HourlyRate),
		Status:        models.BookingStatusConfirmed,
		CreatedAt:     now(),
	}, nil
}

// describeSlot is used in log lines.
func describeSlot(date string, start, hours int) string {
	return fmt.Sprintf("%s %s+%dh", date, FormatClock(start), hours)
}
