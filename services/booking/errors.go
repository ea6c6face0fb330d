package booking

import (
	"errors"
	"fmt"
)

// RejectionReason tells callers why a booking request was turned down.
type RejectionReason string

const (
	ReasonInvalidInput          RejectionReason = "invalid_input"
	ReasonOutsideOperatingHours RejectionReason = "outside_operating_hours"
	ReasonSlotUnavailable       RejectionReason = "slot_unavailable"
)

var (
	ErrInvalidInput          = errors.New("invalid booking request")
	ErrOutsideOperatingHours = errors.New("booking outside club hours")
	ErrSlotUnavailable       = errors.New("time slot already booked")
)

// AdmissionError is returned when a request fails admission. It matches the
// sentinel of its reason with errors.Is.
type AdmissionError struct {
	Reason  RejectionReason
	Message string
}

func (e *AdmissionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *AdmissionError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Reason == ReasonInvalidInput
	case ErrOutsideOperatingHours:
		return e.Reason == ReasonOutsideOperatingHours
	case ErrSlotUnavailable:
		return e.Reason == ReasonSlotUnavailable
	}
	return false
}

func reject(reason RejectionReason, format string, args ...any) error {
	return &AdmissionError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (RejectionReason, bool) {
	var ae *AdmissionError
	if errors.As(err, &ae) {
		return ae.Reason, true
	}
	return "", false
}
