package booking

// DefaultHourlyRate is the club's court fee per hour.
const DefaultHourlyRate = 7.5

// AmountDue prices a booking of the given whole hours.
func AmountDue(durationHours int, hourlyRate float64) float64 {
	return float64(durationHours) * hourlyRate
}
