package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"clubhouse/database/repository"
	bookingRepo "clubhouse/database/repository/booking"
	"clubhouse/metrics"
	"clubhouse/models"

	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService on top of the engine.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	Members     Members
	Cache       BoardCache // optional
	Windows     []models.OperatingWindow
	Granularity int
	Policy      AdmissionPolicy
	Logger      *zap.Logger
	Now         func() time.Time

	// admissions counts bookings admitted by this process per date, so a
	// board rendered from an older snapshot is not left in the cache.
	admissions sync.Map // date -> *atomic.Uint64
}

func (s *DefaultBookingService) admissionCounter(date string) *atomic.Uint64 {
	v, _ := s.admissions.LoadOrStore(date, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

// Board renders the availability of every candidate slot on date.
func (s *DefaultBookingService) Board(ctx context.Context, date string) (*models.SlotBoard, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, reject(ReasonInvalidInput, "date %q is not YYYY-MM-DD", date)
	}
	if s.Cache != nil {
		if board, ok := s.Cache.Get(ctx, date); ok {
			metrics.RecordCacheLookup(true)
			return board, nil
		}
		metrics.RecordCacheLookup(false)
	}

	seen := s.admissionCounter(date).Load()
	bookings, err := s.Repo.ListBookingsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}

	names := map[string]string{}
	board := &models.SlotBoard{Date: date, Windows: s.Windows, Slots: []models.SlotView{}}
	for _, slot := range GenerateSlots(s.Windows, s.Granularity) {
		view := models.SlotView{Start: slot.Start, Label: FormatClock(slot.Start), WindowIndex: slot.WindowIndex}
		if b := occupant(slot.Start, bookings); b != nil {
			view.Occupied = true
			view.BookingID = b.ID
			view.PartnerName = b.PartnerName
			view.BookedBy = s.memberName(ctx, b.MemberID, names)
		}
		board.Slots = append(board.Slots, view)
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, board)
		if s.admissionCounter(date).Load() != seen {
			s.Cache.Invalidate(ctx, date)
		}
	}
	return board, nil
}

func (s *DefaultBookingService) memberName(ctx context.Context, id string, memo map[string]string) string {
	if name, ok := memo[id]; ok {
		return name
	}
	name := ""
	if m, err := s.Members.Get(ctx, id); err == nil {
		name = m.Name
	} else {
		s.logger().Warn("could not resolve booking holder", zap.String("memberID", id), zap.Error(err))
	}
	memo[id] = name
	return name
}

// Book admits and stores a booking for memberID, then credits the member's
// balance with the amount due. Rejections come back as *AdmissionError.
func (s *DefaultBookingService) Book(ctx context.Context, memberID string, in models.BookingInput) (*models.Booking, error) {
	log := s.logger().With(zap.String("memberID", memberID), zap.String("date", in.Date), zap.String("start", in.StartTime))

	booking, err := s.admit(ctx, memberID, in)
	if err != nil {
		if reason, ok := ReasonOf(err); ok {
			metrics.RecordRejection(string(reason))
			log.Info("booking rejected", zap.String("reason", string(reason)), zap.Error(err))
		} else {
			log.Error("booking failed", zap.Error(err))
		}
		return nil, err
	}

	s.admissionCounter(booking.Date).Add(1)
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, booking.Date)
	}
	metrics.RecordAdmission(booking.DurationHours)
	log.Info("booking admitted",
		zap.String("bookingID", booking.ID),
		zap.String("slot", describeSlot(booking.Date, booking.StartMinute, booking.DurationHours)),
		zap.Float64("amountDue", booking.AmountDue))

	// The booking is already stored; a failed credit is reported but does
	// not undo it. Monthly statements are computed from bookings, not balances.
	if err := s.Members.CreditBalance(ctx, memberID, booking.AmountDue); err != nil {
		log.Error("failed to credit member balance",
			zap.String("bookingID", booking.ID), zap.Float64("amount", booking.AmountDue), zap.Error(err))
	}
	return booking, nil
}

func (s *DefaultBookingService) admit(ctx context.Context, memberID string, in models.BookingInput) (*models.Booking, error) {
	start, err := ParseClock(in.StartTime)
	if err != nil {
		return nil, reject(ReasonInvalidInput, "%v", err)
	}
	day, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, reject(ReasonInvalidInput, "date %q is not YYYY-MM-DD", in.Date)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, reject(ReasonInvalidInput, "date %s is in the past", in.Date)
	}

	if _, err := s.Members.Get(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, reject(ReasonInvalidInput, "unknown member")
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	req := models.BookingRequest{
		MemberID:      memberID,
		Date:          in.Date,
		StartMinute:   start,
		DurationHours: in.DurationHours,
		PartnerName:   in.PartnerName,
		GameType:      in.GameType,
	}
	policy := s.Policy
	if policy.Now == nil {
		policy.Now = s.now
	}
	return s.Repo.AppendBooking(ctx, in.Date, func(existing []models.Booking) (*models.Booking, error) {
		return AdmitBooking(req, existing, s.Windows, policy)
	})
}

// SuggestStart picks the default date and start for the booking form: the
// next candidate slot later today, otherwise the first slot tomorrow.
func (s *DefaultBookingService) SuggestStart(now time.Time) models.SuggestedStart {
	slots := GenerateSlots(s.Windows, s.Granularity)
	if len(slots) == 0 {
		return models.SuggestedStart{Date: now.Format(dateLayout)}
	}
	current := now.Hour()*60 + now.Minute()
	for _, slot := range slots {
		if slot.Start > current {
			return models.SuggestedStart{Date: now.Format(dateLayout), Start: slot.Start, StartTime: FormatClock(slot.Start)}
		}
	}
	first := slots[0]
	return models.SuggestedStart{
		Date:      now.AddDate(0, 0, 1).Format(dateLayout),
		Start:     first.Start,
		StartTime: FormatClock(first.Start),
	}
}

// MemberBookings lists a member's bookings, most recent first.
func (s *DefaultBookingService) MemberBookings(ctx context.Context, memberID string) ([]models.Booking, error) {
	bookings, err := s.Repo.Find(ctx, models.BookingFilter{MemberID: memberID})
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings of member %s: %w", memberID, err)
	}
	sortBookings(bookings, true)
	return bookings, nil
}

// Upcoming lists bookings that have not started yet, soonest first. With a
// positive limit only the first limit are returned and the rest counted.
func (s *DefaultBookingService) Upcoming(ctx context.Context, memberID string, now time.Time, limit int) (*models.UpcomingBookings, error) {
	today := now.Format(dateLayout)
	bookings, err := s.Repo.Find(ctx, models.BookingFilter{MemberID: memberID, FromDate: today})
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming bookings of member %s: %w", memberID, err)
	}

	current := now.Hour()*60 + now.Minute()
	upcoming := bookings[:0]
	for _, b := range bookings {
		if b.Date > today || b.StartMinute >= current {
			upcoming = append(upcoming, b)
		}
	}
	sortBookings(upcoming, false)

	result := &models.UpcomingBookings{Bookings: upcoming}
	if limit > 0 && len(upcoming) > limit {
		result.Bookings = upcoming[:limit]
		result.Remaining = len(upcoming) - limit
	}
	return result, nil
}

// ListBookings is the admin listing, most recent first.
func (s *DefaultBookingService) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	if filter.Date != "" {
		if _, err := time.Parse(dateLayout, filter.Date); err != nil {
			return nil, reject(ReasonInvalidInput, "date %q is not YYYY-MM-DD", filter.Date)
		}
	}
	bookings, err := s.Repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	sortBookings(bookings, true)
	return bookings, nil
}

// sortBookings orders by date then start minute. ISO dates sort correctly as
// strings; starts are compared as integers.
func sortBookings(bookings []models.Booking, newestFirst bool) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if a.Date != b.Date {
			if newestFirst {
				return a.Date > b.Date
			}
			return a.Date < b.Date
		}
		if newestFirst {
			return a.StartMinute > b.StartMinute
		}
		return a.StartMinute < b.StartMinute
	})
}
