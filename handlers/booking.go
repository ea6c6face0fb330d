package handlers

import (
	"net/http"
	"strconv"
	"time"

	"clubhouse/middleware"
	"clubhouse/models"
	"clubhouse/services/booking"

	"github.com/gin-gonic/gin"
)

const defaultUpcomingLimit = 3

// BookingHandler serves the member booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Now     func() time.Time
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc, Now: time.Now}
}

// GetSlotsHandler returns the slot board for ?date=YYYY-MM-DD (default today).
func (h *BookingHandler) GetSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.Now().Format("2006-01-02")
	}
	board, err := h.Service.Board(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *BookingHandler) SuggestStartHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.SuggestStart(h.Now()))
}

// CreateBookingHandler books the court for the authenticated member.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.Book(c.Request.Context(), c.GetString(middleware.ContextMemberID), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.MemberBookings(c.Request.Context(), c.GetString(middleware.ContextMemberID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) UpcomingHandler(c *gin.Context) {
	limit := defaultUpcomingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, errInvalidLimit)
			return
		}
		limit = n
	}
	up, err := h.Service.Upcoming(c.Request.Context(), c.GetString(middleware.ContextMemberID), h.Now(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
