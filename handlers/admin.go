package handlers

import (
	"net/http"
	"strconv"

	"clubhouse/models"
	"clubhouse/services/billing"
	"clubhouse/services/booking"
	"clubhouse/services/member"
	"clubhouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Bookings booking.BookingService
	Members  member.MemberService
	Billing  billing.BillingService
}

func NewAdminHandler(bs booking.BookingService, ms member.MemberService, bill billing.BillingService) *AdminHandler {
	return &AdminHandler{Bookings: bs, Members: ms, Billing: bill}
}

// ListBookingsHandler returns all bookings, optionally for ?date=.
func (ah *AdminHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := ah.Bookings.ListBookings(c.Request.Context(), models.BookingFilter{Date: c.Query("date")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// SearchMembersHandler searches members by ?q= over name, email and phone.
func (ah *AdminHandler) SearchMembersHandler(c *gin.Context) {
	members, err := ah.Members.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (ah *AdminHandler) ListStatementsHandler(c *gin.Context) {
	filter := models.StatementFilter{MemberID: c.Query("member"), Status: c.Query("status")}
	var err error
	if filter.Year, err = optionalInt(c, "year"); err != nil {
		badRequest(c, err)
		return
	}
	if filter.Month, err = optionalInt(c, "month"); err != nil {
		badRequest(c, err)
		return
	}
	statements, err := ah.Billing.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statements)
}

type generateRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

func (ah *AdminHandler) GenerateStatementsHandler(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	created, err := ah.Billing.GenerateMonthly(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.GetLogger().Info("statements generated by admin", zap.Int("year", req.Year), zap.Int("month", req.Month), zap.Int("created", len(created)))
	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (ah *AdminHandler) MarkStatementPaidHandler(c *gin.Context) {
	st, err := ah.Billing.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func optionalInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
