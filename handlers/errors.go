package handlers

import (
	"errors"
	"net/http"

	"clubhouse/services/billing"
	"clubhouse/services/booking"
	"clubhouse/services/member"
	"clubhouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var admissionStatus = map[booking.RejectionReason]int{
	booking.ReasonInvalidInput:          http.StatusBadRequest,
	booking.ReasonOutsideOperatingHours: http.StatusUnprocessableEntity,
	booking.ReasonSlotUnavailable:       http.StatusConflict,
}

// respondError maps service errors onto HTTP responses. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *gin.Context, err error) {
	var ae *booking.AdmissionError
	if errors.As(err, &ae) {
		utils.JSONCodedError(c, admissionStatus[ae.Reason], string(ae.Reason), ae.Message)
		return
	}

	switch {
	case errors.Is(err, member.ErrMissingFields),
		errors.Is(err, member.ErrInvalidEmail),
		errors.Is(err, member.ErrPasswordMismatch),
		errors.Is(err, member.ErrWeakPassword),
		errors.Is(err, billing.ErrInvalidPeriod):
		utils.JSONCodedError(c, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, member.ErrEmailTaken):
		utils.JSONCodedError(c, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, member.ErrInvalidCredentials):
		utils.JSONCodedError(c, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, member.ErrMemberNotFound), errors.Is(err, billing.ErrStatementNotFound):
		utils.JSONCodedError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, billing.ErrAlreadyPaid):
		utils.JSONCodedError(c, http.StatusConflict, "already_paid", err.Error())
	default:
		utils.GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONCodedError(c, http.StatusInternalServerError, "internal_error", "Something went wrong, please try again")
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONCodedError(c, http.StatusBadRequest, "invalid_input", err.Error())
}
