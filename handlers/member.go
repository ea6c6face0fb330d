package handlers

import (
	"errors"
	"net/http"

	"clubhouse/middleware"
	"clubhouse/models"
	"clubhouse/services/member"

	"github.com/gin-gonic/gin"
)

var errInvalidLimit = errors.New("limit must be a non-negative integer")

// MemberHandler serves registration, login and profile endpoints.
type MemberHandler struct {
	Service member.MemberService
}

func NewMemberHandler(svc member.MemberService) *MemberHandler {
	return &MemberHandler{Service: svc}
}

func (h *MemberHandler) RegisterHandler(c *gin.Context) {
	var in models.RegistrationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.Service.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MemberHandler) LoginHandler(c *gin.Context) {
	var in models.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	auth, err := h.Service.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, auth)
}

// MeHandler returns the authenticated member, including the balance.
func (h *MemberHandler) MeHandler(c *gin.Context) {
	m, err := h.Service.Get(c.Request.Context(), c.GetString(middleware.ContextMemberID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
