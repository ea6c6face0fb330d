package handlers

import (
	"clubhouse/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and what the routes need to
// protect them.
type HandlerBundle struct {
	Tokens *utils.TokenIssuer
	Health *utils.HealthMonitor

	Members  *MemberHandler
	Bookings *BookingHandler
	Admin    *AdminHandler
}

// HealthHandler reports the latest dependency health snapshot.
func (hb *HandlerBundle) HealthHandler(c *gin.Context) {
	if hb.Health == nil {
		c.JSON(200, gin.H{"status": "ok"})
		return
	}
	status := hb.Health.Status()
	code := 200
	if !status.Healthy && !status.CheckedAt.IsZero() {
		code = 503
	}
	c.JSON(code, status)
}
