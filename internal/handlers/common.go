package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nathanl0204/project-bot/internal/clock"
	"github.com/nathanl0204/project-bot/internal/dates"
	apierrors "github.com/nathanl0204/project-bot/internal/errors"
	"github.com/nathanl0204/project-bot/internal/services"
)

// HeaderUserID carries the chat user id the gateway authenticated.
const HeaderUserID = "X-User-ID"

// getUserID returns the acting user's id, or replies 400 when the
// gateway did not supply one.
func getUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		apierrors.BadRequest(c, "Missing "+HeaderUserID+" header")
		return "", false
	}
	return userID, true
}

// resolveWeek parses the optional week query parameter, defaulting to
// the current week. Any supplied date is normalized to its Monday.
func resolveWeek(c *gin.Context, clk clock.Clock) (time.Time, bool) {
	raw := c.Query("week")
	if raw == "" {
		return dates.WeekStart(clk.Now()), true
	}

	parsed, err := dates.ParseDate(raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid week date: "+err.Error())
		return time.Time{}, false
	}
	return dates.WeekStart(parsed), true
}

// respondServiceError maps domain errors onto the API error envelope.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dates.ErrBadDateFormat),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrUnknownAction):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrViewNotFound),
		errors.Is(err, services.ErrNoOpenTasks):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskCompleted):
		apierrors.Conflict(c, err.Error())
	default:
		log.Printf("request failed: %v", err)
		apierrors.InternalError(c, "")
	}
}
