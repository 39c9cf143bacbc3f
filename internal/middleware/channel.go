package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nathanl0204/project-bot/internal/errors"
)

// HeaderChannelID carries the chat channel a command was issued from.
const HeaderChannelID = "X-Channel-ID"

// RequireChannel rejects mutation commands issued outside the
// designated project channel. An empty channelID disables the
// restriction.
func RequireChannel(channelID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if channelID != "" && c.GetHeader(HeaderChannelID) != channelID {
			apierrors.Forbidden(c, fmt.Sprintf("This command must be issued from the project channel (%s)", channelID))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetChannelID returns the channel a request was issued from, falling
// back to the configured default when the header is absent.
func GetChannelID(c *gin.Context, fallback string) string {
	if id := c.GetHeader(HeaderChannelID); id != "" {
		return id
	}
	return fallback
}
