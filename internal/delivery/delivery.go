package delivery

import (
	"context"

	"github.com/nathanl0204/project-bot/internal/dto"
)

// Delivery sends content to the chat platform. Implementations are
// expected to be safe for concurrent use; the scheduler and the
// interactive handlers share one instance.
type Delivery interface {
	// SendMessage sends a plain text message to a channel.
	SendMessage(ctx context.Context, channelID, text string) error

	// SendView delivers a week view to a channel and returns the
	// platform identifier of the created view, used later to update it
	// in place.
	SendView(ctx context.Context, channelID string, view dto.WeekView) (string, error)

	// UpdateView replaces the content of a previously sent view.
	UpdateView(ctx context.Context, viewID string, view dto.WeekView) error
}
