package delivery

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/nathanl0204/project-bot/internal/dto"
)

// LogDelivery is a Delivery that writes everything to the process log.
// It stands in for a real chat-platform gateway in local runs; view
// ids are minted locally.
type LogDelivery struct{}

// NewLogDelivery creates a log-backed Delivery.
func NewLogDelivery() *LogDelivery {
	return &LogDelivery{}
}

func (d *LogDelivery) SendMessage(_ context.Context, channelID, text string) error {
	log.Printf("delivery: message to %s: %s", channelID, text)
	return nil
}

func (d *LogDelivery) SendView(_ context.Context, channelID string, view dto.WeekView) (string, error) {
	viewID := uuid.NewString()
	log.Printf("delivery: view %s to %s: week %s, %d tasks", viewID, channelID, view.WeekStart, len(view.Entries))
	return viewID, nil
}

func (d *LogDelivery) UpdateView(_ context.Context, viewID string, view dto.WeekView) error {
	log.Printf("delivery: update view %s: week %s, %d tasks", viewID, view.WeekStart, len(view.Entries))
	return nil
}
