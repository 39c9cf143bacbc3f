package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nathanl0204/project-bot/internal/clock"
	"github.com/nathanl0204/project-bot/internal/dates"
	"github.com/nathanl0204/project-bot/internal/delivery"
	"github.com/nathanl0204/project-bot/internal/repository"
)

// Reminder periodically scans open tasks and notifies the project
// channel about those due within the lookahead window. It runs
// independently of the interactive handlers and shares only the task
// store with them. A task inside the window is re-notified every scan
// until it leaves the window or is completed.
type Reminder struct {
	taskRepo  repository.TaskRepository
	delivery  delivery.Delivery
	clock     clock.Clock
	channelID string
	lookahead time.Duration
	interval  time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewReminder creates a Reminder. An interval of zero or less disables
// the loop; Scan stays callable either way.
func NewReminder(taskRepo repository.TaskRepository, d delivery.Delivery, clk clock.Clock, channelID string, lookaheadHours, intervalMinutes int) *Reminder {
	return &Reminder{
		taskRepo:  taskRepo,
		delivery:  d,
		clock:     clk,
		channelID: channelID,
		lookahead: time.Duration(lookaheadHours) * time.Hour,
		interval:  time.Duration(intervalMinutes) * time.Minute,
	}
}

// Start launches the scan loop. The first scan runs immediately.
func (r *Reminder) Start(ctx context.Context) {
	if r.interval <= 0 {
		log.Println("reminder loop disabled")
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.scanAndLog(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.scanAndLog(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight scan to return.
func (r *Reminder) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Reminder) scanAndLog(ctx context.Context) {
	if err := r.Scan(ctx); err != nil {
		log.Printf("reminder scan failed: %v", err)
	}
}

// Scan runs one deadline pass: every open task due inside
// [now, now+lookahead] gets one notification. Tasks without a due date
// are skipped; a delivery failure on one task does not abort the scan.
func (r *Reminder) Scan(ctx context.Context) error {
	tasks, err := r.taskRepo.ListOpen()
	if err != nil {
		return fmt.Errorf("failed to list open tasks: %w", err)
	}

	now := r.clock.Now()
	deadline := now.Add(r.lookahead)

	for _, t := range tasks {
		if t.DueDate.IsZero() {
			continue
		}
		if t.DueDate.Before(now) || t.DueDate.After(deadline) {
			continue
		}

		var text string
		if claimers := t.ClaimerIDs(); len(claimers) > 0 {
			text = fmt.Sprintf("Reminder: task #%d %q is due %s — %s",
				t.ID, t.Title, dates.Format(t.DueDate), strings.Join(claimers, " "))
		} else {
			text = fmt.Sprintf("Reminder: task #%d %q is due %s and nobody has claimed it yet",
				t.ID, t.Title, dates.Format(t.DueDate))
		}

		if err := r.delivery.SendMessage(ctx, r.channelID, text); err != nil {
			log.Printf("failed to send reminder for task %d: %v", t.ID, err)
		}
	}

	return nil
}
