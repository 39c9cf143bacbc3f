package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/nathanl0204/project-bot/internal/dates"
	"github.com/nathanl0204/project-bot/internal/delivery"
	"github.com/nathanl0204/project-bot/internal/dto"
	"github.com/nathanl0204/project-bot/internal/models"
	"github.com/nathanl0204/project-bot/internal/privilege"
	"github.com/nathanl0204/project-bot/internal/repository"
)

var (
	ErrNoOpenTasks   = errors.New("no open tasks for this week")
	ErrViewNotFound  = errors.New("no announcement for this view")
	ErrUnknownAction = errors.New("unknown action")
)

// ProjectionService derives week views from task state, delivers them,
// and routes view-triggered actions through the state machine. All
// buttons funnel into HandleAction; there is exactly one dispatch
// path, and the week is resolved from the announcement record for the
// view that fired the event.
type ProjectionService struct {
	tasks    *TaskService
	annRepo  repository.AnnouncementRepository
	delivery delivery.Delivery
	priv     privilege.Checker
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(tasks *TaskService, annRepo repository.AnnouncementRepository, d delivery.Delivery, priv privilege.Checker) *ProjectionService {
	return &ProjectionService{
		tasks:    tasks,
		annRepo:  annRepo,
		delivery: d,
		priv:     priv,
	}
}

// ProjectWeek builds the full view of a week: every task, due date
// ascending, with claim/complete actions on the open ones. The view is
// a pure function of store state and the week identifier.
func (s *ProjectionService) ProjectWeek(weekStart time.Time) (dto.WeekView, error) {
	tasks, err := s.tasks.ListTasksForWeek(weekStart, false)
	if err != nil {
		return dto.WeekView{}, err
	}
	return buildView(weekStart, tasks), nil
}

// AnnounceWeek delivers a view of the week's open tasks to a channel
// and records the returned view id so later interactions can resolve
// their week. Returns the view id.
func (s *ProjectionService) AnnounceWeek(ctx context.Context, channelID string, weekStart time.Time) (string, error) {
	open, err := s.tasks.ListTasksForWeek(weekStart, true)
	if err != nil {
		return "", err
	}
	if len(open) == 0 {
		return "", ErrNoOpenTasks
	}

	viewID, err := s.delivery.SendView(ctx, channelID, buildView(weekStart, open))
	if err != nil {
		return "", fmt.Errorf("failed to deliver announcement: %w", err)
	}

	ann := &models.Announcement{
		ViewID:    viewID,
		WeekStart: weekStart,
	}
	if err := s.annRepo.Save(ann); err != nil {
		return "", fmt.Errorf("failed to record announcement: %w", err)
	}

	return viewID, nil
}

// HandleAction applies one view-triggered action and refreshes the
// originating view. The state mutation is committed before the refresh
// is attempted; a refresh failure never rolls it back.
func (s *ProjectionService) HandleAction(ctx context.Context, action dto.TaskAction, taskID uint64, userID, viewID string) error {
	var err error
	switch action {
	case dto.ActionClaim:
		err = s.tasks.Claim(taskID, userID)
	case dto.ActionUnclaim:
		err = s.tasks.Unclaim(taskID, userID)
	case dto.ActionComplete:
		err = s.tasks.Complete(taskID, userID, s.priv.IsPrivileged(userID))
	default:
		return ErrUnknownAction
	}
	if err != nil {
		return err
	}

	return s.RefreshView(ctx, viewID)
}

// RefreshView re-projects the week recorded for viewID and pushes the
// update. Delivery failure is logged only: the display may lag state.
func (s *ProjectionService) RefreshView(ctx context.Context, viewID string) error {
	ann, err := s.annRepo.FindByViewID(viewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrViewNotFound
		}
		return fmt.Errorf("failed to find announcement: %w", err)
	}

	view, err := s.ProjectWeek(ann.WeekStart)
	if err != nil {
		return err
	}

	if err := s.delivery.UpdateView(ctx, viewID, view); err != nil {
		log.Printf("failed to refresh view %s: %v", viewID, err)
	}
	return nil
}

// WeekProgress summarizes completion for a week.
func (s *ProjectionService) WeekProgress(weekStart time.Time) (dto.ProgressDTO, error) {
	tasks, err := s.tasks.ListTasksForWeek(weekStart, false)
	if err != nil {
		return dto.ProgressDTO{}, err
	}

	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}

	progress := dto.ProgressDTO{
		WeekStart: dates.Format(weekStart),
		Done:      done,
		Total:     len(tasks),
	}
	if progress.Total > 0 {
		progress.Percent = done * 100 / progress.Total
	}
	return progress, nil
}

func buildView(weekStart time.Time, tasks []models.Task) dto.WeekView {
	entries := make([]dto.WeekViewEntry, len(tasks))
	for i, t := range tasks {
		entries[i] = dto.ToWeekViewEntry(t)
	}
	return dto.WeekView{
		WeekStart: dates.Format(weekStart),
		Entries:   entries,
	}
}
