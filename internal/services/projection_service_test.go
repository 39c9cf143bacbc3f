package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nathanl0204/project-bot/internal/dto"
	"github.com/nathanl0204/project-bot/internal/models"
	"github.com/nathanl0204/project-bot/internal/repository"
)

// fakeDelivery records everything sent through it and can be told to
// fail updates.
type fakeDelivery struct {
	messages  []string
	views     map[string]dto.WeekView
	updates   []string
	updateErr error
	nextID    int
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{views: make(map[string]dto.WeekView)}
}

func (d *fakeDelivery) SendMessage(_ context.Context, _, text string) error {
	d.messages = append(d.messages, text)
	return nil
}

func (d *fakeDelivery) SendView(_ context.Context, _ string, view dto.WeekView) (string, error) {
	d.nextID++
	viewID := fmt.Sprintf("view-%d", d.nextID)
	d.views[viewID] = view
	return viewID, nil
}

func (d *fakeDelivery) UpdateView(_ context.Context, viewID string, view dto.WeekView) error {
	if d.updateErr != nil {
		return d.updateErr
	}
	d.updates = append(d.updates, viewID)
	d.views[viewID] = view
	return nil
}

type fakePrivilege struct {
	mods map[string]bool
}

func (p *fakePrivilege) IsPrivileged(userID string) bool {
	return p.mods[userID]
}

// ProjectionServiceTestSuite defines the test suite for ProjectionService
type ProjectionServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	tasks      *TaskService
	delivery   *fakeDelivery
	priv       *fakePrivilege
	projection *ProjectionService
	week       time.Time
}

// SetupTest runs before each test
func (suite *ProjectionServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(
		&models.Task{},
		&models.TaskClaim{},
		&models.Announcement{},
	)
	suite.Require().NoError(err)

	suite.tasks = NewTaskService(repository.NewTaskRepository(suite.db))
	suite.delivery = newFakeDelivery()
	suite.priv = &fakePrivilege{mods: map[string]bool{"mod": true}}
	suite.projection = NewProjectionService(
		suite.tasks,
		repository.NewAnnouncementRepository(suite.db),
		suite.delivery,
		suite.priv,
	)
	suite.week = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
}

// TearDownTest runs after each test
func (suite *ProjectionServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectionServiceTestSuite) createTask(title, due string) *models.Task {
	task, err := suite.tasks.CreateTask(title, due, "", "creator")
	suite.Require().NoError(err)
	return task
}

func (suite *ProjectionServiceTestSuite) announce() string {
	viewID, err := suite.projection.AnnounceWeek(context.Background(), "chan", suite.week)
	suite.Require().NoError(err)
	return viewID
}

func (suite *ProjectionServiceTestSuite) TestAnnounceWeek_RecordsAnnouncement() {
	suite.createTask("t1", "2025-09-02")
	suite.createTask("t2", "2025-09-05")

	viewID := suite.announce()

	var ann models.Announcement
	suite.Require().NoError(suite.db.First(&ann, "view_id = ?", viewID).Error)
	assert.True(suite.T(), ann.WeekStart.Equal(suite.week))

	sent := suite.delivery.views[viewID]
	suite.Require().Len(sent.Entries, 2)
	assert.Equal(suite.T(), "t1", sent.Entries[0].Title)
	assert.Equal(suite.T(), "t2", sent.Entries[1].Title)
	assert.ElementsMatch(suite.T(), []dto.TaskAction{dto.ActionClaim, dto.ActionComplete}, sent.Entries[0].Actions)
}

func (suite *ProjectionServiceTestSuite) TestAnnounceWeek_OnlyOpenTasks() {
	open := suite.createTask("open", "2025-09-05")
	done := suite.createTask("done", "2025-09-02")
	suite.Require().NoError(suite.tasks.Complete(done.ID, "mod", true))

	viewID := suite.announce()

	sent := suite.delivery.views[viewID]
	suite.Require().Len(sent.Entries, 1)
	assert.Equal(suite.T(), open.ID, sent.Entries[0].TaskID)
}

func (suite *ProjectionServiceTestSuite) TestAnnounceWeek_EmptyWeek() {
	_, err := suite.projection.AnnounceWeek(context.Background(), "chan", suite.week)
	assert.ErrorIs(suite.T(), err, ErrNoOpenTasks)
}

func (suite *ProjectionServiceTestSuite) TestProjectWeek_Idempotent() {
	task := suite.createTask("t", "2025-09-02")
	suite.Require().NoError(suite.tasks.Claim(task.ID, "U1"))

	first, err := suite.projection.ProjectWeek(suite.week)
	suite.Require().NoError(err)
	second, err := suite.projection.ProjectWeek(suite.week)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), first, second)
}

func (suite *ProjectionServiceTestSuite) TestProjectWeek_CompletedEntriesHaveNoActions() {
	task := suite.createTask("t", "2025-09-02")
	suite.Require().NoError(suite.tasks.Complete(task.ID, "mod", true))

	view, err := suite.projection.ProjectWeek(suite.week)
	suite.Require().NoError(err)

	suite.Require().Len(view.Entries, 1)
	assert.True(suite.T(), view.Entries[0].Completed)
	assert.Empty(suite.T(), view.Entries[0].Actions)
}

func (suite *ProjectionServiceTestSuite) TestHandleAction_ClaimRefreshesView() {
	task := suite.createTask("t", "2025-09-02")
	viewID := suite.announce()

	err := suite.projection.HandleAction(context.Background(), dto.ActionClaim, task.ID, "U1", viewID)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), []string{viewID}, suite.delivery.updates)
	refreshed := suite.delivery.views[viewID]
	suite.Require().Len(refreshed.Entries, 1)
	assert.Equal(suite.T(), []string{"U1"}, refreshed.Entries[0].Claimers)
}

func (suite *ProjectionServiceTestSuite) TestHandleAction_CompletePermission() {
	task := suite.createTask("t", "2025-09-02")
	viewID := suite.announce()

	err := suite.projection.HandleAction(context.Background(), dto.ActionComplete, task.ID, "stranger", viewID)
	assert.ErrorIs(suite.T(), err, ErrPermissionDenied)

	err = suite.projection.HandleAction(context.Background(), dto.ActionComplete, task.ID, "mod", viewID)
	suite.Require().NoError(err)

	got, err := suite.tasks.GetTask(task.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), got.Completed)
}

func (suite *ProjectionServiceTestSuite) TestHandleAction_UnknownAction() {
	task := suite.createTask("t", "2025-09-02")
	viewID := suite.announce()

	err := suite.projection.HandleAction(context.Background(), "promote", task.ID, "U1", viewID)
	assert.ErrorIs(suite.T(), err, ErrUnknownAction)
}

func (suite *ProjectionServiceTestSuite) TestHandleAction_UnknownView_StateStillCommitted() {
	task := suite.createTask("t", "2025-09-02")

	err := suite.projection.HandleAction(context.Background(), dto.ActionClaim, task.ID, "U1", "no-such-view")
	assert.ErrorIs(suite.T(), err, ErrViewNotFound)

	got, err := suite.tasks.GetTask(task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), []string{"U1"}, got.ClaimerIDs())
}

func (suite *ProjectionServiceTestSuite) TestHandleAction_DeliveryFailureDoesNotRollBack() {
	task := suite.createTask("t", "2025-09-02")
	viewID := suite.announce()
	suite.delivery.updateErr = errors.New("gateway down")

	err := suite.projection.HandleAction(context.Background(), dto.ActionClaim, task.ID, "U1", viewID)
	suite.Require().NoError(err)

	got, err := suite.tasks.GetTask(task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), []string{"U1"}, got.ClaimerIDs())
}

func (suite *ProjectionServiceTestSuite) TestWeekProgress() {
	a := suite.createTask("a", "2025-09-02")
	suite.createTask("b", "2025-09-03")
	suite.createTask("c", "2025-09-04")
	suite.Require().NoError(suite.tasks.Complete(a.ID, "mod", true))

	progress, err := suite.projection.WeekProgress(suite.week)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "2025-09-01", progress.WeekStart)
	assert.Equal(suite.T(), 1, progress.Done)
	assert.Equal(suite.T(), 3, progress.Total)
	assert.Equal(suite.T(), 33, progress.Percent)
}

func (suite *ProjectionServiceTestSuite) TestWeekProgress_EmptyWeek() {
	progress, err := suite.projection.WeekProgress(suite.week)
	suite.Require().NoError(err)

	assert.Zero(suite.T(), progress.Total)
	assert.Zero(suite.T(), progress.Percent)
}

func TestProjectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectionServiceTestSuite))
}
