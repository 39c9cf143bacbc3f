package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/nathanl0204/project-bot/internal/models"
)

func newMockedRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestCreate_StorageErrorPropagates(t *testing.T) {
	repo, mock := newMockedRepo(t)

	storageErr := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").WillReturnError(storageErr)
	mock.ExpectRollback()

	err := repo.Create(&models.Task{
		Title:     "t",
		DueDate:   time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC),
		WeekStart: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy: "creator",
	})
	require.ErrorIs(t, err, storageErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCompleted_StorageErrorPropagates(t *testing.T) {
	repo, mock := newMockedRepo(t)

	storageErr := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks`").WillReturnError(storageErr)
	mock.ExpectRollback()

	err := repo.MarkCompleted(42)
	require.ErrorIs(t, err, storageErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
