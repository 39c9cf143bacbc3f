package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nathanl0204/project-bot/internal/models"
)

// GormAnnouncementRepository is a GORM implementation of AnnouncementRepository.
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Save records the week a delivered view renders. Re-announcing over
// the same view id replaces the stored week.
func (r *GormAnnouncementRepository) Save(a *models.Announcement) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "view_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"week_start"}),
		}).
		Create(a).Error
}

// FindByViewID finds the announcement for a view id.
func (r *GormAnnouncementRepository) FindByViewID(viewID string) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.Where("view_id = ?", viewID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
