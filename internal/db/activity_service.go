package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/worklog/internal/models"
)

// CreateActivity inserts a new open activity under the given working day
func (s *Store) CreateActivity(dayID uint, description string, start models.Timestamp) (*models.Activity, error) {
	activity := models.Activity{
		WorkingDayID: dayID,
		Description:  description,
		StartTime:    start,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return &activity, nil
}

// GetActivity retrieves an activity by ID
func (s *Store) GetActivity(id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := s.db.First(&activity, id).Error; err != nil {
		return nil, fmt.Errorf("activity #%d not found: %w", id, err)
	}
	return &activity, nil
}

// GetOpenActivity returns the running activity, if any
func (s *Store) GetOpenActivity() (*models.Activity, error) {
	var activity models.Activity

	err := s.db.Where("end_time IS NULL").Order("start_time DESC, id DESC").First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No active activity is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up open activity: %w", err)
	}

	return &activity, nil
}

// CloseActivity stamps the end time and duration of an open activity.
// Rows that are already closed are left untouched.
func (s *Store) CloseActivity(id uint, end models.Timestamp, seconds int64) (*models.Activity, error) {
	res := s.db.Model(&models.Activity{}).
		Where("id = ? AND end_time IS NULL", id).
		Updates(map[string]interface{}{
			"end_time": end,
			"duration": seconds,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to close activity #%d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("activity #%d: %w", id, ErrAlreadyClosed)
	}

	return s.GetActivity(id)
}

// ListActivities returns all activities of a working day in start order
func (s *Store) ListActivities(dayID uint) ([]models.Activity, error) {
	var activities []models.Activity

	err := s.db.Where("working_day_id = ?", dayID).
		Order("start_time ASC, id ASC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for day #%d: %w", dayID, err)
	}

	return activities, nil
}
