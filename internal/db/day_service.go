package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/worklog/internal/models"
)

// CreateWorkingDay inserts a new open working day
func (s *Store) CreateWorkingDay(start models.Timestamp) (*models.WorkingDay, error) {
	day := models.WorkingDay{StartTime: start}
	if err := s.db.Create(&day).Error; err != nil {
		return nil, fmt.Errorf("failed to create working day: %w", err)
	}
	return &day, nil
}

// GetWorkingDay retrieves a working day by ID without its activities
func (s *Store) GetWorkingDay(id uint) (*models.WorkingDay, error) {
	var day models.WorkingDay
	if err := s.db.First(&day, id).Error; err != nil {
		return nil, fmt.Errorf("working day #%d not found: %w", id, err)
	}
	return &day, nil
}

// GetOpenWorkingDay returns the latest working day without an end time, if any
func (s *Store) GetOpenWorkingDay() (*models.WorkingDay, error) {
	var day models.WorkingDay

	err := s.db.Where("end_time IS NULL").Order("start_time DESC, id DESC").First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No open day is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up open working day: %w", err)
	}

	return &day, nil
}

// CloseWorkingDay stamps the end time and total duration of an open day.
// Rows that are already closed are left untouched.
func (s *Store) CloseWorkingDay(id uint, end models.Timestamp, totalSeconds int64) (*models.WorkingDay, error) {
	res := s.db.Model(&models.WorkingDay{}).
		Where("id = ? AND end_time IS NULL", id).
		Updates(map[string]interface{}{
			"end_time":       end,
			"total_duration": totalSeconds,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to close working day #%d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("working day #%d: %w", id, ErrAlreadyClosed)
	}

	return s.GetWorkingDay(id)
}

// RecentWorkingDays returns up to limit days, newest first, each with its
// activities in start order
func (s *Store) RecentWorkingDays(limit int) ([]models.WorkingDay, error) {
	var days []models.WorkingDay

	err := s.db.
		Preload("Activities", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("start_time ASC, id ASC")
		}).
		Order("start_time DESC, id DESC").
		Limit(limit).
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load working day history: %w", err)
	}

	return days, nil
}

// CountOpenWorkingDays counts days that were never ended
func (s *Store) CountOpenWorkingDays() (int64, error) {
	var n int64
	if err := s.db.Model(&models.WorkingDay{}).Where("end_time IS NULL").Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count open working days: %w", err)
	}
	return n, nil
}
