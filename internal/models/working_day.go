package models

// WorkingDay bounds the activities logged between "start day" and "end day"
type WorkingDay struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime     Timestamp  `gorm:"column:start_time;type:text;not null" json:"start_time"`
	EndTime       *Timestamp `gorm:"column:end_time;type:text" json:"end_time"`
	TotalDuration *int64     `gorm:"column:total_duration" json:"total_duration"` // seconds, set once on close

	// Relationships
	Activities []Activity `gorm:"foreignKey:WorkingDayID" json:"activities"`
}

// TableName pins the table name used by the schema
func (WorkingDay) TableName() string {
	return "working_days"
}

// IsOpen reports whether the day has not been ended yet
func (d WorkingDay) IsOpen() bool {
	return d.EndTime == nil
}
