package models

// Activity is a described, timed interval inside one working day
type Activity struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkingDayID uint       `gorm:"column:working_day_id;not null;index" json:"working_day_id"`
	Description  string     `gorm:"column:description;type:text;not null" json:"description"`
	StartTime    Timestamp  `gorm:"column:start_time;type:text;not null" json:"start_time"`
	EndTime      *Timestamp `gorm:"column:end_time;type:text" json:"end_time"`
	Duration     *int64     `gorm:"column:duration" json:"duration"` // seconds, set once on close

	// Relationships
	WorkingDay *WorkingDay `gorm:"foreignKey:WorkingDayID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// TableName pins the table name used by the schema
func (Activity) TableName() string {
	return "activities"
}

// IsOpen reports whether the activity is still running
func (a Activity) IsOpen() bool {
	return a.EndTime == nil
}
