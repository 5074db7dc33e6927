package entity

import "time"

// AvailabilityOverride is a date-specific exception to the weekly schedule.
// When IsAvailable is false the whole date is blocked; when true the
// override's interval fully replaces the weekly intervals for that date.
type AvailabilityOverride struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
	StartTime   *string   `gorm:"type:time" json:"start_time,omitempty"`
	EndTime     *string   `gorm:"type:time" json:"end_time,omitempty"`
	Reason      string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AvailabilityOverride) TableName() string {
	return "availability_overrides"
}
