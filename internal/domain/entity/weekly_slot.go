package entity

import "time"

// WeeklySlot is one recurring working interval on a day of the week
// (0=Sunday..6=Saturday). A day may carry multiple disjoint intervals.
// Times are stored as "HH:MM" strings in the practitioner's timezone.
type WeeklySlot struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DayOfWeek int       `gorm:"not null;index" json:"day_of_week"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WeeklySlot) TableName() string {
	return "weekly_slots"
}

// Active reports whether the interval participates in slot generation.
func (ws *WeeklySlot) Active() bool {
	return ws.IsActive == nil || *ws.IsActive
}
