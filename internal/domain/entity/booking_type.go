package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingType is a practitioner-defined service offering exposed at a public
// URL slug. MinNoticeHours and MaxAdvanceDays define the window of dates a
// client may book into.
type BookingType struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug            string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	Description     string           `gorm:"type:text" json:"description"`
	DurationMinutes int              `gorm:"not null" json:"duration_minutes"`
	Price           *decimal.Decimal `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	MinNoticeHours  int              `gorm:"not null;default:24" json:"min_notice_hours"`
	MaxAdvanceDays  int              `gorm:"not null;default:30" json:"max_advance_days"`
	IsActive        *bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookingType) TableName() string {
	return "booking_types"
}

// Duration returns the slot length as a time.Duration.
func (bt *BookingType) Duration() time.Duration {
	return time.Duration(bt.DurationMinutes) * time.Minute
}
