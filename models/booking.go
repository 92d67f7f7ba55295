package models

import "time"

const (
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"
)

// Booking reserves one table for a date and a [StartTime, EndTime) window.
// Dates are stored as "2006-01-02" and times of day as "15:04"; both sort
// lexicographically, which the availability queries rely on.
type Booking struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Reference       string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"-"`
	TableID         uint      `gorm:"not null;index:idx_bookings_slot" json:"table_id"`
	Table           Table     `gorm:"foreignKey:TableID" json:"table"`
	Date            string    `gorm:"type:varchar(10);not null;index:idx_bookings_slot" json:"date"`
	StartTime       string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime         string    `gorm:"type:varchar(5);not null" json:"end_time"`
	DurationHours   int       `gorm:"not null" json:"duration_hours"`
	GuestsCount     int       `gorm:"not null" json:"guests_count"`
	Status          string    `gorm:"type:varchar(10);not null;default:'active';index:idx_bookings_slot" json:"status"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests"`
	ReminderSent    bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
