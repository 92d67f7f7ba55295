package models

import "time"

// Table is a physical restaurant table. Deactivating a table removes it
// from booking eligibility without touching its booking history.
type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Number      int       `gorm:"uniqueIndex;not null" json:"number"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	IsVIP       bool      `gorm:"not null;default:false" json:"is_vip"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
