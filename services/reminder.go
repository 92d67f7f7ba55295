package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/availability"
	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

// StartReminderScheduler runs the booking reminder job every ten minutes.
// The returned cron can be stopped on shutdown.
func StartReminderScheduler(db *gorm.DB, mailer *Mailer) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@every 10m", func() {
		SendBookingReminders(db, mailer, time.Now())
	})
	if err != nil {
		utils.ErrorLogger.Printf("Failed to schedule reminder job: %v", err)
		return c
	}
	c.Start()
	utils.InfoLogger.Println("Booking reminder scheduler started")
	return c
}

// SendBookingReminders emails owners of active bookings starting within
// the next hour. Each booking is reminded at most once: the flag is set
// right after dispatch, so a send that later fails is logged, not retried.
func SendBookingReminders(db *gorm.DB, mailer *Mailer, now time.Time) {
	date := now.Format(availability.DateLayout)
	from := now.Format(availability.TimeLayout)
	to := now.Add(time.Hour).Format(availability.TimeLayout)
	if to < from {
		// Window crosses midnight; today's remaining bookings all qualify.
		to = "23:59"
	}

	var upcoming []models.Booking
	err := db.Preload("User").Preload("Table").
		Where("status = ? AND date = ? AND reminder_sent = ? AND start_time > ? AND start_time <= ?",
			models.BookingStatusActive, date, false, from, to).
		Find(&upcoming).Error
	if err != nil {
		utils.ErrorLogger.Printf("Reminder job query failed: %v", err)
		return
	}

	for _, booking := range upcoming {
		mailer.SendBookingEmail(booking.User, booking, "Booking reminder",
			"this is a friendly reminder that your table is reserved within the next hour.")
		if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("reminder_sent", true).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to mark reminder sent for booking %d: %v", booking.ID, err)
		}
	}

	if len(upcoming) > 0 {
		utils.InfoLogger.Printf("Sent %d booking reminder(s)", len(upcoming))
	}
}
