package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roman-z-solik/table-booking/availability"
	"github.com/roman-z-solik/table-booking/config"
	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

// BookingService owns the booking lifecycle: create, edit and cancel, each
// executed as one transaction so the availability check and the write are
// atomic. Overlap decisions come from the availability package; this layer
// only loads state and persists outcomes.
type BookingService struct {
	DB     *gorm.DB
	Rules  availability.Rules
	Mailer *Mailer
	Now    func() time.Time
}

func NewBookingService(db *gorm.DB, rest config.Restaurant, mailer *Mailer) *BookingService {
	return &BookingService{
		DB: db,
		Rules: availability.Rules{
			OpenTime:         rest.OpenTime,
			CloseTime:        rest.CloseTime,
			MinDurationHours: 1,
			MaxDurationHours: rest.MaxDurationHours,
			MaxDaysAhead:     rest.MaxBookingDaysAhead,
			MinLead:          rest.MinLead,
		},
		Mailer: mailer,
		Now:    time.Now,
	}
}

// BookingInput is a complete requested slot. Edit callers fill omitted
// fields from the existing booking before calling in.
type BookingInput struct {
	TableID         uint
	Date            string
	StartTime       string
	DurationHours   int
	GuestsCount     int
	SpecialRequests string
}

// Create books a table for the user. It validates the business rules,
// checks the interval against every active booking of the table on that
// date and persists the new booking, all inside one transaction with the
// existing rows locked so two concurrent requests cannot double-book.
func (s *BookingService) Create(userID uint, in BookingInput) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.activeTable(tx, in.TableID)
		if err != nil {
			return err
		}

		if err := s.validate(in, table.Capacity); err != nil {
			return err
		}

		end, err := availability.ComputeEndTime(in.StartTime, in.DurationHours)
		if err != nil {
			return err
		}

		slots, err := s.lockActiveSlots(tx, in.TableID, in.Date)
		if err != nil {
			return err
		}
		if conflicts := availability.Conflicts(slots, in.StartTime, end, 0); len(conflicts) > 0 {
			return &ConflictError{BusyTimes: availability.BusyTimes(conflicts)}
		}

		booking = models.Booking{
			Reference:       uuid.NewString(),
			UserID:          userID,
			TableID:         table.ID,
			Table:           *table,
			Date:            in.Date,
			StartTime:       in.StartTime,
			EndTime:         end,
			DurationHours:   in.DurationHours,
			GuestsCount:     in.GuestsCount,
			Status:          models.BookingStatusActive,
			SpecialRequests: in.SpecialRequests,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(userID, booking, "Booking confirmation",
		"your table is booked. We look forward to seeing you.")
	return &booking, nil
}

// Edit moves or adjusts a booking the user owns. The booking's own slot is
// excluded from the conflict set, so keeping date and time unchanged never
// collides with itself.
func (s *BookingService) Edit(userID, bookingID uint, in BookingInput) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Table").
			Where("id = ? AND user_id = ? AND status = ?", bookingID, userID, models.BookingStatusActive).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		table := &booking.Table
		if in.TableID != booking.TableID {
			var err error
			if table, err = s.activeTable(tx, in.TableID); err != nil {
				return err
			}
		}

		if err := s.validate(in, table.Capacity); err != nil {
			return err
		}

		end, err := availability.ComputeEndTime(in.StartTime, in.DurationHours)
		if err != nil {
			return err
		}

		slotChanged := in.TableID != booking.TableID ||
			in.Date != booking.Date ||
			in.StartTime != booking.StartTime ||
			in.DurationHours != booking.DurationHours
		if slotChanged {
			slots, err := s.lockActiveSlots(tx, in.TableID, in.Date)
			if err != nil {
				return err
			}
			if !availability.IsAvailable(slots, in.StartTime, end, booking.ID) {
				conflicts := availability.Conflicts(slots, in.StartTime, end, booking.ID)
				return &ConflictError{BusyTimes: availability.BusyTimes(conflicts)}
			}
		}

		booking.TableID = table.ID
		booking.Table = *table
		booking.Date = in.Date
		booking.StartTime = in.StartTime
		booking.EndTime = end
		booking.DurationHours = in.DurationHours
		booking.GuestsCount = in.GuestsCount
		booking.SpecialRequests = in.SpecialRequests
		booking.ReminderSent = false
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(userID, booking, "Booking updated",
		"your booking details were changed.")
	return &booking, nil
}

// Cancel flips an active booking owned by the user to cancelled. Cancelled
// bookings stay in history and no longer count in availability checks; they
// cannot be reactivated.
func (s *BookingService) Cancel(userID, bookingID uint) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Table").
			Where("id = ? AND user_id = ? AND status = ?", bookingID, userID, models.BookingStatusActive).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		booking.Status = models.BookingStatusCancelled
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(userID, booking, "Booking cancelled",
		"your booking has been cancelled.")
	return &booking, nil
}

// ListForUser returns the user's bookings, newest slot first.
func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Table").
		Where("user_id = ?", userID).
		Order("date DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

// GetForUser returns one booking owned by the user.
func (s *BookingService) GetForUser(userID, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Table").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// BusyTimes returns the occupied windows of a table on a date, formatted
// "HH:MM-HH:MM" and ordered by start time.
func (s *BookingService) BusyTimes(tableID uint, date string) ([]string, error) {
	if _, err := s.activeTable(s.DB, tableID); err != nil {
		return nil, err
	}
	slots, err := s.activeSlots(s.DB, tableID, date)
	if err != nil {
		return nil, err
	}
	return availability.BusyTimes(slots), nil
}

func (s *BookingService) validate(in BookingInput, capacity int) error {
	violations := s.Rules.Validate(availability.Request{
		Date:          in.Date,
		StartTime:     in.StartTime,
		DurationHours: in.DurationHours,
		GuestsCount:   in.GuestsCount,
		TableCapacity: capacity,
	}, s.Now())
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func (s *BookingService) activeTable(tx *gorm.DB, tableID uint) (*models.Table, error) {
	var table models.Table
	err := tx.Where("id = ? AND is_active = ?", tableID, true).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *BookingService) activeSlots(tx *gorm.DB, tableID uint, date string) ([]availability.Slot, error) {
	var bookings []models.Booking
	err := tx.Where("table_id = ? AND date = ? AND status = ?", tableID, date, models.BookingStatusActive).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	slots := make([]availability.Slot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, availability.Slot{ID: b.ID, Start: b.StartTime, End: b.EndTime})
	}
	return slots, nil
}

// lockActiveSlots reads the table's active bookings for the date under a
// row lock, serialising concurrent check-then-insert sequences for the
// same table and date. SQLite has no FOR UPDATE and serialises writers on
// its own, so the clause is only added on MySQL.
func (s *BookingService) lockActiveSlots(tx *gorm.DB, tableID uint, date string) ([]availability.Slot, error) {
	if tx.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return s.activeSlots(tx, tableID, date)
}

func (s *BookingService) notify(userID uint, booking models.Booking, subject, intro string) {
	if s.Mailer == nil {
		return
	}
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		utils.ErrorLogger.Printf("Skipping %q email, could not load user %d: %v", subject, userID, err)
		return
	}
	s.Mailer.SendBookingEmail(user, booking, subject, intro)
}
