package services

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/availability"
	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

const testDate = "2026-03-11"

func newTestService(t *testing.T) *BookingService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Table{}, &models.Booking{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &BookingService{
		DB: db,
		Rules: availability.Rules{
			OpenTime:         "10:00",
			CloseTime:        "22:00",
			MinDurationHours: 1,
			MaxDurationHours: 4,
			MaxDaysAhead:     30,
			MinLead:          time.Hour,
		},
		Now: func() time.Time { return testNow },
	}
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x", Role: models.RoleGuest}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedTable(t *testing.T, db *gorm.DB, number, capacity int) models.Table {
	t.Helper()
	table := models.Table{Number: number, Capacity: capacity, IsActive: true}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func input(tableID uint, start string, hours, guests int) BookingInput {
	return BookingInput{
		TableID:       tableID,
		Date:          testDate,
		StartTime:     start,
		DurationHours: hours,
		GuestsCount:   guests,
	}
}

func TestCreateBooking(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	booking, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 4))
	assert.NoError(t, err)
	assert.Equal(t, "14:00", booking.EndTime)
	assert.Equal(t, models.BookingStatusActive, booking.Status)
	assert.NotEmpty(t, booking.Reference)
}

func TestCreateBookingConflict(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	other := seedUser(t, svc.DB, "other@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	_, err := svc.Create(other.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	_, err = svc.Create(user.ID, input(table.ID, "13:00", 2, 2))
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"12:00-14:00"}, conflict.BusyTimes)
}

func TestCreateBookingConflictListsOnlyOverlaps(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	_, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)
	_, err = svc.Create(user.ID, input(table.ID, "18:00", 2, 2))
	assert.NoError(t, err)

	// The evening booking does not overlap the request and stays out of
	// the reported windows.
	_, err = svc.Create(user.ID, input(table.ID, "13:00", 2, 2))
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"12:00-14:00"}, conflict.BusyTimes)
}

func TestCreateBookingTouchingEndpointsAllowed(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	_, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	booking, err := svc.Create(user.ID, input(table.ID, "14:00", 2, 2))
	assert.NoError(t, err)
	assert.Equal(t, "16:00", booking.EndTime)
}

func TestCreateBookingGuestsOverCapacity(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	_, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 5))
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields(), "guests_count")
}

func TestCreateBookingIgnoresCancelled(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	booking, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)
	_, err = svc.Cancel(user.ID, booking.ID)
	assert.NoError(t, err)

	// The cancelled slot no longer blocks the table.
	_, err = svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)
}

func TestCreateBookingInactiveTable(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)
	svc.DB.Model(&table).Update("is_active", false)

	_, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditBookingRequestsOnly(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	booking, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	in := input(table.ID, "12:00", 2, 2)
	in.SpecialRequests = "window seat"
	updated, err := svc.Edit(user.ID, booking.ID, in)
	assert.NoError(t, err)
	assert.Equal(t, "window seat", updated.SpecialRequests)
	assert.Equal(t, "12:00", updated.StartTime)
	assert.Equal(t, "14:00", updated.EndTime)
}

func TestEditBookingMoveWithinOwnSlot(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	booking, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	// New window overlaps the booking's own previous slot only.
	updated, err := svc.Edit(user.ID, booking.ID, input(table.ID, "13:00", 2, 2))
	assert.NoError(t, err)
	assert.Equal(t, "13:00", updated.StartTime)
	assert.Equal(t, "15:00", updated.EndTime)
}

func TestEditBookingConflictWithOther(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	other := seedUser(t, svc.DB, "other@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	_, err := svc.Create(other.ID, input(table.ID, "16:00", 2, 2))
	assert.NoError(t, err)
	booking, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	_, err = svc.Edit(user.ID, booking.ID, input(table.ID, "17:00", 2, 2))
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"16:00-18:00"}, conflict.BusyTimes)
}

func TestEditBookingNotOwner(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	other := seedUser(t, svc.DB, "other@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	booking, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	_, err = svc.Edit(other.ID, booking.ID, input(table.ID, "13:00", 2, 2))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelBooking(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	booking, err := svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	cancelled, err := svc.Cancel(user.ID, booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	// A cancelled booking cannot be cancelled or edited again.
	_, err = svc.Cancel(user.ID, booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Edit(user.ID, booking.ID, input(table.ID, "13:00", 2, 2))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBusyTimesOrdered(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc.DB, "guest@example.com")
	table := seedTable(t, svc.DB, 1, 4)

	_, err := svc.Create(user.ID, input(table.ID, "18:00", 2, 2))
	assert.NoError(t, err)
	_, err = svc.Create(user.ID, input(table.ID, "12:00", 2, 2))
	assert.NoError(t, err)

	busy, err := svc.BusyTimes(table.ID, testDate)
	assert.NoError(t, err)
	assert.Equal(t, []string{"12:00-14:00", "18:00-20:00"}, busy)
}

func TestBusyTimesUnknownTable(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.BusyTimes(99, testDate)
	assert.ErrorIs(t, err, ErrNotFound)
}
