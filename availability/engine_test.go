package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testRules() Rules {
	return Rules{
		OpenTime:         "10:00",
		CloseTime:        "22:00",
		MinDurationHours: 1,
		MaxDurationHours: 4,
		MaxDaysAhead:     30,
		MinLead:          time.Hour,
	}
}

func TestComputeEndTime(t *testing.T) {
	end, err := ComputeEndTime("12:00", 2)
	assert.NoError(t, err)
	assert.Equal(t, "14:00", end)

	end, err = ComputeEndTime("12:30", 3)
	assert.NoError(t, err)
	assert.Equal(t, "15:30", end)
}

func TestComputeEndTimeRoundTrip(t *testing.T) {
	for _, start := range []string{"10:00", "13:30", "17:45"} {
		end, err := ComputeEndTime(start, 2)
		assert.NoError(t, err)

		endMin, err := ParseTimeOfDay(end)
		assert.NoError(t, err)
		assert.Equal(t, start, FormatTimeOfDay(endMin-120))
	}
}

func TestComputeEndTimeRejectsMidnightWrap(t *testing.T) {
	_, err := ComputeEndTime("23:00", 2)
	assert.ErrorIs(t, err, ErrCrossesMidnight)

	// Ending exactly at midnight counts as the next day.
	_, err = ComputeEndTime("22:00", 2)
	assert.ErrorIs(t, err, ErrCrossesMidnight)
}

func TestComputeEndTimeInvalidInput(t *testing.T) {
	_, err := ComputeEndTime("25:00", 1)
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	// Classic overlap.
	assert.True(t, Overlaps("13:00", "15:00", "12:00", "14:00"))
	// Contained interval.
	assert.True(t, Overlaps("12:30", "13:30", "12:00", "14:00"))
	// Disjoint.
	assert.False(t, Overlaps("15:00", "17:00", "12:00", "14:00"))
	// Touching endpoints are not a conflict.
	assert.False(t, Overlaps("14:00", "16:00", "12:00", "14:00"))
	assert.False(t, Overlaps("10:00", "12:00", "12:00", "14:00"))
}

func TestConflictsExcludesOwnBooking(t *testing.T) {
	slots := []Slot{
		{ID: 1, Start: "12:00", End: "14:00"},
		{ID: 2, Start: "18:00", End: "20:00"},
	}

	// Moving booking 1 within its own window must not conflict with itself.
	assert.Empty(t, Conflicts(slots, "12:00", "14:00", 1))
	assert.True(t, IsAvailable(slots, "13:00", "14:00", 1))

	// A different booking still conflicts.
	got := Conflicts(slots, "19:00", "21:00", 1)
	assert.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)
}

func TestIsAvailableIdempotent(t *testing.T) {
	slots := []Slot{{ID: 1, Start: "12:00", End: "14:00"}}
	first := IsAvailable(slots, "13:00", "15:00", 0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, IsAvailable(slots, "13:00", "15:00", 0))
	}
	assert.False(t, first)
}

func TestBusyTimesOrdered(t *testing.T) {
	slots := []Slot{
		{ID: 3, Start: "18:00", End: "20:00"},
		{ID: 1, Start: "12:00", End: "14:00"},
		{ID: 2, Start: "14:00", End: "16:00"},
	}
	assert.Equal(t, []string{"12:00-14:00", "14:00-16:00", "18:00-20:00"}, BusyTimes(slots))
	assert.Empty(t, BusyTimes(nil))
}

func TestValidateOK(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-03-11",
		StartTime:     "12:00",
		DurationHours: 2,
		GuestsCount:   4,
		TableCapacity: 4,
	}, now)
	assert.Empty(t, v)
}

func TestValidateBeforeOpening(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-03-11",
		StartTime:     "08:00",
		DurationHours: 2,
		GuestsCount:   2,
		TableCapacity: 4,
	}, now)
	assert.Len(t, v, 1)
	assert.Equal(t, "start_time", v[0].Field)
}

func TestValidatePastClosing(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-03-11",
		StartTime:     "21:00",
		DurationHours: 2,
		GuestsCount:   2,
		TableCapacity: 4,
	}, now)
	assert.Len(t, v, 1)
	assert.Equal(t, "start_time", v[0].Field)
}

func TestValidateGuestsOverCapacity(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-03-11",
		StartTime:     "12:00",
		DurationHours: 2,
		GuestsCount:   5,
		TableCapacity: 4,
	}, now)
	assert.Len(t, v, 1)
	assert.Equal(t, "guests_count", v[0].Field)
}

func TestValidatePastDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-03-09",
		StartTime:     "12:00",
		DurationHours: 2,
		GuestsCount:   2,
		TableCapacity: 4,
	}, now)
	assert.Len(t, v, 1)
	assert.Equal(t, "date", v[0].Field)
}

func TestValidateTooFarAhead(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-05-10",
		StartTime:     "12:00",
		DurationHours: 2,
		GuestsCount:   2,
		TableCapacity: 4,
	}, now)
	assert.Len(t, v, 1)
	assert.Equal(t, "date", v[0].Field)
}

func TestValidateSameDayLeadTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)

	// 12:00 today is only 30 minutes out.
	v := testRules().Validate(Request{
		Date:          "2026-03-10",
		StartTime:     "12:00",
		DurationHours: 1,
		GuestsCount:   2,
		TableCapacity: 4,
	}, now)
	assert.Len(t, v, 1)
	assert.Equal(t, "start_time", v[0].Field)

	// 13:00 today is fine.
	v = testRules().Validate(Request{
		Date:          "2026-03-10",
		StartTime:     "13:00",
		DurationHours: 1,
		GuestsCount:   2,
		TableCapacity: 4,
	}, now)
	assert.Empty(t, v)
}

func TestValidateMidnightWrap(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-03-11",
		StartTime:     "23:30",
		DurationHours: 2,
		GuestsCount:   2,
		TableCapacity: 4,
	}, now)
	assert.Len(t, v, 1)
	assert.Equal(t, "duration_hours", v[0].Field)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testRules().Validate(Request{
		Date:          "2026-03-09", // past
		StartTime:     "08:00",      // before opening
		DurationHours: 2,
		GuestsCount:   9, // over capacity
		TableCapacity: 4,
	}, now)

	fields := make(map[string]bool)
	for _, violation := range v {
		fields[violation.Field] = true
	}
	assert.True(t, fields["date"])
	assert.True(t, fields["start_time"])
	assert.True(t, fields["guests_count"])
	assert.Len(t, v, 3)
}
