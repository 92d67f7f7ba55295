// Package availability holds the booking availability engine: end-time
// arithmetic, half-open interval overlap checks, busy-time summaries and
// the business-hour validation rules. It is pure logic over in-memory
// values; loading bookings and persisting decisions is the caller's job.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	minutesPerDay = 24 * 60
)

// ErrCrossesMidnight is returned when start + duration would spill into the
// next calendar day. Bookings must end on the date they start.
var ErrCrossesMidnight = errors.New("booking would cross midnight")

// Slot is one occupied [Start, End) window of a table on a given date.
// Times are "HH:MM"; zero-padded, so string comparison orders them.
type Slot struct {
	ID    uint
	Start string
	End   string
}

// Violation is a single business-rule failure, scoped to the request field
// that caused it so the caller can report errors per field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rules carries the restaurant-level constraints every booking must satisfy.
type Rules struct {
	OpenTime         string
	CloseTime        string
	MinDurationHours int
	MaxDurationHours int
	MaxDaysAhead     int
	MinLead          time.Duration
}

// Request is a candidate booking interval to validate.
type Request struct {
	Date          string
	StartTime     string
	DurationHours int
	GuestsCount   int
	TableCapacity int
}

func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ComputeEndTime derives the end time of day for a booking starting at
// start and running durationHours. The addition is done on minutes since
// midnight rather than clock arithmetic, and any result that lands on or
// past the next midnight is rejected with ErrCrossesMidnight.
func ComputeEndTime(start string, durationHours int) (string, error) {
	startMin, err := ParseTimeOfDay(start)
	if err != nil {
		return "", err
	}
	endMin := startMin + durationHours*60
	if endMin >= minutesPerDay {
		return "", ErrCrossesMidnight
	}
	return FormatTimeOfDay(endMin), nil
}

// Overlaps reports whether [s1,e1) and [s2,e2) share at least one instant.
// Touching endpoints do not overlap. Inputs are "HH:MM" strings, which
// compare correctly as strings.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// Conflicts returns the slots overlapping [start, end), skipping the slot
// with ID excludeID so a booking being moved never collides with its own
// previous window. Pass excludeID = 0 for a fresh booking.
func Conflicts(slots []Slot, start, end string, excludeID uint) []Slot {
	var out []Slot
	for _, s := range slots {
		if excludeID != 0 && s.ID == excludeID {
			continue
		}
		if Overlaps(start, end, s.Start, s.End) {
			out = append(out, s)
		}
	}
	return out
}

// IsAvailable reports whether the interval [start, end) is free of
// conflicts against the given occupied slots.
func IsAvailable(slots []Slot, start, end string, excludeID uint) bool {
	return len(Conflicts(slots, start, end, excludeID)) == 0
}

// BusyTimes formats the occupied slots as "HH:MM-HH:MM" strings ordered by
// start time ascending.
func BusyTimes(slots []Slot) []string {
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	out := make([]string, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, s.Start+"-"+s.End)
	}
	return out
}

// Validate checks the request against every business rule and returns all
// violations found, not just the first.
func (r Rules) Validate(req Request, now time.Time) []Violation {
	var violations []Violation
	add := func(field, message string) {
		violations = append(violations, Violation{Field: field, Message: message})
	}

	date, dateErr := time.ParseInLocation(DateLayout, req.Date, now.Location())
	if dateErr != nil {
		add("date", "invalid date, expected YYYY-MM-DD")
	}
	startMin, startErr := ParseTimeOfDay(req.StartTime)
	if startErr != nil {
		add("start_time", "invalid time, expected HH:MM")
	}

	minDuration := r.MinDurationHours
	if minDuration < 1 {
		minDuration = 1
	}
	if req.DurationHours < minDuration || req.DurationHours > r.MaxDurationHours {
		add("duration_hours", fmt.Sprintf("duration must be between %d and %d hours", minDuration, r.MaxDurationHours))
	}

	if startErr == nil && req.DurationHours >= minDuration {
		end, err := ComputeEndTime(req.StartTime, req.DurationHours)
		if err != nil {
			add("duration_hours", "booking must end on the same day it starts")
		} else {
			openMin, _ := ParseTimeOfDay(r.OpenTime)
			closeMin, _ := ParseTimeOfDay(r.CloseTime)
			if startMin < openMin {
				add("start_time", fmt.Sprintf("restaurant opens at %s", r.OpenTime))
			}
			if endMin, _ := ParseTimeOfDay(end); endMin > closeMin {
				add("start_time", fmt.Sprintf("booking must end by closing time %s", r.CloseTime))
			}
		}
	}

	if dateErr == nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if date.Before(today) {
			add("date", "date must not be in the past")
		} else if r.MaxDaysAhead > 0 && date.After(today.AddDate(0, 0, r.MaxDaysAhead)) {
			add("date", fmt.Sprintf("bookings are accepted at most %d days ahead", r.MaxDaysAhead))
		}

		if date.Equal(today) && startErr == nil {
			start := today.Add(time.Duration(startMin) * time.Minute)
			if start.Before(now.Add(r.MinLead)) {
				add("start_time", fmt.Sprintf("same-day bookings must start at least %d minutes from now", int(r.MinLead.Minutes())))
			}
		}
	}

	if req.GuestsCount < 1 {
		add("guests_count", "at least 1 guest is required")
	} else if req.TableCapacity > 0 && req.GuestsCount > req.TableCapacity {
		add("guests_count", fmt.Sprintf("this table seats up to %d guests", req.TableCapacity))
	}

	return violations
}
