package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roman-z-solik/table-booking/availability"
)

// ErrNotFound covers bookings and tables the caller cannot operate on,
// either because they do not exist or because they belong to someone else.
var ErrNotFound = errors.New("not found")

// ValidationError aggregates every business-rule violation of one request.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Violations []availability.Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the violations as a field -> message map for responses.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		if _, seen := out[v.Field]; !seen {
			out[v.Field] = v.Message
		}
	}
	return out
}

// ConflictError means the requested interval overlaps an existing active
// booking. BusyTimes carries the occupied windows for user display.
type ConflictError struct {
	BusyTimes []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("table is already booked at: %s", strings.Join(e.BusyTimes, ", "))
}
