package hours

import (
	"errors"
	"fmt"

	"github.com/Tiliavir/cora-hours/internal/shift"
)

// Validation errors reported to the user before anything is submitted.
var (
	ErrMissingTimes     = errors.New("start and end times are required")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime      = errors.New("times must be in HH:MM format")
	ErrEndNotAfterStart = errors.New("end time must be after start time")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrEntryLocked      = errors.New("entry is locked")
	ErrNoOwner          = errors.New("session has no consultant id, login or name")
)

// ConflictError reports an existing entry that overlaps the submitted one.
type ConflictError struct {
	Existing shift.Entry
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps entry #%d (%s-%s on %s)",
		e.Existing.ID, e.Existing.Start, e.Existing.End, e.Existing.Date)
}

// IsValidation reports whether err is a user-facing validation failure
// rather than a storage or API error.
func IsValidation(err error) bool {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return true
	}
	for _, target := range []error{ErrMissingTimes, ErrInvalidDate, ErrInvalidTime, ErrEndNotAfterStart, ErrEntryNotFound, ErrEntryLocked, ErrNoOwner} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
