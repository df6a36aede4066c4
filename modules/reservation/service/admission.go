package service

import (
	"fmt"
	"strings"
	"time"

	"roombook/core/constants"
	"roombook/core/errors"
	"roombook/core/utils"
	"roombook/modules/reservation/entity"
)

// Candidate is a reservation before admission. Decide returns it
// normalized: title and email trimmed, date and times reformatted to
// their canonical layouts.
type Candidate struct {
	Title     string
	Email     string
	EventDate string
	StartTime string
	EndTime   string
}

// Engine is the pure admission-control decision function. It holds only
// the working-day window and never touches a store: callers pass the
// current snapshot in.
type Engine struct {
	workdayStart int // minutes since midnight
	workdayEnd   int
}

// NewEngine builds an engine for the [start, end] working-day window,
// both given as HH:MM.
func NewEngine(start, end string) (*Engine, error) {
	s, ok := parseClock(start)
	if !ok {
		return nil, fmt.Errorf("invalid workday start %q", start)
	}
	e, ok := parseClock(end)
	if !ok {
		return nil, fmt.Errorf("invalid workday end %q", end)
	}
	if e <= s {
		return nil, fmt.Errorf("workday end %q must be after start %q", end, start)
	}
	return &Engine{workdayStart: s, workdayEnd: e}, nil
}

// WorkdayWindow returns the configured window as HH:MM strings.
func (e *Engine) WorkdayWindow() (string, string) {
	return formatClock(e.workdayStart), formatClock(e.workdayEnd)
}

type fieldError struct {
	code    errors.ErrorCode
	message string
}

// Decide runs the admission pipeline against the current snapshot.
// Field checks are evaluated in declared order and all collected in one
// pass; the returned error carries the first failure's code and every
// message in Details. The conflict scan runs only when all field checks
// pass, and only against records on the identical date whose id differs
// from excludeID (0 means none). creating enables the title and email
// checks, which edits skip because those fields are immutable.
func (e *Engine) Decide(existing []entity.Reservation, cand Candidate, excludeID int, creating bool) (Candidate, *errors.AppError) {
	cand.Title = strings.TrimSpace(cand.Title)
	cand.Email = strings.TrimSpace(cand.Email)

	var failures []fieldError

	if creating && cand.Title == "" {
		failures = append(failures, fieldError{errors.ErrTitleRequired, "Title is required."})
	}

	if d, err := time.Parse(constants.DateLayout, cand.EventDate); err != nil {
		failures = append(failures, fieldError{errors.ErrInvalidDate, "Invalid date."})
	} else {
		cand.EventDate = d.Format(constants.DateLayout)
	}

	start, startOK := parseClock(cand.StartTime)
	end, endOK := parseClock(cand.EndTime)
	timesValid := false
	switch {
	case !startOK || !endOK:
		failures = append(failures, fieldError{errors.ErrInvalidTimeRange, "Invalid start or end time."})
	case end <= start:
		failures = append(failures, fieldError{errors.ErrInvalidTimeRange, "End time must be after start time."})
	default:
		timesValid = true
		cand.StartTime = formatClock(start)
		cand.EndTime = formatClock(end)
	}

	if creating && !utils.IsValidEmail(cand.Email) {
		failures = append(failures, fieldError{errors.ErrInvalidEmail, "Invalid email address."})
	}

	if timesValid && (start < e.workdayStart || end > e.workdayEnd) {
		failures = append(failures, fieldError{
			errors.ErrOutsideWorkingHours,
			fmt.Sprintf("Bookings are only allowed between %s and %s.",
				formatClock(e.workdayStart), formatClock(e.workdayEnd)),
		})
	}

	if len(failures) > 0 {
		messages := make([]string, len(failures))
		for i, f := range failures {
			messages[i] = f.message
		}
		return cand, errors.NewAppError(failures[0].code, failures[0].message, nil).
			WithDetails(messages...)
	}

	for _, other := range existing {
		if other.EventDate != cand.EventDate || other.ID == excludeID {
			continue
		}
		otherStart, ok1 := parseClock(other.StartTime)
		otherEnd, ok2 := parseClock(other.EndTime)
		if !ok1 || !ok2 {
			continue
		}
		// Half-open overlap: [a,b) and [c,d) collide iff a < d && c < b.
		if start < otherEnd && otherStart < end {
			return cand, errors.NewAppError(errors.ErrSlotUnavailable, "Time slot is not available.", nil)
		}
	}

	return cand, nil
}

// parseClock converts an HH:MM 24h string to minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse(constants.ClockLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
