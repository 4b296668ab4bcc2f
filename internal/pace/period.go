package pace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PeriodDays is the fixed length of an evaluation period.
const PeriodDays = 28

// CriticalRatio is how far above the goal a required average may go before
// it is treated as critical.
const CriticalRatio = 1.15

var (
	// ErrInvalidDay reports a day that is not an integer.
	ErrInvalidDay = errors.New("invalid day of period")
	// ErrDayOutOfRange reports a day outside 1..PeriodDays.
	ErrDayOutOfRange = errors.New("day of period out of range")
)

// Status classifies a computed result.
type Status string

const (
	StatusDay1  Status = "day1"
	StatusFinal Status = "final"
	StatusAhead Status = "ahead"
	StatusOK    Status = "ok"
)

// Result is the outcome of ComputeResult. Required is meaningful only when
// HasRequired is set; the final status carries no required average.
type Result struct {
	Status      Status
	Required    float64
	HasRequired bool
}

// RequiredSeconds returns Required, or NoTime when there is none.
func (r Result) RequiredSeconds() float64 {
	if !r.HasRequired {
		return NoTime
	}
	return r.Required
}

// Position is a day within the period with its elapsed and remaining counts.
type Position struct {
	Day      int
	DaysDone int
	DaysLeft int
}

// ValidDay reports whether day lies within the period.
func ValidDay(day int) bool {
	return day >= 1 && day <= PeriodDays
}

// PositionOf derives the elapsed/remaining split for a valid day.
func PositionOf(day int) (Position, bool) {
	if !ValidDay(day) {
		return Position{}, false
	}
	done := day - 1
	return Position{Day: day, DaysDone: done, DaysLeft: PeriodDays - done}, true
}

// ParseDay parses a day of the period. Leading digits are taken as the value,
// so "8th" is day 8.
func ParseDay(input string) (int, error) {
	s := strings.TrimSpace(input)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, input)
	}
	day, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrDayOutOfRange, input)
	}
	if !ValidDay(day) {
		return 0, fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	return day, nil
}

// ComputeResult works out the average needed over the remaining days so the
// whole period averages goal. currentAvg may be nil on day 1; on later days a
// nil currentAvg, like a day outside the period, yields no result.
func ComputeResult(goal, day int, currentAvg *int) (Result, bool) {
	pos, ok := PositionOf(day)
	if !ok {
		return Result{}, false
	}
	switch {
	case pos.DaysDone == 0:
		return Result{Status: StatusDay1, Required: float64(goal), HasRequired: true}, true
	case pos.DaysLeft <= 0:
		// Unreachable while PositionOf caps the day at PeriodDays.
		return Result{Status: StatusFinal}, true
	case currentAvg == nil:
		return Result{}, false
	}
	raw := (float64(goal)*PeriodDays - float64(*currentAvg)*float64(pos.DaysDone)) / float64(pos.DaysLeft)
	if raw < 0 {
		return Result{Status: StatusAhead, Required: 0, HasRequired: true}, true
	}
	return Result{Status: StatusOK, Required: raw, HasRequired: true}, true
}
