// Package pace implements the 28-day period arithmetic and the m:ss time notation.
package pace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTime reports input that does not decode to an m:ss time.
var ErrInvalidTime = errors.New("invalid time (expected m:ss)")

// NoTime marks an absent time value. FormatTime renders it as the placeholder.
var NoTime = math.NaN()

const timePlaceholder = "--:--"

// ParseTime decodes "minutes:seconds" into total seconds. Everything except
// digits and the colon is ignored, except a minus sign which marks a negative
// component and is rejected.
func ParseTime(input string) (int, error) {
	if strings.ContainsRune(input, '-') {
		return 0, fmt.Errorf("%w: negative component in %q", ErrInvalidTime, input)
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ':' {
			return r
		}
		return -1
	}, input)
	parts := strings.Split(cleaned, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, input)
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: bad minutes in %q", ErrInvalidTime, input)
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: bad seconds in %q", ErrInvalidTime, input)
	}
	if mins < 0 || secs < 0 || secs > 59 {
		return 0, fmt.Errorf("%w: out of range %q", ErrInvalidTime, input)
	}
	if mins > (math.MaxInt-59)/60 {
		return 0, fmt.Errorf("%w: too large %q", ErrInvalidTime, input)
	}
	return mins*60 + secs, nil
}

// FormatTime renders seconds as m:ss, rounding to the nearest second and
// clamping negatives to zero. NaN and infinities render as "--:--".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return timePlaceholder
	}
	total := int64(math.Max(0, math.Floor(seconds+0.5)))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatSeconds is FormatTime for whole seconds.
func FormatSeconds(seconds int) string {
	return FormatTime(float64(seconds))
}
