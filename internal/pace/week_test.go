package pace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekDayOf(t *testing.T) {
	cases := map[int]WeekDay{
		1:  {Week: 1, Day: 1},
		7:  {Week: 1, Day: 7},
		8:  {Week: 2, Day: 1},
		15: {Week: 3, Day: 1},
		27: {Week: 4, Day: 6},
		28: {Week: 4, Day: 7},
	}
	for day, want := range cases {
		assert.Equal(t, want, WeekDayOf(day), "day %d", day)
	}
}
