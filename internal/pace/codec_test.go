package pace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3:45", 225},
		{"0:00", 0},
		{"4:10", 250},
		{" 3:45 ", 225},
		{"03:05", 185},
		{"3m:45s", 225},
		{"99:59", 5999},
	}
	for _, tc := range cases {
		got, err := ParseTime(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "3:75", "-1:30", "3:-5", "345", "1:2:3", ":30", "3:", "3:60"} {
		_, err := ParseTime(in)
		assert.ErrorIs(t, err, ErrInvalidTime, "input %q", in)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "3:45", FormatTime(225))
	assert.Equal(t, "0:00", FormatTime(-5))
	assert.Equal(t, "--:--", FormatTime(NoTime))
	assert.Equal(t, "--:--", FormatTime(math.Inf(1)))
	assert.Equal(t, "3:37", FormatTime(216.6667))
	assert.Equal(t, "1:00", FormatTime(59.5))
	assert.Equal(t, "0:59", FormatTime(59.49))
	assert.Equal(t, "0:00", FormatTime(-0.4))
	assert.Equal(t, "100:00", FormatTime(6000))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for s := 0; s <= 5999; s++ {
		got, err := ParseTime(FormatSeconds(s))
		require.NoError(t, err, "seconds %d", s)
		require.Equal(t, s, got)
	}
}
