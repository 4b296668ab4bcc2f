package pace

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestComputeResult_Day1(t *testing.T) {
	res, ok := ComputeResult(225, 1, nil)
	require.True(t, ok)
	assert.Equal(t, StatusDay1, res.Status)
	assert.Equal(t, 225.0, res.Required)
	assert.True(t, res.HasRequired)
}

func TestComputeResult_MidPeriod(t *testing.T) {
	res, ok := ComputeResult(225, 8, intPtr(250))
	require.True(t, ok)
	assert.Equal(t, StatusOK, res.Status)
	assert.InDelta(t, 216.667, res.Required, 0.001)
	assert.Equal(t, "3:37", FormatTime(res.Required))
}

func TestComputeResult_Ahead(t *testing.T) {
	res, ok := ComputeResult(225, 27, intPtr(300))
	require.True(t, ok)
	assert.Equal(t, StatusAhead, res.Status)
	assert.Equal(t, 0.0, res.Required)
	assert.Equal(t, "0:00", FormatTime(res.Required))

	// A fast running average late in the period raises the requirement.
	res, ok = ComputeResult(225, 27, intPtr(100))
	require.True(t, ok)
	assert.Equal(t, StatusOK, res.Status)
	assert.InDelta(t, 1850.0, res.Required, 1e-9)
}

func TestComputeResult_LastDayIsNotFinal(t *testing.T) {
	res, ok := ComputeResult(225, 28, intPtr(225))
	require.True(t, ok)
	assert.Equal(t, StatusOK, res.Status)
	assert.InDelta(t, 225.0, res.Required, 1e-9)

	pos, ok := PositionOf(28)
	require.True(t, ok)
	assert.Equal(t, 27, pos.DaysDone)
	assert.Equal(t, 1, pos.DaysLeft)
}

func TestComputeResult_NoResult(t *testing.T) {
	_, ok := ComputeResult(225, 8, nil)
	assert.False(t, ok, "missing current average must withhold the result")

	for _, day := range []int{0, -3, 29, 100} {
		_, ok := ComputeResult(225, day, intPtr(200))
		assert.False(t, ok, "day %d", day)
	}
}

func TestComputeResult_RequiredNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(28))
	for trial := 0; trial < 2000; trial++ {
		goal := rng.Intn(600)
		day := rng.Intn(PeriodDays) + 1
		avg := rng.Intn(900)
		res, ok := ComputeResult(goal, day, &avg)
		require.True(t, ok)
		if res.Status == StatusOK || res.Status == StatusAhead {
			assert.GreaterOrEqual(t, res.Required, 0.0, "trial %d: goal=%d day=%d avg=%d", trial, goal, day, avg)
		}
	}
}

func TestComputeResult_PeriodAverageMatchesGoal(t *testing.T) {
	goal, avg := 225, 250
	for day := 2; day <= PeriodDays; day++ {
		res, ok := ComputeResult(goal, day, &avg)
		require.True(t, ok)
		if res.Status != StatusOK {
			continue
		}
		pos, _ := PositionOf(day)
		periodAvg := (float64(avg)*float64(pos.DaysDone) + res.Required*float64(pos.DaysLeft)) / PeriodDays
		assert.InDelta(t, float64(goal), periodAvg, 1e-9, "day %d", day)
	}
}

func TestPositionOf_SumsToPeriod(t *testing.T) {
	for day := 1; day <= PeriodDays; day++ {
		pos, ok := PositionOf(day)
		require.True(t, ok)
		assert.Equal(t, PeriodDays, pos.DaysDone+pos.DaysLeft)
		assert.GreaterOrEqual(t, pos.DaysLeft, 1)
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("8")
	require.NoError(t, err)
	assert.Equal(t, 8, day)

	day, err = ParseDay(" 12th ")
	require.NoError(t, err)
	assert.Equal(t, 12, day)

	_, err = ParseDay("")
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, err = ParseDay("day")
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, err = ParseDay("0")
	assert.ErrorIs(t, err, ErrDayOutOfRange)
	_, err = ParseDay("29")
	assert.ErrorIs(t, err, ErrDayOutOfRange)
	_, err = ParseDay("-2")
	assert.ErrorIs(t, err, ErrDayOutOfRange)
}
