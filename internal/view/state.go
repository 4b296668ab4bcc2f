package view

import (
	"math"

	"github.com/verte-zerg/dtspeed/internal/model"
	"github.com/verte-zerg/dtspeed/internal/pace"
)

// Inline validation messages.
const (
	GoalErrorText       = "Enter time as m:ss (e.g. 3:45)"
	DayErrorText        = "Must be 1–28"
	CurrentAvgErrorText = "Enter time as m:ss (e.g. 4:10)"
)

// State is the full view of one set of inputs.
type State struct {
	Inputs model.Settings

	Goal            int
	GoalValid       bool
	Day             int
	DayValid        bool
	CurrentAvg      int
	CurrentAvgValid bool

	GoalError       string
	DayError        string
	CurrentAvgError string

	Position        pace.Position
	WeekDay         pace.WeekDay
	NeedsCurrentAvg bool

	Result       pace.Result
	CanCalculate bool
	Tier         Tier
	Card         Card
	Note         Note
}

// Recompute runs the whole pipeline for in. Field errors are only reported
// once touched is set and the field is non-empty.
func Recompute(in model.Settings, touched bool) State {
	st := State{Inputs: in}

	if goal, err := pace.ParseTime(in.Goal); err == nil {
		st.Goal, st.GoalValid = goal, true
	} else if touched && in.Goal != "" {
		st.GoalError = GoalErrorText
	}

	if day, err := pace.ParseDay(in.DayOfPeriod); err == nil {
		st.Day, st.DayValid = day, true
		st.Position, _ = pace.PositionOf(day)
		st.WeekDay = pace.WeekDayOf(day)
	} else if touched && in.DayOfPeriod != "" {
		st.DayError = DayErrorText
	}
	st.NeedsCurrentAvg = st.Position.DaysDone > 0

	var avg *int
	if v, err := pace.ParseTime(in.CurrentAvg); err == nil {
		st.CurrentAvg, st.CurrentAvgValid = v, true
		avg = &v
	} else if touched && in.CurrentAvg != "" {
		st.CurrentAvgError = CurrentAvgErrorText
	}

	if !st.GoalValid || !st.DayValid {
		return st
	}
	res, ok := pace.ComputeResult(st.Goal, st.Day, avg)
	if !ok {
		return st
	}
	st.Result = res
	st.CanCalculate = true
	st.Tier = TierFor(res.Status, res.RequiredSeconds(), st.Goal)
	st.Card = buildCard(res, st.Goal, st.CurrentAvg)
	st.Note = buildNote(res, st.Goal, st.Position.DaysLeft)
	return st
}

// ProgressPercent is the share of the period already done, rounded.
func (s State) ProgressPercent() int {
	return int(math.Floor(float64(s.Position.DaysDone)/pace.PeriodDays*100 + 0.5))
}

// ProgressFraction is the share of the period already done in [0,1].
func (s State) ProgressFraction() float64 {
	return float64(s.Position.DaysDone) / pace.PeriodDays
}
