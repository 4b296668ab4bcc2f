// Package report renders a computed period view as text, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/dtspeed/internal/pace"
	"github.com/verte-zerg/dtspeed/internal/view"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrIncomplete reports inputs that do not yet allow a result.
var ErrIncomplete = errors.New("current average is required after day 1")

// Summary is the machine-readable form of a result.
type Summary struct {
	Goal            string   `json:"goal" yaml:"goal"`
	GoalSeconds     int      `json:"goalSeconds" yaml:"goal_seconds"`
	Day             int      `json:"day" yaml:"day"`
	Week            int      `json:"week" yaml:"week"`
	DayInWeek       int      `json:"dayInWeek" yaml:"day_in_week"`
	DaysDone        int      `json:"daysDone" yaml:"days_done"`
	DaysLeft        int      `json:"daysLeft" yaml:"days_left"`
	CurrentAvg      string   `json:"currentAvg,omitempty" yaml:"current_avg,omitempty"`
	Status          string   `json:"status" yaml:"status"`
	Required        string   `json:"required" yaml:"required"`
	RequiredSeconds *float64 `json:"requiredSeconds,omitempty" yaml:"required_seconds,omitempty"`
	Tier            string   `json:"tier" yaml:"tier"`
	Note            string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Check explains why st has no result, or returns nil when it has one.
func Check(st view.State) error {
	if st.CanCalculate {
		return nil
	}
	switch {
	case !st.GoalValid && st.Inputs.Goal == "":
		return fmt.Errorf("goal is required")
	case !st.GoalValid:
		return fmt.Errorf("goal %q: %w", st.Inputs.Goal, pace.ErrInvalidTime)
	case !st.DayValid:
		return fmt.Errorf("day %q: %w", st.Inputs.DayOfPeriod, pace.ErrDayOutOfRange)
	case st.NeedsCurrentAvg && st.Inputs.CurrentAvg != "" && !st.CurrentAvgValid:
		return fmt.Errorf("current average %q: %w", st.Inputs.CurrentAvg, pace.ErrInvalidTime)
	default:
		return ErrIncomplete
	}
}

// BuildSummary flattens st. It fails when st has no result.
func BuildSummary(st view.State) (Summary, error) {
	if err := Check(st); err != nil {
		return Summary{}, err
	}
	sum := Summary{
		Goal:        pace.FormatSeconds(st.Goal),
		GoalSeconds: st.Goal,
		Day:         st.Day,
		Week:        st.WeekDay.Week,
		DayInWeek:   st.WeekDay.Day,
		DaysDone:    st.Position.DaysDone,
		DaysLeft:    st.Position.DaysLeft,
		Status:      string(st.Result.Status),
		Required:    pace.FormatTime(st.Result.RequiredSeconds()),
		Tier:        st.Tier.String(),
		Note:        st.Note.Message,
	}
	if st.NeedsCurrentAvg && st.CurrentAvgValid {
		sum.CurrentAvg = pace.FormatSeconds(st.CurrentAvg)
	}
	if st.Result.HasRequired {
		required := st.Result.Required
		sum.RequiredSeconds = &required
	}
	return sum, nil
}

// Render writes st to w in the given format.
func Render(w io.Writer, st view.State, format string) error {
	sum, err := BuildSummary(st)
	if err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case "", FormatText:
		return renderText(w, st, sum)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sum); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
	}
}

func renderText(w io.Writer, st view.State, sum Summary) error {
	var lines []string
	if st.Card.Title != "" {
		lines = append(lines, st.Card.Title)
	}
	if st.Card.Message != "" {
		lines = append(lines, st.Card.Message)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	rows := [][]string{
		{"Goal", sum.Goal},
		{"Day of period", fmt.Sprintf("%d (week %d, day %d)", sum.Day, sum.Week, sum.DayInWeek)},
		{"Progress", fmt.Sprintf("%d/%d days done, %s left (%d%%)", sum.DaysDone, pace.PeriodDays, daysLabel(sum.DaysLeft), st.ProgressPercent())},
	}
	if sum.CurrentAvg != "" {
		rows = append(rows, []string{"Current avg", sum.CurrentAvg})
	}
	if st.Card.ValueLabel != "" {
		rows = append(rows, []string{st.Card.ValueLabel, st.Card.Value})
	}
	rows = append(rows, []string{"Status", fmt.Sprintf("%s (%s)", sum.Status, sum.Tier)})
	lines = append(lines, formatTable(nil, rows, nil)...)
	if sum.Note != "" {
		lines = append(lines, "", sum.Note)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func daysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
