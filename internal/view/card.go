package view

import (
	"fmt"

	"github.com/verte-zerg/dtspeed/internal/pace"
)

// Stat is a small labelled value shown under the headline value.
type Stat struct {
	Label string
	Value string
}

// Card is the text of the result panel.
type Card struct {
	Title      string
	Message    string
	ValueLabel string
	Value      string
	Stats      []Stat
}

// NoteKind tags the contextual note under an ok result.
type NoteKind int

const (
	NoteNone NoteKind = iota
	NoteBehind
	NoteAhead
)

// Note is a one-line hint about how the required pace compares to the goal.
type Note struct {
	Kind    NoteKind
	Message string
}

func buildCard(res pace.Result, goal, currentAvg int) Card {
	switch res.Status {
	case pace.StatusDay1:
		return Card{
			Title:      "Day 1: Hit Your Goal",
			Message:    "No history yet. Run at goal speed to start on track.",
			ValueLabel: "Target Speed",
			Value:      pace.FormatSeconds(goal),
		}
	case pace.StatusFinal:
		return Card{
			Title:   "Period Complete",
			Message: fmt.Sprintf("All %d days are done. Your final average is your period result.", pace.PeriodDays),
		}
	case pace.StatusAhead:
		return Card{
			Title:      "Ahead of Goal",
			Message:    "Even at 0:00 the math says you're beating goal. Keep it up!",
			ValueLabel: "Required Remaining Avg",
			Value:      pace.FormatTime(0),
		}
	default:
		return Card{
			ValueLabel: "Required Avg From Today",
			Value:      pace.FormatTime(res.Required),
			Stats: []Stat{
				{Label: "Goal", Value: pace.FormatSeconds(goal)},
				{Label: "Current Avg", Value: pace.FormatSeconds(currentAvg)},
			},
		}
	}
}

func buildNote(res pace.Result, goal, daysLeft int) Note {
	if res.Status != pace.StatusOK {
		return Note{}
	}
	g := float64(goal)
	switch {
	case res.Required > g*pace.CriticalRatio:
		return Note{
			Kind:    NoteBehind,
			Message: fmt.Sprintf("Significantly behind: you'll need to push hard for %s.", plural(daysLeft, "day")),
		}
	case res.Required < g:
		return Note{
			Kind:    NoteAhead,
			Message: "Trending ahead: required speed is faster than your goal.",
		}
	}
	return Note{}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
