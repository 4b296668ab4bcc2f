// Package view turns the raw form inputs into everything a renderer shows:
// parsed fields, inline errors, the period result and its severity tier.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dtspeed/internal/pace"
)

// Tier is an advisory severity used only for colouring a result.
type Tier int

const (
	TierPositive Tier = iota
	TierCaution
	TierCritical
	TierComplete
)

func (t Tier) String() string {
	switch t {
	case TierCaution:
		return "caution"
	case TierCritical:
		return "critical"
	case TierComplete:
		return "complete"
	default:
		return "positive"
	}
}

// Palette is the colour set of a tier.
type Palette struct {
	Background lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Accent     lipgloss.Color
}

var palettes = map[Tier]Palette{
	TierPositive: {Background: "#0d3320", Border: "#16a34a", Text: "#4ade80", Accent: "#22c55e"},
	TierCaution:  {Background: "#3b2508", Border: "#f59e0b", Text: "#fbbf24", Accent: "#f59e0b"},
	TierCritical: {Background: "#3b1118", Border: "#ef4444", Text: "#f87171", Accent: "#ef4444"},
	TierComplete: {Background: "#1e1b4b", Border: "#7c3aed", Text: "#a78bfa", Accent: "#8b5cf6"},
}

// Palette returns the colours for t.
func (t Tier) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[TierPositive]
}

// TierFor classifies a result. It never feeds back into the arithmetic.
func TierFor(status pace.Status, required float64, goal int) Tier {
	switch status {
	case pace.StatusAhead, pace.StatusDay1:
		return TierPositive
	case pace.StatusFinal:
		return TierComplete
	}
	g := float64(goal)
	switch {
	case required > g*pace.CriticalRatio:
		return TierCritical
	case required > g:
		return TierCaution
	default:
		return TierPositive
	}
}
