package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dtspeed/internal/pace"
	"github.com/verte-zerg/dtspeed/internal/view"
)

const contentWidth = 48

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F5")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A5B4FC")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	weekBadge     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A5B4FC")).Background(lipgloss.Color("#26284A")).Padding(0, 1)
	dayBadge      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Background(lipgloss.Color("#2A2A2E")).Padding(0, 1)
	barFilled     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6"))
	barEmpty      = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).Padding(0, 1)
	formulaStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8C8C8C")).
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#3A3A3A")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		m.renderHeader(),
		mutedStyle.Width(contentWidth).Render("Enter your day & current average to find the speed you must run from today forward to finish the 28-day period at your goal."),
		m.renderFields(),
	}
	if m.state.DayValid {
		sections = append(sections, renderProgress(m.state, contentWidth))
	}
	if m.state.CanCalculate {
		sections = append(sections, renderCard(m.state, contentWidth))
	}
	if m.showFormula {
		sections = append(sections, renderFormula(contentWidth))
	}
	sections = append(sections, m.help.View(m.keys))
	content := strings.Join(sections, "\n\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHeader() string {
	return titleStyle.Render("DT Speed Calculator") + "\n" + subtitleStyle.Render(fmt.Sprintf("%d-DAY PERIOD PLANNER", pace.PeriodDays))
}

func (m *Model) renderFields() string {
	blocks := []string{
		m.renderField(fieldGoal, "Goal Speed (mm:ss)", m.state.GoalError),
		m.renderField(fieldDay, fmt.Sprintf("Day of Period (1–%d)", pace.PeriodDays), m.state.DayError),
	}
	if m.state.DayValid {
		blocks[1] += "\n" + weekBadge.Render(fmt.Sprintf("Week %d", m.state.WeekDay.Week)) + " " +
			dayBadge.Render(fmt.Sprintf("Day %d", m.state.WeekDay.Day))
	}
	if m.state.NeedsCurrentAvg {
		blocks = append(blocks, m.renderField(fieldCurrentAvg, "Current Period Avg (mm:ss)", m.state.CurrentAvgError))
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) renderField(field int, label, errMsg string) string {
	style := labelStyle
	if field == m.focus {
		style = focusStyle
	}
	lines := []string{style.Render(label), m.inputs[field].View()}
	if errMsg != "" {
		lines = append(lines, errorStyle.Render(errMsg))
	}
	return strings.Join(lines, "\n")
}

func renderProgress(st view.State, width int) string {
	done := fmt.Sprintf("%d/%d days done", st.Position.DaysDone, pace.PeriodDays)
	left := fmt.Sprintf("%d day%s left", st.Position.DaysLeft, pluralSuffix(st.Position.DaysLeft))
	percent := fmt.Sprintf("%d%%", st.ProgressPercent())
	return strings.Join([]string{
		spread(mutedStyle.Render("Period progress"), mutedStyle.Render(done), width),
		progressBar(st.ProgressFraction(), width),
		spread(mutedStyle.Render(left), mutedStyle.Render(percent), width),
	}, "\n")
}

func progressBar(fraction float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(math.Round(fraction * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return barFilled.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", width-filled))
}

func renderCard(st view.State, width int) string {
	palette := st.Tier.Palette()
	accent := lipgloss.NewStyle().Foreground(palette.Accent).Bold(true)
	text := lipgloss.NewStyle().Foreground(palette.Text)
	value := lipgloss.NewStyle().Foreground(palette.Text).Background(palette.Background).Bold(true).Padding(0, 1)
	inner := width - 4

	var lines []string
	if st.Card.Title != "" {
		lines = append(lines, accent.Render("✓ "+st.Card.Title))
	}
	if st.Card.Message != "" {
		lines = append(lines, mutedStyle.Width(inner).Render(st.Card.Message))
	}
	if st.Card.ValueLabel != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, mutedStyle.Render(strings.ToUpper(st.Card.ValueLabel)), value.Render(st.Card.Value))
	}
	if len(st.Card.Stats) > 0 {
		stats := make([]string, 0, len(st.Card.Stats))
		for _, s := range st.Card.Stats {
			stats = append(stats, mutedStyle.Render(s.Label+" ")+text.Render(s.Value))
		}
		lines = append(lines, "", strings.Join(stats, "   "))
	}
	if st.Note.Kind != view.NoteNone {
		noteTier := view.TierPositive
		if st.Note.Kind == view.NoteBehind {
			noteTier = view.TierCritical
		}
		note := lipgloss.NewStyle().Foreground(noteTier.Palette().Text).Width(inner)
		lines = append(lines, "", note.Render(st.Note.Message))
	}
	return cardStyle.BorderForeground(palette.Border).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderFormula(width int) string {
	lines := []string{
		fmt.Sprintf("required = (goal × %d − currentAvg × daysDone) / daysLeft", pace.PeriodDays),
		fmt.Sprintf("daysLeft = %d − daysDone", pace.PeriodDays),
		fmt.Sprintf("Period performance is a simple average of all %d daily speeds.", pace.PeriodDays),
	}
	return formulaStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// spread places left and right on one line of the given display width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
