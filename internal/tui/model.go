// Package tui provides the Bubble Tea calculator form.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/dtspeed/internal/logging"
	"github.com/verte-zerg/dtspeed/internal/model"
	"github.com/verte-zerg/dtspeed/internal/view"
)

// SettingsStore persists the last-entered form inputs.
type SettingsStore interface {
	LoadSettings(ctx context.Context) (model.Settings, bool, error)
	SaveSettings(ctx context.Context, settings model.Settings) error
}

const (
	fieldGoal = iota
	fieldDay
	fieldCurrentAvg
	fieldCount
)

// Model implements the Bubble Tea calculator UI.
type Model struct {
	store    SettingsStore
	logger   *slog.Logger
	defaults model.Settings

	inputs      []textinput.Model
	focus       int
	touched     bool
	showFormula bool
	state       view.State

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs the calculator model. A nil store disables
// persistence; saved inputs, when present, replace defaults.
func NewModel(store SettingsStore, logger *slog.Logger, defaults model.Settings) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Model{
		store:    store,
		logger:   logger,
		defaults: defaults,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.initInputs()
	m.setSettings(m.loadSettings())
	m.setFocus(fieldGoal)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, m.keys.Reset):
			return m, m.reset()
		case key.Matches(msg, m.keys.Formula):
			m.showFormula = !m.showFormula
			return m, nil
		}
		return m, m.updateFocused(msg)
	default:
		return m, m.updateFocused(msg)
	}
}

// State returns the current view state.
func (m *Model) State() view.State {
	return m.state
}

// Settings returns the raw inputs as typed.
func (m *Model) Settings() model.Settings {
	return model.Settings{
		Goal:        m.inputs[fieldGoal].Value(),
		DayOfPeriod: m.inputs[fieldDay].Value(),
		CurrentAvg:  m.inputs[fieldCurrentAvg].Value(),
	}
}

func (m *Model) initInputs() {
	m.inputs = make([]textinput.Model, fieldCount)
	m.inputs[fieldGoal] = newInput(m.defaults.Goal, 8)
	m.inputs[fieldDay] = newInput("1", 2)
	m.inputs[fieldCurrentAvg] = newInput("4:10", 8)
}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) loadSettings() model.Settings {
	if m.store == nil {
		return m.defaults
	}
	saved, ok, err := m.store.LoadSettings(context.Background())
	if err != nil {
		m.logger.Warn("failed to load saved inputs; using defaults", "error", err)
		return m.defaults
	}
	if !ok {
		return m.defaults
	}
	return saved
}

func (m *Model) setSettings(s model.Settings) {
	values := []string{s.Goal, s.DayOfPeriod, s.CurrentAvg}
	for i, v := range values {
		m.inputs[i].SetValue(v)
		m.inputs[i].CursorEnd()
	}
	m.recompute()
}

func (m *Model) recompute() {
	m.state = view.Recompute(m.Settings(), m.touched)
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.touched = true
		m.recompute()
		m.save()
	}
	return cmd
}

func (m *Model) save() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveSettings(context.Background(), m.Settings()); err != nil {
		m.logger.Warn("failed to save settings", "error", err)
		return
	}
	m.logger.Debug("settings saved", "day", m.inputs[fieldDay].Value())
}

func (m *Model) reset() tea.Cmd {
	m.touched = false
	m.setSettings(m.defaults)
	m.save()
	return m.setFocus(fieldGoal)
}

func (m *Model) visibleFields() []int {
	if m.state.NeedsCurrentAvg {
		return []int{fieldGoal, fieldDay, fieldCurrentAvg}
	}
	return []int{fieldGoal, fieldDay}
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	fields := m.visibleFields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	return m.setFocus(fields[pos])
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}
