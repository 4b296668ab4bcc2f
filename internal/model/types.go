// Package model defines shared data structures.
package model

// Settings is the persisted form record. Values are kept exactly as typed.
type Settings struct {
	Goal        string `json:"goal"`
	DayOfPeriod string `json:"dayOfPeriod"`
	CurrentAvg  string `json:"currentAvg"`
}

// Default form values.
const (
	DefaultGoal        = "3:45"
	DefaultDayOfPeriod = "1"
	DefaultCurrentAvg  = ""
)

// DefaultSettings returns the form defaults for the given goal. An empty goal
// falls back to DefaultGoal.
func DefaultSettings(goal string) Settings {
	if goal == "" {
		goal = DefaultGoal
	}
	return Settings{
		Goal:        goal,
		DayOfPeriod: DefaultDayOfPeriod,
		CurrentAvg:  DefaultCurrentAvg,
	}
}

// Config defines resolved runtime settings.
type Config struct {
	DefaultGoal string
	Persist     bool
	DBPath      string
	LogLevel    string
	LogFile     string
}
