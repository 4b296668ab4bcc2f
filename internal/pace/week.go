package pace

// WeekDay groups a period day into its week and weekday.
type WeekDay struct {
	Week int
	Day  int
}

// WeekDayOf maps a day in 1..PeriodDays to its week (1-based) and day within
// that week.
func WeekDayOf(day int) WeekDay {
	return WeekDay{
		Week: (day + 6) / 7,
		Day:  (day-1)%7 + 1,
	}
}
