package model

import "time"

// DateFormat is the diary's date layout (ISO, no time).
const DateFormat = "2006-01-02"

// Diary headers accept English and Norwegian weekday names.
var weekdayNames = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
	"Mandag":    time.Monday,
	"Tirsdag":   time.Tuesday,
	"Onsdag":    time.Wednesday,
	"Torsdag":   time.Thursday,
	"Fredag":    time.Friday,
	"Lørdag":    time.Saturday,
	"Søndag":    time.Sunday,
}

// LookupWeekday resolves a weekday name from a day header.
func LookupWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[name]
	return wd, ok
}

// FormatDayHeader renders a level-2 header for a date, English weekday.
// "## Monday 2026-01-20"
func FormatDayHeader(date time.Time) string {
	return "## " + date.Weekday().String() + " " + date.Format(DateFormat)
}
