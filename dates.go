package main

import "time"

// appTZ is the timezone all calendar-day logic resolves against. Taipei does
// not observe DST, so a fixed offset is exact and avoids depending on the
// host's tzdata.
var appTZ = time.FixedZone("Asia/Taipei", 8*60*60)

// todayString formats an instant as the YYYY-MM-DD calendar day in appTZ.
// Every "today" in the system flows through here (via Handler.today) so the
// day cannot skew between call sites across a midnight boundary.
func todayString(now time.Time) string {
	return now.In(appTZ).Format("2006-01-02")
}

// isFutureDate reports whether date falls after today. Both arguments are
// YYYY-MM-DD strings, which compare correctly as plain strings.
func isFutureDate(date, today string) bool {
	return date > today
}

// addDays shifts a YYYY-MM-DD date by n calendar days. Uses AddDate so
// month/year boundaries are handled; a malformed date returns "" and the
// caller's date validation should have rejected it already.
func addDays(date string, n int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format("2006-01-02")
}

// weekStart returns the Monday of the week containing date. Sunday counts as
// day 7 of the preceding Monday's week.
func weekStart(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	weekday := int(t.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, 1-weekday).Format("2006-01-02")
}

// weekDays returns the seven dates Monday through Sunday starting at start.
func weekDays(start string) []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = addDays(start, i)
	}
	return days
}
