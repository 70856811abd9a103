package progress

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	fullDateRe  = regexp.MustCompile(`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)
	monthDayRe  = regexp.MustCompile(`(?:^|\D)(\d{1,2})/(\d{1,2})(?:\D|$)`)
	placeholder = map[string]bool{"": true, "-": true, "—": true, "None": true, "none": true, "nan": true, "NaN": true}
)

// ParseStageDate reads a stage cell. A full date anywhere in the text wins;
// otherwise the first M/D fragment is taken in the given year. Cells often
// carry a note next to the date, so surrounding text is ignored. The result
// is midnight UTC; ok is false when no valid date is found.
func ParseStageDate(raw string, year int) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if placeholder[raw] {
		return time.Time{}, false
	}
	if m := fullDateRe.FindStringSubmatch(raw); m != nil {
		if d, ok := calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, true
		}
	}
	if m := monthDayRe.FindStringSubmatch(raw); m != nil {
		if d, ok := calendarDate(year, atoi(m[1]), atoi(m[2])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// calendarDate rejects dates time.Date would normalise, such as 2/30.
func calendarDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// DaysBetween is the whole-day difference to - from; negative when to comes
// first. It counts calendar days, so spans beyond time.Duration's range stay
// exact.
func DaysBetween(from, to time.Time) int {
	return int((midnight(to).Unix() - midnight(from).Unix()) / 86400)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart is Monday 00:00 of the week containing now, in now's location.
func WeekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// InWeek reports whether a stage cell falls in the Monday-based week that
// contains now. Short M/D cells are read in now's year.
func InWeek(raw string, now time.Time) bool {
	d, ok := ParseStageDate(raw, now.Year())
	if !ok {
		return false
	}
	local := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	start := WeekStart(now)
	return !local.Before(start) && local.Before(start.AddDate(0, 0, 7))
}

// WeekStages lists the stages of r dated in the week containing now.
func WeekStages(r Record, now time.Time) []Stage {
	var out []Stage
	for _, s := range Stages {
		if InWeek(r.StageDates[s], now) {
			out = append(out, s)
		}
	}
	return out
}
