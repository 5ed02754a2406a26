package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Minute is a time of day expressed as minutes since midnight. The zero
// value is the sentinel minimum: a seat whose next-free time is MinuteMin is
// fully free, and a student whose times could not be parsed sorts first.
type Minute int

const (
	MinuteMin Minute = 0
	MinuteMax Minute = 24*60 - 1

	minutesPerDay = 24 * 60
)

// EveningEnd is the late-hour boundary used by the evening cohort rule.
const EveningEnd Minute = 22 * 60

func (m Minute) Hour() int   { return int(m) / 60 }
func (m Minute) Minute() int { return int(m) % 60 }

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}

// Format12 renders the value the way the workbook reports do, e.g. "10:00 PM".
func (m Minute) Format12() string {
	hour := m.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if m.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, m.Minute(), suffix)
}

// DayFraction returns the value as a fraction of a day, the representation
// spreadsheet cells use for time-of-day values.
func (m Minute) DayFraction() float64 {
	return float64(m) / minutesPerDay
}

// ParseMinute reads a time-of-day from roster text. It accepts 24-hour and
// 12-hour clock forms ("14:30", "2:30 PM", "2:30:00 pm") and spreadsheet
// day fractions ("0.604166"). Anything unparseable yields MinuteMin and
// ok=false; callers treat that as the documented sentinel, never an error.
func ParseMinute(raw string) (Minute, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return MinuteMin, false
	}

	if fraction, err := strconv.ParseFloat(text, 64); err == nil {
		if fraction < 0 || fraction >= 1 {
			return MinuteMin, false
		}
		return Minute(fraction*minutesPerDay + 0.5), true
	}

	upper := strings.ToUpper(text)
	pm := strings.HasSuffix(upper, "PM")
	am := strings.HasSuffix(upper, "AM")
	if pm || am {
		upper = strings.TrimSpace(upper[:len(upper)-2])
	}

	parts := strings.Split(upper, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return MinuteMin, false
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return MinuteMin, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return MinuteMin, false
	}

	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return MinuteMin, false
	}

	return Minute(hour*60 + minute), true
}
