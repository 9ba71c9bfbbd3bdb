// Package datetime converts between epoch seconds, calendar dates and the
// labels shown in the views.
package datetime

import "time"

const (
	DateLayout  = "2006-01-02"
	clockLayout = "15:04"
	fullLayout  = "Monday, 2 January 2006"
)

// FormatDate returns the YYYY-MM-DD date of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOf returns the calendar date of an epoch-seconds instant in loc.
func DateOf(epoch int64, loc *time.Location) string {
	return time.Unix(epoch, 0).In(orUTC(loc)).Format(DateLayout)
}

func ClockTime(epoch int64, loc *time.Location) string {
	return time.Unix(epoch, 0).In(orUTC(loc)).Format(clockLayout)
}

// UTCDatetime is the header date label, e.g. "Monday, 15 January 2024".
func UTCDatetime(t time.Time) string {
	return t.UTC().Format(fullLayout)
}

// UTCTime is the header clock label, e.g. "10:04 GMT".
func UTCTime(t time.Time) string {
	return t.UTC().Format(clockLayout) + " GMT"
}

// DayName returns the weekday of a YYYY-MM-DD date, or "" if it does not parse.
func DayName(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
