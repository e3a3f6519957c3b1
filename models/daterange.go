package models

import (
	"fmt"
	"time"

	apperrors "hotelcore/errors"
)

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateRange is a half-open interval of calendar dates [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a calendar date, ignoring any time of day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.InvalidDateRange(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return d, nil
}

// NewDateRange validates arrival < departure.
func NewDateRange(arrival, departure string) (DateRange, error) {
	start, err := ParseDate(arrival)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDate(departure)
	if err != nil {
		return DateRange{}, err
	}
	if !start.Before(end) {
		return DateRange{}, apperrors.InvalidDateRange("departure date must be after arrival date")
	}
	return DateRange{Start: start, End: end}, nil
}

// MustDateRange is for fixtures.
func MustDateRange(arrival, departure string) DateRange {
	r, err := NewDateRange(arrival, departure)
	if err != nil {
		panic(err)
	}
	return r
}

func (r DateRange) Nights() int {
	return DaysBetween(r.Start, r.End)
}

// Overlaps uses half-open semantics so back-to-back stays do not conflict.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

func (r DateRange) From() string {
	return r.Start.Format(DateLayout)
}

func (r DateRange) To() string {
	return r.End.Format(DateLayout)
}

func (r DateRange) String() string {
	return r.From() + "/" + r.To()
}

// CalendarDate strips the time of day of t as seen in loc and returns midnight UTC of that date.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar date of t in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return CalendarDate(t, loc).Format(DateLayout)
}

// DaysBetween counts calendar days from a to b; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	a = CalendarDate(a, time.UTC)
	b = CalendarDate(b, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
