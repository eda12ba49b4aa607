package domain

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Day is a day of the week in ISO order, Monday first.
type Day int

const (
	Monday Day = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Week lists every day in schedule order.
var Week = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayKeys = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// dayNames holds display names; casers are not safe for concurrent use so
// the names are rendered once.
var dayNames = func() [7]string {
	caser := cases.Title(language.English)
	var names [7]string
	for i, key := range dayKeys {
		names[i] = caser.String(key)
	}
	return names
}()

// Valid reports whether d is one of the seven days.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Key returns the lowercase English name used in persistence keys.
func (d Day) Key() string {
	if !d.Valid() {
		return ""
	}
	return dayKeys[d-1]
}

// String returns the title-case English name, e.g. "Saturday".
func (d Day) String() string {
	if !d.Valid() {
		return "Day(" + strconv.Itoa(int(d)) + ")"
	}
	return dayNames[d-1]
}

// DayOf converts a time.Weekday.
func DayOf(w time.Weekday) Day {
	if w == time.Sunday {
		return Sunday
	}
	return Day(w)
}

// Weekday converts d back to a time.Weekday.
func (d Day) Weekday() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}
	return time.Weekday(d)
}

// ParseDay parses an English day name in any letter case ("MONDAY", "monday").
func ParseDay(value string) (Day, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	for i, candidate := range dayKeys {
		if key == candidate {
			return Week[i], nil
		}
	}
	return 0, apperrors.WithFields(apperrors.CodeInvalidDay, "invalid day "+strconv.Quote(value), map[string]string{
		"Day": value,
	})
}
