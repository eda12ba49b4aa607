package domain

import (
	"strconv"
	"time"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
)

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour 0-23 and minute 0-59.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, apperrors.WithFields(apperrors.CodeInvalidTime, "time of day out of range", map[string]string{
			"Time": strconv.Itoa(hour) + ":" + strconv.Itoa(minute),
		})
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustTimeOfDay is NewTimeOfDay for constants; it panics on invalid input.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses exactly four digits "HHmm".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	invalid := apperrors.WithFields(apperrors.CodeInvalidTime, "invalid time "+strconv.Quote(value)+", want HHmm", map[string]string{
		"Time": value,
	})
	if len(value) != 4 {
		return TimeOfDay{}, invalid
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return TimeOfDay{}, invalid
		}
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[2]-'0')*10 + int(value[3]-'0')
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		return TimeOfDay{}, invalid
	}
	return t, nil
}

// Compare returns -1, 0 or +1 as t is before, equal to or after other.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	a, b := t.minutes(), other.minutes()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Offset returns the duration since midnight.
func (t TimeOfDay) Offset() time.Duration {
	return time.Duration(t.minutes()) * time.Minute
}

// Compact formats t as "HHmm".
func (t TimeOfDay) Compact() string {
	return pad2(t.Hour) + pad2(t.Minute)
}

// String formats t as "HH:mm".
func (t TimeOfDay) String() string {
	return pad2(t.Hour) + ":" + pad2(t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// OffsetOf returns how far into its calendar day now is, in now's location,
// at full precision.
func OffsetOf(now time.Time) time.Duration {
	hour, minute, second := now.Clock()
	return time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second +
		time.Duration(now.Nanosecond())
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
