package domain

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
)

// Window is a daily restriction range. When Start is after End the window
// wraps past midnight, e.g. 23:00-07:00.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseWindow parses "HHmm-HHmm".
func ParseWindow(value string) (Window, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return Window{}, invalidRange(value)
	}
	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return Window{}, invalidRange(value)
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return Window{}, invalidRange(value)
	}
	return Window{Start: start, End: end}, nil
}

func invalidRange(value string) error {
	return apperrors.WithFields(apperrors.CodeInvalidTimeRange, "invalid time range "+strconv.Quote(value)+", want HHmm-HHmm", map[string]string{
		"Range": value,
	})
}

// Wraps reports whether the window spans midnight.
func (w Window) Wraps() bool {
	return w.Start.Compare(w.End) > 0
}

// Contains reports whether the instant offset (time since midnight) falls
// strictly inside the window. Both bounds are exclusive and a window with
// equal bounds contains nothing.
func (w Window) Contains(offset time.Duration) bool {
	start, end := w.Start.Offset(), w.End.Offset()
	switch {
	case start < end:
		return offset > start && offset < end
	case start > end:
		return offset > start || offset < end
	default:
		return false
	}
}

// String formats the window as "HHmm-HHmm".
func (w Window) String() string {
	return w.Start.Compact() + "-" + w.End.Compact()
}
