package domain

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
)

func at(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("2300-0700")
	if err != nil {
		t.Fatalf("ParseWindow: %v", err)
	}
	if !w.Wraps() {
		t.Fatal("expected wrapping window")
	}
	if w.String() != "2300-0700" {
		t.Fatalf("String = %q", w.String())
	}
}

func TestParseWindowRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "2300", "2300-", "-0700", "23:00-07:00", "2300-0700-0800", "2500-0100"} {
		_, err := ParseWindow(input)
		if err == nil {
			t.Fatalf("ParseWindow(%q) expected error", input)
		}
		if code := apperrors.CodeOf(err); code != apperrors.CodeInvalidTimeRange {
			t.Fatalf("ParseWindow(%q) code = %s", input, code)
		}
	}
}

func TestWindowContainsNonWrapping(t *testing.T) {
	w := Window{Start: MustTimeOfDay(9, 0), End: MustTimeOfDay(17, 0)}
	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"before", at(8, 59), false},
		{"at start", at(9, 0), false},
		{"just after start", at(9, 0) + time.Second, true},
		{"middle", at(12, 0), true},
		{"at end", at(17, 0), false},
		{"after", at(18, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Contains(tc.offset); got != tc.want {
				t.Fatalf("Contains(%v) = %v, want %v", tc.offset, got, tc.want)
			}
		})
	}
}

func TestWindowContainsWrapping(t *testing.T) {
	w := Window{Start: MustTimeOfDay(23, 0), End: MustTimeOfDay(7, 0)}
	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"evening", at(22, 0), false},
		{"at start", at(23, 0), false},
		{"late night", at(23, 30), true},
		{"midnight", 0, true},
		{"early morning", at(3, 0), true},
		{"at end", at(7, 0), false},
		{"midday", at(12, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Contains(tc.offset); got != tc.want {
				t.Fatalf("Contains(%v) = %v, want %v", tc.offset, got, tc.want)
			}
		})
	}
}

func TestWindowWithEqualBoundsContainsNothing(t *testing.T) {
	w := Window{Start: MustTimeOfDay(12, 0), End: MustTimeOfDay(12, 0)}
	for _, offset := range []time.Duration{0, at(11, 59), at(12, 0), at(12, 0) + time.Second, at(23, 59)} {
		if w.Contains(offset) {
			t.Fatalf("Contains(%v) = true, want false", offset)
		}
	}
}
