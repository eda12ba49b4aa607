package domain

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
)

func TestParseDayIgnoresCase(t *testing.T) {
	tests := map[string]Day{
		"MONDAY":    Monday,
		"monday":    Monday,
		"Saturday":  Saturday,
		" sunday ":  Sunday,
		"wEdNeSdAy": Wednesday,
	}
	for input, want := range tests {
		got, err := ParseDay(input)
		if err != nil {
			t.Fatalf("ParseDay(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseDay(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseDayRejectsUnknownNames(t *testing.T) {
	for _, input := range []string{"", "funday", "mon", "1"} {
		_, err := ParseDay(input)
		if err == nil {
			t.Fatalf("ParseDay(%q) expected error", input)
		}
		if code := apperrors.CodeOf(err); code != apperrors.CodeInvalidDay {
			t.Fatalf("ParseDay(%q) code = %s, want %s", input, code, apperrors.CodeInvalidDay)
		}
	}
}

func TestDayNames(t *testing.T) {
	if got := Saturday.String(); got != "Saturday" {
		t.Fatalf("String = %q, want Saturday", got)
	}
	if got := Saturday.Key(); got != "saturday" {
		t.Fatalf("Key = %q, want saturday", got)
	}
	if got := Day(0).Key(); got != "" {
		t.Fatalf("invalid Key = %q, want empty", got)
	}
	if got := Day(9).String(); got != "Day(9)" {
		t.Fatalf("invalid String = %q", got)
	}
}

func TestDayWeekdayRoundTrip(t *testing.T) {
	for _, day := range Week {
		if got := DayOf(day.Weekday()); got != day {
			t.Fatalf("DayOf(%v.Weekday()) = %v", day, got)
		}
	}
	if DayOf(time.Sunday) != Sunday {
		t.Fatal("expected time.Sunday to map to Sunday")
	}
	if DayOf(time.Monday) != Monday {
		t.Fatal("expected time.Monday to map to Monday")
	}
}
