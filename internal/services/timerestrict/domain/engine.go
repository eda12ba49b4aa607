package domain

import (
	"strings"
	"time"
)

// DefaultTemplate is the denial message used when none is configured.
const DefaultTemplate = "Server access is restricted on %day% between %start_time% and %end_time%."

// FallbackMessage is used when the day has no window by the time the
// message is rendered.
const FallbackMessage = "Server is currently restricted."

// Template placeholders.
const (
	PlaceholderDay       = "%day%"
	PlaceholderStartTime = "%start_time%"
	PlaceholderEndTime   = "%end_time%"
)

// Evaluation is the outcome of checking a schedule at one instant.
type Evaluation struct {
	Day        Day
	Window     Window
	HasWindow  bool
	Restricted bool
}

// Evaluate checks schedule at now, using now's location for the weekday and
// the time of day.
func Evaluate(now time.Time, schedule Schedule) Evaluation {
	day := DayOf(now.Weekday())
	window, ok := schedule.Window(day)
	eval := Evaluation{Day: day, Window: window, HasWindow: ok}
	if ok {
		eval.Restricted = window.Contains(OffsetOf(now))
	}
	return eval
}

// IsRestricted reports whether access is restricted at now.
func IsRestricted(now time.Time, schedule Schedule) bool {
	return Evaluate(now, schedule).Restricted
}

// DenialMessage renders template for day's window. It returns
// FallbackMessage when day has no window.
func DenialMessage(template string, schedule Schedule, day Day) string {
	window, ok := schedule.Window(day)
	if !ok {
		return FallbackMessage
	}
	return RenderTemplate(template, day, window)
}

// RenderTemplate substitutes the placeholders in template.
func RenderTemplate(template string, day Day, window Window) string {
	return strings.NewReplacer(
		PlaceholderStartTime, window.Start.String(),
		PlaceholderEndTime, window.End.String(),
		PlaceholderDay, day.String(),
	).Replace(template)
}

// Message renders the denial message for this evaluation.
func (e Evaluation) Message(template string) string {
	if !e.HasWindow {
		return FallbackMessage
	}
	return RenderTemplate(template, e.Day, e.Window)
}

// BypassChecker answers bypass list membership.
type BypassChecker interface {
	Contains(name string) bool
}

// IsExempt reports whether a player may stay connected regardless of the
// schedule: privileged players and bypass list members are exempt.
func IsExempt(name string, privileged bool, bypass BypassChecker) bool {
	if privileged {
		return true
	}
	return bypass != nil && bypass.Contains(name)
}
