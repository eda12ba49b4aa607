// Package admin implements the operator command surface: the command
// grammar, the named operations behind it and their localized feedback.
package admin

import (
	"context"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
	"github.com/louisbranch/timerestrict/internal/platform/i18n/catalog"
	"github.com/louisbranch/timerestrict/internal/platform/logging"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/domain"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/observability"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RootCommand is the literal that prefixes every command line.
const RootCommand = "timerestrict"

// DefaultHistoryLimit is used by history without an explicit limit.
const DefaultHistoryLimit = 10

// Feedback is the operator-facing result of one command.
type Feedback struct {
	OK      bool
	Message string
	// Broadcast marks successful mutations other operators should see.
	Broadcast bool
	// Code classifies a failure; empty on success.
	Code apperrors.Code
}

// ScheduleEditor reads and mutates the live schedule.
type ScheduleEditor interface {
	Schedule() domain.Schedule
	SetWindow(day domain.Day, window domain.Window) error
	ClearDay(day domain.Day) (bool, error)
}

// BypassEditor reads and mutates the bypass list.
type BypassEditor interface {
	Add(name string) (bool, error)
	Remove(name string) (bool, error)
	Names() []string
}

// Checker evaluates the schedule at the current time.
type Checker interface {
	Check() (domain.Evaluation, string)
}

// Deps wires a Console. Audit, Metrics and Logger are optional; Printer
// defaults to the embedded catalog's base locale.
type Deps struct {
	Schedule ScheduleEditor
	Bypass   BypassEditor
	Checker  Checker
	Audit    storage.AuditStore
	Printer  *message.Printer
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// Console executes admin commands.
type Console struct {
	schedule ScheduleEditor
	bypass   BypassEditor
	checker  Checker
	audit    storage.AuditStore
	printer  *message.Printer
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewConsole builds a console over deps.
func NewConsole(deps Deps) *Console {
	printer := deps.Printer
	if printer == nil {
		printer = defaultPrinter()
	}
	return &Console{
		schedule: deps.Schedule,
		bypass:   deps.Bypass,
		checker:  deps.Checker,
		audit:    deps.Audit,
		printer:  printer,
		metrics:  deps.Metrics,
		logger:   logging.OrNop(deps.Logger),
	}
}

// Status lists every day's window, Monday first.
func (c *Console) Status() Feedback {
	schedule := c.schedule.Schedule()
	lines := []string{c.text(keyStatusHeader)}
	for _, day := range domain.Week {
		value := c.text(keyStatusOff)
		if window, ok := schedule.Window(day); ok {
			value = window.String()
		}
		lines = append(lines, c.text(keyStatusLine, day.String(), value))
	}
	return Feedback{OK: true, Message: strings.Join(lines, "\n")}
}

// Set restricts dayArg to rangeArg ("HHmm-HHmm").
func (c *Console) Set(dayArg, rangeArg string) Feedback {
	day, err := domain.ParseDay(dayArg)
	if err != nil {
		return c.fail(apperrors.CodeInvalidDay, keyInvalidDay, dayArg)
	}
	window, err := domain.ParseWindow(rangeArg)
	if err != nil {
		return c.fail(apperrors.CodeInvalidTimeRange, keyInvalidFormat)
	}
	err = c.schedule.SetWindow(day, window)
	return c.mutated(err, keySetDone, day.String(), window.String())
}

// Clear removes dayArg's window.
func (c *Console) Clear(dayArg string) Feedback {
	day, err := domain.ParseDay(dayArg)
	if err != nil {
		return c.fail(apperrors.CodeInvalidDay, keyInvalidDay, dayArg)
	}
	cleared, err := c.schedule.ClearDay(day)
	if !cleared {
		return Feedback{OK: true, Message: c.text(keyClearNone, day.String())}
	}
	return c.mutated(err, keyClearDone, day.String())
}

// Check reports whether access is restricted right now.
func (c *Console) Check() Feedback {
	eval, _ := c.checker.Check()
	if eval.Restricted {
		return Feedback{OK: true, Message: c.text(keyCheckRestricted, eval.Day.String(), eval.Window.String())}
	}
	return Feedback{OK: true, Message: c.text(keyCheckOpen)}
}

// BypassAdd exempts name from the schedule.
func (c *Console) BypassAdd(name string) Feedback {
	added, err := c.bypass.Add(name)
	if apperrors.HasCode(err, apperrors.CodeBypassNameEmpty) {
		return c.fail(apperrors.CodeBypassNameEmpty, keyBypassInvalidName)
	}
	if !added {
		return c.fail(apperrors.CodeBypassExists, keyBypassExists, name)
	}
	return c.mutated(err, keyBypassAdded, strings.TrimSpace(name))
}

// BypassRemove drops name from the bypass list.
func (c *Console) BypassRemove(name string) Feedback {
	removed, err := c.bypass.Remove(name)
	if !removed {
		return c.fail(apperrors.CodeBypassMissing, keyBypassMissing, name)
	}
	return c.mutated(err, keyBypassRemoved, strings.TrimSpace(name))
}

// BypassList shows the bypass list in insertion order.
func (c *Console) BypassList() Feedback {
	names := c.bypass.Names()
	if len(names) == 0 {
		return Feedback{OK: true, Message: c.text(keyBypassEmpty)}
	}
	return Feedback{OK: true, Message: c.text(keyBypassList, strings.Join(names, ", "))}
}

// History lists the most recent enforcement actions, newest first.
func (c *Console) History(ctx context.Context, limit int) Feedback {
	if c.audit == nil {
		return c.fail(apperrors.CodeAuditDisabled, keyHistoryDisabled)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := c.audit.ListActions(ctx, limit)
	if err != nil {
		c.logger.Error("list enforcement actions", zap.Error(err))
		return Feedback{OK: false, Message: err.Error(), Code: apperrors.CodeOf(err)}
	}
	if len(records) == 0 {
		return Feedback{OK: true, Message: c.text(keyHistoryEmpty)}
	}
	lines := []string{c.text(keyHistoryHeader)}
	for _, record := range records {
		lines = append(lines, c.text(keyHistoryLine,
			record.CreatedAt.UTC().Format(time.RFC3339),
			record.Action,
			record.Player,
			strings.TrimSpace(record.Day+" "+record.Window),
		))
	}
	return Feedback{OK: true, Message: strings.Join(lines, "\n")}
}

// mutated builds feedback for an applied change. A persistence failure
// keeps the change and appends a warning line.
func (c *Console) mutated(err error, key string, args ...any) Feedback {
	msg := c.text(key, args...)
	if err != nil {
		if apperrors.CodeOf(err) != apperrors.CodePersistenceFailed {
			c.logger.Error("admin mutation", zap.Error(err))
			return Feedback{OK: false, Message: err.Error(), Code: apperrors.CodeOf(err)}
		}
		msg += "\n" + c.text(keyPersistWarning)
	}
	return Feedback{OK: true, Message: msg, Broadcast: true}
}

func defaultPrinter() *message.Printer {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return message.NewPrinter(language.MustParse(catalog.BaseLocale))
	}
	return bundle.Printer(catalog.BaseLocale)
}

func (c *Console) fail(code apperrors.Code, key string, args ...any) Feedback {
	return Feedback{OK: false, Message: c.text(key, args...), Code: code}
}

func (c *Console) text(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

func parseLimit(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
