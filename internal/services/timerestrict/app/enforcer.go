package app

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/louisbranch/timerestrict/internal/platform/logging"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/domain"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/observability"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultTickRate is the host's game loop rate in ticks per second.
	DefaultTickRate = 20
	// DefaultSweepIntervalTicks is about 30 seconds at DefaultTickRate.
	DefaultSweepIntervalTicks = 600

	tracerName = "github.com/louisbranch/timerestrict/internal/services/timerestrict/app"
)

// SettingsSource supplies a consistent snapshot of schedule and template.
type SettingsSource interface {
	Settings() storage.Settings
}

// EnforcerConfig wires optional collaborators. Zero values fall back to the
// real clock, DefaultSweepIntervalTicks and no-op recorders.
type EnforcerConfig struct {
	Clock              Clock
	SweepIntervalTicks int
	Logger             *zap.Logger
	Metrics            *observability.Metrics
	Audit              storage.AuditStore
	Tracer             trace.Tracer
}

// Enforcer applies the schedule at join time and sweeps live sessions on a
// tick count.
type Enforcer struct {
	settings SettingsSource
	bypass   domain.BypassChecker
	clock    Clock
	interval int
	logger   *zap.Logger
	metrics  *observability.Metrics
	audit    storage.AuditStore
	tracer   trace.Tracer
	newID    func() string

	mu    sync.Mutex
	ticks int
}

// SweepResult summarizes one sweep.
type SweepResult struct {
	ID         string
	Restricted bool
	Day        domain.Day
	Window     domain.Window
	Checked    int
	Kicked     int
}

// NewEnforcer builds an enforcer over settings and bypass.
func NewEnforcer(settings SettingsSource, bypass domain.BypassChecker, cfg EnforcerConfig) *Enforcer {
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.SweepIntervalTicks <= 0 {
		cfg.SweepIntervalTicks = DefaultSweepIntervalTicks
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(tracerName)
	}
	return &Enforcer{
		settings: settings,
		bypass:   bypass,
		clock:    cfg.Clock,
		interval: cfg.SweepIntervalTicks,
		logger:   logging.OrNop(cfg.Logger),
		metrics:  cfg.Metrics,
		audit:    cfg.Audit,
		tracer:   cfg.Tracer,
		newID:    uuid.NewString,
	}
}

// Check evaluates the schedule now and renders the denial message.
func (e *Enforcer) Check() (domain.Evaluation, string) {
	settings := e.settings.Settings()
	eval := domain.Evaluate(e.clock.Now(), settings.Schedule)
	e.metrics.ObserveRestricted(eval.Restricted)
	return eval, eval.Message(settings.Template)
}

// AdmitJoin reports whether attempt may connect. Non-exempt players are
// rejected with the denial message while access is restricted.
func (e *Enforcer) AdmitJoin(ctx context.Context, attempt JoinAttempt) bool {
	ctx, span := e.tracer.Start(ctx, "timerestrict.AdmitJoin")
	defer span.End()

	name := attempt.Name()
	eval, message := e.Check()
	span.SetAttributes(
		attribute.String("timerestrict.player", name),
		attribute.Bool("timerestrict.restricted", eval.Restricted),
	)
	if !eval.Restricted {
		e.metrics.ObserveJoin(observability.JoinAdmitted)
		return true
	}
	if domain.IsExempt(name, attempt.Privileged(), e.bypass) {
		e.metrics.ObserveJoin(observability.JoinExempt)
		e.logger.Debug("exempt player joined during restriction", zap.String("player", name))
		return true
	}

	attempt.Reject(message)
	e.metrics.ObserveJoin(observability.JoinDenied)
	e.logger.Info("denied join",
		zap.String("player", name),
		zap.String("day", eval.Day.String()),
		zap.String("window", eval.Window.String()),
	)
	e.record(ctx, storage.ActionRecord{
		Action: storage.ActionDenied,
		Player: name,
		Day:    eval.Day.String(),
		Window: eval.Window.String(),
	})
	return false
}

// Tick advances the tick counter and runs a sweep each time it reaches the
// interval, resetting it to zero. It reports whether a sweep ran.
func (e *Enforcer) Tick(ctx context.Context, sessions SessionLister) (SweepResult, bool) {
	e.mu.Lock()
	e.ticks++
	due := e.ticks >= e.interval
	if due {
		e.ticks = 0
	}
	e.mu.Unlock()

	if !due {
		return SweepResult{}, false
	}
	return e.Sweep(ctx, sessions), true
}

// Sweep disconnects every non-exempt live session while access is
// restricted. Sessions are iterated over a copy of the host's list.
func (e *Enforcer) Sweep(ctx context.Context, sessions SessionLister) SweepResult {
	ctx, span := e.tracer.Start(ctx, "timerestrict.Sweep")
	defer span.End()
	timer := e.metrics.SweepTimer()
	defer timer.ObserveDuration()

	eval, message := e.Check()
	result := SweepResult{
		ID:         e.newID(),
		Restricted: eval.Restricted,
		Day:        eval.Day,
		Window:     eval.Window,
	}
	span.SetAttributes(
		attribute.String("timerestrict.sweep_id", result.ID),
		attribute.Bool("timerestrict.restricted", eval.Restricted),
	)
	if !eval.Restricted {
		e.metrics.ObserveSweep(false, 0)
		return result
	}

	snapshot := slices.Clone(sessions.Sessions())
	for _, session := range snapshot {
		result.Checked++
		name := session.Name()
		if domain.IsExempt(name, session.Privileged(), e.bypass) {
			continue
		}
		session.Disconnect(message)
		result.Kicked++
		e.record(ctx, storage.ActionRecord{
			Action:  storage.ActionKicked,
			Player:  name,
			Day:     eval.Day.String(),
			Window:  eval.Window.String(),
			SweepID: result.ID,
		})
	}
	span.SetAttributes(
		attribute.Int("timerestrict.checked", result.Checked),
		attribute.Int("timerestrict.kicked", result.Kicked),
	)
	e.metrics.ObserveSweep(true, result.Kicked)
	if result.Kicked > 0 {
		e.logger.Info("sweep disconnected players",
			zap.String("sweep_id", result.ID),
			zap.Int("kicked", result.Kicked),
			zap.Int("checked", result.Checked),
			zap.String("day", eval.Day.String()),
			zap.String("window", eval.Window.String()),
		)
	}
	return result
}

func (e *Enforcer) record(ctx context.Context, record storage.ActionRecord) {
	if e.audit == nil {
		return
	}
	record.CreatedAt = e.clock.Now().UTC()
	if err := e.audit.RecordAction(ctx, record); err != nil {
		e.logger.Warn("record enforcement action",
			zap.String("action", record.Action),
			zap.String("player", record.Player),
			zap.Error(err),
		)
	}
}
