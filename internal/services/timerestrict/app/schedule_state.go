package app

import (
	"sync"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
	"github.com/louisbranch/timerestrict/internal/platform/logging"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/domain"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"go.uber.org/zap"
)

// ScheduleState owns the live settings and persists every mutation.
type ScheduleState struct {
	mu       sync.Mutex
	store    storage.SettingsStore
	settings storage.Settings
	logger   *zap.Logger
}

// LoadScheduleState loads settings from store and writes them straight back
// so the file always lists every day. A failed load is logged and skips the
// write-back, leaving the file for the operator to repair; the state is
// usable either way.
func LoadScheduleState(store storage.SettingsStore, logger *zap.Logger) *ScheduleState {
	logger = logging.OrNop(logger)
	state := &ScheduleState{
		store:  store,
		logger: logger,
	}
	settings, err := store.LoadSettings()
	state.settings = settings
	if err != nil {
		logger.Error("load restriction settings, file left untouched", zap.Error(err))
		return state
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if err := state.persistLocked(); err != nil {
		logger.Error("save restriction settings", zap.Error(err))
	}
	return state
}

// Schedule returns a copy of the current schedule.
func (s *ScheduleState) Schedule() domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Schedule
}

// Template returns the denial message template.
func (s *ScheduleState) Template() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Template
}

// Settings returns a consistent copy of schedule and template.
func (s *ScheduleState) Settings() storage.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetWindow restricts day to window and persists. The change stays applied
// when persisting fails; the returned error carries CodePersistenceFailed.
func (s *ScheduleState) SetWindow(day domain.Day, window domain.Window) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Schedule.Set(day, window)
	s.logger.Info("schedule updated", zap.String("day", day.String()), zap.String("window", window.String()))
	return s.persistLocked()
}

// ClearDay removes day's window and reports whether one was set. Nothing is
// written when the day had no window.
func (s *ScheduleState) ClearDay(day domain.Day) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settings.Schedule.Clear(day) {
		return false, nil
	}
	s.logger.Info("schedule cleared", zap.String("day", day.String()))
	return true, s.persistLocked()
}

func (s *ScheduleState) persistLocked() error {
	if err := s.store.SaveSettings(s.settings); err != nil {
		s.logger.Error("persist restriction settings", zap.Error(err))
		return apperrors.Wrap(apperrors.CodePersistenceFailed, "persist restriction settings", err)
	}
	return nil
}
