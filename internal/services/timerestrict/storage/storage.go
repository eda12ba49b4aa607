package storage

import (
	"context"
	"time"

	"github.com/louisbranch/timerestrict/internal/services/timerestrict/domain"
)

// Settings is the persisted restriction configuration.
type Settings struct {
	Schedule domain.Schedule
	Template string
}

// SettingsStore loads and saves the restriction settings.
type SettingsStore interface {
	LoadSettings() (Settings, error)
	SaveSettings(settings Settings) error
}

// BypassStore loads and saves the ordered bypass list.
type BypassStore interface {
	LoadBypass() ([]string, error)
	SaveBypass(names []string) error
}

// Enforcement actions recorded in the audit log.
const (
	ActionDenied = "denied"
	ActionKicked = "kicked"
)

// ActionRecord is one durable enforcement action.
type ActionRecord struct {
	ID      int64
	Action  string
	Player  string
	Day     string
	Window  string
	SweepID string
	// CreatedAt is stored with millisecond precision in UTC.
	CreatedAt time.Time
}

// AuditStore persists enforcement actions.
type AuditStore interface {
	RecordAction(ctx context.Context, record ActionRecord) error
	ListActions(ctx context.Context, limit int) ([]ActionRecord, error)
}
