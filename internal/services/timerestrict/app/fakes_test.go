package app

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
)

type fakeSettingsStore struct {
	loaded  storage.Settings
	loadErr error
	saveErr error
	saved   []storage.Settings
}

func (f *fakeSettingsStore) LoadSettings() (storage.Settings, error) {
	return f.loaded, f.loadErr
}

func (f *fakeSettingsStore) SaveSettings(settings storage.Settings) error {
	f.saved = append(f.saved, settings)
	return f.saveErr
}

type fakeBypassStore struct {
	loaded  []string
	loadErr error
	saveErr error
	saved   [][]string
}

func (f *fakeBypassStore) LoadBypass() ([]string, error) {
	return slices.Clone(f.loaded), f.loadErr
}

func (f *fakeBypassStore) SaveBypass(names []string) error {
	f.saved = append(f.saved, slices.Clone(names))
	return f.saveErr
}

type fakeAuditStore struct {
	mu      sync.Mutex
	records []storage.ActionRecord
	err     error
}

func (f *fakeAuditStore) RecordAction(_ context.Context, record storage.ActionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAuditStore) ListActions(_ context.Context, limit int) ([]storage.ActionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 {
		return nil, errors.New("limit must be greater than zero")
	}
	out := slices.Clone(f.records)
	slices.Reverse(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAuditStore) snapshot() []storage.ActionRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.records)
}

type fakeAttempt struct {
	name       string
	privileged bool
	rejected   []string
}

func (a *fakeAttempt) Name() string          { return a.name }
func (a *fakeAttempt) Privileged() bool      { return a.privileged }
func (a *fakeAttempt) Reject(message string) { a.rejected = append(a.rejected, message) }

// fakeHost removes sessions from its own list on disconnect, like a real
// server would.
type fakeHost struct {
	mu       sync.Mutex
	sessions []*fakeSession
	lists    int
}

type fakeSession struct {
	host         *fakeHost
	name         string
	privileged   bool
	disconnected string
}

func (s *fakeSession) Name() string     { return s.name }
func (s *fakeSession) Privileged() bool { return s.privileged }
func (s *fakeSession) Disconnect(message string) {
	s.disconnected = message
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	s.host.sessions = slices.DeleteFunc(s.host.sessions, func(other *fakeSession) bool { return other == s })
}

func newFakeHost(players map[string]bool, order ...string) *fakeHost {
	host := &fakeHost{}
	for _, name := range order {
		host.sessions = append(host.sessions, &fakeSession{host: host, name: name, privileged: players[name]})
	}
	return host
}

func (h *fakeHost) Sessions() []Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lists++
	out := make([]Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

func (h *fakeHost) session(name string) *fakeSession {
	for _, s := range h.allSessions() {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (h *fakeHost) allSessions() []*fakeSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.sessions)
}

func (h *fakeHost) listCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lists
}
