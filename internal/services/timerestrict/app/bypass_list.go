package app

import (
	"slices"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
	"github.com/louisbranch/timerestrict/internal/platform/logging"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"go.uber.org/zap"
)

// BypassList owns the exempt player names and persists every mutation.
// Names are case sensitive and kept in insertion order.
type BypassList struct {
	mu     sync.Mutex
	store  storage.BypassStore
	names  []string
	logger *zap.Logger
}

// LoadBypassList loads names from store. A failed load is logged and starts
// from an empty list.
func LoadBypassList(store storage.BypassStore, logger *zap.Logger) *BypassList {
	logger = logging.OrNop(logger)
	names, err := store.LoadBypass()
	if err != nil {
		logger.Error("load bypass list", zap.Error(err))
		names = nil
	}
	return &BypassList{
		store:  store,
		names:  names,
		logger: logger,
	}
}

// Contains reports whether name is exempt.
func (b *BypassList) Contains(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Contains(b.names, name)
}

// Names returns a copy of the list.
func (b *BypassList) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.names)
}

// Add appends name and persists. It returns false without writing when
// name is already listed. A persistence error leaves the name added.
func (b *BypassList) Add(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, apperrors.New(apperrors.CodeBypassNameEmpty, "bypass name is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if slices.Contains(b.names, name) {
		return false, nil
	}
	b.names = append(b.names, name)
	b.logger.Info("bypass added", zap.String("player", name))
	return true, b.persistLocked()
}

// Remove deletes name and persists. It returns false without writing when
// name is not listed.
func (b *BypassList) Remove(name string) (bool, error) {
	name = strings.TrimSpace(name)
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := slices.Index(b.names, name)
	if name == "" || idx < 0 {
		return false, nil
	}
	b.names = slices.Delete(b.names, idx, idx+1)
	b.logger.Info("bypass removed", zap.String("player", name))
	return true, b.persistLocked()
}

func (b *BypassList) persistLocked() error {
	if err := b.store.SaveBypass(slices.Clone(b.names)); err != nil {
		b.logger.Error("persist bypass list", zap.Error(err))
		return apperrors.Wrap(apperrors.CodePersistenceFailed, "persist bypass list", err)
	}
	return nil
}
