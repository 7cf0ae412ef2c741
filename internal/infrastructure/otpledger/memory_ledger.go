package otpledger

import (
	"context"
	"sync"
	"time"

	"github.com/freeads/marketplace-api/internal/domain/repository"
)

// MemoryLedger keeps pending OTP entries in a mutex-guarded map. It is
// process-local and never sweeps stale entries; callers decide validity from
// ExpiresAt. Intended for tests and redis-less development.
type MemoryLedger struct {
	mu      sync.Mutex
	entries map[string]repository.OTPEntry
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]repository.OTPEntry)}
}

func (l *MemoryLedger) Put(_ context.Context, phone string, entry repository.OTPEntry, _ time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[phone] = entry
	return nil
}

func (l *MemoryLedger) Get(_ context.Context, phone string) (*repository.OTPEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[phone]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (l *MemoryLedger) Delete(_ context.Context, phone string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, phone)
	return nil
}

var _ repository.OTPLedger = (*MemoryLedger)(nil)
