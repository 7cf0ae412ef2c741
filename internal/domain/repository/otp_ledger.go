package repository

import (
	"context"
	"time"
)

// OTPEntry is a pending verification code for a phone number. The code is
// stored as a bcrypt hash; only the operational log ever sees the plaintext.
type OTPEntry struct {
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OTPLedger is the transient store mapping phone numbers to pending codes.
// At most one live entry exists per phone: Put overwrites any prior entry.
// Implementations may evict on their own (TTL) but are not required to;
// callers must still check ExpiresAt.
type OTPLedger interface {
	Put(ctx context.Context, phone string, entry OTPEntry, ttl time.Duration) error
	// Get returns nil without error when no entry exists for the phone.
	Get(ctx context.Context, phone string) (*OTPEntry, error)
	Delete(ctx context.Context, phone string) error
}
