package repositories

import (
	"context"
	"time"
)

// SessionKind separates the ephemeral state families kept per browser session.
type SessionKind string

const (
	KindSelection SessionKind = "selection"
	KindCheckout  SessionKind = "checkout"
)

// SessionStore keeps short-lived JSON state owned by one browser session.
// Load returns a domain.NotFoundError when the record is absent, expired,
// or owned by someone else.
type SessionStore interface {
	Save(ctx context.Context, kind SessionKind, id, owner string, payload []byte, ttl time.Duration) error
	Load(ctx context.Context, kind SessionKind, id, owner string) ([]byte, error)
	Delete(ctx context.Context, kind SessionKind, id string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
