package ports

import (
	"context"

	"github.com/enterprisehub/portal/internal/core/domain"
)

// Session is the read/write surface of the session service consumed by the
// UI layer. It is the only component allowed to mutate the authenticated
// identity; everything else observes it read-only.
type Session interface {
	// Login and Register replace the identity wholesale on success and
	// leave the session unauthenticated on failure.
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, input domain.Registration) error

	// Logout always succeeds locally and is idempotent; subsequent Current
	// calls observe an absent identity immediately.
	Logout(ctx context.Context)

	// Restore exchanges a persisted token for the current identity at
	// startup. Failures are absorbed: a stale token is cleared and the
	// session stays unauthenticated. Reports whether a session was restored.
	Restore(ctx context.Context) bool

	// Current returns the latest committed identity, if any.
	Current() (domain.Identity, bool)

	// Pending reports whether an auth operation is in flight.
	Pending() bool
}
