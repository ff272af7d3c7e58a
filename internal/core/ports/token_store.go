package ports

import "context"

// TokenStore persists the single opaque session token across restarts.
// Load returns domain.ErrNoToken when nothing is stored. Clear is idempotent.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
