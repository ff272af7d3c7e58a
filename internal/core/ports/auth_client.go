package ports

import (
	"context"

	"github.com/enterprisehub/portal/internal/core/domain"
)

// AuthClient is the outbound interface to the remote authentication service.
// Implementations must map rejections to *domain.AuthError and connectivity
// failures to *domain.TransportError.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (token string, identity *domain.Identity, err error)
	Register(ctx context.Context, input domain.Registration) (token string, identity *domain.Identity, err error)
	Me(ctx context.Context, token string) (*domain.Identity, error)
}
