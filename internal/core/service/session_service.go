package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/enterprisehub/portal/internal/core/domain"
	"github.com/enterprisehub/portal/internal/core/ports"
)

// SessionService is the single source of truth for authentication state.
// At most one identity is active at a time; it is replaced wholesale on each
// successful login/registration and cleared on logout or restore failure.
//
// Overlapping operations are resolved with a monotonically increasing
// sequence number: only the operation that started last may commit, so a slow
// login response can never clobber a logout that happened after it.
type SessionService struct {
	client ports.AuthClient
	tokens ports.TokenStore
	log    zerolog.Logger

	mu       sync.Mutex
	identity *domain.Identity
	seq      uint64 // bumped by every state-owning operation
	inflight uint64 // seq of the pending operation, 0 when idle
}

var _ ports.Session = (*SessionService)(nil)

func NewSessionService(client ports.AuthClient, tokens ports.TokenStore, log zerolog.Logger) *SessionService {
	return &SessionService{client: client, tokens: tokens, log: log}
}

// Login authenticates with the remote service. On success the new identity
// is committed and the token persisted; on failure the session remains
// unauthenticated and the error carries the user-displayable reason.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.ErrMissingCredentials
	}

	op := s.begin()
	token, identity, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.fail(op)
		return err
	}
	return s.commit(ctx, op, identity, token)
}

// Register creates an account and, like the original application, treats the
// new identity as immediately authenticated.
func (s *SessionService) Register(ctx context.Context, input domain.Registration) error {
	op := s.begin()
	token, identity, err := s.client.Register(ctx, input)
	if err != nil {
		s.fail(op)
		return err
	}
	return s.commit(ctx, op, identity, token)
}

// Logout clears the identity and the persisted token. It cannot fail and is
// idempotent; the cleared identity is observable before Logout returns.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.seq++ // invalidates any in-flight login/register result
	s.inflight = 0
	wasAuthenticated := s.identity != nil
	s.identity = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session token")
	}
	if wasAuthenticated {
		s.log.Info().Msg("session terminated")
	}
}

// Restore runs once at startup. A missing token leaves the session
// unauthenticated; an invalid or expired token is cleared silently.
func (s *SessionService) Restore(ctx context.Context) bool {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		if err != domain.ErrNoToken {
			s.log.Warn().Err(err).Msg("could not read persisted session token")
		}
		return false
	}

	op := s.begin()
	identity, err := s.client.Me(ctx, token)
	if err != nil {
		s.fail(op)
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to clear stale session token")
		}
		s.log.Info().Err(err).Msg("persisted session not restored")
		return false
	}

	if err := s.commit(ctx, op, identity, token); err != nil {
		return false
	}
	s.log.Info().Str("user", identity.Username).Str("role", string(identity.Role)).Msg("session restored")
	return true
}

// Current returns the latest committed identity. The returned value is a
// copy; callers must not cache it beyond a single render cycle.
func (s *SessionService) Current() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// Pending reports whether the latest-sequenced auth operation is still in
// flight.
func (s *SessionService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight != 0
}

// begin registers a new state-owning operation and returns its sequence
// number.
func (s *SessionService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inflight = s.seq
	return s.seq
}

// fail resolves an operation without committing state. The pending flag is
// only cleared if no newer operation has taken it over.
func (s *SessionService) fail(op uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == op {
		s.inflight = 0
	}
}

// commit installs the identity from a resolved operation, unless a newer
// operation already owns the session, in which case the result is discarded.
func (s *SessionService) commit(ctx context.Context, op uint64, identity *domain.Identity, token string) error {
	s.mu.Lock()
	if s.inflight == op {
		s.inflight = 0
	}
	if op != s.seq {
		s.mu.Unlock()
		s.log.Debug().Uint64("op", op).Uint64("seq", s.seq).Msg("discarding stale auth result")
		return domain.ErrSuperseded
	}
	id := *identity
	s.identity = &id
	s.mu.Unlock()

	if err := s.tokens.Save(ctx, token); err != nil {
		// Session stays authenticated; it just won't survive a restart.
		s.log.Warn().Err(err).Msg("failed to persist session token")
	}
	return nil
}
