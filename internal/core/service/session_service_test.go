package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/enterprisehub/portal/internal/core/domain"
)

type stubAuthClient struct {
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Identity, error)
	registerFn func(ctx context.Context, input domain.Registration) (string, *domain.Identity, error)
	meFn       func(ctx context.Context, token string) (*domain.Identity, error)
}

func (s *stubAuthClient) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthClient) Register(ctx context.Context, input domain.Registration) (string, *domain.Identity, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthClient) Me(ctx context.Context, token string) (*domain.Identity, error) {
	return s.meFn(ctx, token)
}

type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (m *memTokenStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", domain.ErrNoToken
	}
	return m.token, nil
}

func (m *memTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memTokenStore) current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{
		ID:       "u-1",
		Username: "admin",
		Email:    "admin@company.com",
		FullName: "Admin User",
		Role:     domain.RoleAdmin,
		Points:   50,
		Level:    1,
	}
}

func TestSessionService_Login_Success(t *testing.T) {
	client := &stubAuthClient{
		loginFn: func(_ context.Context, email, password string) (string, *domain.Identity, error) {
			if email != "admin@company.com" || password != "Admin123!" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "tok-1", adminIdentity(), nil
		},
	}
	tokens := &memTokenStore{}
	svc := NewSessionService(client, tokens, zerolog.Nop())

	if err := svc.Login(context.Background(), "admin@company.com", "Admin123!"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	identity, ok := svc.Current()
	if !ok {
		t.Fatalf("expected authenticated session")
	}
	if identity.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", identity.Role)
	}
	if tokens.current() != "tok-1" {
		t.Fatalf("expected token persisted, got %q", tokens.current())
	}
	if svc.Pending() {
		t.Fatalf("pending flag should be cleared after resolution")
	}
}

func TestSessionService_Login_Rejected(t *testing.T) {
	client := &stubAuthClient{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			return "", nil, &domain.AuthError{Reason: "Incorrect email or password"}
		},
	}
	svc := NewSessionService(client, &memTokenStore{}, zerolog.Nop())

	err := svc.Login(context.Background(), "admin@company.com", "wrong")
	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if ae.Reason != "Incorrect email or password" {
		t.Fatalf("expected service reason, got %q", ae.Reason)
	}
	if _, ok := svc.Current(); ok {
		t.Fatalf("session must remain unauthenticated after rejection")
	}
	if svc.Pending() {
		t.Fatalf("pending flag must be cleared after failure")
	}
}

func TestSessionService_Login_MissingCredentials(t *testing.T) {
	client := &stubAuthClient{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			t.Fatalf("client must not be called for empty credentials")
			return "", nil, nil
		},
	}
	svc := NewSessionService(client, &memTokenStore{}, zerolog.Nop())

	if err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestSessionService_Logout_Idempotent(t *testing.T) {
	svc := NewSessionService(&stubAuthClient{}, &memTokenStore{}, zerolog.Nop())

	svc.Logout(context.Background())
	svc.Logout(context.Background())

	if _, ok := svc.Current(); ok {
		t.Fatalf("expected unauthenticated session")
	}
}

func TestSessionService_Logout_ClearsEverything(t *testing.T) {
	client := &stubAuthClient{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			return "tok-1", adminIdentity(), nil
		},
	}
	tokens := &memTokenStore{}
	svc := NewSessionService(client, tokens, zerolog.Nop())

	if err := svc.Login(context.Background(), "admin@company.com", "Admin123!"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	svc.Logout(context.Background())

	if _, ok := svc.Current(); ok {
		t.Fatalf("identity must be absent immediately after logout")
	}
	if tokens.current() != "" {
		t.Fatalf("persisted token must be cleared on logout")
	}
}

// A slow login response arriving after logout must not resurrect the
// session: logout wins.
func TestSessionService_StaleLoginResult_Discarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := &stubAuthClient{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			close(started)
			<-release
			return "tok-stale", adminIdentity(), nil
		},
	}
	tokens := &memTokenStore{}
	svc := NewSessionService(client, tokens, zerolog.Nop())

	result := make(chan error, 1)
	go func() {
		result <- svc.Login(context.Background(), "admin@company.com", "Admin123!")
	}()

	<-started
	svc.Logout(context.Background())
	close(release)

	if err := <-result; !errors.Is(err, domain.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if _, ok := svc.Current(); ok {
		t.Fatalf("final state must be unauthenticated: logout wins")
	}
	if tokens.current() != "" {
		t.Fatalf("stale token must not be persisted, got %q", tokens.current())
	}
}

// When two logins overlap, the one that started last owns the session even
// if the first resolves later.
func TestSessionService_SecondLoginWins(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	call := 0
	var mu sync.Mutex
	client := &stubAuthClient{
		loginFn: func(_ context.Context, email, _ string) (string, *domain.Identity, error) {
			mu.Lock()
			call++
			n := call
			mu.Unlock()
			if n == 1 {
				close(firstStarted)
				<-releaseFirst
				return "tok-first", adminIdentity(), nil
			}
			id := adminIdentity()
			id.ID = "u-2"
			id.Email = email
			id.Role = domain.RoleEmployee
			return "tok-second", id, nil
		},
	}
	tokens := &memTokenStore{}
	svc := NewSessionService(client, tokens, zerolog.Nop())

	firstResult := make(chan error, 1)
	go func() {
		firstResult <- svc.Login(context.Background(), "admin@company.com", "Admin123!")
	}()
	<-firstStarted

	if err := svc.Login(context.Background(), "test@company.com", "Test123!"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	close(releaseFirst)

	if err := <-firstResult; !errors.Is(err, domain.ErrSuperseded) {
		t.Fatalf("expected first login to be superseded, got %v", err)
	}

	identity, ok := svc.Current()
	if !ok || identity.ID != "u-2" {
		t.Fatalf("expected second login's identity, got %+v ok=%v", identity, ok)
	}
	if tokens.current() != "tok-second" {
		t.Fatalf("expected second login's token, got %q", tokens.current())
	}
}

func TestSessionService_Register_Authenticates(t *testing.T) {
	client := &stubAuthClient{
		registerFn: func(_ context.Context, input domain.Registration) (string, *domain.Identity, error) {
			return "tok-new", &domain.Identity{
				ID:       "u-9",
				Username: input.Username,
				Email:    input.Email,
				FullName: input.FullName,
				Role:     input.Role,
			}, nil
		},
	}
	tokens := &memTokenStore{}
	svc := NewSessionService(client, tokens, zerolog.Nop())

	input := domain.Registration{
		FullName: "New Hire",
		Username: "newhire",
		Email:    "new@company.com",
		Password: "Newpass123!",
		Role:     domain.RoleEmployee,
	}
	if err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	identity, ok := svc.Current()
	if !ok || identity.Username != "newhire" {
		t.Fatalf("expected immediate authentication, got %+v ok=%v", identity, ok)
	}
	if tokens.current() != "tok-new" {
		t.Fatalf("expected token persisted")
	}
}

// Restore after a successful login yields the identity the login returned.
func TestSessionService_Restore_RoundTrip(t *testing.T) {
	tokens := &memTokenStore{}
	loginClient := &stubAuthClient{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			return "tok-rt", adminIdentity(), nil
		},
	}
	first := NewSessionService(loginClient, tokens, zerolog.Nop())
	if err := first.Login(context.Background(), "admin@company.com", "Admin123!"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	want, _ := first.Current()

	restoreClient := &stubAuthClient{
		meFn: func(_ context.Context, token string) (*domain.Identity, error) {
			if token != "tok-rt" {
				t.Fatalf("unexpected token: %q", token)
			}
			return adminIdentity(), nil
		},
	}
	second := NewSessionService(restoreClient, tokens, zerolog.Nop())
	if !second.Restore(context.Background()) {
		t.Fatalf("expected restore to succeed")
	}

	got, ok := second.Current()
	if !ok || got != want {
		t.Fatalf("restored identity mismatch: got %+v want %+v", got, want)
	}
}

func TestSessionService_Restore_NoToken(t *testing.T) {
	client := &stubAuthClient{
		meFn: func(_ context.Context, _ string) (*domain.Identity, error) {
			t.Fatalf("client must not be called without a persisted token")
			return nil, nil
		},
	}
	svc := NewSessionService(client, &memTokenStore{}, zerolog.Nop())

	if svc.Restore(context.Background()) {
		t.Fatalf("expected restore to report unauthenticated")
	}
	if _, ok := svc.Current(); ok {
		t.Fatalf("expected unauthenticated session")
	}
}

func TestSessionService_Restore_StaleTokenCleared(t *testing.T) {
	tokens := &memTokenStore{token: "tok-expired"}
	client := &stubAuthClient{
		meFn: func(_ context.Context, _ string) (*domain.Identity, error) {
			return nil, &domain.AuthError{Reason: "Could not validate credentials"}
		},
	}
	svc := NewSessionService(client, tokens, zerolog.Nop())

	if svc.Restore(context.Background()) {
		t.Fatalf("expected restore to fail")
	}
	if _, ok := svc.Current(); ok {
		t.Fatalf("expected unauthenticated session")
	}
	if tokens.current() != "" {
		t.Fatalf("stale token must be cleared, got %q", tokens.current())
	}
}

func TestSessionService_PendingDuringOperation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := &stubAuthClient{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			close(started)
			<-release
			return "tok-1", adminIdentity(), nil
		},
	}
	svc := NewSessionService(client, &memTokenStore{}, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		done <- svc.Login(context.Background(), "admin@company.com", "Admin123!")
	}()

	<-started
	if !svc.Pending() {
		t.Fatalf("pending must be true while the request is in flight")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if svc.Pending() {
		t.Fatalf("pending must be false after resolution")
	}
}
