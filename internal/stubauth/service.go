// Package stubauth is an in-memory authentication backend implementing the
// REST contract the portal consumes. It exists for local development and
// tests; the real deployment points AUTH_BASE_URL at the platform's
// authentication service.
package stubauth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/enterprisehub/portal/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// account pairs a public identity with its password hash.
type account struct {
	identity domain.Identity
	hash     string
}

// Service holds the user set and mints HS256 access tokens.
type Service struct {
	jwtSecret string
	tokenTTL  time.Duration

	mu      sync.RWMutex
	byEmail map[string]*account
	byID    map[string]*account
}

func NewService(jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Service{
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		byEmail:   make(map[string]*account),
		byID:      make(map[string]*account),
	}
}

// SeedDemoAccounts provisions the fixed demo users the login page offers.
func (s *Service) SeedDemoAccounts() error {
	demos := []struct {
		fullName, username, email, password string
		role                                domain.Role
	}{
		{"Test Employee", "test", "test@company.com", "Test123!", domain.RoleEmployee},
		{"Admin User", "admin", "admin@company.com", "Admin123!", domain.RoleAdmin},
		{"Manager User", "manager", "manager@company.com", "Manager123!", domain.RoleManager},
	}
	for _, d := range demos {
		_, _, err := s.Register(domain.Registration{
			FullName: d.fullName,
			Username: d.username,
			Email:    d.email,
			Password: d.password,
			Role:     d.role,
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", d.email, err)
		}
	}
	return nil
}

// Register creates an account and returns it already authenticated, mirroring
// the platform's behaviour of skipping a separate confirmation step.
func (s *Service) Register(input domain.Registration) (string, *domain.Identity, error) {
	if input.Email == "" || input.Password == "" || input.Username == "" {
		return "", nil, &domain.AuthError{Reason: "missing required fields"}
	}
	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !role.Known() {
		return "", nil, &domain.AuthError{Reason: "unknown role"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[input.Email]; exists {
		return "", nil, &domain.AuthError{Reason: "Email already registered"}
	}

	acct := &account{
		identity: domain.Identity{
			ID:         uuid.NewString(),
			Username:   input.Username,
			Email:      input.Email,
			FullName:   input.FullName,
			Role:       role,
			Department: input.Department,
			Team:       input.Team,
			Points:     50, // welcome bonus
			Level:      1,
		},
		hash: string(hash),
	}
	s.byEmail[acct.identity.Email] = acct
	s.byID[acct.identity.ID] = acct

	token, err := s.mint(acct.identity.ID)
	if err != nil {
		return "", nil, err
	}
	identity := acct.identity
	return token, &identity, nil
}

// Login verifies credentials and returns a fresh token plus the identity.
func (s *Service) Login(email, password string) (string, *domain.Identity, error) {
	s.mu.RLock()
	acct, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.hash), []byte(password)) != nil {
		return "", nil, &domain.AuthError{Reason: "Incorrect email or password"}
	}

	token, err := s.mint(acct.identity.ID)
	if err != nil {
		return "", nil, err
	}
	identity := acct.identity
	return token, &identity, nil
}

// Identity resolves a bearer token back to its identity.
func (s *Service) Identity(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, &domain.AuthError{Reason: "Could not validate credentials"}
	}

	sub, _ := claims["sub"].(string)
	s.mu.RLock()
	acct, ok := s.byID[sub]
	s.mu.RUnlock()
	if !ok {
		return nil, &domain.AuthError{Reason: "Could not validate credentials"}
	}
	identity := acct.identity
	return &identity, nil
}

func (s *Service) mint(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
