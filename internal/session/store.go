// ABOUTME: Store is the single source of truth for the authenticated session
// ABOUTME: Handles initialize/login/signup/logout and the pairing invariant

package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store holds the current identity and synchronizes it with storage and the
// remote auth service. Create with New, then call Initialize once before
// trusting Loading/Current.
type Store struct {
	storage Storage
	client  AuthClient
	logger  *slog.Logger

	mu      sync.RWMutex
	current *Identity
	token   string
	loading bool
}

// New creates a Store. Loading reports true until Initialize has run.
func New(storage Storage, client AuthClient) *Store {
	return &Store{
		storage: storage,
		client:  client,
		logger:  slog.Default().With("component", "session"),
		loading: true,
	}
}

// Initialize rehydrates the session from storage. A valid persisted
// token/identity pair makes the store authenticated; a missing half, an
// unparsable identity, or an expired JWT purges both keys and the store
// starts unauthenticated with no error surfaced. Only storage backend
// failures are returned.
func (s *Store) Initialize(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, haveToken, err := s.storage.Get(tokenKey)
	if err != nil {
		return err
	}
	rawIdentity, haveIdentity, err := s.storage.Get(identityKey)
	if err != nil {
		return err
	}

	if !haveToken && !haveIdentity {
		return nil
	}

	// Exactly one half present is corrupt state: purge and self-heal.
	if haveToken != haveIdentity {
		s.logger.Warn("dangling session state, purging", "have_token", haveToken)
		return s.purge()
	}

	var identity Identity
	if err := json.Unmarshal([]byte(rawIdentity), &identity); err != nil || !identity.Valid() {
		s.logger.Warn("stored identity unparsable, purging")
		return s.purge()
	}

	if tokenExpired(token) {
		s.logger.Info("stored token expired, purging")
		return s.purge()
	}

	s.mu.Lock()
	s.current = &identity
	s.token = token
	s.mu.Unlock()
	return nil
}

// Login authenticates against the remote service. On success the
// token/identity pair is persisted and becomes current. On any failure the
// previously stored session is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	token, identity, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Debug("login rejected", "error", err)
		return failure(err, "Login failed")
	}
	return s.establish(token, identity, "Login failed")
}

// Signup registers a new account. A successful signup grants a session
// immediately, with the same side effects as Login.
func (s *Store) Signup(ctx context.Context, name, email, password string) Result {
	token, identity, err := s.client.Signup(ctx, name, email, password)
	if err != nil {
		s.logger.Debug("signup rejected", "error", err)
		return failure(err, "Signup failed")
	}
	return s.establish(token, identity, "Signup failed")
}

// Logout purges the persisted pair and clears the current identity.
// Idempotent: logging out while already logged out is a no-op.
func (s *Store) Logout() error {
	return s.purge()
}

// Current returns the authenticated identity, if any.
func (s *Store) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Token returns the bearer token of the current session, or "" when
// unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading reports whether the initial Initialize call is still outstanding.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// establish persists and activates a freshly authenticated session. A
// response missing the token or a malformed identity counts as a failure,
// same as a rejection.
func (s *Store) establish(token string, identity Identity, fallback string) Result {
	if token == "" || !identity.Valid() {
		s.logger.Warn("auth response missing token or identity")
		return Result{Message: fallback}
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return Result{Message: fallback}
	}

	// Snapshot the stored token so a partial write can be rolled back
	// without destroying a previously established session.
	prevToken, hadPrev, err := s.storage.Get(tokenKey)
	if err != nil {
		s.logger.Error("reading stored token", "error", err)
		return Result{Message: fallback}
	}

	// Write the pair; if the second write fails, roll back the first so the
	// pairing invariant holds. The old identity value is still stored, so
	// restoring the old token restores the full previous pair.
	if err := s.storage.Set(tokenKey, token); err != nil {
		s.logger.Error("persisting token", "error", err)
		return Result{Message: fallback}
	}
	if err := s.storage.Set(identityKey, string(raw)); err != nil {
		s.logger.Error("persisting identity", "error", err)
		if hadPrev {
			_ = s.storage.Set(tokenKey, prevToken)
		} else {
			_ = s.storage.Delete(tokenKey)
		}
		return Result{Message: fallback}
	}

	s.mu.Lock()
	s.current = &identity
	s.token = token
	s.mu.Unlock()

	s.logger.Info("session established", "user_id", identity.ID)
	return Result{OK: true, Identity: identity}
}

// purge removes both storage keys and clears the in-memory session.
func (s *Store) purge() error {
	if err := s.storage.Delete(tokenKey); err != nil {
		return err
	}
	if err := s.storage.Delete(identityKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.token = ""
	s.mu.Unlock()
	return nil
}

// tokenExpired reports whether token is a parseable JWT whose expiry has
// passed. Opaque tokens are trusted as-is; expiry is only enforced when the
// token self-describes one.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
