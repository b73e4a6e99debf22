// ABOUTME: Core types for the client session: Identity, Storage, results
// ABOUTME: Defines the token/identity storage keys and the auth error type

package session

import (
	"context"
	"errors"
)

// Storage keys for the persisted session pair. Both are written together and
// cleared together; exactly one existing is corrupt state.
const (
	tokenKey    = "auth_token"
	identityKey = "auth_user"
)

// ErrStorage wraps failures of the underlying storage backend.
var ErrStorage = errors.New("session storage failure")

// Identity is the authenticated principal as known to the client.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Valid reports whether the identity satisfies the minimum shape: a present
// identity must carry a non-empty ID and email.
func (i Identity) Valid() bool {
	return i.ID != "" && i.Email != ""
}

// Storage is the key-value persistence medium for the session pair.
// Implementations must treat Delete of a missing key as a no-op.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// AuthClient performs the remote login/signup calls. A rejected attempt
// (bad credentials, duplicate signup) is reported as an *AuthError carrying
// the server's message; transport and decoding failures are plain errors.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (token string, identity Identity, err error)
	Signup(ctx context.Context, name, email, password string) (token string, identity Identity, err error)
}

// AuthError is a server-side rejection with a message safe to show the user.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Result is the outcome of a Login or Signup call. Exactly one branch is
// meaningful: Identity when OK, Message when not. Login/Signup communicate
// every failure mode through Result rather than returning an error.
type Result struct {
	OK       bool
	Identity Identity
	Message  string
}

// failure builds a failure Result from err, preferring the server-provided
// message over the generic fallback.
func failure(err error, fallback string) Result {
	var ae *AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return Result{Message: ae.Message}
	}
	return Result{Message: fallback}
}
