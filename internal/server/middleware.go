// ABOUTME: HTTP middleware for bearer-token authentication on API endpoints
// ABOUTME: Extracts the JWT from the Authorization header and loads the user

package server

import (
	"context"
	"net/http"
	"strings"
)

// userContextKey is the key type for storing the authenticated user in
// context.Context.
type userContextKey struct{}

// withUser returns a new context with the authenticated user attached.
func withUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// userFromContext retrieves the authenticated user, returning nil if absent.
func userFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userContextKey{}).(*User)
	return u
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// requireAuth wraps next so it only runs with a valid bearer token. The
// authenticated user is added to the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, errMsg := extractBearerToken(r.Header.Get("Authorization"))
		if errMsg != "" {
			writeError(w, http.StatusUnauthorized, errMsg)
			return
		}

		userID, err := s.verifier.Verify(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := s.store.GetUser(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}

		next(w, r.WithContext(withUser(r.Context(), user)))
	}
}

// optionalAuth attempts bearer auth but always runs next; anonymous requests
// proceed with no user in context.
func (s *Server) optionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, errMsg := extractBearerToken(r.Header.Get("Authorization"))
		if errMsg != "" {
			next(w, r)
			return
		}

		userID, err := s.verifier.Verify(tok)
		if err != nil {
			next(w, r)
			return
		}

		user, err := s.store.GetUser(r.Context(), userID)
		if err != nil {
			next(w, r)
			return
		}

		next(w, r.WithContext(withUser(r.Context(), user)))
	}
}
