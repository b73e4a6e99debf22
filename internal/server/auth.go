// ABOUTME: Login and signup handlers for the reference backend
// ABOUTME: Verifies bcrypt password hashes and issues HS256 session tokens

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared when a user does not exist so that login timing does
// not reveal which emails are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin implements POST /auth/login. Success responds {token, user};
// failure responds {error} with a non-2xx status.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Constant-time-ish path for unknown emails.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error("looking up user", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.issueSession(w, user)
}

// handleSignup implements POST /auth/signup. A successful signup grants a
// session immediately, with the same response shape as login.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		s.logger.Error("creating user", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}

	s.logger.Info("user registered", "user_id", user.ID)
	s.issueSession(w, user)
}

// issueSession mints a token for user and writes the {token, user} response.
func (s *Server) issueSession(w http.ResponseWriter, user *User) {
	tok, err := s.verifier.Generate(user.ID, s.tokenTTL)
	if err != nil {
		s.logger.Error("generating token", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": tok,
		"user":  user.Identity(),
	})
}
