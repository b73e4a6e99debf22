// ABOUTME: HTTP server for the academy reference backend
// ABOUTME: Wires auth, catalog, contact, and marketing page routes

// Package server implements the reference backend the academy client talks
// to. It exposes exactly the wire shape the client consumes: the auth
// endpoints returning {token, user} / {error}, the tools and courses
// catalogs, the contact form, and the markdown-backed marketing pages.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/luminalabs/academy/internal/courses"
	"github.com/luminalabs/academy/internal/token"
	"github.com/luminalabs/academy/internal/tools"
)

// Server handles backend routes.
type Server struct {
	store    *SQLiteStore
	verifier *token.JWTVerifier
	tokenTTL time.Duration
	logger   *slog.Logger
}

// New creates a Server backed by store, issuing tokens valid for tokenTTL.
func New(store *SQLiteStore, verifier *token.JWTVerifier, tokenTTL time.Duration) *Server {
	return &Server{
		store:    store,
		verifier: verifier,
		tokenTTL: tokenTTL,
		logger:   slog.Default().With("component", "server"),
	}
}

// Routes returns the configured mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Auth (public)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/signup", s.handleSignup)

	// Catalog. The tools listing is public; tool detail pages are gated.
	mux.HandleFunc("GET /tools", s.optionalAuth(s.handleListTools))
	mux.HandleFunc("GET /tools/{id}", s.requireAuth(s.handleGetTool))
	mux.HandleFunc("GET /courses", s.handleListCourses)
	mux.HandleFunc("GET /courses/{id}", s.handleGetCourse)

	mux.HandleFunc("POST /contact", s.handleContact)
	mux.HandleFunc("GET /me", s.requireAuth(s.handleMe))

	// Marketing pages
	mux.HandleFunc("GET /about", s.handlePage("about.md"))
	mux.HandleFunc("GET /blog", s.handleBlogIndex)
	mux.HandleFunc("GET /blog/{slug}", s.handleBlogPost)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListTools(r.Context())
	if err != nil {
		s.logger.Error("listing tools", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}
	if list == nil {
		list = []tools.Tool{} // keep the JSON array shape
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTool(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "tool not found")
			return
		}
		s.logger.Error("getting tool", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListCourses(r.Context())
	if err != nil {
		s.logger.Error("listing courses", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}
	// Only published courses are visible in the public catalog.
	published := make([]courses.Course, 0, len(list))
	for _, c := range list {
		if c.Published {
			published = append(published, c)
		}
	}
	writeJSON(w, http.StatusOK, published)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCourse(r.Context(), r.PathValue("id"))
	if err != nil || !c.Published {
		if err != nil && !errors.Is(err, ErrNotFound) {
			s.logger.Error("getting course", "error", err)
			writeError(w, http.StatusInternalServerError, "An error occurred")
			return
		}
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var msg contactRequest
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg.Email == "" || msg.Message == "" {
		writeError(w, http.StatusBadRequest, "email and message required")
		return
	}
	if err := s.store.SaveContactMessage(r.Context(), uuid.New().String(), msg.Name, msg.Email, msg.Message); err != nil {
		s.logger.Error("saving contact message", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}

// handleMe returns the authenticated user's identity.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, user.Identity())
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeError sends a JSON {error} response with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
