// ABOUTME: Tests for the backend API client against httptest servers
// ABOUTME: Covers auth response handling, bearer headers, and error mapping

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminalabs/academy/internal/session"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token": "t1",
			"user":  map[string]string{"id": "1", "email": "a@x.com", "name": "A"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, identity, err := c.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	assert.Equal(t, session.Identity{ID: "1", Email: "a@x.com", Name: "A"}, identity)
}

func TestLogin_RejectedCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, _, err := c.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	var ae *session.AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Invalid credentials", ae.Message)
}

func TestLogin_MissingTokenIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"id": "1", "email": "a@x.com"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, _, err := c.Login(context.Background(), "a@x.com", "secret")
	require.Error(t, err)

	var ae *session.AuthError
	assert.False(t, errors.As(err, &ae), "missing token is not a server rejection")
}

func TestLogin_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, _, err := c.Login(context.Background(), "a@x.com", "secret")
	require.Error(t, err)

	var ae *session.AuthError
	assert.False(t, errors.As(err, &ae))
}

func TestSignup_SendsName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "A", body["name"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token": "t2",
			"user":  map[string]string{"id": "2", "email": "a@x.com", "name": "A"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, identity, err := c.Signup(context.Background(), "A", "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t2", token)
	assert.Equal(t, "2", identity.ID)
}

func TestGetTool_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "42", "name": "PixelForge"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.GetTool(context.Background(), "42")
	require.ErrorIs(t, err, ErrUnauthorized)

	c.SetToken("t1")
	tool, err := c.GetTool(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "PixelForge", tool.Name)
}

func TestListTools_WorksUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","name":"DraftWriter"},{"id":"2","name":"PixelForge"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	list, err := c.ListTools(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListCourses_ServerErrorMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "database unavailable"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListCourses(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database unavailable", apiErr.Message)
}

func TestSubmitContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contact", r.URL.Path)
		var msg ContactMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "hello", msg.Message)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SubmitContact(context.Background(), ContactMessage{Name: "A", Email: "a@x.com", Message: "hello"})
	require.NoError(t, err)
}
