// ABOUTME: HTTP/JSON client for the academy backend API
// ABOUTME: Covers auth endpoints plus tools, courses, and contact resources

// Package api is the thin HTTP client the academy frontends use to reach the
// backend. Auth rejections surface as *session.AuthError so the session
// store can show the server's message; everything else is wrapped transport
// or *APIError status failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/luminalabs/academy/internal/courses"
	"github.com/luminalabs/academy/internal/session"
	"github.com/luminalabs/academy/internal/tools"
)

// ErrUnauthorized is returned for protected resources when no valid bearer
// token accompanies the request.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Client calls the academy backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  session.Identity `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (string, session.Identity, error) {
	return c.authenticate(ctx, "/auth/login", credentialsRequest{Email: email, Password: password})
}

// Signup registers an account; the response carries a session like Login.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, session.Identity, error) {
	return c.authenticate(ctx, "/auth/signup", credentialsRequest{Name: name, Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path string, creds credentialsRequest) (string, session.Identity, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", session.Identity{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", session.Identity{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", session.Identity{}, fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", session.Identity{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			return "", session.Identity{}, &session.AuthError{Message: er.Error}
		}
		return "", session.Identity{}, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	var ar authResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return "", session.Identity{}, fmt.Errorf("decoding response: %w", err)
	}
	// A 2xx without a token is still a failed authentication.
	if ar.Token == "" {
		return "", session.Identity{}, fmt.Errorf("%s: response missing token", path)
	}
	return ar.Token, ar.User, nil
}

// ListTools fetches the tools directory. Works unauthenticated; the backend
// may include extra fields for signed-in users.
func (c *Client) ListTools(ctx context.Context) ([]tools.Tool, error) {
	var out []tools.Tool
	if err := c.get(ctx, "/tools", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTool fetches a tool detail page. Protected: returns ErrUnauthorized
// without a valid session.
func (c *Client) GetTool(ctx context.Context, id string) (*tools.Tool, error) {
	var out tools.Tool
	if err := c.get(ctx, "/tools/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCourses fetches the published course catalog.
func (c *Client) ListCourses(ctx context.Context) ([]courses.Course, error) {
	var out []courses.Course
	if err := c.get(ctx, "/courses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCourse fetches a single course.
func (c *Client) GetCourse(ctx context.Context, id string) (*courses.Course, error) {
	var out courses.Course
	if err := c.get(ctx, "/courses/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact sends a contact form message.
func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contact", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.addAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling /contact: %w", err)
	}
	defer resp.Body.Close()
	return c.checkStatus(resp)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	c.addAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *Client) addAuth(req *http.Request) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	var er errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &er)
	return &APIError{Status: resp.StatusCode, Message: er.Error}
}
