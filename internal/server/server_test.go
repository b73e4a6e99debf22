// ABOUTME: End-to-end tests for the reference backend routes
// ABOUTME: Exercises the auth wire shape with the real client and session store

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminalabs/academy/internal/api"
	"github.com/luminalabs/academy/internal/courses"
	"github.com/luminalabs/academy/internal/session"
	"github.com/luminalabs/academy/internal/token"
)

func courseFixture(title string, published bool) *courses.Course {
	return &courses.Course{
		ID:        "course-" + strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Title:     title,
		Category:  "ai",
		Level:     courses.LevelBeginner,
		Published: published,
		CreatedAt: time.Now(),
	}
}

var testSecret = []byte("academy-server-test-secret-32byt")

func newTestServer(t *testing.T) (*httptest.Server, *SQLiteStore) {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "academy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(context.Background()))

	verifier, err := token.NewJWTVerifier(testSecret)
	require.NoError(t, err)

	srv := httptest.NewServer(New(store, verifier, time.Hour).Routes())
	t.Cleanup(srv.Close)
	return srv, store
}

func TestSignupThenLogin_WireShape(t *testing.T) {
	srv, _ := newTestServer(t)

	body := strings.NewReader(`{"name":"A","email":"a@x.com","password":"longenough"}`)
	resp, err := http.Post(srv.URL+"/auth/signup", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string            `json:"token"`
		User  map[string]string `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.User["id"])
	assert.Equal(t, "a@x.com", out.User["email"])
	assert.Equal(t, "A", out.User["name"])

	// Same credentials log in.
	resp2, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"a@x.com","password":"longenough"}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestLogin_InvalidCredentialsShape(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"nobody@x.com","password":"whatever"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var er struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
	assert.Equal(t, "Invalid credentials", er.Error)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := `{"name":"A","email":"dup@x.com","password":"longenough"}`
	resp, err := http.Post(srv.URL+"/auth/signup", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()

	resp2, err := http.Post(srv.URL+"/auth/signup", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)
}

func TestToolDetail_Gated(t *testing.T) {
	srv, store := newTestServer(t)

	list, err := store.ListTools(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list)
	id := list[0].ID

	// Anonymous request is rejected.
	resp, err := http.Get(srv.URL + "/tools/" + id)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated request succeeds.
	client := api.NewClient(srv.URL)
	tok, _, err := client.Login(context.Background(), DemoEmail, DemoPassword)
	require.NoError(t, err)
	client.SetToken(tok)

	tool, err := client.GetTool(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, list[0].Name, tool.Name)
}

func TestToolsListing_Public(t *testing.T) {
	srv, _ := newTestServer(t)

	client := api.NewClient(srv.URL)
	list, err := client.ListTools(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}

func TestCourses_PublishedOnly(t *testing.T) {
	srv, store := newTestServer(t)

	draft := courseFixture("Draft Course", false)
	require.NoError(t, store.SaveCourse(context.Background(), draft))

	client := api.NewClient(srv.URL)
	list, err := client.ListCourses(context.Background())
	require.NoError(t, err)
	for _, c := range list {
		assert.True(t, c.Published, "unpublished course %q leaked", c.Title)
	}

	_, err = client.GetCourse(context.Background(), draft.ID)
	require.Error(t, err)
}

func TestSessionStore_EndToEndRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	client := api.NewClient(srv.URL)
	storage := session.NewMemoryStorage()

	s := session.New(storage, client)
	require.NoError(t, s.Initialize(context.Background()))

	res := s.Login(context.Background(), DemoEmail, DemoPassword)
	require.True(t, res.OK, "login failed: %s", res.Message)
	assert.Equal(t, DemoEmail, res.Identity.Email)

	// Fresh store over the same storage: identity survives the reload and
	// the issued JWT is within its validity window.
	reloaded := session.New(storage, client)
	require.NoError(t, reloaded.Initialize(context.Background()))
	current, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, res.Identity, current)
}

func TestSessionStore_EndToEndRejection(t *testing.T) {
	srv, _ := newTestServer(t)

	s := session.New(session.NewMemoryStorage(), api.NewClient(srv.URL))
	require.NoError(t, s.Initialize(context.Background()))

	res := s.Login(context.Background(), DemoEmail, "wrong-password")
	require.False(t, res.OK)
	assert.Equal(t, "Invalid credentials", res.Message)
}

func TestContactForm(t *testing.T) {
	srv, _ := newTestServer(t)

	client := api.NewClient(srv.URL)
	err := client.SubmitContact(context.Background(), api.ContactMessage{
		Name: "A", Email: "a@x.com", Message: "hello",
	})
	require.NoError(t, err)
}

func TestMarketingPages(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/about")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp2, err := http.Get(srv.URL + "/blog/welcome")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	resp3, err := http.Get(srv.URL + "/blog/../../etc/passwd")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestBlogIndex_LinksPosts(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/blog")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/blog/welcome")
}
