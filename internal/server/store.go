// ABOUTME: SQLite persistence for the reference backend using modernc.org/sqlite
// ABOUTME: Holds users, the tools directory, the course catalog, and contact messages

package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/luminalabs/academy/internal/courses"
	"github.com/luminalabs/academy/internal/tools"
)

// Store errors
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// User is a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Identity is the public view of a User, as returned by the auth endpoints.
func (u *User) Identity() map[string]string {
	out := map[string]string{"id": u.ID, "email": u.Email}
	if u.Name != "" {
		out["name"] = u.Name
	}
	if u.Role != "" {
		out["role"] = u.Role
	}
	return out
}

// SQLiteStore persists backend state in a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tools (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			pricing TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			popularity INTEGER NOT NULL DEFAULT 0,
			added_at DATETIME NOT NULL,
			tags TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			level TEXT NOT NULL DEFAULT '',
			price_cents INTEGER NOT NULL DEFAULT 0,
			published INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS contact_messages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user. Returns ErrDuplicateEmail when the email is
// already registered.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByEmail looks up a user by email. Returns ErrNotFound when absent.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ?",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// GetUser looks up a user by ID. Returns ErrNotFound when absent.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = ?",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// SaveTool inserts or replaces a tool.
func (s *SQLiteStore) SaveTool(ctx context.Context, t *tools.Tool) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO tools (id, name, category, pricing, description, popularity, added_at, tags) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.Name, t.Category, t.Pricing, t.Description, t.Popularity, t.AddedAt, strings.Join(t.Tags, ","))
	if err != nil {
		return fmt.Errorf("saving tool: %w", err)
	}
	return nil
}

// ListTools returns all tools ordered by name.
func (s *SQLiteStore) ListTools(ctx context.Context) ([]tools.Tool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, pricing, description, popularity, added_at, tags FROM tools ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	defer rows.Close()

	var out []tools.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTool returns a single tool by ID. Returns ErrNotFound when absent.
func (s *SQLiteStore) GetTool(ctx context.Context, id string) (*tools.Tool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, pricing, description, popularity, added_at, tags FROM tools WHERE id = ?", id)
	t, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTool(row rowScanner) (tools.Tool, error) {
	var t tools.Tool
	var tags string
	if err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Pricing, &t.Description, &t.Popularity, &t.AddedAt, &tags); err != nil {
		return tools.Tool{}, err
	}
	if tags != "" {
		t.Tags = strings.Split(tags, ",")
	}
	return t, nil
}

// SaveCourse inserts or replaces a course.
func (s *SQLiteStore) SaveCourse(ctx context.Context, c *courses.Course) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO courses (id, title, category, level, price_cents, published, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.Title, c.Category, c.Level, c.PriceCents, c.Published, c.Description, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving course: %w", err)
	}
	return nil
}

// ListCourses returns all courses ordered by title.
func (s *SQLiteStore) ListCourses(ctx context.Context) ([]courses.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, category, level, price_cents, published, description, created_at FROM courses ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var out []courses.Course
	for rows.Next() {
		var c courses.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Category, &c.Level, &c.PriceCents, &c.Published, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCourse returns a single course by ID. Returns ErrNotFound when absent.
func (s *SQLiteStore) GetCourse(ctx context.Context, id string) (*courses.Course, error) {
	var c courses.Course
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, category, level, price_cents, published, description, created_at FROM courses WHERE id = ?",
		id).Scan(&c.ID, &c.Title, &c.Category, &c.Level, &c.PriceCents, &c.Published, &c.Description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying course: %w", err)
	}
	return &c, nil
}

// SaveContactMessage records a contact form submission.
func (s *SQLiteStore) SaveContactMessage(ctx context.Context, id, name, email, message string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contact_messages (id, name, email, message, created_at) VALUES (?, ?, ?, ?, ?)",
		id, name, email, message, time.Now())
	if err != nil {
		return fmt.Errorf("saving contact message: %w", err)
	}
	return nil
}
