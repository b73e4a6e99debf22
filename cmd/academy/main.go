// ABOUTME: Academy CLI client for the course catalog and AI tools directory
// ABOUTME: Manages the local session and auth-gated navigation

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/luminalabs/academy/internal/api"
	"github.com/luminalabs/academy/internal/gate"
	"github.com/luminalabs/academy/internal/session"
)

const banner = `
                     _
  __ _  ___ __ _  __| | ___ _ __ ___  _   _
 / _' |/ __/ _' |/ _' |/ _ \ '_ ' _ \| | | |
| (_| | (_| (_| | (_| |  __/ | | | | | |_| |
 \__,_|\___\__,_|\__,_|\___|_| |_| |_|\__, |
                                      |___/
`

// app bundles the pieces every command needs.
type app struct {
	cfg     *Config
	client  *api.Client
	store   *session.Store
	storage *session.SQLiteStorage
	pending gate.Pending
	in      *bufio.Reader
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := LoadConfig()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(cfg)
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "login":
		err = a.cmdLogin(args)
	case "signup":
		err = a.cmdSignup(args)
	case "logout":
		err = a.cmdLogout()
	case "whoami":
		err = a.cmdWhoami()
	case "tools":
		err = a.cmdTools(args)
	case "courses":
		err = a.cmdCourses(args)
	case "contact":
		err = a.cmdContact(args)
	case "shell":
		err = a.runShell()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: academy <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login [email]             Sign in and persist the session")
	fmt.Println("  signup [name] [email]     Create an account (signs you in)")
	fmt.Println("  logout                    Clear the persisted session")
	fmt.Println("  whoami                    Show the signed-in identity")
	fmt.Println("  tools [list]              Browse the AI tools directory")
	fmt.Println("  tools show <id>           Show a tool detail page (sign-in required)")
	fmt.Println("  courses                   Browse the course catalog")
	fmt.Println("  contact                   Send a message to the academy team")
	fmt.Println("  shell                     Interactive session")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  ACADEMY_SERVER_URL        Backend base URL (overrides config)")
	fmt.Println("  ACADEMY_CONFIG            Config file path (default: ~/.config/academy/config.toml)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  academy login demo@academy.example")
	fmt.Println("  academy tools list --category coding --sort popularity")
	fmt.Println("  academy tools show 3f2a...")
	fmt.Println()
}

func newApp(cfg *Config) (*app, error) {
	storage, err := session.NewSQLiteStorage(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("opening session storage: %w", err)
	}

	client := api.NewClient(cfg.ServerURL)
	store := session.New(storage, client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Initialize(ctx); err != nil {
		storage.Close()
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	// Attach the restored token so catalog calls are authenticated.
	client.SetToken(store.Token())

	return &app{
		cfg:     cfg,
		client:  client,
		store:   store,
		storage: storage,
		in:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *app) Close() {
	a.storage.Close()
}

// identity returns the current identity as the gate expects it: a pointer
// when authenticated, nil otherwise.
func (a *app) identity() *session.Identity {
	id, ok := a.store.Current()
	if !ok {
		return nil
	}
	return &id
}

func (a *app) prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) cmdLogin(args []string) error {
	var email string
	var err error
	if len(args) > 0 {
		email = args[0]
	} else if email, err = a.prompt("Email: "); err != nil {
		return err
	}
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	res := a.store.Login(context.Background(), email, password)
	if !res.OK {
		return errors.New(res.Message)
	}
	a.client.SetToken(a.store.Token())
	color.Green("Signed in as %s\n", displayName(res.Identity))
	return nil
}

func (a *app) cmdSignup(args []string) error {
	var name, email string
	var err error
	if len(args) > 0 {
		name = args[0]
	} else if name, err = a.prompt("Name: "); err != nil {
		return err
	}
	if len(args) > 1 {
		email = args[1]
	} else if email, err = a.prompt("Email: "); err != nil {
		return err
	}
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	res := a.store.Signup(context.Background(), name, email, password)
	if !res.OK {
		return errors.New(res.Message)
	}
	a.client.SetToken(a.store.Token())
	color.Green("Account created. Signed in as %s\n", displayName(res.Identity))
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.store.Logout(); err != nil {
		return err
	}
	a.client.SetToken("")
	fmt.Println("Signed out.")
	return nil
}

func (a *app) cmdWhoami() error {
	id, ok := a.store.Current()
	if !ok {
		fmt.Println("Not signed in. Run: academy login")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", id.ID)
	fmt.Fprintf(w, "Email:\t%s\n", id.Email)
	if id.Name != "" {
		fmt.Fprintf(w, "Name:\t%s\n", id.Name)
	}
	if id.Role != "" {
		fmt.Fprintf(w, "Role:\t%s\n", id.Role)
	}
	return w.Flush()
}

func (a *app) cmdContact(args []string) error {
	name, err := a.prompt("Name: ")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email: ")
	if err != nil {
		return err
	}
	message, err := a.prompt("Message: ")
	if err != nil {
		return err
	}
	if err := a.client.SubmitContact(context.Background(), api.ContactMessage{
		Name: name, Email: email, Message: message,
	}); err != nil {
		return err
	}
	color.Green("Message sent.\n")
	return nil
}

func displayName(id session.Identity) string {
	if id.Name != "" {
		return id.Name
	}
	return id.Email
}
