// ABOUTME: Interactive shell where auth-gated navigation resumes after login
// ABOUTME: REPL over the same commands as the one-shot CLI

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// runShell runs the interactive session. Gated navigation blocked inside the
// shell is remembered and resumed automatically after a successful login;
// the remembered destination lives only for the lifetime of the shell.
func (a *app) runShell() error {
	color.New(color.FgCyan).Print(banner)
	fmt.Println("Interactive session. Type 'help' for commands, 'quit' to exit.")
	a.printIdentityLine()

	for {
		line, err := a.prompt("academy> ")
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			printShellHelp()
		case "login":
			if err := a.shellLogin(args); err != nil {
				color.Red("%v\n", err)
			}
		case "signup":
			if err := a.shellSignup(args); err != nil {
				color.Red("%v\n", err)
			}
		case "logout":
			if err := a.cmdLogout(); err != nil {
				color.Red("%v\n", err)
			}
		case "whoami":
			if err := a.cmdWhoami(); err != nil {
				color.Red("%v\n", err)
			}
		case "tools":
			if err := a.listTools(args); err != nil {
				color.Red("%v\n", err)
			}
		case "open":
			if len(args) < 1 {
				fmt.Println("usage: open <tool-id>")
				continue
			}
			if err := a.showTool(args[0]); err != nil {
				color.Red("%v\n", err)
			}
		case "courses":
			if err := a.cmdCourses(args); err != nil {
				color.Red("%v\n", err)
			}
		default:
			fmt.Printf("Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func printShellHelp() {
	fmt.Println("Commands:")
	fmt.Println("  tools [flags]     List tools (--search, --category, --pricing, --sort)")
	fmt.Println("  open <id>         Open a tool detail page (sign-in required)")
	fmt.Println("  courses [flags]   List courses (--category, --level)")
	fmt.Println("  login [email]     Sign in")
	fmt.Println("  signup            Create an account")
	fmt.Println("  logout            Sign out")
	fmt.Println("  whoami            Show identity")
	fmt.Println("  quit              Exit")
}

// shellLogin signs in and then resumes whatever navigation was blocked by
// the gate, most recent destination winning.
func (a *app) shellLogin(args []string) error {
	if err := a.cmdLogin(args); err != nil {
		return err
	}
	return a.resumePending()
}

func (a *app) shellSignup(args []string) error {
	if err := a.cmdSignup(args); err != nil {
		return err
	}
	return a.resumePending()
}

// resumePending consumes the pending destination and navigates there. With
// nothing remembered it lands on the default view (the tools listing).
func (a *app) resumePending() error {
	dest := a.pending.Consume()

	if id, ok := strings.CutPrefix(dest, "/tools/"); ok {
		fmt.Printf("Resuming: %s\n", dest)
		return a.showTool(id)
	}
	// Generic landing: the tools listing.
	return a.listTools(nil)
}

func (a *app) printIdentityLine() {
	if id, ok := a.store.Current(); ok {
		color.Green("Signed in as %s\n", displayName(id))
		return
	}
	fmt.Println("Not signed in.")
}
