// ABOUTME: Catalog commands: browsing tools and courses from the CLI
// ABOUTME: Applies client-side filtering/sorting and gates tool detail pages

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/luminalabs/academy/internal/api"
	"github.com/luminalabs/academy/internal/courses"
	"github.com/luminalabs/academy/internal/gate"
	"github.com/luminalabs/academy/internal/tools"
)

func (a *app) cmdTools(args []string) error {
	if len(args) == 0 {
		return a.listTools(nil)
	}
	switch args[0] {
	case "list":
		return a.listTools(args[1:])
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: academy tools show <id>")
		}
		return a.showTool(args[1])
	default:
		// Bare filter flags: academy tools --category coding
		if strings.HasPrefix(args[0], "-") {
			return a.listTools(args)
		}
		return fmt.Errorf("unknown tools subcommand: %s", args[0])
	}
}

func (a *app) listTools(args []string) error {
	fs := flag.NewFlagSet("tools list", flag.ContinueOnError)
	search := fs.String("search", "", "substring match on name, description, tags")
	category := fs.String("category", "", "filter by category")
	pricing := fs.String("pricing", "", "filter by pricing (free|freemium|paid)")
	sortKey := fs.String("sort", "name", "sort order (name|popularity|newest)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.client.ListTools(context.Background())
	if err != nil {
		return err
	}

	// Filtering and sorting happen client-side over the fetched list, so
	// repeated narrowing doesn't re-query the backend.
	list = tools.Filter(list, tools.Query{
		Search:   *search,
		Category: *category,
		Pricing:  *pricing,
	})
	tools.Sort(list, tools.SortKey(*sortKey))

	if len(list) == 0 {
		fmt.Println("No tools match.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICING\tPOPULARITY")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", t.ID, t.Name, t.Category, t.Pricing, t.Popularity)
	}
	return w.Flush()
}

// showTool renders a tool detail page. Detail pages are protected: when no
// session exists the gate blocks and the user is pointed at login, with the
// destination remembered for shell-mode resumption.
func (a *app) showTool(id string) error {
	dest := "/tools/" + id
	if d := gate.Guard(dest, a.identity()); !d.Allowed {
		a.pending.Remember(d.Destination)
		color.Yellow("Sign in to view tool details.\n")
		fmt.Println("Run 'login' (shell) or 'academy login' and try again.")
		return nil
	}

	t, err := a.client.GetTool(context.Background(), id)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			// Stored session no longer accepted by the backend.
			color.Yellow("Your session has expired. Run 'academy login'.\n")
			return nil
		}
		return err
	}

	bold := color.New(color.Bold)
	bold.Println(t.Name)
	fmt.Printf("Category: %s    Pricing: %s    Popularity: %d\n", t.Category, t.Pricing, t.Popularity)
	if len(t.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Description != "" {
		fmt.Println()
		fmt.Println(t.Description)
	}
	return nil
}

func (a *app) cmdCourses(args []string) error {
	fs := flag.NewFlagSet("courses", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category")
	level := fs.String("level", "", "filter by level (beginner|intermediate|advanced)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.client.ListCourses(context.Background())
	if err != nil {
		return err
	}

	filtered := courses.Catalog(list, courses.Query{Category: *category, Level: *level})
	if len(filtered) == 0 {
		fmt.Println("No courses match.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLEVEL\tPRICE")
	for _, c := range filtered {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Category, c.Level, c.FormatPrice())
	}
	return w.Flush()
}
