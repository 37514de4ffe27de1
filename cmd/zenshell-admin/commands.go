// ABOUTME: Command implementations for the zenshell-admin CLI
// ABOUTME: Each verb maps onto the action API plus the client session machine

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/zenshell/zenshell/internal/document"
	"github.com/zenshell/zenshell/internal/export"
	"github.com/zenshell/zenshell/internal/session"
	"github.com/zenshell/zenshell/internal/view"
)

// promptPassword reads a password without echo.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func cmdStatus(ctx context.Context) error {
	cc, err := newCLIContext(ctx, nil)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	cyan.Println("Server")
	fmt.Printf("  URL:    %s\n", cc.serverURL)
	fmt.Printf("  Setup:  %v\n", cc.session.State() == session.StateBootstrapping)
	fmt.Println()
	cyan.Println("Session")
	green.Printf("  State:  %s\n", cc.session.State())
	return nil
}

func cmdSetup(ctx context.Context) error {
	cc, err := newCLIContext(ctx, nil)
	if err != nil {
		return err
	}

	if cc.session.State() != session.StateBootstrapping {
		return fmt.Errorf("server already has a password; use login")
	}

	password, err := promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	token, err := cc.client.Setup(ctx, password)
	if err != nil {
		return err
	}

	cc.session.Authenticated(token)
	if err := cc.persistSession(); err != nil {
		return err
	}

	color.Green("Password set; you are now logged in.")
	return nil
}

func cmdLogin(ctx context.Context) error {
	cc, err := newCLIContext(ctx, nil)
	if err != nil {
		return err
	}

	if cc.session.State() == session.StateBootstrapping {
		return fmt.Errorf("server has no password yet; run setup first")
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	token, err := cc.client.Login(ctx, password)
	if err != nil {
		// A rejected credential drops any previously held trust flag.
		cc.session.Logout()
		_ = cc.persistSession()
		return err
	}

	cc.session.Authenticated(token)
	if err := cc.persistSession(); err != nil {
		return err
	}

	color.Green("Logged in.")
	return nil
}

// cmdLogout clears the trust flag locally. No server call is made: sessions
// are client-held by design.
func cmdLogout(_ context.Context) error {
	cfg, err := loadAdminConfig()
	if err != nil {
		return err
	}
	if err := session.ClearStateFile(cfg.StatePath); err != nil {
		return err
	}
	color.Green("Logged out.")
	return nil
}

// visibleSnippets fetches the collection and applies the capability rules
// and optional query narrowing for the current session.
func visibleSnippets(ctx context.Context, cc *cliContext, query string) ([]document.Snippet, error) {
	scripts, err := cc.client.GetData(ctx)
	if err != nil {
		return nil, err
	}

	visible := view.Visible(scripts, cc.session.ShareIDs(), cc.session.Trusted())
	return view.Narrow(visible, query), nil
}

func cmdList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	ids := fs.String("ids", "", "comma-separated share-link ids to view as")
	query := fs.String("query", "", "free-text filter over title, description and tags")
	long := fs.Bool("long", false, "show commands and descriptions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cc, err := newCLIContext(ctx, view.ParseShareIDs(*ids))
	if err != nil {
		return err
	}

	if cc.session.State() == session.StateLocked {
		fmt.Println("Library is locked. Log in or pass --ids from a share link.")
		return nil
	}

	snippets, err := visibleSnippets(ctx, cc, *query)
	if err != nil {
		return err
	}

	if len(snippets) == 0 {
		fmt.Println("No snippets visible.")
		return nil
	}

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	for _, s := range snippets {
		cyan.Printf("%s", s.Title)
		gray.Printf("  [%s]", s.ID)
		if len(s.Tags) > 0 {
			gray.Printf("  #%s", strings.Join(s.Tags, " #"))
		}
		fmt.Println()
		if *long {
			if s.Description != "" {
				fmt.Printf("  %s\n", s.Description)
			}
			fmt.Printf("  $ %s\n", s.Command)
			if s.CreatedAt > 0 {
				gray.Printf("  created %s\n", time.UnixMilli(s.CreatedAt).Format("2006-01-02"))
			}
		}
	}
	return nil
}

func cmdAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	title := fs.String("title", "", "display name (required)")
	command := fs.String("command", "", "command text (required)")
	description := fs.String("description", "", "free-text description")
	tags := fs.String("tags", "", "comma-separated tags")
	image := fs.String("image", "", "cover image URL")
	sourceName := fs.String("source-name", "", "attribution name")
	sourceURL := fs.String("source-url", "", "attribution URL")
	wrap := fs.Bool("wrap", false, "wrap long command lines when rendered")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cc, err := newCLIContext(ctx, nil)
	if err != nil {
		return err
	}
	if !cc.session.CanWrite() {
		return fmt.Errorf("not logged in")
	}

	snippet := document.Snippet{
		Title:       *title,
		Command:     *command,
		Description: *description,
		Tags:        splitTags(*tags),
		Image:       *image,
		WrapCode:    *wrap,
	}
	if *sourceName != "" || *sourceURL != "" {
		snippet.Source = &document.Source{Name: *sourceName, URL: *sourceURL}
	}

	scripts, err := cc.client.GetData(ctx)
	if err != nil {
		return err
	}

	// New snippets go first, matching the library's display order.
	updated := append([]document.Snippet{snippet}, scripts...)
	if err := cc.client.SaveData(ctx, updated); err != nil {
		return err
	}

	color.Green("Added %q.", *title)
	return nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func cmdRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	id := fs.String("id", "", "snippet id to remove (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	cc, err := newCLIContext(ctx, nil)
	if err != nil {
		return err
	}
	if !cc.session.CanWrite() {
		return fmt.Errorf("not logged in")
	}

	scripts, err := cc.client.GetData(ctx)
	if err != nil {
		return err
	}

	updated := make([]document.Snippet, 0, len(scripts))
	found := false
	for _, s := range scripts {
		if s.ID == *id {
			found = true
			continue
		}
		updated = append(updated, s)
	}
	if !found {
		return fmt.Errorf("no snippet with id %s", *id)
	}

	if err := cc.client.SaveData(ctx, updated); err != nil {
		return err
	}

	color.Green("Removed %s.", *id)
	return nil
}

// cmdShare prints a capability link for the given snippet ids. The link is
// pure query parameter; the server has no share endpoint.
func cmdShare(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: zenshell-admin share <id> [id...]")
	}

	cc, err := newCLIContext(ctx, nil)
	if err != nil {
		return err
	}

	scripts, err := cc.client.GetData(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(scripts))
	for _, s := range scripts {
		known[s.ID] = struct{}{}
	}
	for _, id := range args {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("no snippet with id %s", id)
		}
	}

	fmt.Printf("%s/?%s=%s\n", cc.serverURL, view.ShareParam, view.EncodeShareIDs(args))
	return nil
}

func cmdExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", "library.html", "output file")
	ids := fs.String("ids", "", "comma-separated ids to export as a share-link view")
	query := fs.String("query", "", "free-text filter")
	title := fs.String("title", "Zen Shell Library", "page title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cc, err := newCLIContext(ctx, view.ParseShareIDs(*ids))
	if err != nil {
		return err
	}

	if cc.session.State() == session.StateLocked {
		return fmt.Errorf("library is locked; log in or pass --ids")
	}

	snippets, err := visibleSnippets(ctx, cc, *query)
	if err != nil {
		return err
	}

	page, err := export.Render(*title, snippets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, page, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}

	color.Green("Exported %d snippets to %s.", len(snippets), *out)
	return nil
}
