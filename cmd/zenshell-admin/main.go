// ABOUTME: Operator CLI for the zenshell snippet library
// ABOUTME: Drives the action API and holds the client-side session state

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"

	"github.com/zenshell/zenshell/internal/client"
	"github.com/zenshell/zenshell/internal/session"
)

// adminConfig is the small TOML config for the CLI client.
type adminConfig struct {
	ServerURL string `toml:"server_url"`
	StatePath string `toml:"state_path"`
}

// getAdminConfigPath returns the path to the admin CLI config file.
// Priority: ZENSHELL_ADMIN_CONFIG env var > XDG_CONFIG_HOME/zenshell/admin.toml
func getAdminConfigPath() string {
	if envPath := os.Getenv("ZENSHELL_ADMIN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "admin.toml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "zenshell", "admin.toml")
}

// defaultStatePath returns where client session state is persisted.
func defaultStatePath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "session.json" // fallback
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, "zenshell", "session.json")
}

// loadAdminConfig reads the CLI config, falling back to defaults and
// honoring the ZENSHELL_URL override.
func loadAdminConfig() (*adminConfig, error) {
	cfg := &adminConfig{
		ServerURL: "http://127.0.0.1:8080",
		StatePath: defaultStatePath(),
	}

	path := getAdminConfigPath()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if url := os.Getenv("ZENSHELL_URL"); url != "" {
		cfg.ServerURL = url
	}
	if cfg.StatePath == "" {
		cfg.StatePath = defaultStatePath()
	}

	return cfg, nil
}

// cliContext bundles what every command needs: the API client, the resumed
// session state machine and where to persist it.
type cliContext struct {
	client    *client.Client
	session   *session.Session
	statePath string
	serverURL string
}

// newCLIContext builds the command context. The session state is computed
// once from the persisted trust flag, the share ids passed on the command
// line and the server's needs-setup report, exactly like a fresh page load.
func newCLIContext(ctx context.Context, shareIDs []string) (*cliContext, error) {
	cfg, err := loadAdminConfig()
	if err != nil {
		return nil, err
	}

	c := client.New(cfg.ServerURL)

	needsSetup, err := c.InitCheck(ctx)
	if err != nil {
		return nil, err
	}

	sf := session.LoadStateFile(cfg.StatePath)
	sess := session.Resume(sf.Trusted, sf.Token, shareIDs, needsSetup)
	if sess.Trusted() {
		c.SetToken(sess.Token())
	}

	return &cliContext{
		client:    c,
		session:   sess,
		statePath: cfg.StatePath,
		serverURL: cfg.ServerURL,
	}, nil
}

// persistSession writes the trust flag and token back to disk.
func (cc *cliContext) persistSession() error {
	if !cc.session.Trusted() {
		return session.ClearStateFile(cc.statePath)
	}
	return session.SaveStateFile(cc.statePath, &session.StateFile{
		Trusted: true,
		Token:   cc.session.Token(),
	})
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Println("zenshell-admin - operator CLI for the zenshell snippet library")
	fmt.Println()
	yellow.Println("Usage:")
	fmt.Println("  zenshell-admin <command> [flags]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  status                  Show server and session state")
	fmt.Println("  setup                   Run the one-time password bootstrap")
	fmt.Println("  login                   Verify the password and store the trust flag")
	fmt.Println("  logout                  Clear the trust flag (no server call)")
	fmt.Println("  list                    List visible snippets")
	fmt.Println("  add                     Add a snippet")
	fmt.Println("  remove                  Remove a snippet by id")
	fmt.Println("  share                   Print a share link for chosen snippet ids")
	fmt.Println("  export                  Export visible snippets as an HTML page")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  ZENSHELL_URL            Server URL (default: http://127.0.0.1:8080)")
	fmt.Println("  ZENSHELL_ADMIN_CONFIG   Path to admin.toml")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  zenshell-admin login")
	fmt.Println("  zenshell-admin list --query docker")
	fmt.Println("  zenshell-admin list --ids a1,b2    # view as a share-link visitor")
	fmt.Println("  zenshell-admin share a1 b2")
	fmt.Println()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "status":
		err = cmdStatus(ctx)
	case "setup":
		err = cmdSetup(ctx)
	case "login":
		err = cmdLogin(ctx)
	case "logout":
		err = cmdLogout(ctx)
	case "list":
		err = cmdList(ctx, args)
	case "add":
		err = cmdAdd(ctx, args)
	case "remove":
		err = cmdRemove(ctx, args)
	case "share":
		err = cmdShare(ctx, args)
	case "export":
		err = cmdExport(ctx, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
