// ABOUTME: Entry point for the zenshell snippet library server
// ABOUTME: Serves the action API over HTTP backed by the document store

package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/zenshell/zenshell/internal/auth"
	"github.com/zenshell/zenshell/internal/config"
	"github.com/zenshell/zenshell/internal/server"
	"github.com/zenshell/zenshell/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                     _          _ _
  ______ _ _  ___ __| |_  ___ | | |
 |_ / -_) ' \(_-< ' \/ -_) |  | | |
 /__\___|_||_/__/_||_\___|_|  |_|_|
`

// getConfigPath returns the path to the server config file.
// Priority: ZENSHELL_CONFIG env var > XDG_CONFIG_HOME/zenshell/server.yaml > ~/.config/zenshell/server.yaml
func getConfigPath() string {
	if envPath := os.Getenv("ZENSHELL_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "server.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "zenshell", "server.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: zenshell <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the snippet library server")
		fmt.Println("  init     Create a new config file interactively")
		fmt.Println("  health   Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:  %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:    %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Store:   %s (%s)\n", cfg.Store.Path, cfg.Store.Backend)
	fmt.Println()

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	secret := []byte(cfg.Auth.JWTSecret)
	if len(secret) == 0 {
		// Ephemeral secret: issued tokens die with the process. Fine for a
		// single operator, but a configured secret survives restarts.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generating session secret: %w", err)
		}
		logger.Warn("auth.jwt_secret not set, using ephemeral secret; sessions will not survive restarts")
	}

	gate := auth.NewGate(st)
	issuer := auth.NewIssuer(secret)

	srv := server.New(st, gate, issuer, server.Options{
		SessionTTL: cfg.Auth.SessionTTL,
		MaxTags:    cfg.Limits.MaxTags,
	})

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(cfg.Store.Path)
	default:
		return store.NewFileStore(cfg.Store.Path, store.WithSkipGuard(cfg.Store.SkipGuard)), nil
	}
}

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	reader := bufio.NewReader(os.Stdin)

	httpAddr := prompt(reader, "HTTP listen address", "127.0.0.1:8080")
	backend := prompt(reader, "Store backend (json/sqlite)", "json")
	defaultPath := "data.json"
	if backend == "sqlite" {
		defaultPath = "library.db"
	}
	dataPath := prompt(reader, "Data path", defaultPath)

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("generating session secret: %w", err)
	}

	content := fmt.Sprintf(`server:
  http_addr: %q

store:
  backend: %q
  path: %q
  skip_guard: false

auth:
  jwt_secret: %q
  session_ttl: 12h

limits:
  max_tags: 3

logging:
  level: info
  format: text
`, httpAddr, backend, dataPath, base64.StdEncoding.EncodeToString(secret))

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Config written to %s\n", configPath)
	return nil
}

func prompt(reader *bufio.Reader, label, fallback string) string {
	fmt.Printf("%s [%s]: ", label, fallback)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}
