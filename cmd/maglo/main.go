package main

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/maglo/maglo/internal/browser"
	"github.com/maglo/maglo/internal/config"
	maglog "github.com/maglo/maglo/internal/log"
	"github.com/maglo/maglo/internal/query"
	"github.com/maglo/maglo/internal/session"
	"github.com/maglo/maglo/internal/tui"
	"github.com/maglo/maglo/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	godotenv.Load() //nolint:errcheck // a missing .env file is the normal case

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("maglo " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "whoami":
			return runWhoami(store)
		case "logout":
			return runLogout(store)
		case "snapshot":
			return runSnapshot(cfg, store)
		case "locale":
			return runLocale(store, os.Args[2:])
		case "web":
			return runWeb(cfg)
		default:
			printHelp()
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	logger := maglog.Discard("tui")
	if cfg.LogFile != "" {
		// The TUI owns the terminal; logs must go to a file, never stderr.
		logger = maglog.NewFile(cfg.LogFile, "tui", slog.LevelInfo)
		defer logger.Close() //nolint:errcheck
	}

	c := client.NewWithTimeout(cfg.APIBaseURL, store.Token(), cfg.HTTPTimeout)
	app := tui.NewApp(c, store, dashConfig(cfg), logger)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func openStore(cfg *config.Config) (*session.Store, error) {
	if cfg.StateDir != "" {
		return session.New(cfg.StateDir), nil
	}
	return session.Open()
}

func dashConfig(cfg *config.Config) query.DashboardConfig {
	return query.DashboardConfig{
		RecentLimit:       cfg.RecentLimit,
		Retries:           cfg.RetryCount,
		RetryDelay:        cfg.RetryDelay,
		Backoff:           cfg.RetryBackoff,
		StaleSummary:      cfg.StaleSummary,
		StaleCapital:      cfg.StaleCapital,
		StaleWallets:      cfg.StaleWallets,
		StaleTransactions: cfg.StaleTransactions,
		StaleTransfers:    cfg.StaleTransfers,
	}
}

func runWhoami(store *session.Store) error {
	user := store.User()
	if !store.IsAuthenticated() || user == nil {
		fmt.Println("Not signed in. Run maglo and sign in first.")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.FullName, user.Email)
	return nil
}

func runLogout(store *session.Store) error {
	if !store.IsAuthenticated() {
		fmt.Println("Already signed out.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

// runLocale prints or sets the display locale used for date formatting.
func runLocale(store *session.Store, args []string) error {
	if len(args) == 0 {
		fmt.Println(store.Locale())
		return nil
	}
	tag := args[0]
	if !localeTagRe.MatchString(tag) {
		return fmt.Errorf("invalid locale tag %q, expected a form like en-US", tag)
	}
	if err := store.SetLocale(tag); err != nil {
		return fmt.Errorf("set locale: %w", err)
	}
	fmt.Println(tag)
	return nil
}

var localeTagRe = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)

// runWeb opens the hosted dashboard in a browser. The site lives at the API
// host with the /api suffix dropped.
func runWeb(cfg *config.Config) error {
	url := strings.TrimSuffix(cfg.APIBaseURL, "/api")
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}
