package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reposweep/reposweep/internal/config"
	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/filter"
	"github.com/reposweep/reposweep/internal/forge"
	"github.com/reposweep/reposweep/internal/log"
	"github.com/reposweep/reposweep/internal/service"
	"github.com/reposweep/reposweep/internal/state"
	"github.com/reposweep/reposweep/internal/tui"
	"github.com/reposweep/reposweep/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("reposweep %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting reposweep", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	return launch(cfg, logger)
}

// launch wires the services and runs the TUI
func launch(cfg *config.Config, logger *slog.Logger) error {
	host, err := forge.NewHost(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	catalog := domain.NewCatalog()

	// Create services
	sessionSvc := service.NewSessionService(host, logger)
	catalogSvc := service.NewCatalogService(host, catalog, logger)
	sweepSvc := service.NewSweepService(host, sessionSvc, catalogSvc, catalog, cfg.Sweep.Delay, logger)

	// UI preferences; fall back to memory-only when the file is unusable
	prefs, err := state.NewStore(cfg.State.File)
	if err != nil {
		logger.Warn("preferences store unavailable", "error", err)
		prefs, _ = state.NewStore("")
	}
	defer prefs.Close()

	filters := filter.DefaultConfig()
	if saved, ok := prefs.LoadFilter(); ok {
		filters = saved
	}

	// Create TUI model
	model := tui.NewModel(sessionSvc, catalogSvc, sweepSvc, catalog, prefs, filters)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := finalModel.(tui.Model); ok && m.FatalErr != nil {
		if errors.Is(m.FatalErr, domain.ErrInvalidCredential) {
			// The stored token no longer works; wipe it and set up again
			if err := config.ClearForgeConfig(); err != nil {
				logger.Warn("failed to clear stored credentials", "error", err)
			}
			fmt.Println("The stored token was rejected by the server.")
			return runSetupFlow(cfg, logger)
		}
		return m.FatalErr
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when no token is available
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to reposweep!")
	fmt.Println()
	fmt.Println("You need a personal access token with the delete_repo scope.")
	fmt.Println("Create one at https://github.com/settings/tokens")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	// API base URL; empty keeps the default. Gitea and Forgejo instances
	// speak the same dialect, point this at their /api/v1 root.
	fmt.Printf("API base URL [%s]: ", config.DefaultGitHubAPI)
	urlInput, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	baseURL := strings.TrimSpace(urlInput)
	if baseURL == "" {
		baseURL = config.DefaultGitHubAPI
	}

	// Loop until a token verifies
	var account *domain.Account
	var token string
	for {
		fmt.Print("Personal access token: ")
		tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(string(tokenBytes))

		if token == "" {
			fmt.Println("Token cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		account, err = verifyWithSpinner(cfg, baseURL, token, logger)
		if err != nil {
			fmt.Printf("\n✗ Verification failed: %v\n", err)
			fmt.Println("Please check the token and try again.")
			fmt.Println()
			continue
		}
		break
	}

	fmt.Printf("✓ Token verified for @%s\n", account.Login)

	cfg.Forge.URL = baseURL
	cfg.Forge.Token = token

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	// The config file never holds the token unless explicitly requested
	fmt.Println()
	fmt.Print("Store the token in the config file? [y/N]: ")
	answer, _ := reader.ReadString('\n')
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
		if err := config.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Println("✓ Token saved.")
	} else {
		fmt.Println("Export REPOSWEEP_TOKEN in your environment before the next run.")
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run reposweep again to start the application.")

	return nil
}

// verifyWithSpinner checks the token against the API with a visual spinner
func verifyWithSpinner(cfg *config.Config, baseURL, token string, logger *slog.Logger) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	trial := *cfg
	trial.Forge.URL = baseURL
	trial.Forge.Token = token

	host, err := forge.NewHost(&trial, logger)
	if err != nil {
		return nil, err
	}

	// Channel to receive result
	type result struct {
		account *domain.Account
		err     error
	}
	resultCh := make(chan result, 1)

	// Start verification in background
	go func() {
		account, err := host.Verify(ctx)
		resultCh <- result{account, err}
	}()

	// Spinner animation
	frame := 0
	fmt.Printf("\r%s Verifying token...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			// Clear spinner line
			fmt.Print(clearSpinnerLine)

			if res.err != nil {
				return nil, res.err
			}
			return res.account, nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Verifying token...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return nil, fmt.Errorf("verification timed out")
		}
	}
}
