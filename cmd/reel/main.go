package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/adapter/source"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "reel [address]",
		Short: "Browse the movie and TV catalog from the terminal",
		Long: "Browse trending, search, and keep a private watchlist.\n\n" +
			"An optional address opens a view directly, e.g. reel '?q=dune&id=438631'.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			address := ""
			if len(args) == 1 {
				address = args[0]
			}
			return runTUI(address)
		},
	}

	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(noteCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what every command needs: configuration and a logger
type app struct {
	cfg      *adapter.Config
	logger   *slog.Logger
	logClose io.Closer
}

func loadApp() (*app, error) {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		closer = nil
	}
	slog.SetDefault(logger)

	return &app{cfg: cfg, logger: logger, logClose: closer}, nil
}

func (a *app) Close() {
	if a.logClose != nil {
		a.logClose.Close()
	}
}

func (a *app) openStore() (*store.LocalStore, error) {
	st, err := store.NewLocalStore(a.cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

func (a *app) presenter() *service.Presenter {
	c := a.cfg.Catalog
	return service.NewPresenter(c.ImageBaseURL, c.BackdropBaseURL, c.WebBaseURL)
}

func (a *app) newBrowser(catalog domain.CatalogRepository, st domain.KeyValueStore,
	renderer domain.Renderer, scheduler domain.Scheduler) *service.Browser {
	return service.NewBrowser(service.BrowserConfig{
		Catalog:        catalog,
		Store:          st,
		Presenter:      a.presenter(),
		Renderer:       renderer,
		Scheduler:      scheduler,
		Logger:         a.logger,
		RequestTimeout: a.cfg.Catalog.RequestTimeout,
	})
}

func runTUI(address string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.logger
	logger.Info("starting reel", "version", Version)

	// Check if configured
	if !a.cfg.IsConfigured() {
		return runSetupFlow(a.cfg, logger)
	}

	catalog, err := source.NewClientFromConfig(a.cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	styles.UseTheme(a.cfg.UI.Theme)

	screen := tui.NewScreen()
	browser := a.newBrowser(catalog, st, screen, screen)

	model := tui.NewModel(tui.Options{
		Browser:         browser,
		Screen:          screen,
		Session:         service.NewSessionService(logger),
		Opener:          adapter.NewOpener(a.cfg.UI.Browser, logger),
		StartAddress:    address,
		ScrollThreshold: a.cfg.UI.ScrollThreshold,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI", "address", address)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Reel!")

	authFlow := source.NewAuthFlow(cfg, logger)

	result, err := authFlow.Run(context.Background())
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	// Save credentials
	cfg.Catalog.APIKey = result.APIKey

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run reel again to start the application.")

	return nil
}
