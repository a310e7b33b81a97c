package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/suhanovs/paintx-frontend/internal/adapter"
	"github.com/suhanovs/paintx-frontend/internal/adapter/backend"
	"github.com/suhanovs/paintx-frontend/internal/catalog"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/session"
	"github.com/suhanovs/paintx-frontend/internal/store"
	"github.com/suhanovs/paintx-frontend/internal/tui"
	"github.com/suhanovs/paintx-frontend/internal/visitor"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion, reset bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&reset, "reset", false, "forget the visitor identity before starting")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: paintx [flags] [listing-url]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "listing-url opens the catalog filtered, e.g. '/?search=birch&status=sold'\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("paintx %s\n", Version)
		return
	}

	if err := run(reset, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(reset bool, listing string) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting paintx", "version", Version, "backend", cfg.Backend.URL)

	if !cfg.IsConfigured() {
		return fmt.Errorf("no backend configured, set backend.url or PAINTX_BACKEND_URL")
	}

	initial, err := initialQuery(listing)
	if err != nil {
		return err
	}

	if reset {
		if err := adapter.ClearSession(cfg); err != nil {
			return err
		}
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger)
	identity := visitor.New(visitor.NewStoreJar(st), logger)
	sessions := session.New(st, logger)
	loader := catalog.NewLoader(client, identity, sessions, cfg.Browse.PageSize, logger)
	bus := catalog.NewBus(initial)

	commits := tui.NewChannelObserver[string](8)
	urls := catalog.NewURLSync(cfg.Browse.URLDebounce, commits.Notify)

	launcher := adapter.NewLauncher(cfg.Viewer.Command, cfg.Viewer.Args, logger)

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 0
	}

	model := tui.NewModel(tui.Deps{
		Backend:  client,
		Loader:   loader,
		Bus:      bus,
		Sessions: sessions,
		URLs:     urls,
		Commits:  commits,
		Tokens:   identity,
		Opener:   launcher,
		Images:   domain.NewImageURLs(cfg.Storefront.ImageBaseURL),
	}, tui.Options{
		SiteURL:      cfg.Storefront.SiteURL,
		NarrowWidth:  cfg.Browse.NarrowWidth,
		Lookahead:    cfg.Browse.LookaheadRows,
		RestoreDelay: cfg.Browse.RestoreDelay,
		InitialWidth: width,
	})
	defer model.Close()

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "url", urls.Current())
	return nil
}

// initialQuery decodes a storefront listing URL into the starting filter
func initialQuery(listing string) (domain.CatalogQuery, error) {
	if listing == "" {
		return domain.DefaultQuery(), nil
	}
	u, err := url.Parse(listing)
	if err != nil {
		return domain.CatalogQuery{}, fmt.Errorf("invalid listing url %q: %w", listing, err)
	}
	q, _ := domain.DecodeListing(u.Query())
	return q, nil
}
