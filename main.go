// browserhome is a personal start page: a typed greeting, a live clock and
// widgets for the local weather, crypto prices and quick links.
//
// The page is built as an HTML document by a single event loop. It can be
// drawn in the terminal, served over HTTP, or printed once everything has
// loaded.
//
// Usage:
//
//	browserhome [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: ~/.config/browserhome/config.toml)
//	-serve          Serve the page over HTTP
//	-dump           Print the page as HTML once every widget has loaded
//	-o string       With -dump, write the page to this file instead of stdout
//	-use-mocks      Use canned data instead of real API calls (for testing)
//	-verbose        Enable verbose logging
//	-version        Print version and exit
//
// When stdout is not a terminal and -serve is not given, -dump is implied.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/crypto"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/links"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/weather"
	"gitlab.com/tinyland/lab/browserhome/pkg/config"
	"gitlab.com/tinyland/lab/browserhome/pkg/server"
	"gitlab.com/tinyland/lab/browserhome/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

type mode int

const (
	modeTUI mode = iota
	modeServe
	modeDump
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		serve       = flag.Bool("serve", false, "Serve the page over HTTP")
		dump        = flag.Bool("dump", false, "Print the page as HTML once every widget has loaded")
		output      = flag.String("o", "", "With -dump, write the page to this file instead of stdout")
		useMocks    = flag.Bool("use-mocks", false, "Use canned data instead of real API calls (for testing)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("browserhome %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Determine operation mode
	m := modeTUI
	switch {
	case *serve:
		m = modeServe
	case *dump, *output != "", !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()):
		m = modeDump
	}

	logger, closeLog, err := setupLogging(cfg.General, *verbose, m == modeTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	var registry *collectors.Registry
	if *useMocks {
		logger.Info("using mock data")
		registry, err = mockRegistry()
	} else {
		registry, err = buildRegistry(cfg, logger)
	}
	if err != nil {
		logger.Error("register collectors", "error", err)
		os.Exit(1)
	}
	page := buildWidgets(cfg, registry, logger)

	appCfg := app.DefaultConfig()
	appCfg.PageTitle = cfg.Header.PageTitle
	appCfg.Greeting = cfg.Header.Greeting
	appCfg.TypingDelay = cfg.Header.TypingDelay.Duration
	appCfg.GreetingSettle = cfg.Header.Settle.Duration
	appCfg.Logger = logger

	switch m {
	case modeTUI:
		appCfg.OpenURL = openInBrowser
		model := app.NewAppModelWithContext(ctx, appCfg, page...)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			logger.Error("TUI error", "error", err)
			os.Exit(1)
		}

	case modeServe:
		if err := runServer(ctx, cfg, appCfg, registry, page, logger); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}

	case modeDump:
		if err := runDump(ctx, appCfg, page, *output); err != nil {
			logger.Error("dump failed", "error", err)
			os.Exit(1)
		}
	}
}

// setupLogging builds the slog text logger. In TUI mode stderr belongs to
// the terminal UI, so log lines only go to the log file, if any.
func setupLogging(cfg config.GeneralConfig, verbose, tui bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	var writers []io.Writer
	if !tui {
		writers = append(writers, os.Stderr)
	}
	closeLog := func() {}
	if cfg.LogFile != "" {
		if err := ensureLogDir(cfg.LogFile); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closeLog = func() { f.Close() }
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	logger := slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closeLog, nil
}

func ensureLogDir(logFile string) error {
	dir := filepath.Dir(logFile)
	return os.MkdirAll(dir, 0755)
}

// buildRegistry registers a collector for every enabled widget. All of
// them share one paced HTTP client.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*collectors.Registry, error) {
	opts := []collectors.HTTPOption{
		collectors.WithHTTPClient(&http.Client{Timeout: cfg.General.RequestTimeout.Duration}),
		collectors.WithUserAgent(cfg.General.UserAgent),
	}
	if rps := cfg.General.RequestsPerSecond; rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		opts = append(opts, collectors.WithRateLimit(rate.Limit(rps), burst))
	}
	client := collectors.NewHTTPClient(opts...)

	registry := collectors.NewRegistry()

	if cfg.Weather.Enabled {
		var locator weather.Locator
		if cfg.Location.IPLocate {
			locator = weather.NewIPLocator(client, cfg.Location.IPLocateURL)
		}
		c := weather.New(weather.Config{
			ForecastURL: cfg.Weather.ForecastURL,
			GeocodeURL:  cfg.Weather.GeocodeURL,
			UserAgent:   cfg.Weather.UserAgent,
			Timezone:    cfg.Weather.Timezone,
			Fallback:    &weather.Coordinates{Latitude: cfg.Location.Latitude, Longitude: cfg.Location.Longitude},
			Locator:     locator,
			Interval:    cfg.Weather.Interval.Duration,
		}, client, logger)
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	if cfg.Crypto.Enabled {
		c := crypto.New(crypto.Config{
			TickerURL: cfg.Crypto.TickerURL,
			IDs:       cfg.Crypto.IDs,
			Interval:  cfg.Crypto.Interval.Duration,
		}, client, logger)
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	if cfg.Links.Enabled {
		if err := registry.Register(links.New(cfg.Links.Path, cfg.Links.Interval.Duration)); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// buildWidgets returns the page's widgets in display order. Disabled
// widgets keep their place as empty placeholders.
func buildWidgets(cfg *config.Config, registry *collectors.Registry, logger *slog.Logger) []app.Widget {
	enabled := func(name string) bool {
		_, ok := registry.Get(name)
		return ok
	}
	interval := func(name string) widgets.Option {
		if c, ok := registry.Get(name); ok {
			return widgets.WithInterval(c.Interval())
		}
		return widgets.WithInterval(0)
	}

	var page []app.Widget
	if enabled(weather.Name) {
		page = append(page, widgets.NewWeatherWidget(registry, interval(weather.Name), widgets.WithLogger(logger)))
	} else {
		page = append(page, app.NewPlaceholder(weather.Name, "Weather (disabled)"))
	}
	if enabled(crypto.Name) {
		page = append(page, widgets.NewCryptoWidget(registry, interval(crypto.Name), widgets.WithLogger(logger)))
	} else {
		page = append(page, app.NewPlaceholder(crypto.Name, "Crypto (disabled)"))
	}
	if enabled(links.Name) {
		page = append(page, widgets.NewLinksWidget(registry, interval(links.Name), widgets.WithLogger(logger)))
	} else {
		page = append(page, app.NewPlaceholder(links.Name, "Links (disabled)"))
	}
	return page
}

// runServer runs the page headless and serves its snapshots until ctx is
// cancelled.
func runServer(ctx context.Context, cfg *config.Config, appCfg app.Config, registry *collectors.Registry, page []app.Widget, logger *slog.Logger) error {
	var p *tea.Program
	srv := server.New(server.Options{
		Addr:       cfg.Server.Addr,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: cfg.Server.RateWindow.Duration,
		Version:    version,
		Logger:     logger,
		Refresh: func(id string) {
			go p.Send(app.RefreshEvent{Source: id})
		},
	}, registry)

	appCfg.Publish = srv.Publish
	model := app.NewAppModelWithContext(ctx, appCfg, page...)
	p = tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})
	return g.Wait()
}

// runDump runs the page headless until the greeting is typed and every
// widget has loaded once, then writes the HTML.
func runDump(ctx context.Context, appCfg app.Config, page []app.Widget, output string) error {
	appCfg.ExitWhenSettled = true
	model := app.NewAppModelWithContext(ctx, appCfg, page...)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	snap := final.(app.AppModel).Snapshot()

	if output != "" {
		return server.WriteHTMLFile(output, snap)
	}
	_, err = io.WriteString(os.Stdout, snap.HTML)
	return err
}
