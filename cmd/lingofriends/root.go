package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lingofriends/internal/api"
	"lingofriends/internal/cache"
	"lingofriends/internal/config"
	"lingofriends/internal/logging"
	"lingofriends/internal/nav"
	"lingofriends/internal/telemetry"
	"lingofriends/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 5 * time.Second

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	apiURL     string
	webURL     string
	token      string
	logFile    string
	noCache    bool
	debug      bool
}

// newRootCmd builds the command tree. progOpts are passed to the UI program.
func newRootCmd(getenv func(string) string, progOpts ...tea.ProgramOption) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "lingofriends",
		Short: "Browse and search your language-exchange friends",
		Long: `lingofriends shows the friends of the signed-in user as a searchable
grid of cards. Typing in the search bar filters by name, location, native
language and learning language. Choosing a card's Message action opens the
chat destination for that friend.

The last fetched list is cached on disk and shown immediately on start while
a fresh copy is fetched.`,
		Version: version,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. failed fetches)
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, getenv, progOpts...)
		},
	}
	cmd.SetVersionTemplate(`{{printf "lingofriends version %s\n" .Version}}`)

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default is <config dir>/lingofriends/config.yaml)")
	f.StringVar(&opts.apiURL, "api-url", "", "backend base URL")
	f.StringVar(&opts.webURL, "web-url", "", "web app base URL used for chat links")
	f.StringVar(&opts.token, "token", "", "session token (prefer "+config.TokenEnv+")")
	f.StringVar(&opts.logFile, "log-file", "", `log file path, "-" disables logging`)
	f.BoolVar(&opts.noCache, "no-cache", false, "do not read or write the friends cache")
	f.BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(newListCmd(opts, getenv))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig layers the config file and environment, then the flags the user set.
func loadConfig(cmd *cobra.Command, opts *rootOptions, getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(opts.configPath, getenv)
	if err != nil {
		return config.Config{}, err
	}
	var overlay config.Config
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		overlay.APIURL = opts.apiURL
	}
	if flags.Changed("web-url") {
		overlay.WebURL = opts.webURL
	}
	if flags.Changed("token") {
		overlay.Token = opts.token
	}
	if flags.Changed("log-file") {
		overlay.LogFile = opts.logFile
	}
	overlay.Cache.Disabled = opts.noCache
	cfg = config.Merge(cfg, overlay)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runtime bundles everything a command needs to talk to the backend.
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	client  *api.Client
	router  *nav.Router
	store   *cache.Store
	closers []func(context.Context) error
}

func setup(ctx context.Context, cmd *cobra.Command, opts *rootOptions, getenv func(string) string) (*runtime, error) {
	cfg, err := loadConfig(cmd, opts, getenv)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg}

	logger, logCloser, err := logging.Setup(cfg.LogFile, opts.debug)
	if err != nil {
		return nil, err
	}
	rt.logger = logger
	rt.closers = append(rt.closers, func(context.Context) error { return logCloser.Close() })

	tp, err := telemetry.Setup(ctx, getenv)
	if err != nil {
		// Tracing is optional; keep going without it.
		logger.Warn("tracing disabled", "err", err)
	} else {
		rt.closers = append(rt.closers, tp.Shutdown)
	}

	timeout, _ := cfg.Timeout()
	rt.client, err = api.New(cfg.APIURL,
		api.WithToken(cfg.Token),
		api.WithTimeout(timeout),
		api.WithMaxRetries(cfg.Retries()),
		api.WithTracerProvider(tp.TracerProvider()),
		api.WithLogger(logger),
	)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.router, err = nav.NewRouter(cfg.WebURL)
	if err != nil {
		rt.close()
		return nil, err
	}

	if !cfg.Cache.Disabled {
		store, err := cache.Open(cfg.Cache.Path, cfg.APIURL)
		if err != nil {
			// A locked or corrupt cache only costs the instant render.
			logger.Warn("friends cache unavailable", "path", cfg.Cache.Path, "err", err)
		} else {
			rt.store = store
			rt.closers = append(rt.closers, func(context.Context) error { return store.Close() })
		}
	}

	logger.Debug("configured",
		"api_url", cfg.APIURL,
		"web_url", cfg.WebURL,
		"cache", !cfg.Cache.Disabled,
		"tracing", tp.Enabled(),
	)
	return rt, nil
}

// close releases resources in reverse order of acquisition.
func (rt *runtime) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil && rt.logger != nil {
			rt.logger.Warn("shutdown", "err", err)
		}
	}
}

// friendsCache returns the store as a ui.FriendsCache, keeping a nil store
// a nil interface.
func (rt *runtime) friendsCache() ui.FriendsCache {
	if rt.store == nil {
		return nil
	}
	return rt.store
}

func runTUI(cmd *cobra.Command, opts *rootOptions, getenv func(string) string, progOpts ...tea.ProgramOption) error {
	rt, err := setup(cmd.Context(), cmd, opts, getenv)
	if err != nil {
		return err
	}
	defer rt.close()

	model := ui.NewAppModel(ui.Deps{
		Source:  rt.client,
		Cache:   rt.friendsCache(),
		Router:  rt.router,
		Columns: rt.cfg.UI.Columns,
		Logger:  rt.logger,
	})
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, progOpts...)
	p := tea.NewProgram(model.AsTeaModel(), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of lingofriends",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lingofriends version %s\n", version)
		},
	}
}
