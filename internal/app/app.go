package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/roster/internal/config"
	"github.com/five82/roster/internal/controller"
	"github.com/five82/roster/internal/logging"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/roster"
	"github.com/five82/roster/internal/state"
	"github.com/five82/roster/internal/ui"
)

// Options configure the roster application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/roster/prefs.toml
	Cohort     string // overrides the configured cohort when set
	APIBase    string // overrides the configured api_base when set
}

// Run boots the roster TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogPath, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	ctl, err := newController(cfg, logger)
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Actions:   ctl,
		Cohort:    cfg.Cohort,
		LogPath:   cfg.LogPath,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
	if err != nil {
		logging.Error(logger, "ui exited", err)
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("roster stopped")
	return nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Cohort); v != "" {
		cfg.Cohort = v
	}
	if v := strings.TrimSpace(opts.APIBase); v != "" {
		cfg.APIBase = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newController builds the API client, the view store, and the controller
// that joins them.
func newController(cfg config.Config, logger *slog.Logger) (*controller.Controller, error) {
	client, err := roster.NewClient(cfg.APIBase, cfg.Cohort, roster.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("init roster client: %w", err)
	}
	logger.Info("roster starting",
		logging.FieldCohort, cfg.Cohort,
		logging.FieldBaseURL, client.BaseURL(),
		"discard_stale", cfg.DiscardStale,
	)
	return controller.New(client, state.NewStore(cfg.DiscardStale), logger), nil
}
