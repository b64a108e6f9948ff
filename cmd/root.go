// Package cmd wires configuration, data sources and local storage into the
// command-line interface.
package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"exchange-catalog/config"
	"exchange-catalog/services"
	"exchange-catalog/source"
	"exchange-catalog/storage"
	"exchange-catalog/utils"
)

// app carries everything a subcommand needs once the root has been set up.
type app struct {
	verbose    bool
	sourceMode string
	timeout    time.Duration

	cfg      *config.Config
	logger   *utils.Logger
	src      source.Source
	kv       storage.KeyValue
	cleaner  *services.Cleaner
	insights *services.InsightService
	out      io.Writer
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "exchange-catalog",
		Short: "Browse, filter and summarise student-exchange listings",
		Long: `exchange-catalog reads the platform's mentors, accommodations, partner
universities and course-matching experiences, and lets you filter, page
through and summarise them from the terminal. Wishlist, bookmarks, recently
viewed records and form drafts are kept on this device.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.sourceMode, "source", "", "Data source: api or browser (default from SOURCE_MODE)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Fetch timeout (default from FETCH_TIMEOUT_MS)")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newOptionsCmd(a),
		newWishlistCmd(a),
		newBookmarksCmd(a),
		newRecentCmd(a),
		newDraftCmd(a),
		newBudgetCmd(a),
		newAveragesCmd(a),
		newOverviewCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, envFound := config.Load()
	if a.sourceMode != "" {
		cfg.SourceMode = strings.ToLower(a.sourceMode)
	}
	if a.timeout > 0 {
		cfg.FetchTimeout = a.timeout
	}
	a.cfg = cfg

	a.logger = utils.NewLoggerWithLevel(cfg.Debug || a.verbose)
	if !envFound {
		a.logger.Debug("[config] no .env file found, using process environment")
	}
	a.logger.Debug("[config] source: %s | timeout: %s | retries: %d | concurrency: %d",
		cfg.SourceMode, cfg.FetchTimeout, cfg.MaxRetries, cfg.MaxConcurrency)

	a.out = cmd.OutOrStdout()
	a.cleaner = services.NewCleaner(a.logger)
	a.insights = services.NewInsightService(a.logger, a.out)

	a.kv = storage.NewFileStore(cfg.StorageDir)
	if _, ok := a.kv.(storage.Unavailable); ok {
		a.logger.Debug("[storage] STORAGE_DIR is empty, local state will not be saved")
	}

	switch cfg.SourceMode {
	case config.SourceAPI:
		a.src = source.NewAPIClient(cfg.APIBaseURL, cfg.FetchTimeout, cfg.MaxRetries, a.logger)
	case config.SourceBrowser:
		a.src = source.NewBrowserSource(cfg.SiteBaseURL, cfg.ChromeBin, cfg.FetchTimeout, cfg.MaxRetries, a.logger)
	default:
		return fmt.Errorf("unknown source mode %q (want %q or %q)", cfg.SourceMode, config.SourceAPI, config.SourceBrowser)
	}
	return nil
}

// fetchTimeout is the configured fetch timeout, or source.DefaultTimeout
// when none is set.
func (a *app) fetchTimeout() time.Duration {
	if a.cfg.FetchTimeout <= 0 {
		return source.DefaultTimeout
	}
	return a.cfg.FetchTimeout
}

func (a *app) storageAvailable() bool {
	_, off := a.kv.(storage.Unavailable)
	return !off
}
