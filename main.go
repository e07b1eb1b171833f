package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"
	_ "time/tzdata"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"atm-scraper/config"
	"atm-scraper/geocode"
	"atm-scraper/pipeline"
	"atm-scraper/scraper/bdo"
	"atm-scraper/services"
	"atm-scraper/storage"
	"atm-scraper/utils"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		areas   []string
		backend string
		dryRun  bool
		rawCSV  string
	)

	cmd := &cobra.Command{
		Use:           "atm-scraper",
		Short:         "Scrape the branch/ATM locator, geocode each location and store new ones",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if len(areas) > 0 {
				cfg.Areas = areas
			}
			if backend != "" {
				cfg.StoreBackend = backend
			}
			if dryRun {
				cfg.StoreBackend = config.BackendMemory
			}
			if rawCSV != "" {
				cfg.RawCSVPath = rawCSV
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringSliceVar(&areas, "area", nil, "area identifier to crawl (repeatable, overrides AREAS)")
	cmd.Flags().StringVar(&backend, "store", "", "store backend: firestore, postgres or memory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "crawl and geocode but keep records in memory only")
	cmd.Flags().StringVar(&rawCSV, "raw-csv", "", "write extracted rows to this CSV file")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("=== Branch/ATM locator scrape starting ===")
	logger.Info("Config: areas %v | store: %s | fetch: %s | timeout: %ds",
		cfg.Areas, cfg.StoreBackend, cfg.FetchMode, cfg.HTTPTimeoutSec)

	if err := checkGeocodeKey(cfg); err != nil {
		logger.Error("%v", err)
		return err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("Unknown TIMEZONE %q: %v", cfg.Timezone, err)
		return eris.Wrap(err, "load timezone")
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open %s store: %v", cfg.StoreBackend, err)
		return err
	}
	defer store.Close()

	var rawWriter storage.RawItemWriter
	if cfg.RawCSVPath != "" {
		w, err := storage.NewCSVWriter(cfg.RawCSVPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
			return err
		}
		defer w.Close()
		rawWriter = w
	}

	fetcher, closeFetcher := newFetcher(cfg, logger)
	defer closeFetcher()

	if cfg.GoogleMapsAPIKey == "" {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set and GEOCODE_STRICT=false; every record will use the fallback address")
	}
	gc := geocode.NewCachedClient(
		geocode.NewClient(geocode.WithAPIKey(cfg.GoogleMapsAPIKey), geocode.WithRateLimit(cfg.GeocodeRPS)),
		logger.Zap(),
	)

	p := pipeline.New(pipeline.Deps{
		Areas:         cfg.Areas,
		Logger:        logger,
		Crawler:       bdo.New(cfg, logger, fetcher),
		Enricher:      services.NewEnricher(gc, logger),
		Transformer:   services.NewTransformer(cfg.BankDocumentPath, cfg.QRCodePlaceholder, loc),
		Persister:     services.NewPersister(store, logger),
		Summary:       services.NewSummaryService(logger),
		RawWriter:     rawWriter,
		StrictGeocode: cfg.GeocodeStrict,
		Out:           os.Stdout,
	})

	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("Scrape aborted, nothing was saved: %v", err)
		return err
	}

	if gc.Hits() > 0 {
		logger.Debug("Geocode cache served %d lookups", gc.Hits())
	}
	fmt.Printf("  Done. %d saved, %d skipped, %d failed (store: %s)\n\n",
		summary.Saved, summary.Skipped, summary.Failed, cfg.StoreBackend)
	return nil
}

// checkGeocodeKey rejects a strict run that could never geocode anything.
func checkGeocodeKey(cfg *config.Config) error {
	if cfg.GeocodeStrict && cfg.GoogleMapsAPIKey == "" {
		return eris.New("GOOGLE_MAPS_API_KEY is required (set GEOCODE_STRICT=false to save fallback addresses instead)")
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.RecordStore, error) {
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		return storage.NewFirestoreStore(ctx, cfg.FirestoreProjectID, cfg.CredentialsFile, cfg.Collection)
	case config.BackendPostgres:
		return storage.NewPostgresStore(cfg.DSN(), cfg.Collection, &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
	case config.BackendMemory:
		logger.Warn("Using in-memory store; nothing will be persisted")
		return storage.NewMemoryStore(), nil
	default:
		return nil, eris.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newFetcher(cfg *config.Config, logger *utils.Logger) (bdo.Fetcher, func()) {
	if cfg.FetchMode == config.FetchBrowser {
		bf := bdo.NewBrowserFetcher(cfg, logger)
		return bf, func() { _ = bf.Close() }
	}
	return bdo.NewHTTPFetcher(cfg), func() {}
}
