package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ougirez/agristat/internal/analytics"
	"github.com/ougirez/agristat/internal/api"
	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/domain/dto"
	"github.com/ougirez/agristat/internal/pkg/constants"
	"github.com/ougirez/agristat/internal/pkg/logger"
	"github.com/ougirez/agristat/internal/pkg/seed"
	"github.com/ougirez/agristat/internal/pkg/store"
	"github.com/ougirez/agristat/internal/service/commodity"
	"github.com/ougirez/agristat/internal/service/importer"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err = logger.Init(cfg.GetString(constants.ViperLogLevelKey), cfg.GetString(constants.ViperLogFormatKey)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg); err != nil {
		logger.Fatal(ctx, err)
	}
}

func run(ctx context.Context, cfg *viper.Viper) error {
	regions := stringList(cfg, constants.ViperRegionsKey)
	commodities := stringList(cfg, constants.ViperCommoditiesKey)

	engine := analytics.New(
		analytics.WithRegions(regions),
		analytics.WithCommodities(commodities),
		analytics.WithYoYThreshold(cfg.GetFloat64(constants.ViperYoYThresholdKey)),
		analytics.WithGrowthThreshold(cfg.GetFloat64(constants.ViperGrowthThresholdKey)),
	)

	seedCfg := seed.DefaultConfig()
	seedCfg.Regions = engine.Regions()
	seedCfg.Commodities = engine.Commodities()
	seedCfg.Seed = cfg.GetUint64(constants.ViperSeedValueKey)
	resetSource := func() []*domain.Commodity { return seed.Generate(seedCfg) }

	initial, err := initialRecords(ctx, cfg, resetSource)
	if err != nil {
		return fmt.Errorf("initialRecords: %w", err)
	}

	commoditySvc := commodity.NewCommodityService(store.NewMemStore(store.WithRecords(initial)), engine)
	logger.Info(ctx, "records loaded", "count", len(initial))

	validate, err := dto.NewValidator(engine.Regions(), engine.Commodities())
	if err != nil {
		return fmt.Errorf("dto.NewValidator: %w", err)
	}

	importerSvc := importer.NewImporterService(commoditySvc, validate,
		importer.WithTimeout(cfg.GetDuration(constants.ViperImportTimeoutKey)),
	)

	apiSvc, err := api.NewAPIService(api.APIOpts{
		Commodities: commoditySvc,
		Importer:    importerSvc,
		Validate:    validate,
		CORSOrigins: stringList(cfg, constants.ViperCORSOriginsKey),
		ResetSource: resetSource,
	})
	if err != nil {
		return fmt.Errorf("api.NewAPIService: %w", err)
	}

	addr := cfg.GetString(constants.ViperServerAddrKey)
	go apiSvc.Serve(addr)
	logger.Infof(ctx, "listening on %s", addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetDuration(constants.ViperShutdownTimeoutKey))
	defer cancel()

	logger.Infof(shutdownCtx, "shutting down")
	if err = apiSvc.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("apiSvc.Shutdown: %w", err)
	}

	return nil
}

// initialRecords reads the commodities table when a DSN is configured and
// falls back to the generated dataset otherwise.
func initialRecords(ctx context.Context, cfg *viper.Viper, generate func() []*domain.Commodity) ([]*domain.Commodity, error) {
	dsn := cfg.GetString(constants.ViperDatabaseDSNKey)
	if dsn == "" {
		if !cfg.GetBool(constants.ViperSeedOnStartKey) {
			return []*domain.Commodity{}, nil
		}
		return generate(), nil
	}

	source, err := store.NewPostgresSource(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store.NewPostgresSource: %w", err)
	}
	defer source.Close()

	return loadRecords(ctx, source)
}

func loadRecords(ctx context.Context, provider store.RecordProvider) ([]*domain.Commodity, error) {
	from, to := domain.Year(constants.MinYear), domain.Year(constants.MaxYear)
	records, err := provider.Load(ctx, store.LoadOpts{FromYear: &from, ToYear: &to})
	if err != nil {
		return nil, fmt.Errorf("provider.Load: %w", err)
	}

	return records, nil
}
