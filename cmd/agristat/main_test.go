package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/pkg/constants"
	"github.com/ougirez/agristat/internal/pkg/store"
)

type providerMock struct {
	opts    store.LoadOpts
	records []*domain.Commodity
	err     error
}

func (m *providerMock) Load(_ context.Context, opts store.LoadOpts) ([]*domain.Commodity, error) {
	m.opts = opts
	return m.records, m.err
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetString(constants.ViperServerAddrKey))
	assert.Equal(t, 10*time.Second, cfg.GetDuration(constants.ViperShutdownTimeoutKey))
	assert.Equal(t, constants.DefaultRegions, stringList(cfg, constants.ViperRegionsKey))
	assert.Equal(t, constants.DefaultCommodities, stringList(cfg, constants.ViperCommoditiesKey))
	assert.Equal(t, 1.0, cfg.GetFloat64(constants.ViperYoYThresholdKey))
	assert.Equal(t, 2.0, cfg.GetFloat64(constants.ViperGrowthThresholdKey))
	assert.True(t, cfg.GetBool(constants.ViperSeedOnStartKey))
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AGRISTAT_SERVER_ADDR", ":9999")
	t.Setenv("AGRISTAT_ANALYTICS_GROWTH_THRESHOLD", "5")
	t.Setenv("AGRISTAT_CATALOG_REGIONS", "Garut, Bogor,")
	t.Setenv("AGRISTAT_CATALOG_COMMODITIES", "Padi,Kacang Tanah")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.GetString(constants.ViperServerAddrKey))
	assert.Equal(t, 5.0, cfg.GetFloat64(constants.ViperGrowthThresholdKey))
	assert.Equal(t, []string{"Garut", "Bogor"}, stringList(cfg, constants.ViperRegionsKey))
	assert.Equal(t, []string{"Padi", "Kacang Tanah"}, stringList(cfg, constants.ViperCommoditiesKey))
	assert.Equal(t, []string{"http://localhost:3000"}, stringList(cfg, constants.ViperCORSOriginsKey))
}

func TestInitialRecordsWithoutDatabase(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	generated := []*domain.Commodity{{ID: "1"}}
	records, err := initialRecords(context.Background(), cfg, func() []*domain.Commodity { return generated })
	require.NoError(t, err)
	assert.Equal(t, generated, records)

	cfg.Set(constants.ViperSeedOnStartKey, false)
	records, err = initialRecords(context.Background(), cfg, func() []*domain.Commodity { return generated })
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadRecords(t *testing.T) {
	provider := &providerMock{records: []*domain.Commodity{{ID: "a"}}}

	records, err := loadRecords(context.Background(), provider)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	require.NotNil(t, provider.opts.FromYear)
	assert.Equal(t, domain.Year(constants.MinYear), *provider.opts.FromYear)
	assert.Equal(t, domain.Year(constants.MaxYear), *provider.opts.ToYear)

	provider.err = constants.ErrDBNotFound
	_, err = loadRecords(context.Background(), provider)
	assert.True(t, errors.Is(err, constants.ErrDBNotFound))
}
