package analytics

import (
	"github.com/ougirez/agristat/internal/pkg/constants"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	regions         []string
	commodities     []string
	yoyThreshold    float64
	growthThreshold float64
}

// WithRegions sets the region catalog. Its order is the ranking tie-break.
// Duplicates and empty names are dropped.
func WithRegions(regions []string) Option {
	return func(c *config) {
		c.regions = dedupe(regions)
	}
}

func WithCommodities(commodities []string) Option {
	return func(c *config) {
		c.commodities = dedupe(commodities)
	}
}

// WithYoYThreshold sets the ± percent band classified as stable in the
// year-over-year series.
func WithYoYThreshold(threshold float64) Option {
	return func(c *config) {
		c.yoyThreshold = threshold
	}
}

// WithGrowthThreshold sets the ± percent band classified as stable for
// commodity trends and growth summaries.
func WithGrowthThreshold(threshold float64) Option {
	return func(c *config) {
		c.growthThreshold = threshold
	}
}

func applyOptions(opts []Option) config {
	cfg := config{
		regions:         dedupe(constants.DefaultRegions),
		commodities:     dedupe(constants.DefaultCommodities),
		yoyThreshold:    DefaultYoYThreshold,
		growthThreshold: DefaultGrowthThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
