package analytics

import (
	"github.com/ougirez/agristat/internal/domain"
)

// Engine binds the pure analytics functions to a region/commodity catalog and
// trend thresholds.
type Engine struct {
	cfg config
}

func New(opts ...Option) *Engine {
	return &Engine{cfg: applyOptions(opts)}
}

// Ingest builds the indexes for a record collection version.
func (e *Engine) Ingest(records []*domain.Commodity) *Indexes {
	return BuildIndexes(records)
}

// Query returns the records of idx matching f.
func (e *Engine) Query(idx *Indexes, f domain.CommodityFilter) []*domain.Commodity {
	return idx.Resolve(f)
}

// Aggregate derives the dashboard statistics. Stats and the YoY series follow
// subset; the regional ranking and commodity trends always read the full
// indexes.
func (e *Engine) Aggregate(subset []*domain.Commodity, idx *Indexes) domain.Aggregates {
	return domain.Aggregates{
		Stats:           OverallStats(subset),
		YoY:             YearOverYear(subset, e.cfg.yoyThreshold),
		RegionRanking:   RegionRanking(idx, e.cfg.regions),
		CommodityTrends: CommodityTrends(idx, e.cfg.commodities, e.cfg.growthThreshold),
	}
}

func (e *Engine) Growth(subset []*domain.Commodity) domain.GrowthSummary {
	return OverallGrowth(subset, e.cfg.yoyThreshold, e.cfg.growthThreshold)
}

func (e *Engine) RegionalComparison(idx *Indexes, year *domain.Year) []domain.RegionComparison {
	return RegionalComparison(idx, e.cfg.regions, year)
}

func (e *Engine) Regions() []string {
	return append([]string{}, e.cfg.regions...)
}

func (e *Engine) Commodities() []string {
	return append([]string{}, e.cfg.commodities...)
}
