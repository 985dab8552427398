package analytics

import (
	"slices"
	"sort"

	"github.com/ougirez/agristat/internal/domain"
)

const placeholder = "-"

type meanAcc struct {
	sum float64
	n   int
}

func (a meanAcc) mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// groupByYear accumulates productivity per year and returns the years ascending.
func groupByYear(subset []*domain.Commodity) ([]domain.Year, map[domain.Year]meanAcc) {
	acc := make(map[domain.Year]meanAcc)
	years := make([]domain.Year, 0)
	for _, c := range subset {
		if c == nil {
			continue
		}
		a, ok := acc[c.Year]
		if !ok {
			years = append(years, c.Year)
		}
		a.sum += c.Productivity
		a.n++
		acc[c.Year] = a
	}
	slices.Sort(years)
	return years, acc
}

func meanProductivity(records []*domain.Commodity) float64 {
	var acc meanAcc
	for _, c := range records {
		acc.sum += c.Productivity
		acc.n++
	}
	return acc.mean()
}

func totalLand(records []*domain.Commodity) float64 {
	var total float64
	for _, c := range records {
		total += c.LandArea
	}
	return total
}

// YearOverYear averages productivity per year of subset and compares each
// year with the previous year present in the subset.
func YearOverYear(subset []*domain.Commodity, threshold float64) []domain.YoYEntry {
	years, acc := groupByYear(subset)

	entries := make([]domain.YoYEntry, 0, len(years))
	var (
		prior    float64
		hasPrior bool
	)
	for _, year := range years {
		avg := round(acc[year].mean(), 0)
		entry := domain.YoYEntry{
			Year:                year,
			AverageProductivity: avg,
			Trend:               domain.TrendStable,
		}

		if hasPrior {
			p := prior
			entry.PriorYearAverage = &p
			entry.Change = avg - p
			entry.ChangePercent, entry.Trend = GrowthRate(avg, p, threshold)
		}

		entries = append(entries, entry)
		prior, hasPrior = avg, true
	}

	return entries
}

// YearlyAverages is the rounded mean productivity per year, ascending.
func YearlyAverages(subset []*domain.Commodity) []domain.YearAverage {
	years, acc := groupByYear(subset)

	out := make([]domain.YearAverage, 0, len(years))
	for _, year := range years {
		out = append(out, domain.YearAverage{
			Year:                year,
			AverageProductivity: round(acc[year].mean(), 0),
		})
	}
	return out
}

// OverallStats summarizes subset in one pass. Ties for the region with the
// most land and the commodity with the highest mean keep the first seen.
func OverallStats(subset []*domain.Commodity) domain.OverallStats {
	stats := domain.OverallStats{
		RegionWithMostLand:          placeholder,
		CommodityWithHighestAverage: placeholder,
	}

	var (
		totalProductivity float64
		regionLand        = make(map[string]float64)
		regionOrder       []string
		commodityAcc      = make(map[string]meanAcc)
		commodityOrder    []string
	)

	for _, c := range subset {
		if c == nil {
			continue
		}

		if stats.RecordCount == 0 {
			stats.MaxProductivity = c.Productivity
			stats.MinProductivity = c.Productivity
		}
		stats.RecordCount++
		stats.TotalLandArea += c.LandArea
		totalProductivity += c.Productivity

		if c.Productivity > stats.MaxProductivity {
			stats.MaxProductivity = c.Productivity
		}
		if c.Productivity < stats.MinProductivity {
			stats.MinProductivity = c.Productivity
		}

		if _, ok := regionLand[c.Region]; !ok {
			regionOrder = append(regionOrder, c.Region)
		}
		regionLand[c.Region] += c.LandArea

		a, ok := commodityAcc[c.CommodityName]
		if !ok {
			commodityOrder = append(commodityOrder, c.CommodityName)
		}
		a.sum += c.Productivity
		a.n++
		commodityAcc[c.CommodityName] = a
	}

	if stats.RecordCount == 0 {
		return stats
	}

	stats.DistinctCommodityCount = len(commodityOrder)
	stats.AverageProductivity = round(totalProductivity/float64(stats.RecordCount), 0)

	var maxLand float64
	for _, region := range regionOrder {
		if land := regionLand[region]; land > maxLand {
			maxLand = land
			stats.RegionWithMostLand = region
		}
	}

	var maxAvg float64
	for _, commodity := range commodityOrder {
		if avg := commodityAcc[commodity].mean(); avg > maxAvg {
			maxAvg = avg
			stats.CommodityWithHighestAverage = commodity
		}
	}

	return stats
}

// RegionRanking ranks the catalog regions by mean productivity in the latest
// year of the data, independent of any active filter. Regions without
// current-year records are left out. Equal means keep catalog order and still
// get distinct ranks.
func RegionRanking(idx *Indexes, regions []string) []domain.RegionPerformance {
	out := make([]domain.RegionPerformance, 0, len(regions))

	latest, prior, ok, hasPrior := idx.lastTwoYears()
	if !ok {
		return out
	}

	for _, region := range regions {
		current := idx.byRegionYear[regionYear{region: region, year: latest}]
		if len(current) == 0 {
			continue
		}

		avg := round(meanProductivity(current), 0)
		var growth float64
		if hasPrior {
			if previous := idx.byRegionYear[regionYear{region: region, year: prior}]; len(previous) > 0 {
				growth = percentChange(avg, meanProductivity(previous))
			}
		}

		out = append(out, domain.RegionPerformance{
			Region:              region,
			AverageProductivity: avg,
			TotalLandArea:       totalLand(current),
			RecordCount:         len(current),
			GrowthRate:          growth,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageProductivity > out[j].AverageProductivity
	})
	for i := range out {
		out[i].Rank = i + 1
	}

	return out
}

// CommodityTrends compares each catalog commodity's latest-year mean with the
// year before. Without prior-year data the prior average equals the current
// one and the trend is stable.
func CommodityTrends(idx *Indexes, commodities []string, threshold float64) []domain.CommodityTrend {
	out := make([]domain.CommodityTrend, 0, len(commodities))

	latest, prior, ok, hasPrior := idx.lastTwoYears()
	if !ok {
		return out
	}

	for _, commodity := range commodities {
		current := idx.byCommodityYear[commodityYear{commodity: commodity, year: latest}]
		if len(current) == 0 {
			continue
		}

		currentAvg := round(meanProductivity(current), 0)
		priorAvg := currentAvg
		if hasPrior {
			if previous := idx.byCommodityYear[commodityYear{commodity: commodity, year: prior}]; len(previous) > 0 {
				priorAvg = round(meanProductivity(previous), 0)
			}
		}

		growth, trend := GrowthRate(currentAvg, priorAvg, threshold)
		out = append(out, domain.CommodityTrend{
			Commodity:          commodity,
			CurrentYearAverage: currentAvg,
			PriorYearAverage:   priorAvg,
			GrowthPercent:      growth,
			Trend:              trend,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentYearAverage > out[j].CurrentYearAverage
	})

	return out
}
