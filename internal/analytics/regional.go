package analytics

import (
	"sort"

	"github.com/ougirez/agristat/internal/domain"
)

// OverallGrowth compares the first and last year of subset. The series is the
// year-over-year breakdown classified with yoyThreshold; the overall rate uses
// growthThreshold.
func OverallGrowth(subset []*domain.Commodity, yoyThreshold, growthThreshold float64) domain.GrowthSummary {
	series := YearOverYear(subset, yoyThreshold)
	summary := domain.GrowthSummary{
		Trend:  domain.TrendStable,
		Series: series,
	}
	if len(series) == 0 {
		return summary
	}

	first, last := series[0], series[len(series)-1]
	summary.FirstYear = first.Year
	summary.LastYear = last.Year
	summary.GrowthRate, summary.Trend = GrowthRate(last.AverageProductivity, first.AverageProductivity, growthThreshold)

	return summary
}

// RegionalComparison reports every catalog region for year (the latest year
// when nil) against the calendar year before it. Regions without data get a
// zero row. TopCommodity is the commodity with the single highest
// productivity value in that region and year.
func RegionalComparison(idx *Indexes, regions []string, year *domain.Year) []domain.RegionComparison {
	out := make([]domain.RegionComparison, 0, len(regions))

	var target domain.Year
	if year != nil {
		target = *year
	} else {
		latest, ok := idx.LatestYear()
		if !ok {
			return out
		}
		target = latest
	}

	var byRegionYear map[regionYear][]*domain.Commodity
	if idx != nil {
		byRegionYear = idx.byRegionYear
	}

	for _, region := range regions {
		current := byRegionYear[regionYear{region: region, year: target}]
		previous := byRegionYear[regionYear{region: region, year: target - 1}]

		var avg, prevAvg float64
		if len(current) > 0 {
			avg = round(meanProductivity(current), 0)
		}
		if len(previous) > 0 {
			prevAvg = round(meanProductivity(previous), 0)
		}

		out = append(out, domain.RegionComparison{
			Region:              region,
			AverageProductivity: avg,
			TotalLandArea:       totalLand(current),
			GrowthRate:          percentChange(avg, prevAvg),
			TopCommodity:        topCommodity(current),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageProductivity > out[j].AverageProductivity
	})

	return out
}

func topCommodity(records []*domain.Commodity) string {
	top := placeholder
	var best float64
	for i, c := range records {
		if i == 0 || c.Productivity > best {
			best = c.Productivity
			top = c.CommodityName
		}
	}
	return top
}
