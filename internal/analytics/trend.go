package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ougirez/agristat/internal/domain"
)

const (
	// DefaultYoYThreshold classifies the year-over-year series.
	DefaultYoYThreshold = 1.0
	// DefaultGrowthThreshold classifies commodity trends and growth summaries.
	DefaultGrowthThreshold = 2.0
)

// ClassifyTrend maps a percent change to up/down/stable around ±threshold.
func ClassifyTrend(percent, threshold float64) domain.Trend {
	switch {
	case percent > threshold:
		return domain.TrendUp
	case percent < -threshold:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

// GrowthRate is the percent change from previous to current, rounded to one
// decimal, with its trend class. A non-positive baseline yields 0 and stable.
func GrowthRate(current, previous, threshold float64) (float64, domain.Trend) {
	rate := percentChange(current, previous)
	return rate, ClassifyTrend(rate, threshold)
}

func percentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return round(((current-previous)/previous)*100, 1)
}

// round rounds half away from zero. Non-finite input collapses to 0.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
