package domain

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type YoYEntry struct {
	Year                Year     `json:"year"`
	AverageProductivity float64  `json:"average_productivity"`
	PriorYearAverage    *float64 `json:"prior_year_average"`
	Change              float64  `json:"change"`
	ChangePercent       float64  `json:"change_percent"`
	Trend               Trend    `json:"trend"`
}

type RegionPerformance struct {
	Region              string  `json:"region"`
	AverageProductivity float64 `json:"average_productivity"`
	TotalLandArea       float64 `json:"total_land_area"`
	RecordCount         int     `json:"record_count"`
	GrowthRate          float64 `json:"growth_rate"`
	Rank                int     `json:"rank"`
}

type CommodityTrend struct {
	Commodity          string  `json:"commodity"`
	CurrentYearAverage float64 `json:"current_year_average"`
	PriorYearAverage   float64 `json:"prior_year_average"`
	GrowthPercent      float64 `json:"growth_percent"`
	Trend              Trend   `json:"trend"`
}

type OverallStats struct {
	RecordCount                 int     `json:"record_count"`
	TotalLandArea               float64 `json:"total_land_area"`
	DistinctCommodityCount      int     `json:"distinct_commodity_count"`
	AverageProductivity         float64 `json:"average_productivity"`
	MaxProductivity             float64 `json:"max_productivity"`
	MinProductivity             float64 `json:"min_productivity"`
	RegionWithMostLand          string  `json:"region_with_most_land"`
	CommodityWithHighestAverage string  `json:"commodity_with_highest_average"`
}

// Aggregates bundles everything the dashboard renders for one filter.
type Aggregates struct {
	Stats           OverallStats        `json:"stats"`
	YoY             []YoYEntry          `json:"yoy"`
	RegionRanking   []RegionPerformance `json:"region_ranking"`
	CommodityTrends []CommodityTrend    `json:"commodity_trends"`
}

type YearAverage struct {
	Year                Year    `json:"year"`
	AverageProductivity float64 `json:"average_productivity"`
}

// GrowthSummary compares the first and the last year of a series.
type GrowthSummary struct {
	FirstYear  Year       `json:"first_year"`
	LastYear   Year       `json:"last_year"`
	GrowthRate float64    `json:"growth_rate"`
	Trend      Trend      `json:"trend"`
	Series     []YoYEntry `json:"series"`
}

type RegionComparison struct {
	Region              string  `json:"region"`
	AverageProductivity float64 `json:"average_productivity"`
	TotalLandArea       float64 `json:"total_land_area"`
	GrowthRate          float64 `json:"growth_rate"`
	TopCommodity        string  `json:"top_commodity"`
}

// Catalog lists the distinct values present in the data.
type Catalog struct {
	Years       []Year   `json:"years"`
	Regions     []string `json:"regions"`
	Commodities []string `json:"commodities"`
}

// Dashboard is the dashboard payload for one filter.
type Dashboard struct {
	RecordCount int `json:"record_count"`
	Aggregates
}

// ProductivityTrend is the yearly series of one commodity, optionally within
// one region.
type ProductivityTrend struct {
	Commodity string        `json:"commodity"`
	Region    *string       `json:"region,omitempty"`
	Series    []YearAverage `json:"series"`
	Growth    GrowthSummary `json:"growth"`
}

// CatalogInfo pairs the values present in the data with the configured
// catalogs that drive ranking and validation.
type CatalogInfo struct {
	Available   Catalog  `json:"available"`
	Regions     []string `json:"regions"`
	Commodities []string `json:"commodities"`
	MinYear     Year     `json:"min_year"`
	MaxYear     Year     `json:"max_year"`
}
