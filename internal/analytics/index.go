// Package analytics is the in-memory indexed analytics engine: it indexes a
// record collection once per version and answers filtered lookups and
// year-over-year, regional and commodity-trend aggregates from the indexes.
//
// Everything here is a pure, synchronous computation over in-memory data.
// Records are shared by pointer between the collection and every index bucket
// and must not be mutated after ingestion.
package analytics

import (
	"slices"

	"github.com/ougirez/agristat/internal/domain"
)

type regionYear struct {
	region string
	year   domain.Year
}

type commodityYear struct {
	commodity string
	year      domain.Year
}

// Indexes is an immutable snapshot of lookup structures built from one
// version of the record collection.
type Indexes struct {
	all []*domain.Commodity

	byRegion        map[string][]*domain.Commodity
	byYear          map[domain.Year][]*domain.Commodity
	byCommodity     map[string][]*domain.Commodity
	byRegionYear    map[regionYear][]*domain.Commodity
	byCommodityYear map[commodityYear][]*domain.Commodity

	years       []domain.Year
	regions     []string
	commodities []string
}

// BuildIndexes indexes records in a single pass. Nil records are skipped.
func BuildIndexes(records []*domain.Commodity) *Indexes {
	idx := &Indexes{
		all:             make([]*domain.Commodity, 0, len(records)),
		byRegion:        make(map[string][]*domain.Commodity),
		byYear:          make(map[domain.Year][]*domain.Commodity),
		byCommodity:     make(map[string][]*domain.Commodity),
		byRegionYear:    make(map[regionYear][]*domain.Commodity),
		byCommodityYear: make(map[commodityYear][]*domain.Commodity),
	}

	for _, c := range records {
		if c == nil {
			continue
		}
		idx.all = append(idx.all, c)

		if _, ok := idx.byRegion[c.Region]; !ok {
			idx.regions = append(idx.regions, c.Region)
		}
		idx.byRegion[c.Region] = append(idx.byRegion[c.Region], c)

		if _, ok := idx.byYear[c.Year]; !ok {
			idx.years = append(idx.years, c.Year)
		}
		idx.byYear[c.Year] = append(idx.byYear[c.Year], c)

		if _, ok := idx.byCommodity[c.CommodityName]; !ok {
			idx.commodities = append(idx.commodities, c.CommodityName)
		}
		idx.byCommodity[c.CommodityName] = append(idx.byCommodity[c.CommodityName], c)

		ry := regionYear{region: c.Region, year: c.Year}
		idx.byRegionYear[ry] = append(idx.byRegionYear[ry], c)

		cy := commodityYear{commodity: c.CommodityName, year: c.Year}
		idx.byCommodityYear[cy] = append(idx.byCommodityYear[cy], c)
	}

	slices.Sort(idx.years)
	slices.Sort(idx.regions)
	slices.Sort(idx.commodities)

	return idx
}

// Len is the number of indexed records.
func (idx *Indexes) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.all)
}

// Catalog returns copies of the distinct years (ascending), regions and
// commodities present in the data.
func (idx *Indexes) Catalog() domain.Catalog {
	if idx == nil {
		return domain.Catalog{Years: []domain.Year{}, Regions: []string{}, Commodities: []string{}}
	}

	return domain.Catalog{
		Years:       append([]domain.Year{}, idx.years...),
		Regions:     append([]string{}, idx.regions...),
		Commodities: append([]string{}, idx.commodities...),
	}
}

// LatestYear is the most recent year present in the data.
func (idx *Indexes) LatestYear() (domain.Year, bool) {
	if idx == nil || len(idx.years) == 0 {
		return 0, false
	}
	return idx.years[len(idx.years)-1], true
}

// lastTwoYears returns the latest year and, when present, the one before it.
func (idx *Indexes) lastTwoYears() (latest, prior domain.Year, hasLatest, hasPrior bool) {
	if idx == nil || len(idx.years) == 0 {
		return 0, 0, false, false
	}

	n := len(idx.years)
	latest = idx.years[n-1]
	if n < 2 {
		return latest, 0, true, false
	}
	return latest, idx.years[n-2], true, true
}
