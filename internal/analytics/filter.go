package analytics

import (
	"github.com/ougirez/agristat/internal/domain"
)

// Plan is the lookup path chosen for a filter.
type Plan int

const (
	PlanAll Plan = iota
	PlanRegion
	PlanYear
	PlanCommodity
	PlanRegionYear
	PlanCommodityYear
	PlanRegionCommodity
	PlanRegionYearCommodity
)

var planNames = map[Plan]string{
	PlanAll:                 "all",
	PlanRegion:              "region",
	PlanYear:                "year",
	PlanCommodity:           "commodity",
	PlanRegionYear:          "region_year",
	PlanCommodityYear:       "commodity_year",
	PlanRegionCommodity:     "region_commodity",
	PlanRegionYearCommodity: "region_year_commodity",
}

func (p Plan) String() string {
	if name, ok := planNames[p]; ok {
		return name
	}
	return "unknown"
}

// PlanFor picks the cheapest index path for f. Region+commodity has no
// composite index: it narrows by region and scans that bucket.
func PlanFor(f domain.CommodityFilter) Plan {
	hasRegion, hasYear, hasCommodity := f.Region != nil, f.Year != nil, f.Commodity != nil

	switch {
	case f.IsEmpty():
		return PlanAll
	case hasRegion && !hasYear && !hasCommodity:
		return PlanRegion
	case !hasRegion && hasYear && !hasCommodity:
		return PlanYear
	case !hasRegion && !hasYear && hasCommodity:
		return PlanCommodity
	case hasRegion && hasYear && !hasCommodity:
		return PlanRegionYear
	case !hasRegion && hasYear && hasCommodity:
		return PlanCommodityYear
	case hasRegion && !hasYear && hasCommodity:
		return PlanRegionCommodity
	default:
		return PlanRegionYearCommodity
	}
}

// Resolve returns the records matching f. The result is always a new,
// non-nil slice owned by the caller; an unknown key yields an empty slice.
func (idx *Indexes) Resolve(f domain.CommodityFilter) []*domain.Commodity {
	if idx == nil {
		return []*domain.Commodity{}
	}

	switch PlanFor(f) {
	case PlanRegion:
		return clone(idx.byRegion[*f.Region])
	case PlanYear:
		return clone(idx.byYear[*f.Year])
	case PlanCommodity:
		return clone(idx.byCommodity[*f.Commodity])
	case PlanRegionYear:
		return clone(idx.byRegionYear[regionYear{region: *f.Region, year: *f.Year}])
	case PlanCommodityYear:
		return clone(idx.byCommodityYear[commodityYear{commodity: *f.Commodity, year: *f.Year}])
	case PlanRegionCommodity:
		return filterByCommodity(idx.byRegion[*f.Region], *f.Commodity)
	case PlanRegionYearCommodity:
		return filterByCommodity(idx.byRegionYear[regionYear{region: *f.Region, year: *f.Year}], *f.Commodity)
	default:
		return clone(idx.all)
	}
}

func clone(src []*domain.Commodity) []*domain.Commodity {
	out := make([]*domain.Commodity, len(src))
	copy(out, src)
	return out
}

func filterByCommodity(src []*domain.Commodity, commodity string) []*domain.Commodity {
	out := make([]*domain.Commodity, 0, len(src))
	for _, c := range src {
		if c.CommodityName == commodity {
			out = append(out, c)
		}
	}
	return out
}
