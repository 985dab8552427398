package analytics

import (
	"fmt"
	"sort"

	"github.com/ougirez/agristat/internal/domain"
)

func rec(id, region, commodity string, year domain.Year, productivity, land float64) *domain.Commodity {
	return &domain.Commodity{
		ID:            id,
		CommodityName: commodity,
		Productivity:  productivity,
		Year:          year,
		Region:        region,
		LandArea:      land,
		Status:        domain.StatusActive,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func ids(records []*domain.Commodity) []string {
	out := make([]string, 0, len(records))
	for _, c := range records {
		out = append(out, c.ID)
	}
	sort.Strings(out)
	return out
}

// fixture covers three regions, three commodities and three years with a few
// holes, so that some composite buckets are empty.
func fixture() []*domain.Commodity {
	regions := []string{"Garut", "Bandung", "Bogor"}
	commodities := []string{"Padi", "Jagung", "Kopi"}
	years := []domain.Year{2021, 2022, 2023}

	var out []*domain.Commodity
	n := 0
	for yi, year := range years {
		for ri, region := range regions {
			for ci, commodity := range commodities {
				if region == "Bogor" && commodity == "Kopi" && year != 2023 {
					continue
				}
				n++
				out = append(out, rec(
					fmt.Sprintf("r%03d", n),
					region,
					commodity,
					year,
					float64(1000*(ci+1)+100*ri+10*yi),
					float64(100+ri*10+ci),
				))
			}
		}
	}
	return out
}

func naiveScan(records []*domain.Commodity, f domain.CommodityFilter) []*domain.Commodity {
	var out []*domain.Commodity
	for _, c := range records {
		if f.Region != nil && c.Region != *f.Region {
			continue
		}
		if f.Year != nil && c.Year != *f.Year {
			continue
		}
		if f.Commodity != nil && c.CommodityName != *f.Commodity {
			continue
		}
		out = append(out, c)
	}
	return out
}
