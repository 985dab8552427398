package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/domain/dto"
)

var ErrNoTable = errors.New("no commodity table found")

type column int

const (
	colCommodity column = iota
	colProductivity
	colYear
	colRegion
	colLandArea
	colStatus
)

var requiredColumns = []column{colCommodity, colProductivity, colYear, colRegion, colLandArea}

// header names as published by the provincial statistics office and by our
// own exports
var headerAliases = map[string]column{
	"commodity":      colCommodity,
	"commodity_name": colCommodity,
	"komoditi":       colCommodity,
	"komoditas":      colCommodity,
	"productivity":   colProductivity,
	"produktivitas":  colProductivity,
	"year":           colYear,
	"tahun":          colYear,
	"region":         colRegion,
	"wilayah":        colRegion,
	"kabupaten":      colRegion,
	"land_area":      colLandArea,
	"luas_lahan":     colLandArea,
	"status":         colStatus,
}

var statusAliases = map[string]domain.Status{
	"":            "",
	"active":      domain.StatusActive,
	"aktif":       domain.StatusActive,
	"inactive":    domain.StatusInactive,
	"tidak_aktif": domain.StatusInactive,
	"tidak aktif": domain.StatusInactive,
	"nonaktif":    domain.StatusInactive,
}

// ParseTable reads the first HTML table whose header names every record
// column. Cell values are not validated beyond their numeric format.
func ParseTable(r io.Reader) ([]dto.CommodityDto, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	var (
		rows  []dto.CommodityDto
		found bool
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		columns, ok := mapHeader(trs.First())
		if !ok {
			return true
		}

		found = true
		rows = make([]dto.CommodityDto, 0, trs.Length())
		trs.Slice(1, goquery.ToEnd).EachWithBreak(func(i int, tr *goquery.Selection) bool {
			if tr.Find("td").Length() == 0 {
				// header or spacer row
				return true
			}
			// row labels may be th cells; positions match mapHeader
			cells := tr.Find("th, td")

			row, parseErr := parseRow(cells, columns)
			if parseErr != nil {
				err = fmt.Errorf("row %d: %w", i+1, parseErr)
				return false
			}

			rows = append(rows, row)
			return true
		})

		return false
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoTable
	}

	return rows, nil
}

func mapHeader(tr *goquery.Selection) (map[column]int, bool) {
	columns := make(map[column]int)
	tr.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		if col, ok := headerAliases[normalizeHeader(cell.Text())]; ok {
			if _, seen := columns[col]; !seen {
				columns[col] = i
			}
		}
	})

	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, false
		}
	}
	return columns, true
}

// normalizeHeader turns "Luas Lahan (Ha)" into "luas_lahan".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(s, "("); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\u00a0'
	}), "_")
}

func parseRow(cells *goquery.Selection, columns map[column]int) (dto.CommodityDto, error) {
	text := func(col column) string {
		i, ok := columns[col]
		if !ok {
			return ""
		}
		return strings.TrimSpace(cells.Eq(i).Text())
	}

	productivity, err := parseNumber(text(colProductivity))
	if err != nil {
		return dto.CommodityDto{}, fmt.Errorf("productivity: %w", err)
	}

	landArea, err := parseNumber(text(colLandArea))
	if err != nil {
		return dto.CommodityDto{}, fmt.Errorf("land_area: %w", err)
	}

	year, err := strconv.Atoi(text(colYear))
	if err != nil {
		return dto.CommodityDto{}, fmt.Errorf("year: %w", err)
	}

	status := strings.ToLower(text(colStatus))
	if known, ok := statusAliases[status]; ok {
		status = string(known)
	}

	return dto.CommodityDto{
		CommodityName: text(colCommodity),
		Productivity:  productivity,
		Year:          year,
		Region:        text(colRegion),
		LandArea:      landArea,
		Status:        domain.Status(status),
	}, nil
}

// parseNumber accepts "5.200,5" and "5200.5" alike. Without a comma, dots
// followed by exactly three digits are thousands separators, so "1.500" is
// 1500.
func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer(" ", "", "\u00a0", "").Replace(s)
	if s == "" {
		return 0, errors.New("empty value")
	}

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case isDotGrouped(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("decimal.NewFromString: %w", err)
	}
	return d.InexactFloat64(), nil
}

func isDotGrouped(s string) bool {
	parts := strings.Split(strings.TrimPrefix(s, "-"), ".")
	if len(parts) < 2 || parts[0] == "" || len(parts[0]) > 3 {
		return false
	}
	for _, part := range parts[1:] {
		if len(part) != 3 {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
