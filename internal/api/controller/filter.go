package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/pkg/constants"
)

// anyValue is what the dashboard selects send for "no filter".
const anyValue = "all"

func queryString(ctx echo.Context, name string) *string {
	v := strings.TrimSpace(ctx.QueryParam(name))
	if v == "" || strings.EqualFold(v, anyValue) {
		return nil
	}
	return &v
}

func queryYear(ctx echo.Context) (*domain.Year, error) {
	raw := queryString(ctx, "year")
	if raw == nil {
		return nil, nil
	}

	year, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: year %q", constants.ErrInvalidFilter, *raw)
	}
	return &year, nil
}

func parseFilter(ctx echo.Context) (domain.CommodityFilter, error) {
	year, err := queryYear(ctx)
	if err != nil {
		return domain.CommodityFilter{}, err
	}

	return domain.CommodityFilter{
		Region:    queryString(ctx, "region"),
		Year:      year,
		Commodity: queryString(ctx, "commodity"),
	}, nil
}
