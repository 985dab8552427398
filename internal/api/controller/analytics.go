package controller

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agristat/internal/pkg/constants"
)

func (c *Controller) GetDashboard(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.commodities.Dashboard(ctx.Request().Context(), filter))
}

func (c *Controller) GetRegionalComparison(ctx echo.Context) error {
	year, err := queryYear(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.commodities.Regional(ctx.Request().Context(), year))
}

func (c *Controller) GetProductivityTrend(ctx echo.Context) error {
	commodity := queryString(ctx, "commodity")
	if commodity == nil {
		return fmt.Errorf("%w: commodity is required", constants.ErrBadRequest)
	}

	trend := c.commodities.Trend(ctx.Request().Context(), *commodity, queryString(ctx, "region"))

	return ctx.JSON(http.StatusOK, trend)
}

func (c *Controller) GetCatalog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.commodities.Catalog(ctx.Request().Context()))
}
