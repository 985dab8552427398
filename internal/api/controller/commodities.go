package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agristat/internal/domain/dto"
)

func (c *Controller) ListCommodities(ctx echo.Context) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.commodities.List(ctx.Request().Context(), filter))
}

func (c *Controller) GetCommodity(ctx echo.Context) error {
	item, err := c.commodities.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, item)
}

func (c *Controller) CreateCommodity(ctx echo.Context) error {
	var request dto.CommodityDto
	if err := ctx.Bind(&request); err != nil {
		return err
	}
	if err := ctx.Validate(&request); err != nil {
		return err
	}

	created := c.commodities.Create(ctx.Request().Context(), request)

	return ctx.JSON(http.StatusCreated, created)
}

func (c *Controller) UpdateCommodity(ctx echo.Context) error {
	var patch dto.CommodityPatch
	if err := ctx.Bind(&patch); err != nil {
		return err
	}
	if err := ctx.Validate(&patch); err != nil {
		return err
	}

	updated, err := c.commodities.Update(ctx.Request().Context(), ctx.Param("id"), patch)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, updated)
}

func (c *Controller) DeleteCommodity(ctx echo.Context) error {
	type response struct {
		Deleted bool `json:"deleted"`
	}

	deleted := c.commodities.Delete(ctx.Request().Context(), ctx.Param("id"))

	return ctx.JSON(http.StatusOK, response{Deleted: deleted})
}
