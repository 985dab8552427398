package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agristat/internal/domain/dto"
	"github.com/ougirez/agristat/internal/pkg/logger"
)

func (c *Controller) ImportTables(ctx echo.Context) error {
	var request dto.ImportRequest
	if err := ctx.Bind(&request); err != nil {
		return err
	}
	if err := ctx.Validate(&request); err != nil {
		return err
	}

	result, err := c.importer.ImportFromURLs(ctx.Request().Context(), request.URLs)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}

// ResetData drops every edit and reinstalls the startup dataset.
func (c *Controller) ResetData(ctx echo.Context) error {
	type response struct {
		Records int `json:"records"`
	}

	records := c.resetSource()
	c.commodities.Reset(ctx.Request().Context(), records)
	logger.Warnf(ctx.Request().Context(), "dataset reset requested from %s", ctx.RealIP())

	return ctx.JSON(http.StatusOK, response{Records: len(records)})
}
