package controller

import (
	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/service/commodity"
	"github.com/ougirez/agristat/internal/service/importer"
)

type Controller struct {
	commodities *commodity.Service
	importer    *importer.Service
	resetSource func() []*domain.Commodity
}

// NewController wires the handlers. resetSource produces the collection
// installed by the reset endpoint.
func NewController(commodities *commodity.Service, importer *importer.Service, resetSource func() []*domain.Commodity) *Controller {
	return &Controller{
		commodities: commodities,
		importer:    importer,
		resetSource: resetSource,
	}
}
