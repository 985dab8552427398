package dto

import (
	"github.com/ougirez/agristat/internal/domain"
)

// CommodityDto is the payload for creating a record.
type CommodityDto struct {
	CommodityName string        `json:"commodity_name" validate:"required,commodity"`
	Productivity  float64       `json:"productivity" validate:"gt=0"`
	Year          domain.Year   `json:"year" validate:"year"`
	Region        string        `json:"region" validate:"required,region"`
	LandArea      float64       `json:"land_area" validate:"gt=0"`
	Status        domain.Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ToDomain builds a record with the given id. An empty status defaults to active.
func (d CommodityDto) ToDomain(id string) *domain.Commodity {
	status := d.Status
	if status == "" {
		status = domain.StatusActive
	}

	return &domain.Commodity{
		ID:            id,
		CommodityName: d.CommodityName,
		Productivity:  d.Productivity,
		Year:          d.Year,
		Region:        d.Region,
		LandArea:      d.LandArea,
		Status:        status,
	}
}

// CommodityPatch carries a partial update; nil fields are left untouched.
type CommodityPatch struct {
	CommodityName *string        `json:"commodity_name,omitempty" validate:"omitempty,commodity"`
	Productivity  *float64       `json:"productivity,omitempty" validate:"omitempty,gt=0"`
	Year          *domain.Year   `json:"year,omitempty" validate:"omitempty,year"`
	Region        *string        `json:"region,omitempty" validate:"omitempty,region"`
	LandArea      *float64       `json:"land_area,omitempty" validate:"omitempty,gt=0"`
	Status        *domain.Status `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// Apply returns a copy of c with the patch merged in.
func (p CommodityPatch) Apply(c domain.Commodity) domain.Commodity {
	if p.CommodityName != nil {
		c.CommodityName = *p.CommodityName
	}
	if p.Productivity != nil {
		c.Productivity = *p.Productivity
	}
	if p.Year != nil {
		c.Year = *p.Year
	}
	if p.Region != nil {
		c.Region = *p.Region
	}
	if p.LandArea != nil {
		c.LandArea = *p.LandArea
	}
	if p.Status != nil {
		c.Status = *p.Status
	}

	return c
}

// ImportRequest lists the pages to scrape for commodity tables.
type ImportRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,max=50,dive,url"`
}
