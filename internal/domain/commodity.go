package domain

type Year = int

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Commodity is a single yearly productivity record. Stored records are never
// mutated in place: updates replace the pointer with a fresh value.
type Commodity struct {
	ID            string  `json:"id" db:"id"`
	CommodityName string  `json:"commodity_name" db:"commodity_name"`
	Productivity  float64 `json:"productivity" db:"productivity"` // kg/ha
	Year          Year    `json:"year" db:"year"`
	Region        string  `json:"region" db:"region"`
	LandArea      float64 `json:"land_area" db:"land_area"` // ha
	Status        Status  `json:"status" db:"status"`
}

// CommodityFilter selects a subset of records. A nil field means "any".
type CommodityFilter struct {
	Region    *string
	Year      *Year
	Commodity *string
}

func (f CommodityFilter) IsEmpty() bool {
	return f.Region == nil && f.Year == nil && f.Commodity == nil
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
