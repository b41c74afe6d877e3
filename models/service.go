package models

// Service represents a commission type offered in the storefront
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	PriceMinCLP     int64   `json:"priceMinClp"`
	PriceMaxCLP     int64   `json:"priceMaxClp"`
	PriceMinUSD     float64 `json:"priceMinUsd"`
	PriceMaxUSD     float64 `json:"priceMaxUsd"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	IsAvailable     bool    `json:"isAvailable"`
	IsMultiUnitPack bool    `json:"isMultiUnitPack"` // Pack services take per-unit extras instead of flat extras
	UnitCount       int     `json:"unitCount"`       // Number of units in a pack (0 for regular services)
	DisplayOrder    int     `json:"displayOrder"`
}

// DetailLevel is a pricing tier of a service. Its price replaces the
// service's base price when selected.
type DetailLevel struct {
	ID           string  `json:"id"`
	ServiceID    string  `json:"serviceId"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	PriceCLP     int64   `json:"priceClp"`
	PriceUSD     float64 `json:"priceUsd"`
	IsAvailable  bool    `json:"isAvailable"`
	DisplayOrder int     `json:"displayOrder"`
}

// ServiceVariant is a sub-option of a service whose price is added on top of
// the base or detail level price.
type ServiceVariant struct {
	ID           string  `json:"id"`
	ServiceID    string  `json:"serviceId"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	PriceCLP     int64   `json:"priceClp"`
	PriceUSD     float64 `json:"priceUsd"`
	IsAvailable  bool    `json:"isAvailable"`
	DisplayOrder int     `json:"displayOrder"`
}
