package models

// Extra represents a globally defined add-on
type Extra struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	PriceCLP     int64    `json:"priceClp"`
	PriceUSD     float64  `json:"priceUsd"`
	OnlyFor      []string `json:"onlyFor"` // Service IDs allowed to offer this extra; empty means all
	IsAvailable  bool     `json:"isAvailable"`
	DisplayOrder int      `json:"displayOrder"`
}

// OfferedTo reports whether the extra may be offered to serviceID.
func (e Extra) OfferedTo(serviceID string) bool {
	if len(e.OnlyFor) == 0 {
		return true
	}
	for _, id := range e.OnlyFor {
		if id == serviceID {
			return true
		}
	}
	return false
}

// CommissionTheme is a price-neutral tag attached to a commission
type CommissionTheme struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsAvailable  bool   `json:"isAvailable"`
	DisplayOrder int    `json:"displayOrder"`
}
