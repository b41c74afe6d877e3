package pricing

import "commission-catalog/models"

// Catalog is a read-only snapshot of the catalog indexed for composition.
// It is safe for concurrent reads once built.
type Catalog struct {
	services     []models.Service
	detailLevels []models.DetailLevel
	variants     []models.ServiceVariant
	extras       []models.Extra
	themes       []models.CommissionTheme

	servicesByID map[string]models.Service
	variantsByID map[string]models.ServiceVariant
	extrasByID   map[string]models.Extra
	themesByID   map[string]models.CommissionTheme
	resolvers    map[string]*Resolver
}

// CatalogData is the raw input of NewCatalog.
type CatalogData struct {
	Services     []models.Service
	DetailLevels []models.DetailLevel
	Variants     []models.ServiceVariant
	Extras       []models.Extra
	Themes       []models.CommissionTheme
	EmoteConfigs []models.EmoteConfig
	Overrides    []models.EmoteExtraAvailability
}

// NewCatalog indexes data. Slices are kept in the order given.
func NewCatalog(data CatalogData) *Catalog {
	c := &Catalog{
		services:     data.Services,
		detailLevels: data.DetailLevels,
		variants:     data.Variants,
		extras:       data.Extras,
		themes:       data.Themes,
		servicesByID: make(map[string]models.Service, len(data.Services)),
		variantsByID: make(map[string]models.ServiceVariant, len(data.Variants)),
		extrasByID:   make(map[string]models.Extra, len(data.Extras)),
		themesByID:   make(map[string]models.CommissionTheme, len(data.Themes)),
		resolvers:    make(map[string]*Resolver),
	}
	for _, s := range data.Services {
		c.servicesByID[s.ID] = s
	}
	for _, v := range data.Variants {
		c.variantsByID[v.ID] = v
	}
	for _, e := range data.Extras {
		c.extrasByID[e.ID] = e
	}
	for _, t := range data.Themes {
		c.themesByID[t.ID] = t
	}

	configs := make(map[string][]models.EmoteConfig)
	for _, cfg := range data.EmoteConfigs {
		configs[cfg.ServiceID] = append(configs[cfg.ServiceID], cfg)
	}
	overrides := make(map[string][]models.EmoteExtraAvailability)
	for _, o := range data.Overrides {
		overrides[o.ServiceID] = append(overrides[o.ServiceID], o)
	}
	for _, s := range data.Services {
		if s.IsMultiUnitPack {
			c.resolvers[s.ID] = NewResolver(configs[s.ID], overrides[s.ID])
		}
	}
	return c
}

func (c *Catalog) Services() []models.Service { return c.services }
func (c *Catalog) DetailLevels() []models.DetailLevel { return c.detailLevels }
func (c *Catalog) Variants() []models.ServiceVariant { return c.variants }
func (c *Catalog) Extras() []models.Extra { return c.extras }
func (c *Catalog) Themes() []models.CommissionTheme { return c.themes }

// Service looks up a service by id.
func (c *Catalog) Service(id string) (models.Service, bool) {
	s, ok := c.servicesByID[id]
	return s, ok
}

// DetailLevel finds the detail level of serviceID named name.
func (c *Catalog) DetailLevel(serviceID, name string) (models.DetailLevel, bool) {
	if name == "" {
		return models.DetailLevel{}, false
	}
	for _, dl := range c.detailLevels {
		if dl.ServiceID == serviceID && dl.Name == name {
			return dl, true
		}
	}
	return models.DetailLevel{}, false
}

// Variant looks up a variant by id; it must belong to serviceID.
func (c *Catalog) Variant(serviceID, id string) (models.ServiceVariant, bool) {
	v, ok := c.variantsByID[id]
	if !ok || v.ServiceID != serviceID {
		return models.ServiceVariant{}, false
	}
	return v, true
}

// Extra looks up an extra by id.
func (c *Catalog) Extra(id string) (models.Extra, bool) {
	e, ok := c.extrasByID[id]
	return e, ok
}

// Theme looks up a theme by id.
func (c *Catalog) Theme(id string) (models.CommissionTheme, bool) {
	t, ok := c.themesByID[id]
	return t, ok
}

// ExtrasFor returns the extras offered to serviceID, in catalog order.
func (c *Catalog) ExtrasFor(serviceID string) []models.Extra {
	out := make([]models.Extra, 0, len(c.extras))
	for _, e := range c.extras {
		if e.OfferedTo(serviceID) {
			out = append(out, e)
		}
	}
	return out
}

// DetailLevelsFor returns the detail levels of serviceID.
func (c *Catalog) DetailLevelsFor(serviceID string) []models.DetailLevel {
	out := make([]models.DetailLevel, 0)
	for _, dl := range c.detailLevels {
		if dl.ServiceID == serviceID {
			out = append(out, dl)
		}
	}
	return out
}

// VariantsFor returns the variants of serviceID.
func (c *Catalog) VariantsFor(serviceID string) []models.ServiceVariant {
	out := make([]models.ServiceVariant, 0)
	for _, v := range c.variants {
		if v.ServiceID == serviceID {
			out = append(out, v)
		}
	}
	return out
}

// Resolver returns the availability resolver of a pack service. Regular
// services and unknown ids get nil, which allows everything.
func (c *Catalog) Resolver(serviceID string) *Resolver {
	return c.resolvers[serviceID]
}
