package pricing

import (
	"fmt"
	"strings"

	"commission-catalog/models"
)

// DefaultUnitLabel is the label format used for pack units without a
// custom label.
const DefaultUnitLabel = "Emote #%d"

type overrideKey struct {
	extraID string
	unit    int
}

// Resolver answers per-unit questions for one pack service: whether an extra
// may be chosen for a unit, and how the unit is labelled.
//
// Overrides are default-allow: a missing (extra, unit) record means the
// extra is available. A nil *Resolver behaves as a resolver with no
// overrides and no custom labels.
type Resolver struct {
	overrides map[overrideKey]bool
	configs   map[int]models.EmoteConfig
}

// NewResolver builds a Resolver from a service's emote config rows and
// availability overrides. When several overrides share a key the last one
// wins.
func NewResolver(configs []models.EmoteConfig, overrides []models.EmoteExtraAvailability) *Resolver {
	r := &Resolver{
		overrides: make(map[overrideKey]bool, len(overrides)),
		configs:   make(map[int]models.EmoteConfig, len(configs)),
	}
	for _, o := range overrides {
		r.overrides[overrideKey{extraID: o.ExtraID, unit: o.EmoteNumber}] = o.IsAvailable
	}
	for _, c := range configs {
		r.configs[c.EmoteNumber] = c
	}
	return r
}

// IsAvailable reports whether extraID may be selected for unit.
func (r *Resolver) IsAvailable(extraID string, unit int) bool {
	if r == nil {
		return true
	}
	available, ok := r.overrides[overrideKey{extraID: extraID, unit: unit}]
	if !ok {
		return true
	}
	return available
}

// Label returns the custom label of unit, or "Emote #N".
func (r *Resolver) Label(unit int) string {
	if r != nil {
		if c, ok := r.configs[unit]; ok && strings.TrimSpace(c.Label) != "" {
			return c.Label
		}
	}
	return fmt.Sprintf(DefaultUnitLabel, unit)
}

// Description returns the custom description of unit. ok is false when none
// is configured.
func (r *Resolver) Description(unit int) (description string, ok bool) {
	if r == nil {
		return "", false
	}
	c, found := r.configs[unit]
	if !found || strings.TrimSpace(c.Description) == "" {
		return "", false
	}
	return c.Description, true
}

// Units returns the storefront view of units 1..count with the extras each
// unit may take.
func (r *Resolver) Units(count int, extras []models.Extra) []models.EmoteUnitView {
	views := make([]models.EmoteUnitView, 0, count)
	for unit := 1; unit <= count; unit++ {
		view := models.EmoteUnitView{
			EmoteNumber:     unit,
			Label:           r.Label(unit),
			AvailableExtras: []string{},
		}
		if d, ok := r.Description(unit); ok {
			view.Description = &d
		}
		for _, e := range extras {
			if r.IsAvailable(e.ID, unit) {
				view.AvailableExtras = append(view.AvailableExtras, e.ID)
			}
		}
		views = append(views, view)
	}
	return views
}
