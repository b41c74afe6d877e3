package pricing

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/utils"
)

// ErrUnknownService is returned when a selection names a service that is not
// in the catalog snapshot. Every other stale reference is dropped silently.
var ErrUnknownService = errors.New("unknown service")

// Engine composes prices and line-item breakdowns from a catalog snapshot.
// It never mutates the snapshot and never performs I/O.
type Engine struct {
	catalog *Catalog
	log     *zap.SugaredLogger
}

// NewEngine creates a new pricing engine over catalog
func NewEngine(catalog *Catalog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog: catalog,
		log:     logger.Sugar(),
	}
}

// Catalog returns the snapshot the engine composes against.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

type composition struct {
	commission models.SelectedCommission
	lines      []models.LineItem
}

// Compose prices sel and returns the resulting commission. Only references
// that resolve are kept on the returned commission.
func (e *Engine) Compose(sel models.Selection) (*models.SelectedCommission, error) {
	c, err := e.compose(sel)
	if err != nil {
		return nil, err
	}
	return &c.commission, nil
}

// Preview composes sel and also returns its line-item breakdown.
func (e *Engine) Preview(sel models.Selection) (*models.ComposeResponse, error) {
	c, err := e.compose(sel)
	if err != nil {
		return nil, err
	}
	return &models.ComposeResponse{Commission: c.commission, Lines: c.lines}, nil
}

// Breakdown re-derives the line items of a previously composed commission
// against the current snapshot.
func (e *Engine) Breakdown(commission models.SelectedCommission) ([]models.LineItem, models.Totals, error) {
	c, err := e.compose(commission.Selection())
	if err != nil {
		return nil, models.Totals{}, err
	}
	return c.lines, c.commission.Totals, nil
}

func (e *Engine) compose(sel models.Selection) (*composition, error) {
	svc, ok := e.catalog.Service(sel.ServiceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, sel.ServiceID)
	}

	out := &composition{
		commission: models.SelectedCommission{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			IsPack:      svc.IsMultiUnitPack,
		},
	}

	// Base: a detail level replaces the service's "from" price.
	totalCLP := svc.PriceMinCLP
	totalUSD := svc.PriceMinUSD
	baseLabel := svc.Name
	if dl, found := e.catalog.DetailLevel(svc.ID, sel.DetailLevelName); found {
		totalCLP = dl.PriceCLP
		totalUSD = dl.PriceUSD
		baseLabel = fmt.Sprintf("%s (%s)", svc.Name, dl.Name)
		out.commission.DetailLevelName = dl.Name
	} else if sel.DetailLevelName != "" {
		e.log.Debugf("💰 Compose: detail level %q not found for service %s, using base price", sel.DetailLevelName, svc.ID)
	}
	out.add(models.LineItem{Kind: models.LineBase, Label: baseLabel, CLP: totalCLP, USD: totalUSD, Priced: true})

	// Variant: additive.
	if v, found := e.catalog.Variant(svc.ID, sel.VariantID); found {
		totalCLP += v.PriceCLP
		totalUSD += v.PriceUSD
		out.commission.VariantID = v.ID
		out.add(models.LineItem{Kind: models.LineVariant, Label: v.Name, CLP: v.PriceCLP, USD: v.PriceUSD, Priced: true})
	} else if sel.VariantID != "" {
		e.log.Debugf("💰 Compose: variant %q not found for service %s, skipping", sel.VariantID, svc.ID)
	}

	// Themes never affect price.
	if t, found := e.catalog.Theme(sel.ThemeID); found {
		out.commission.ThemeID = t.ID
		out.add(models.LineItem{Kind: models.LineTheme, Label: t.Name})
	}
	if custom := strings.TrimSpace(sel.CustomTheme); custom != "" {
		out.commission.CustomTheme = custom
		out.add(models.LineItem{Kind: models.LineCustomTheme, Label: custom})
	}

	switch extras := sel.Extras.(type) {
	case models.FlatSelection:
		if svc.IsMultiUnitPack {
			e.log.Debugf("💰 Compose: ignoring flat extras for pack service %s", svc.ID)
			break
		}
		clp, usd := e.composeFlat(svc, extras, out)
		totalCLP += clp
		totalUSD += usd
	case models.PackSelection:
		if !svc.IsMultiUnitPack {
			e.log.Debugf("💰 Compose: ignoring per-unit extras for regular service %s", svc.ID)
			break
		}
		clp, usd := e.composePack(svc, extras, out)
		totalCLP += clp
		totalUSD += usd
	}

	out.commission.Totals = models.Totals{CLP: totalCLP, USD: utils.RoundCents(totalUSD)}
	return out, nil
}

func (e *Engine) composeFlat(svc models.Service, sel models.FlatSelection, out *composition) (int64, float64) {
	var clp int64
	var usd float64
	accepted := []string{}
	for _, id := range dedupe(sel.ExtraIDs) {
		extra, ok := e.catalog.Extra(id)
		if !ok || !extra.OfferedTo(svc.ID) {
			e.log.Debugf("💰 Compose: extra %q not offered to %s, skipping", id, svc.ID)
			continue
		}
		clp += extra.PriceCLP
		usd += extra.PriceUSD
		accepted = append(accepted, extra.ID)
		out.add(models.LineItem{Kind: models.LineExtra, Label: extra.Name, CLP: extra.PriceCLP, USD: extra.PriceUSD, Priced: true})
	}
	out.commission.ExtraIDs = accepted
	return clp, usd
}

// composePack re-validates every unit extra against the availability
// overrides in the snapshot; the payload is not trusted.
func (e *Engine) composePack(svc models.Service, sel models.PackSelection, out *composition) (int64, float64) {
	resolver := e.catalog.Resolver(svc.ID)
	var clp int64
	var usd float64
	seen := make(map[int]bool, len(sel.Units))
	units := []models.UnitSelection{}

	for _, unit := range sel.Units {
		n := unit.EmoteNumber
		if n < 1 || (svc.UnitCount > 0 && n > svc.UnitCount) || seen[n] {
			e.log.Debugf("💰 Compose: skipping unit %d of %s", n, svc.ID)
			continue
		}
		seen[n] = true

		out.add(models.LineItem{Kind: models.LineUnit, Label: resolver.Label(n), EmoteNumber: n})
		accepted := []string{}
		for _, id := range dedupe(unit.ExtraIDs) {
			extra, ok := e.catalog.Extra(id)
			if !ok || !extra.OfferedTo(svc.ID) || !resolver.IsAvailable(id, n) {
				e.log.Debugf("💰 Compose: extra %q unavailable for unit %d of %s, skipping", id, n, svc.ID)
				continue
			}
			clp += extra.PriceCLP
			usd += extra.PriceUSD
			accepted = append(accepted, extra.ID)
			out.add(models.LineItem{Kind: models.LineUnitExtra, Label: extra.Name, EmoteNumber: n, CLP: extra.PriceCLP, USD: extra.PriceUSD, Priced: true})
		}
		if len(accepted) == 0 {
			out.add(models.LineItem{Kind: models.LineUnitEmpty, Label: "no extras", EmoteNumber: n})
		}
		units = append(units, models.UnitSelection{EmoteNumber: n, ExtraIDs: accepted})
	}

	out.commission.Units = units
	return clp, usd
}

func (c *composition) add(line models.LineItem) {
	c.lines = append(c.lines, line)
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
