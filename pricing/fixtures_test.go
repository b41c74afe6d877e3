package pricing

import (
	"testing"

	"go.uber.org/zap"

	"commission-catalog/models"
)

// fixtureData mirrors a small storefront: a regular service, a tiered
// service and a five-unit emote pack.
func fixtureData() CatalogData {
	return CatalogData{
		Services: []models.Service{
			{ID: "chibi", Name: "Chibi", PriceMinCLP: 10000, PriceMinUSD: 12, IsAvailable: true, DisplayOrder: 1},
			{ID: "icon", Name: "Icon", PriceMinCLP: 15000, PriceMinUSD: 18, IsAvailable: true, DisplayOrder: 2},
			{ID: "emotes", Name: "Emotes", PriceMinCLP: 20000, PriceMinUSD: 25, IsAvailable: true, IsMultiUnitPack: true, UnitCount: 5, DisplayOrder: 3},
		},
		DetailLevels: []models.DetailLevel{
			{ID: "dl-premium", ServiceID: "icon", Name: "premium", PriceCLP: 30000, PriceUSD: 35, IsAvailable: true},
			{ID: "dl-basic", ServiceID: "icon", Name: "basic", PriceCLP: 15000, PriceUSD: 18, IsAvailable: true},
		},
		Variants: []models.ServiceVariant{
			{ID: "profile-frame", ServiceID: "icon", Name: "Profile frame", PriceCLP: 5000, PriceUSD: 5, IsAvailable: true},
			{ID: "chibi-pose", ServiceID: "chibi", Name: "Dynamic pose", PriceCLP: 3000, PriceUSD: 4, IsAvailable: true},
		},
		Extras: []models.Extra{
			{ID: "background", Name: "Background", PriceCLP: 2000, PriceUSD: 3, OnlyFor: []string{}, IsAvailable: true},
			{ID: "sparkle", Name: "Sparkle", PriceCLP: 1000, PriceUSD: 1.5, OnlyFor: []string{"emotes"}, IsAvailable: true},
			{ID: "animation", Name: "Animation", PriceCLP: 4000, PriceUSD: 5.25, OnlyFor: []string{"emotes"}, IsAvailable: true},
		},
		Themes: []models.CommissionTheme{
			{ID: "halloween", Name: "Halloween", IsAvailable: true},
		},
		EmoteConfigs: []models.EmoteConfig{
			{ServiceID: "emotes", EmoteNumber: 2, Label: "Sleepy", Description: "Yawning with a pillow"},
		},
		Overrides: []models.EmoteExtraAvailability{
			{ServiceID: "emotes", ExtraID: "sparkle", EmoteNumber: 3, IsAvailable: false},
			{ServiceID: "emotes", ExtraID: "animation", EmoteNumber: 4, IsAvailable: true},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(NewCatalog(fixtureData()), zap.NewNop())
}
