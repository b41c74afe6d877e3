package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/models"
)

func composeAll(t *testing.T, e *Engine, sels ...models.Selection) []models.SelectedCommission {
	t.Helper()
	out := make([]models.SelectedCommission, 0, len(sels))
	for i, sel := range sels {
		c, err := e.Compose(sel)
		require.NoError(t, err)
		c.LocalID = int64(i + 1)
		out = append(out, *c)
	}
	return out
}

func TestSummaryRendersSectionsInCartOrder(t *testing.T) {
	e := newTestEngine(t)
	items := composeAll(t, e,
		models.Selection{
			ServiceID:       "icon",
			DetailLevelName: "premium",
			VariantID:       "profile-frame",
			ThemeID:         "halloween",
		},
		models.Selection{
			ServiceID: "emotes",
			Extras: models.PackSelection{Units: []models.UnitSelection{
				{EmoteNumber: 1, ExtraIDs: []string{"sparkle"}},
				{EmoteNumber: 2},
			}},
		},
	)

	want := []string{
		"1. Icon (premium): $30.000 CLP / $35.00 USD",
		"   + Profile frame: +$5.000 CLP / $5.00 USD",
		"   Theme: Halloween",
		"   Subtotal: $35.000 CLP / $40.00 USD",
		"2. Emotes: $20.000 CLP / $25.00 USD",
		"   Emote #1:",
		"      + Sparkle: +$1.000 CLP / $1.50 USD",
		"   Sleepy:",
		"      (no extras)",
		"   Subtotal: $21.000 CLP / $26.50 USD",
		"TOTAL: $56.000 CLP / $66.50 USD",
	}
	assert.Equal(t, want, e.Summary(items))
}

func TestSummaryIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	items := composeAll(t, e,
		models.Selection{ServiceID: "chibi", CustomTheme: "My OC", Extras: models.FlatSelection{ExtraIDs: []string{"background"}}},
		models.Selection{ServiceID: "icon"},
	)

	first := e.SummaryText(items)
	second := e.SummaryText(items)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "   Custom theme: My OC")
	assert.Contains(t, first, "   + Background: +$2.000 CLP / $3.00 USD")
}

func TestSummaryKeepsCommissionsOfRemovedServices(t *testing.T) {
	e := newTestEngine(t)
	items := composeAll(t, e, models.Selection{ServiceID: "chibi"})

	data := fixtureData()
	data.Services = data.Services[1:]
	later := NewEngine(NewCatalog(data), nil)

	assert.Equal(t, []string{
		"1. Chibi: $10.000 CLP / $12.00 USD",
		"TOTAL: $10.000 CLP / $12.00 USD",
	}, later.Summary(items))
}

func TestSummaryOfEmptyCart(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, []string{"TOTAL: $0 CLP / $0.00 USD"}, e.Summary(nil))
}

func TestSettleTotalMatchesRenderedTotal(t *testing.T) {
	e := newTestEngine(t)
	items := composeAll(t, e, models.Selection{
		ServiceID: "emotes",
		Extras: models.PackSelection{Units: []models.UnitSelection{
			{EmoteNumber: 1, ExtraIDs: []string{"sparkle"}},
		}},
	})
	require.Equal(t, models.Totals{CLP: 21000, USD: 26.5}, items[0].Totals)

	data := fixtureData()
	data.Overrides = append(data.Overrides, models.EmoteExtraAvailability{ServiceID: "emotes", ExtraID: "sparkle", EmoteNumber: 1, IsAvailable: false})
	later := NewEngine(NewCatalog(data), nil)

	text, total := later.Settle(items)
	assert.Equal(t, models.Totals{CLP: 20000, USD: 25}, total)
	assert.Contains(t, text, "      (no extras)")
	assert.Contains(t, text, "TOTAL: $20.000 CLP / $25.00 USD")
	assert.Equal(t, later.SummaryText(items), text)
}
