package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/models"
)

func TestComposeFlatExtras(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{
		ServiceID: "chibi",
		Extras:    models.FlatSelection{ExtraIDs: []string{"background"}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.Totals{CLP: 12000, USD: 15}, c.Totals)
	assert.Equal(t, []string{"background"}, c.ExtraIDs)
	assert.Equal(t, "Chibi", c.ServiceName)
	assert.False(t, c.IsPack)
}

func TestComposeDetailLevelReplacesAndVariantAdds(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{ServiceID: "icon", DetailLevelName: "premium"})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 30000, USD: 35}, c.Totals)

	c, err = e.Compose(models.Selection{ServiceID: "icon", DetailLevelName: "premium", VariantID: "profile-frame"})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 35000, USD: 40}, c.Totals)
	assert.Equal(t, "premium", c.DetailLevelName)
	assert.Equal(t, "profile-frame", c.VariantID)
}

func TestComposeSkipsVariantOfOtherService(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{ServiceID: "chibi", VariantID: "profile-frame"})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 10000, USD: 12}, c.Totals)
	assert.Empty(t, c.VariantID)
}

func TestComposeStaleReferencesAreDropped(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{
		ServiceID:       "icon",
		DetailLevelName: "premium",
		VariantID:       "deleted-variant",
		ThemeID:         "deleted-theme",
		Extras:          models.FlatSelection{ExtraIDs: []string{"deleted-extra"}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.Totals{CLP: 30000, USD: 35}, c.Totals)
	assert.Empty(t, c.VariantID)
	assert.Empty(t, c.ThemeID)
	assert.Empty(t, c.ExtraIDs)
}

func TestComposeUnknownDetailLevelFallsBackToBase(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{ServiceID: "icon", DetailLevelName: "ultra"})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 15000, USD: 18}, c.Totals)
	assert.Empty(t, c.DetailLevelName)
}

func TestComposeUnknownServiceFails(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Compose(models.Selection{ServiceID: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownService))
}

func TestComposeRespectsOnlyFor(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{
		ServiceID: "chibi",
		Extras:    models.FlatSelection{ExtraIDs: []string{"sparkle", "background"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 12000, USD: 15}, c.Totals)
	assert.Equal(t, []string{"background"}, c.ExtraIDs)
}

func TestComposeDeduplicatesFlatExtras(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{
		ServiceID: "chibi",
		Extras:    models.FlatSelection{ExtraIDs: []string{"background", "background", ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 12000, USD: 15}, c.Totals)
}

func TestComposeThemeIsPriceNeutral(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{ServiceID: "chibi", ThemeID: "halloween", CustomTheme: "  my OC  "})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 10000, USD: 12}, c.Totals)
	assert.Equal(t, "halloween", c.ThemeID)
	assert.Equal(t, "my OC", c.CustomTheme)
}

func TestComposePackRevalidatesAvailability(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Preview(models.Selection{
		ServiceID: "emotes",
		Extras: models.PackSelection{Units: []models.UnitSelection{
			{EmoteNumber: 1, ExtraIDs: []string{"sparkle"}},
			{EmoteNumber: 3, ExtraIDs: []string{"sparkle"}},
		}},
	})
	require.NoError(t, err)

	c := resp.Commission
	assert.Equal(t, models.Totals{CLP: 21000, USD: 26.5}, c.Totals)
	require.Len(t, c.Units, 2)
	assert.Equal(t, []string{"sparkle"}, c.Units[0].ExtraIDs)
	assert.Empty(t, c.Units[1].ExtraIDs)

	var unit3 []models.LineKind
	for _, line := range resp.Lines {
		if line.EmoteNumber == 3 {
			unit3 = append(unit3, line.Kind)
		}
	}
	assert.Equal(t, []models.LineKind{models.LineUnit, models.LineUnitEmpty}, unit3)
}

func TestComposePackSkipsInvalidUnits(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{
		ServiceID: "emotes",
		Extras: models.PackSelection{Units: []models.UnitSelection{
			{EmoteNumber: 0, ExtraIDs: []string{"sparkle"}},
			{EmoteNumber: 6, ExtraIDs: []string{"sparkle"}},
			{EmoteNumber: 2, ExtraIDs: []string{"animation"}},
			{EmoteNumber: 2, ExtraIDs: []string{"sparkle"}},
		}},
	})
	require.NoError(t, err)

	require.Len(t, c.Units, 1)
	assert.Equal(t, 2, c.Units[0].EmoteNumber)
	assert.Equal(t, models.Totals{CLP: 24000, USD: 30.25}, c.Totals)
}

func TestComposeIgnoresMismatchedPayloadShape(t *testing.T) {
	e := newTestEngine(t)

	c, err := e.Compose(models.Selection{
		ServiceID: "emotes",
		Extras:    models.FlatSelection{ExtraIDs: []string{"sparkle"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 20000, USD: 25}, c.Totals)
	assert.True(t, c.IsPack)

	c, err = e.Compose(models.Selection{
		ServiceID: "chibi",
		Extras:    models.PackSelection{Units: []models.UnitSelection{{EmoteNumber: 1, ExtraIDs: []string{"background"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{CLP: 10000, USD: 12}, c.Totals)
}

func TestComposeRoundsUSDOnceAtTheEnd(t *testing.T) {
	data := fixtureData()
	data.Extras = append(data.Extras,
		models.Extra{ID: "a", Name: "A", PriceUSD: 0.333},
		models.Extra{ID: "b", Name: "B", PriceUSD: 0.333},
		models.Extra{ID: "c", Name: "C", PriceUSD: 0.333},
	)
	e := NewEngine(NewCatalog(data), nil)

	c, err := e.Compose(models.Selection{
		ServiceID: "chibi",
		Extras:    models.FlatSelection{ExtraIDs: []string{"a", "b", "c"}},
	})
	require.NoError(t, err)
	// 12.999 overall; rounding each extra first would give 12.99.
	assert.Equal(t, 13.0, c.Totals.USD)
}

func TestBreakdownFollowsSectionOrder(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Preview(models.Selection{
		ServiceID:       "icon",
		DetailLevelName: "premium",
		VariantID:       "profile-frame",
		ThemeID:         "halloween",
		Extras:          models.FlatSelection{ExtraIDs: []string{"background"}},
	})
	require.NoError(t, err)

	kinds := make([]models.LineKind, 0, len(resp.Lines))
	for _, l := range resp.Lines {
		kinds = append(kinds, l.Kind)
	}
	assert.Equal(t, []models.LineKind{models.LineBase, models.LineVariant, models.LineTheme, models.LineExtra}, kinds)
	assert.Equal(t, "Icon (premium)", resp.Lines[0].Label)

	lines, totals, err := e.Breakdown(resp.Commission)
	require.NoError(t, err)
	assert.Equal(t, resp.Lines, lines)
	assert.Equal(t, resp.Commission.Totals, totals)
}
