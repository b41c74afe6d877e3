package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/models"
)

func TestResolverDefaultsToAvailable(t *testing.T) {
	r := NewResolver(nil, []models.EmoteExtraAvailability{
		{ExtraID: "sparkle", EmoteNumber: 3, IsAvailable: false},
	})

	for _, extraID := range []string{"sparkle", "animation", "unknown"} {
		for unit := 1; unit <= 5; unit++ {
			if extraID == "sparkle" && unit == 3 {
				continue
			}
			assert.True(t, r.IsAvailable(extraID, unit), "%s on unit %d", extraID, unit)
		}
	}
}

func TestResolverOverrideIsAuthoritative(t *testing.T) {
	r := NewResolver(nil, []models.EmoteExtraAvailability{
		{ExtraID: "sparkle", EmoteNumber: 3, IsAvailable: false},
		{ExtraID: "animation", EmoteNumber: 1, IsAvailable: true},
	})

	assert.False(t, r.IsAvailable("sparkle", 3))
	assert.True(t, r.IsAvailable("animation", 1))
}

func TestResolverLastOverrideWins(t *testing.T) {
	r := NewResolver(nil, []models.EmoteExtraAvailability{
		{ExtraID: "sparkle", EmoteNumber: 2, IsAvailable: false},
		{ExtraID: "sparkle", EmoteNumber: 2, IsAvailable: true},
	})
	assert.True(t, r.IsAvailable("sparkle", 2))
}

func TestNilResolverAllowsEverything(t *testing.T) {
	var r *Resolver
	assert.True(t, r.IsAvailable("anything", 7))
	assert.Equal(t, "Emote #7", r.Label(7))

	_, ok := r.Description(7)
	assert.False(t, ok)
}

func TestResolverLabelsAndDescriptions(t *testing.T) {
	r := NewResolver([]models.EmoteConfig{
		{EmoteNumber: 1, Label: "Happy", Description: "Big smile"},
		{EmoteNumber: 2, Label: "   ", Description: ""},
	}, nil)

	assert.Equal(t, "Happy", r.Label(1))
	assert.Equal(t, "Emote #2", r.Label(2))
	assert.Equal(t, "Emote #3", r.Label(3))

	d, ok := r.Description(1)
	require.True(t, ok)
	assert.Equal(t, "Big smile", d)

	_, ok = r.Description(2)
	assert.False(t, ok)
}

func TestResolverUnits(t *testing.T) {
	r := NewResolver(
		[]models.EmoteConfig{{EmoteNumber: 2, Label: "Sleepy", Description: "Yawning"}},
		[]models.EmoteExtraAvailability{{ExtraID: "sparkle", EmoteNumber: 3, IsAvailable: false}},
	)
	extras := []models.Extra{{ID: "sparkle"}, {ID: "animation"}}

	units := r.Units(3, extras)
	require.Len(t, units, 3)

	assert.Equal(t, "Emote #1", units[0].Label)
	assert.Nil(t, units[0].Description)
	assert.Equal(t, []string{"sparkle", "animation"}, units[0].AvailableExtras)

	assert.Equal(t, "Sleepy", units[1].Label)
	require.NotNil(t, units[1].Description)
	assert.Equal(t, "Yawning", *units[1].Description)

	assert.Equal(t, []string{"animation"}, units[2].AvailableExtras)
}

func TestCatalogResolverOnlyForPacks(t *testing.T) {
	c := NewCatalog(fixtureData())

	assert.Nil(t, c.Resolver("chibi"))
	require.NotNil(t, c.Resolver("emotes"))
	assert.False(t, c.Resolver("emotes").IsAvailable("sparkle", 3))
	assert.Equal(t, "Sleepy", c.Resolver("emotes").Label(2))
}

func TestCatalogLookups(t *testing.T) {
	c := NewCatalog(fixtureData())

	_, ok := c.Variant("chibi", "profile-frame")
	assert.False(t, ok, "variant of another service")

	_, ok = c.DetailLevel("chibi", "premium")
	assert.False(t, ok, "detail level of another service")

	ids := func(extras []models.Extra) []string {
		out := []string{}
		for _, e := range extras {
			out = append(out, e.ID)
		}
		return out
	}
	assert.Equal(t, []string{"background"}, ids(c.ExtrasFor("chibi")))
	assert.Equal(t, []string{"background", "sparkle", "animation"}, ids(c.ExtrasFor("emotes")))
	assert.Len(t, c.DetailLevelsFor("icon"), 2)
	assert.Empty(t, c.VariantsFor("emotes"))
}
