package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPotentialPoints(t *testing.T) {
	tables := Default()

	cases := map[string]int{
		"corruption": 500,
		"encroach":   300,
		"pollution":  250,
		"road":       150,
		"litter":     100,
		"water":      200,
		"power":      120,
		"forest":     200,
	}
	for category, want := range cases {
		assert.Equal(t, want, tables.PotentialPoints(category), category)
	}

	// Unknown categories fall back instead of panicking.
	assert.Equal(t, 100, tables.PotentialPoints("graffiti"))
}

func TestValidCategory(t *testing.T) {
	tables := Default()

	for _, category := range tables.Categories() {
		assert.True(t, tables.ValidCategory(category), category)
	}
	assert.False(t, tables.ValidCategory(""))
	assert.False(t, tables.ValidCategory("graffiti"))
	assert.False(t, tables.ValidCategory("Corruption"))
}

func TestSLADays(t *testing.T) {
	tables := Default()

	cases := map[string]int{
		"corruption": 7,
		"encroach":   14,
		"pollution":  10,
		"road":       21,
		"litter":     3,
		"water":      5,
		"power":      7,
		"forest":     3,
	}
	for category, want := range cases {
		assert.Equal(t, want, tables.SLADays(category), category)
	}
}

func TestCategoriesStableOrder(t *testing.T) {
	tables := Default()

	first := tables.Categories()
	second := tables.Categories()
	assert.Equal(t, first, second)
	assert.Len(t, first, 8)

	// Returned slice is a copy; mutating it must not affect the tables.
	first[0] = "mutated"
	assert.Equal(t, "corruption", tables.Categories()[0])
}

func TestRewardCatalog(t *testing.T) {
	tables := Default()

	reward, ok := tables.Reward("r4")
	assert.True(t, ok)
	assert.Equal(t, 1000, reward.Pts)
	assert.Equal(t, "1 Month Bus Pass", reward.Label)

	_, ok = tables.Reward("r6")
	assert.False(t, ok)

	for _, id := range tables.RewardIDs() {
		r, ok := tables.Reward(id)
		assert.True(t, ok, id)
		assert.Greater(t, r.Pts, 0, id)
		assert.NotEmpty(t, r.Label, id)
	}
}
