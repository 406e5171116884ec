package bakery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/m/internal/store"
)

func costingFixture(t *testing.T) *Model {
	t.Helper()
	m := newTestModel(t)
	require.NoError(t, m.AddBread("baguette"))
	require.NoError(t, m.AddMaterial("flour", 20000))
	require.NoError(t, m.AddRecipe("baguette", "flour", 500))
	return m
}

func TestTotalRecipeCost(t *testing.T) {
	m := costingFixture(t)

	// 500g of flour at 20000 per kilo.
	assert.Equal(t, 10000.0, m.TotalRecipeCost("baguette"))
	assert.Equal(t, 0.0, m.TotalRecipeCost("no-such-bread"))
}

func TestTotalRecipeCostIgnoresMissingMaterial(t *testing.T) {
	m := costingFixture(t)
	require.NoError(t, m.AddRecipe("baguette", "vanished", 900))

	assert.Equal(t, 10000.0, m.TotalRecipeCost("baguette"))
}

func TestUnitCost(t *testing.T) {
	m := costingFixture(t)

	assert.Equal(t, 10000, m.UnitCost("baguette", 1))
	assert.Equal(t, 1000, m.UnitCost("baguette", 10))
	// Half rounds up: 10000/3 = 3333.33..., 10000/16 = 625, 10000/32 = 312.5.
	assert.Equal(t, 3333, m.UnitCost("baguette", 3))
	assert.Equal(t, 313, m.UnitCost("baguette", 32))
}

func TestSetUnitsProduced(t *testing.T) {
	m := costingFixture(t)

	assert.ErrorIs(t, m.SetUnitsProduced("baguette", 0), ErrUnitsInvalid)
	assert.ErrorIs(t, m.SetUnitsProduced("baguette", -2), ErrUnitsInvalid)

	require.NoError(t, m.SetUnitsProduced("baguette", 10))
	assert.Equal(t, 1000, m.BreadCost("baguette"))
	assert.Equal(t, 10.0, m.UnitsProduced("baguette"))
}

func TestRefreshCostsKeepsStoredDivisors(t *testing.T) {
	m := costingFixture(t)
	require.NoError(t, m.AddBread("lavash"))
	require.NoError(t, m.SetUnitsProduced("baguette", 10))

	// Refreshing the whole view must not reset baguette's divisor to 1.
	rows, err := m.RefreshCosts(AllBreads)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byBread := map[string]CostRow{}
	for _, row := range rows {
		byBread[row.Bread] = row
	}
	assert.Equal(t, 10.0, byBread["baguette"].Units)
	assert.Equal(t, 1000, byBread["baguette"].UnitCost)
	assert.Equal(t, 1.0, byBread["lavash"].Units)
	assert.Equal(t, 0, byBread["lavash"].UnitCost)

	assert.Equal(t, 1000, m.BreadCost("baguette"))
}

func TestRefreshCostsSingleSelection(t *testing.T) {
	m := costingFixture(t)
	require.NoError(t, m.AddBread("lavash"))

	rows, err := m.RefreshCosts("baguette")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "baguette", rows[0].Bread)
	assert.Equal(t, 10000.0, rows[0].TotalCost)

	// The unselected bread stays uncosted.
	assert.Equal(t, 0, m.BreadCost("lavash"))
}

func TestRefreshCostsIgnoresUnknownBread(t *testing.T) {
	m := costingFixture(t)

	rows, err := m.RefreshCosts("ghost")
	require.NoError(t, err)
	assert.Empty(t, rows)

	// No cache entry is created for a bread that does not exist.
	_, ok := m.breadCosts["ghost"]
	assert.False(t, ok)
}

func TestRemoveFromCostViewDeletesBreadToo(t *testing.T) {
	db := newTestDB(t)
	st := store.New(db)
	m := Load(st)
	require.NoError(t, m.AddBread("baguette"))
	require.NoError(t, m.AddBread("lavash"))
	require.NoError(t, m.AddMaterial("flour", 20000))
	require.NoError(t, m.AddRecipe("baguette", "flour", 500))
	_, err := m.RefreshCosts(AllBreads)
	require.NoError(t, err)
	require.Equal(t, 10000, m.BreadCost("baguette"))

	require.NoError(t, m.RemoveFromCostView("baguette"))
	assert.Equal(t, 0, m.BreadCost("baguette"))
	assert.Equal(t, []string{"lavash"}, m.Breads())

	// Both removals are durable.
	reloaded := Load(st)
	assert.Equal(t, 0, reloaded.BreadCost("baguette"))
	assert.Equal(t, []string{"lavash"}, reloaded.Breads())
}
