package bakery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/m/domain"
)

func snapshotFixture(t *testing.T) *Model {
	t.Helper()
	m := newTestModel(t)
	require.NoError(t, m.AddBread("baguette"))
	require.NoError(t, m.AddBread("lavash"))
	require.NoError(t, m.AddMaterial("flour", 20000))
	require.NoError(t, m.AddRecipe("baguette", "flour", 500))
	require.NoError(t, m.AddSaleLine("baguette"))
	return m
}

func TestExportImportRoundTrip(t *testing.T) {
	m := snapshotFixture(t)
	data, err := m.ExportSnapshot()
	require.NoError(t, err)

	other := newTestModel(t)
	require.NoError(t, other.ImportSnapshot(data))

	assert.Equal(t, m.Breads(), other.Breads())
	assert.Equal(t, m.Materials(), other.Materials())
	assert.Equal(t, m.RecipesFor(AllBreads), other.RecipesFor(AllBreads))
	assert.Equal(t, m.Sales(), other.Sales())
}

func TestExportOmitsBreadCosts(t *testing.T) {
	m := snapshotFixture(t)
	_, err := m.RefreshCosts(AllBreads)
	require.NoError(t, err)

	data, err := m.ExportSnapshot()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "breads")
	assert.Contains(t, raw, "materials")
	assert.Contains(t, raw, "recipes")
	assert.Contains(t, raw, "sales")
	assert.NotContains(t, raw, "breadCosts")
}

func TestImportPartialSnapshot(t *testing.T) {
	m := snapshotFixture(t)

	err := m.ImportSnapshot([]byte(`{"materials":[{"name":"sugar","price":5000}]}`))
	require.NoError(t, err)

	// Only materials replaced; everything else untouched.
	assert.Equal(t, []domain.Material{{Name: "sugar", Price: 5000}}, m.Materials())
	assert.Equal(t, []string{"baguette", "lavash"}, m.Breads())
	assert.Len(t, m.RecipesFor(AllBreads), 1)
	assert.Len(t, m.Sales(), 1)
}

func TestImportRestoresSortedOrder(t *testing.T) {
	m := newTestModel(t)

	require.NoError(t, m.ImportSnapshot([]byte(`{"breads":["zebra","apple"],"materials":[{"name":"yeast","price":12000},{"name":"flour","price":20000}]}`)))

	assert.Equal(t, []string{"apple", "zebra"}, m.breads)
	assert.Equal(t, "flour", m.materials[0].Name)
}

func TestImportInvalidSnapshot(t *testing.T) {
	m := snapshotFixture(t)

	err := m.ImportSnapshot([]byte(`{definitely not json`))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	// No state change on failure.
	assert.Equal(t, []string{"baguette", "lavash"}, m.Breads())
	assert.Len(t, m.Materials(), 1)
}

func TestImportReplacementsPersist(t *testing.T) {
	m := snapshotFixture(t)
	require.NoError(t, m.ImportSnapshot([]byte(`{"breads":["sangak"]}`)))

	reloaded := Load(m.store)
	assert.Equal(t, []string{"sangak"}, reloaded.Breads())
	assert.Len(t, reloaded.Materials(), 1)
}
