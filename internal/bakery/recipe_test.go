package bakery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRecipeValidation(t *testing.T) {
	m := newTestModel(t)

	assert.ErrorIs(t, m.AddRecipe("", "flour", 500), ErrBreadRequired)
	assert.ErrorIs(t, m.AddRecipe(AllBreads, "flour", 500), ErrBreadRequired)
	assert.ErrorIs(t, m.AddRecipe("Baguette", "", 500), ErrFieldsRequired)
	assert.ErrorIs(t, m.AddRecipe("Baguette", "flour", 0), ErrFieldsRequired)
	assert.ErrorIs(t, m.AddRecipe("Baguette", "flour", -1), ErrFieldsRequired)
}

func TestAddRecipeRejectsDuplicatePair(t *testing.T) {
	m := newTestModel(t)

	require.NoError(t, m.AddRecipe("Baguette", "flour", 500))
	assert.ErrorIs(t, m.AddRecipe("Baguette", "flour", 300), ErrDuplicate)
	// Same material for another bread is fine.
	assert.NoError(t, m.AddRecipe("Lavash", "flour", 300))
}

func TestRecipesForFiltersByBread(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.AddRecipe("Baguette", "flour", 500))
	require.NoError(t, m.AddRecipe("Baguette", "salt", 10))
	require.NoError(t, m.AddRecipe("Lavash", "flour", 300))

	assert.Len(t, m.RecipesFor("Baguette"), 2)
	assert.Len(t, m.RecipesFor("Lavash"), 1)
	assert.Len(t, m.RecipesFor(AllBreads), 3)
	assert.Empty(t, m.RecipesFor("Sangak"))
}

func TestSetRecipeQtySkipsValidation(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.AddRecipe("Baguette", "flour", 500))

	// Quantity edits pass through unvalidated, zero and negative included.
	require.NoError(t, m.SetRecipeQty(0, 0))
	assert.Equal(t, 0.0, m.RecipesFor("Baguette")[0].Qty)
	require.NoError(t, m.SetRecipeQty(0, -20))
	assert.Equal(t, -20.0, m.RecipesFor("Baguette")[0].Qty)
}

func TestRemoveRecipe(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.AddRecipe("Baguette", "flour", 500))
	require.NoError(t, m.AddRecipe("Baguette", "salt", 10))

	require.NoError(t, m.RemoveRecipe(0))
	lines := m.RecipesFor("Baguette")
	require.Len(t, lines, 1)
	assert.Equal(t, "salt", lines[0].Material)

	assert.ErrorIs(t, m.RemoveRecipe(5), ErrIndexOutOfRange)
}
