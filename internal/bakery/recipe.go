package bakery

import (
	"strings"

	"bakeshop/m/domain"
)

// AddRecipe appends a (bread, material, quantity) line. At most one
// line may exist per (bread, material) pair.
func (m *Model) AddRecipe(bread, material string, qty float64) error {
	bread = strings.TrimSpace(bread)
	if bread == "" || bread == AllBreads {
		return ErrBreadRequired
	}
	material = strings.TrimSpace(material)
	if material == "" || qty <= 0 {
		return ErrFieldsRequired
	}
	for _, r := range m.recipes {
		if r.Bread == bread && r.Material == material {
			return ErrDuplicate
		}
	}
	m.recipes = append(m.recipes, domain.RecipeLine{Bread: bread, Material: material, Qty: qty})
	return m.store.Save(keyRecipes, m.recipes)
}

// SetRecipeQty overwrites the quantity of the line at index. The new
// value is not validated; zero and negative quantities pass through.
func (m *Model) SetRecipeQty(index int, qty float64) error {
	if index < 0 || index >= len(m.recipes) {
		return ErrIndexOutOfRange
	}
	m.recipes[index].Qty = qty
	return m.store.Save(keyRecipes, m.recipes)
}

// RemoveRecipe deletes the line at index.
func (m *Model) RemoveRecipe(index int) error {
	if index < 0 || index >= len(m.recipes) {
		return ErrIndexOutOfRange
	}
	m.recipes = append(m.recipes[:index], m.recipes[index+1:]...)
	return m.store.Save(keyRecipes, m.recipes)
}

// RecipesFor returns the lines for one bread, or every line when the
// AllBreads wildcard is selected.
func (m *Model) RecipesFor(bread string) []domain.RecipeLine {
	if bread == AllBreads {
		out := make([]domain.RecipeLine, len(m.recipes))
		copy(out, m.recipes)
		return out
	}
	lines := []domain.RecipeLine{}
	for _, r := range m.recipes {
		if r.Bread == bread {
			lines = append(lines, r)
		}
	}
	return lines
}
