package bakery

import (
	"encoding/json"

	"bakeshop/m/domain"
)

// Snapshot is the human-copyable exchange shape: the four collections
// and nothing else. The derived cost cache is never exported.
type Snapshot struct {
	Breads    []string            `json:"breads"`
	Materials []domain.Material   `json:"materials"`
	Recipes   []domain.RecipeLine `json:"recipes"`
	Sales     []domain.SaleLine   `json:"sales"`
}

// ExportSnapshot serializes the current collections as indented JSON.
func (m *Model) ExportSnapshot() ([]byte, error) {
	return json.MarshalIndent(Snapshot{
		Breads:    m.breads,
		Materials: m.materials,
		Recipes:   m.recipes,
		Sales:     m.sales,
	}, "", "  ")
}

// ImportSnapshot parses a snapshot and replaces each collection whose
// field is present, persisting the replacements. Absent fields leave
// the corresponding collection untouched, so a partial snapshot is a
// partial import. Malformed input changes nothing.
func (m *Model) ImportSnapshot(data []byte) error {
	var in struct {
		Breads    *[]string            `json:"breads"`
		Materials *[]domain.Material   `json:"materials"`
		Recipes   *[]domain.RecipeLine `json:"recipes"`
		Sales     *[]domain.SaleLine   `json:"sales"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return ErrInvalidSnapshot
	}
	if in.Breads != nil {
		m.breads = *in.Breads
		if err := m.store.Save(keyBreads, m.breads); err != nil {
			return err
		}
	}
	if in.Materials != nil {
		m.materials = *in.Materials
		if err := m.store.Save(keyMaterials, m.materials); err != nil {
			return err
		}
	}
	if in.Recipes != nil {
		m.recipes = *in.Recipes
		if err := m.store.Save(keyRecipes, m.recipes); err != nil {
			return err
		}
	}
	if in.Sales != nil {
		m.sales = *in.Sales
		if err := m.store.Save(keySales, m.sales); err != nil {
			return err
		}
	}
	m.normalize()
	return nil
}
