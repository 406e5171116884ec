package bakery

import (
	"sort"
	"strings"

	"bakeshop/m/domain"
)

// Catalog operations for the bread and material collections. Names are
// unique under case-insensitive comparison. Both collections are kept
// sorted case-insensitively at all times, so index arguments always
// address the sorted order that listings return.

func sortBreads(breads []string) {
	sort.SliceStable(breads, func(i, j int) bool {
		return strings.ToLower(breads[i]) < strings.ToLower(breads[j])
	})
}

func sortMaterials(materials []domain.Material) {
	sort.SliceStable(materials, func(i, j int) bool {
		return strings.ToLower(materials[i].Name) < strings.ToLower(materials[j].Name)
	})
}

// Breads returns the bread names, sorted case-insensitively ascending.
func (m *Model) Breads() []string {
	out := make([]string, len(m.breads))
	copy(out, m.breads)
	return out
}

// AddBread inserts a new bread and persists the collection.
func (m *Model) AddBread(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	for _, b := range m.breads {
		if strings.EqualFold(b, name) {
			return ErrDuplicate
		}
	}
	m.breads = append(m.breads, name)
	sortBreads(m.breads)
	return m.store.Save(keyBreads, m.breads)
}

// RenameBread replaces the name at index. A blank new name aborts the
// edit without error; recipe and sale lines referencing the old name
// are left alone and simply stop resolving.
func (m *Model) RenameBread(index int, newName string) error {
	if index < 0 || index >= len(m.breads) {
		return ErrIndexOutOfRange
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil
	}
	for i, b := range m.breads {
		if i != index && strings.EqualFold(b, newName) {
			return ErrDuplicate
		}
	}
	m.breads[index] = newName
	sortBreads(m.breads)
	return m.store.Save(keyBreads, m.breads)
}

// RemoveBread deletes the bread at index. Dependent recipe lines are
// not cascaded.
func (m *Model) RemoveBread(index int) error {
	if index < 0 || index >= len(m.breads) {
		return ErrIndexOutOfRange
	}
	m.breads = append(m.breads[:index], m.breads[index+1:]...)
	return m.store.Save(keyBreads, m.breads)
}

// Materials returns the materials, sorted case-insensitively ascending
// by name.
func (m *Model) Materials() []domain.Material {
	out := make([]domain.Material, len(m.materials))
	copy(out, m.materials)
	return out
}

// AddMaterial inserts a new material with its price per 1000 mass units.
func (m *Model) AddMaterial(name string, price float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if price <= 0 {
		return ErrPriceInvalid
	}
	for _, mat := range m.materials {
		if strings.EqualFold(mat.Name, name) {
			return ErrDuplicate
		}
	}
	m.materials = append(m.materials, domain.Material{Name: name, Price: price})
	sortMaterials(m.materials)
	return m.store.Save(keyMaterials, m.materials)
}

// SetMaterialPrice overwrites the price of the material at index.
func (m *Model) SetMaterialPrice(index int, price float64) error {
	if index < 0 || index >= len(m.materials) {
		return ErrIndexOutOfRange
	}
	if price <= 0 {
		return ErrPriceInvalid
	}
	m.materials[index].Price = price
	return m.store.Save(keyMaterials, m.materials)
}

// RemoveMaterial deletes the material at index. Recipe lines keep
// their reference and contribute zero cost from then on.
func (m *Model) RemoveMaterial(index int) error {
	if index < 0 || index >= len(m.materials) {
		return ErrIndexOutOfRange
	}
	m.materials = append(m.materials[:index], m.materials[index+1:]...)
	return m.store.Save(keyMaterials, m.materials)
}
