package bakery

import (
	"errors"
	"log"

	"bakeshop/m/domain"
	"bakeshop/m/internal/store"
)

// Document keys in the persistent store. Each collection is its own
// document; a crash between two saves can leave them mutually
// inconsistent, which the original tool tolerates as well.
const (
	keyBreads        = "breads"
	keyMaterials     = "materials"
	keyRecipes       = "recipes"
	keySales         = "sales"
	keyBreadCosts    = "breadCosts"
	keyUnitsProduced = "unitsProduced"
)

// AllBreads is the wildcard selection meaning "every bread".
const AllBreads = "All"

// Model owns the four collections and the derived cost cache. All
// managers operate through it, and every mutation is persisted before
// it returns.
type Model struct {
	store *store.Store

	breads        []string
	materials     []domain.Material
	recipes       []domain.RecipeLine
	sales         []domain.SaleLine
	breadCosts    map[string]int
	unitsProduced map[string]float64
}

// Load builds a Model from whatever the store holds. Missing or
// malformed documents fall back to empty collections; a decode failure
// is logged but never fatal.
func Load(st *store.Store) *Model {
	m := &Model{
		store:         st,
		breads:        []string{},
		materials:     []domain.Material{},
		recipes:       []domain.RecipeLine{},
		sales:         []domain.SaleLine{},
		breadCosts:    map[string]int{},
		unitsProduced: map[string]float64{},
	}
	loadDoc(st, keyBreads, &m.breads)
	loadDoc(st, keyMaterials, &m.materials)
	loadDoc(st, keyRecipes, &m.recipes)
	loadDoc(st, keySales, &m.sales)
	loadDoc(st, keyBreadCosts, &m.breadCosts)
	loadDoc(st, keyUnitsProduced, &m.unitsProduced)
	m.normalize()
	return m
}

// normalize replaces nil collections (a stored JSON null decodes to
// nil) so mutations and exports always see usable values, and restores
// the sorted order index arguments rely on.
func (m *Model) normalize() {
	sortBreads(m.breads)
	sortMaterials(m.materials)
	if m.breads == nil {
		m.breads = []string{}
	}
	if m.materials == nil {
		m.materials = []domain.Material{}
	}
	if m.recipes == nil {
		m.recipes = []domain.RecipeLine{}
	}
	if m.sales == nil {
		m.sales = []domain.SaleLine{}
	}
	if m.breadCosts == nil {
		m.breadCosts = map[string]int{}
	}
	if m.unitsProduced == nil {
		m.unitsProduced = map[string]float64{}
	}
}

func loadDoc[T any](st *store.Store, key string, dest *T) {
	var loaded T
	err := st.Load(key, &loaded)
	if err == nil {
		*dest = loaded
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("load %s: %v, starting empty", key, err)
	}
}
