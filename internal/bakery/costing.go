package bakery

import "math"

// CostRow is one line of the costing view: a bread, its full recipe
// cost, the units produced from one batch, and the per-unit cost.
type CostRow struct {
	Bread     string  `json:"bread"`
	TotalCost float64 `json:"total_cost"`
	Units     float64 `json:"units"`
	UnitCost  int     `json:"unit_cost"`
}

// TotalRecipeCost sums (qty/1000)*price over every recipe line of the
// bread. Lines whose material no longer exists contribute zero; a
// bread without lines costs zero.
func (m *Model) TotalRecipeCost(bread string) float64 {
	var total float64
	for _, r := range m.recipes {
		if r.Bread != bread {
			continue
		}
		for _, mat := range m.materials {
			if mat.Name == r.Material {
				total += (r.Qty / 1000) * mat.Price
				break
			}
		}
	}
	return total
}

// UnitCost divides the recipe cost by the units produced and rounds
// half-up to the nearest integer currency unit.
func (m *Model) UnitCost(bread string, units float64) int {
	return int(math.Floor(m.TotalRecipeCost(bread)/units + 0.5))
}

// UnitsProduced returns the stored batch divisor for the bread,
// defaulting to 1.
func (m *Model) UnitsProduced(bread string) float64 {
	if u, ok := m.unitsProduced[bread]; ok {
		return u
	}
	return 1
}

// SetUnitsProduced stores the batch divisor for one bread and rewrites
// that bread's derived cost entry, leaving every other entry alone.
func (m *Model) SetUnitsProduced(bread string, units float64) error {
	if units <= 0 {
		return ErrUnitsInvalid
	}
	m.unitsProduced[bread] = units
	if err := m.store.Save(keyUnitsProduced, m.unitsProduced); err != nil {
		return err
	}
	m.breadCosts[bread] = m.UnitCost(bread, units)
	return m.store.Save(keyBreadCosts, m.breadCosts)
}

// RefreshCosts recomputes the derived cost cache for the selected
// bread, or for every bread when the AllBreads wildcard is selected,
// and persists the whole mapping. Each bread keeps its stored divisor
// across refreshes.
func (m *Model) RefreshCosts(selection string) ([]CostRow, error) {
	var selected []string
	if selection == AllBreads {
		selected = m.Breads()
	} else {
		// Only known breads get cache entries; an unknown selection
		// refreshes nothing.
		for _, b := range m.breads {
			if b == selection {
				selected = []string{selection}
				break
			}
		}
	}
	rows := make([]CostRow, 0, len(selected))
	for _, b := range selected {
		units := m.UnitsProduced(b)
		row := CostRow{
			Bread:     b,
			TotalCost: m.TotalRecipeCost(b),
			Units:     units,
			UnitCost:  m.UnitCost(b, units),
		}
		m.breadCosts[b] = row.UnitCost
		rows = append(rows, row)
	}
	return rows, m.store.Save(keyBreadCosts, m.breadCosts)
}

// BreadCost reads the derived per-unit cost cache, 0 for a bread that
// was never costed. The cache is only as fresh as the last refresh.
func (m *Model) BreadCost(bread string) int {
	return m.breadCosts[bread]
}

// RemoveFromCostView deletes the bread's cost entry and divisor, and
// the bread itself from the bread collection.
func (m *Model) RemoveFromCostView(bread string) error {
	delete(m.breadCosts, bread)
	delete(m.unitsProduced, bread)
	if err := m.store.Save(keyBreadCosts, m.breadCosts); err != nil {
		return err
	}
	if err := m.store.Save(keyUnitsProduced, m.unitsProduced); err != nil {
		return err
	}
	kept := m.breads[:0]
	for _, b := range m.breads {
		if b != bread {
			kept = append(kept, b)
		}
	}
	m.breads = kept
	return m.store.Save(keyBreads, m.breads)
}
