package bakery

import "bakeshop/m/domain"

// Default values for a freshly added sale line.
const (
	defaultBenefit = 100
	defaultNum     = 1
)

// Sales returns the ledger in insertion order.
func (m *Model) Sales() []domain.SaleLine {
	out := make([]domain.SaleLine, len(m.sales))
	copy(out, m.sales)
	return out
}

// AddSaleLine appends a line for the bread with the fixed defaults of
// 100% markup and a count of one. Repeated breads get repeated lines.
func (m *Model) AddSaleLine(bread string) error {
	m.sales = append(m.sales, domain.SaleLine{Bread: bread, Benefit: defaultBenefit, Num: defaultNum})
	return m.store.Save(keySales, m.sales)
}

// SetBenefit overwrites the markup percent of the line at index.
func (m *Model) SetBenefit(index int, percent float64) error {
	if index < 0 || index >= len(m.sales) {
		return ErrIndexOutOfRange
	}
	m.sales[index].Benefit = percent
	return m.store.Save(keySales, m.sales)
}

// SetNum overwrites the unit count of the line at index.
func (m *Model) SetNum(index, num int) error {
	if index < 0 || index >= len(m.sales) {
		return ErrIndexOutOfRange
	}
	m.sales[index].Num = num
	return m.store.Save(keySales, m.sales)
}

// LineAmount prices one line from the derived cost cache: unit cost
// times (1 + benefit/100) times count. An uncosted bread sells for 0.
func (m *Model) LineAmount(line domain.SaleLine) float64 {
	return float64(m.breadCosts[line.Bread]) * (1 + line.Benefit/100) * float64(line.Num)
}

// SalesTotal sums LineAmount over the whole ledger.
func (m *Model) SalesTotal() float64 {
	var total float64
	for _, s := range m.sales {
		total += m.LineAmount(s)
	}
	return total
}

// RemoveSaleLine deletes the line at index.
func (m *Model) RemoveSaleLine(index int) error {
	if index < 0 || index >= len(m.sales) {
		return ErrIndexOutOfRange
	}
	m.sales = append(m.sales[:index], m.sales[index+1:]...)
	return m.store.Save(keySales, m.sales)
}

// ClearSales empties the ledger.
func (m *Model) ClearSales() error {
	m.sales = []domain.SaleLine{}
	return m.store.Save(keySales, m.sales)
}
