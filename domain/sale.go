package domain

// SaleLine is one recorded sale: a bread, a markup percent (benefit)
// on top of its unit cost, and a unit count.
type SaleLine struct {
	Bread   string  `json:"bread"`
	Benefit float64 `json:"benefit"`
	Num     int     `json:"num"`
}
