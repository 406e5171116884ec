package domain

// RecipeLine records how much of one material goes into one bread.
// Bread and Material reference catalog entries by name; references are
// not cascaded on delete, a line whose material no longer exists simply
// contributes nothing to the cost.
type RecipeLine struct {
	Bread    string  `json:"bread"`
	Material string  `json:"material"`
	Qty      float64 `json:"qty"`
}
