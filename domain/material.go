package domain

// Material is a raw ingredient priced per 1000 mass units.
type Material struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
