package bakery

import "errors"

// Validation errors surfaced to the presentation layer. Every failed
// operation leaves the model and the store untouched.
var (
	ErrNameRequired    = errors.New("name is required")
	ErrDuplicate       = errors.New("already exists")
	ErrPriceInvalid    = errors.New("price must be a positive number")
	ErrBreadRequired   = errors.New("select a bread")
	ErrFieldsRequired  = errors.New("material and quantity are required")
	ErrUnitsInvalid    = errors.New("units must be a positive number")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidSnapshot = errors.New("invalid snapshot data")
)
