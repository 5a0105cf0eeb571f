package options

import "errors"

var (
	// ErrInvalidRegistry is returned when declared descriptors violate the slot or naming rules.
	ErrInvalidRegistry = errors.New("invalid option registry")
)
