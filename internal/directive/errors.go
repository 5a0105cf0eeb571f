package directive

import "errors"

var (
	// ErrUnknownToken is returned when a line starts with an unregistered keyword.
	ErrUnknownToken = errors.New("unknown token")
	// ErrInvalidAssignment is returned when a set directive has no '='.
	ErrInvalidAssignment = errors.New("invalid value assignment")
	// ErrUnknownOption is returned when a set directive names an undeclared option.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidValue is returned for malformed quoting or a bad boolean literal.
	ErrInvalidValue = errors.New("invalid value")
	// ErrDuplicateDirective is returned when a keyword is registered twice.
	ErrDuplicateDirective = errors.New("directive already registered")
)
