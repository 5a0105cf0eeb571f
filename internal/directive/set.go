package directive

import (
	"strconv"
	"strings"

	"github.com/eugenenazirov/rcopts/internal/lexer"
	"github.com/eugenenazirov/rcopts/internal/options"
)

// NewSetHandler returns the handler for "set <name> = <value>".
func NewSetHandler(reg *options.Registry, store options.Setter) Handler {
	return func(remainder string) error {
		return parseSet(reg, store, remainder)
	}
}

func parseSet(reg *options.Registry, store options.Setter, remainder string) error {
	name, raw, ok := strings.Cut(lexer.TrimLeft(remainder), "=")
	if !ok {
		return ErrInvalidAssignment
	}

	desc, ok := reg.Lookup(lexer.Trim(name))
	if !ok {
		return ErrUnknownOption
	}

	value, err := Dequote(lexer.Trim(raw))
	if err != nil {
		return err
	}

	return assign(store, desc, value)
}

func assign(store options.Setter, desc *options.Descriptor, value string) error {
	switch desc.Kind {
	case options.KindString:
		store.SetStr(desc.StrSlot(), value)
	case options.KindInt:
		store.SetInt(desc.IntSlot(), LenientInt(value))
	case options.KindBool:
		b, err := ParseBool(value)
		if err != nil {
			return err
		}
		store.SetBool(desc.BoolSlot(), b)
	}
	return nil
}

// Dequote strips one surrounding pair of double quotes. A quoted value needs
// at least one byte between the quotes; `"` and `""` are rejected.
func Dequote(value string) (string, error) {
	if !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return value, nil
	}
	if len(value) < 3 {
		return "", ErrInvalidValue
	}
	return value[1 : len(value)-1], nil
}

// ParseBool accepts true/on and false/off in any letter case.
func ParseBool(value string) (bool, error) {
	switch {
	case strings.EqualFold(value, "true"), strings.EqualFold(value, "on"):
		return true, nil
	case strings.EqualFold(value, "false"), strings.EqualFold(value, "off"):
		return false, nil
	default:
		return false, ErrInvalidValue
	}
}

// LenientInt parses the leading integer of value: optional blanks, an
// optional sign and decimal digits, ignoring whatever follows. Input without
// digits, or a number that overflows int, yields 0.
func LenientInt(value string) int {
	s := lexer.TrimLeft(value)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
