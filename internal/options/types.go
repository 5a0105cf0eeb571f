package options

import "fmt"

// Kind is the value type an option accepts.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
)

// String returns the lowercase kind name used in listings.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// BoolOpt addresses a slot in the boolean table.
type BoolOpt int

const (
	BoolAutosave BoolOpt = iota
	BoolShowAllEmails
	BoolMuttReturnAllEmails
	BoolUseASCIIOnly

	boolOptEnd
)

// IntOpt addresses a slot in the integer table.
type IntOpt int

const (
	IntEmailPos IntOpt = iota
	IntExtraPos

	intOptEnd
)

// StrOpt addresses a slot in the string table.
type StrOpt int

const (
	StrExtraColumn StrOpt = iota
	StrExtraAlternative
	StrMuttCommand
	StrPrintCommand
	StrWWWCommand
	StrAddressStyle

	strOptEnd
)

// Table sizes, one per kind.
const (
	BoolCount = int(boolOptEnd)
	IntCount  = int(intOptEnd)
	StrCount  = int(strOptEnd)
)

// Valid reports whether o addresses an existing boolean slot.
func (o BoolOpt) Valid() bool { return o >= 0 && o < boolOptEnd }

// Valid reports whether o addresses an existing integer slot.
func (o IntOpt) Valid() bool { return o >= 0 && o < intOptEnd }

// Valid reports whether o addresses an existing string slot.
func (o StrOpt) Valid() bool { return o >= 0 && o < strOptEnd }

// Setter receives typed values for option slots.
type Setter interface {
	SetBool(opt BoolOpt, value bool)
	SetInt(opt IntOpt, value int)
	SetStr(opt StrOpt, value string)
}
