package options

import (
	"fmt"
)

// Descriptor binds an option name to its kind, table slot and default value.
type Descriptor struct {
	Name string
	Kind Kind

	slot       int
	boolValue  bool
	intValue   int
	strValue   string
	hasDefault bool
}

// Bool declares a boolean option.
func Bool(name string, slot BoolOpt, def bool) Descriptor {
	return Descriptor{Name: name, Kind: KindBool, slot: int(slot), boolValue: def, hasDefault: true}
}

// Int declares an integer option.
func Int(name string, slot IntOpt, def int) Descriptor {
	return Descriptor{Name: name, Kind: KindInt, slot: int(slot), intValue: def, hasDefault: true}
}

// String declares a string option with a default value.
func String(name string, slot StrOpt, def string) Descriptor {
	return Descriptor{Name: name, Kind: KindString, slot: int(slot), strValue: def, hasDefault: true}
}

// StringUnset declares a string option whose slot stays unset until assigned.
func StringUnset(name string, slot StrOpt) Descriptor {
	return Descriptor{Name: name, Kind: KindString, slot: int(slot)}
}

// BoolSlot returns the boolean slot. It panics if the descriptor is not KindBool.
func (d *Descriptor) BoolSlot() BoolOpt {
	d.mustBe(KindBool)
	return BoolOpt(d.slot)
}

// IntSlot returns the integer slot. It panics if the descriptor is not KindInt.
func (d *Descriptor) IntSlot() IntOpt {
	d.mustBe(KindInt)
	return IntOpt(d.slot)
}

// StrSlot returns the string slot. It panics if the descriptor is not KindString.
func (d *Descriptor) StrSlot() StrOpt {
	d.mustBe(KindString)
	return StrOpt(d.slot)
}

// Default returns the declared default, or nil for a string option without one.
func (d *Descriptor) Default() any {
	switch d.Kind {
	case KindBool:
		return d.boolValue
	case KindInt:
		return d.intValue
	default:
		if !d.hasDefault {
			return nil
		}
		return d.strValue
	}
}

func (d *Descriptor) mustBe(kind Kind) {
	if d.Kind != kind {
		panic(fmt.Sprintf("options: %s is a %s option, not %s", d.Name, d.Kind, kind))
	}
}

func (d *Descriptor) restoreDefault(s Setter) {
	switch d.Kind {
	case KindBool:
		s.SetBool(BoolOpt(d.slot), d.boolValue)
	case KindInt:
		s.SetInt(IntOpt(d.slot), d.intValue)
	case KindString:
		if d.hasDefault {
			s.SetStr(StrOpt(d.slot), d.strValue)
		}
	}
}

// Registry is an ordered, immutable table of option descriptors.
type Registry struct {
	descriptors []Descriptor
}

// New builds a registry from descriptors in declaration order. Names must be
// unique and non-empty, and the slots of each kind must be 0..n-1 without gaps.
func New(descs ...Descriptor) (*Registry, error) {
	if err := validate(descs); err != nil {
		return nil, err
	}

	out := make([]Descriptor, len(descs))
	copy(out, descs)
	return &Registry{descriptors: out}, nil
}

// MustNew is like New but panics on invalid declarations.
func MustNew(descs ...Descriptor) *Registry {
	r, err := New(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = MustNew(
	Bool("autosave", BoolAutosave, true),

	Bool("show_all_emails", BoolShowAllEmails, true),
	Int("emailpos", IntEmailPos, 25),
	String("extra_column", StrExtraColumn, "phone"),
	String("extra_alternative", StrExtraAlternative, "-1"),
	Int("extrapos", IntExtraPos, 65),

	String("mutt_command", StrMuttCommand, "mutt"),
	Bool("mutt_return_all_emails", BoolMuttReturnAllEmails, true),

	String("print_command", StrPrintCommand, "lpr"),

	String("www_command", StrWWWCommand, "lynx"),

	String("address_style", StrAddressStyle, "eu"),

	Bool("use_ascii_only", BoolUseASCIIOnly, false),
)

// Default returns the registry of options known to the application.
func Default() *Registry {
	return defaultRegistry
}

// Lookup returns the first descriptor whose name equals name exactly.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	for i := range r.descriptors {
		if r.descriptors[i].Name == name {
			return &r.descriptors[i], true
		}
	}
	return nil, false
}

// All returns the descriptors in declaration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Len returns the number of declared options.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// ApplyDefaults writes every declared default into s in declaration order.
// String options without a default are left untouched.
func (r *Registry) ApplyDefaults(s Setter) {
	for i := range r.descriptors {
		r.descriptors[i].restoreDefault(s)
	}
}

func validate(descs []Descriptor) error {
	names := make(map[string]struct{}, len(descs))
	seen := map[Kind]map[int]struct{}{
		KindBool:   {},
		KindInt:    {},
		KindString: {},
	}
	limits := map[Kind]int{
		KindBool:   BoolCount,
		KindInt:    IntCount,
		KindString: StrCount,
	}

	for _, d := range descs {
		if d.Name == "" {
			return fmt.Errorf("%w: empty option name", ErrInvalidRegistry)
		}
		if _, dup := names[d.Name]; dup {
			return fmt.Errorf("%w: duplicate option %q", ErrInvalidRegistry, d.Name)
		}
		names[d.Name] = struct{}{}

		slots, ok := seen[d.Kind]
		if !ok {
			return fmt.Errorf("%w: option %q has unknown kind %s", ErrInvalidRegistry, d.Name, d.Kind)
		}
		if d.slot < 0 || d.slot >= limits[d.Kind] {
			return fmt.Errorf("%w: option %q slot %d out of range for %s", ErrInvalidRegistry, d.Name, d.slot, d.Kind)
		}
		if _, dup := slots[d.slot]; dup {
			return fmt.Errorf("%w: option %q reuses %s slot %d", ErrInvalidRegistry, d.Name, d.Kind, d.slot)
		}
		slots[d.slot] = struct{}{}
	}

	for kind, slots := range seen {
		for i := 0; i < len(slots); i++ {
			if _, ok := slots[i]; !ok {
				return fmt.Errorf("%w: %s slots are not contiguous, missing %d", ErrInvalidRegistry, kind, i)
			}
		}
	}
	return nil
}
