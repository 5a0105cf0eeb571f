package options

import (
	"errors"
	"testing"
)

type recordingSetter struct {
	bools map[BoolOpt]bool
	ints  map[IntOpt]int
	strs  map[StrOpt]string
	order []string
}

func newRecordingSetter() *recordingSetter {
	return &recordingSetter{
		bools: map[BoolOpt]bool{},
		ints:  map[IntOpt]int{},
		strs:  map[StrOpt]string{},
	}
}

func (r *recordingSetter) SetBool(opt BoolOpt, value bool) {
	r.bools[opt] = value
	r.order = append(r.order, "bool")
}

func (r *recordingSetter) SetInt(opt IntOpt, value int) {
	r.ints[opt] = value
	r.order = append(r.order, "int")
}

func (r *recordingSetter) SetStr(opt StrOpt, value string) {
	r.strs[opt] = value
	r.order = append(r.order, "string")
}

func TestDefaultRegistryDeclaresEveryOption(t *testing.T) {
	t.Parallel()

	reg := Default()
	if reg.Len() != BoolCount+IntCount+StrCount {
		t.Fatalf("expected %d options, got %d", BoolCount+IntCount+StrCount, reg.Len())
	}

	tests := []struct {
		name string
		kind Kind
		want any
	}{
		{name: "autosave", kind: KindBool, want: true},
		{name: "show_all_emails", kind: KindBool, want: true},
		{name: "emailpos", kind: KindInt, want: 25},
		{name: "extra_column", kind: KindString, want: "phone"},
		{name: "extra_alternative", kind: KindString, want: "-1"},
		{name: "extrapos", kind: KindInt, want: 65},
		{name: "mutt_command", kind: KindString, want: "mutt"},
		{name: "mutt_return_all_emails", kind: KindBool, want: true},
		{name: "print_command", kind: KindString, want: "lpr"},
		{name: "www_command", kind: KindString, want: "lynx"},
		{name: "address_style", kind: KindString, want: "eu"},
		{name: "use_ascii_only", kind: KindBool, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			desc, ok := reg.Lookup(tc.name)
			if !ok {
				t.Fatalf("expected %s to be declared", tc.name)
			}
			if desc.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, desc.Kind)
			}
			if desc.Default() != tc.want {
				t.Fatalf("expected default %v, got %v", tc.want, desc.Default())
			}
		})
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	t.Parallel()

	if _, ok := Default().Lookup("Autosave"); ok {
		t.Fatalf("expected lookup to be case-sensitive")
	}
	if _, ok := Default().Lookup(""); ok {
		t.Fatalf("expected empty name to be unknown")
	}
}

func TestApplyDefaultsSkipsUnsetStrings(t *testing.T) {
	t.Parallel()

	reg := MustNew(
		Bool("flag", BoolAutosave, true),
		Int("width", IntEmailPos, 7),
		StringUnset("pager", StrExtraColumn),
		String("editor", StrExtraAlternative, "vi"),
	)

	setter := newRecordingSetter()
	reg.ApplyDefaults(setter)

	if !setter.bools[BoolAutosave] {
		t.Fatalf("expected bool default to be applied")
	}
	if setter.ints[IntEmailPos] != 7 {
		t.Fatalf("expected int default 7, got %d", setter.ints[IntEmailPos])
	}
	if _, ok := setter.strs[StrExtraColumn]; ok {
		t.Fatalf("expected string without default to stay unset")
	}
	if setter.strs[StrExtraAlternative] != "vi" {
		t.Fatalf("expected string default vi, got %q", setter.strs[StrExtraAlternative])
	}
	if want := []string{"bool", "int", "string"}; len(setter.order) != len(want) {
		t.Fatalf("unexpected set calls: %v", setter.order)
	}
}

func TestNewRejectsInvalidDeclarations(t *testing.T) {
	t.Parallel()

	tests := map[string][]Descriptor{
		"empty name":     {Bool("", BoolAutosave, true)},
		"duplicate name": {Bool("a", BoolAutosave, true), Int("a", IntEmailPos, 1)},
		"duplicate slot": {Bool("a", BoolAutosave, true), Bool("b", BoolAutosave, false)},
		"gap in slots":   {Int("a", IntExtraPos, 1)},
		"out of range":   {Bool("a", BoolOpt(BoolCount), true)},
		"negative slot":  {StringUnset("a", StrOpt(-1))},
	}

	for name, descs := range tests {
		descs := descs
		t.Run(name, func(t *testing.T) {
			if _, err := New(descs...); !errors.Is(err, ErrInvalidRegistry) {
				t.Fatalf("expected ErrInvalidRegistry, got %v", err)
			}
		})
	}
}

func TestMustNewPanicsOnInvalidDeclarations(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustNew to panic")
		}
	}()
	MustNew(Int("a", IntExtraPos, 1))
}

func TestDescriptorSlotAccessorsCheckKind(t *testing.T) {
	t.Parallel()

	desc, _ := Default().Lookup("emailpos")
	if desc.IntSlot() != IntEmailPos {
		t.Fatalf("expected IntEmailPos, got %d", desc.IntSlot())
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected BoolSlot on an int option to panic")
		}
	}()
	desc.BoolSlot()
}

func TestAllReturnsCopyInDeclarationOrder(t *testing.T) {
	t.Parallel()

	all := Default().All()
	if all[0].Name != "autosave" || all[len(all)-1].Name != "use_ascii_only" {
		t.Fatalf("unexpected order: first %s, last %s", all[0].Name, all[len(all)-1].Name)
	}

	all[0].Name = "mutated"
	if _, ok := Default().Lookup("autosave"); !ok {
		t.Fatalf("expected registry to be unaffected by caller mutation")
	}
}

func TestSlotValidity(t *testing.T) {
	t.Parallel()

	if !BoolUseASCIIOnly.Valid() || BoolOpt(BoolCount).Valid() || BoolOpt(-1).Valid() {
		t.Fatalf("unexpected BoolOpt validity")
	}
	if !IntExtraPos.Valid() || IntOpt(IntCount).Valid() {
		t.Fatalf("unexpected IntOpt validity")
	}
	if !StrAddressStyle.Valid() || StrOpt(StrCount).Valid() {
		t.Fatalf("unexpected StrOpt validity")
	}
	if KindString.String() != "string" || Kind(9).String() != "kind(9)" {
		t.Fatalf("unexpected kind names")
	}
}
