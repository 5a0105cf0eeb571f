package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/eugenenazirov/rcopts/internal/options"
)

func TestNewWithDefaultsInstallsEveryDefault(t *testing.T) {
	t.Parallel()

	reg := options.Default()
	store := NewWithDefaults(reg)

	for _, desc := range reg.All() {
		desc := desc
		got, ok := store.Value(&desc)
		if !ok {
			t.Fatalf("expected %s to be set after defaults", desc.Name)
		}
		if got != desc.Default() {
			t.Fatalf("expected %s default %v, got %v", desc.Name, desc.Default(), got)
		}
	}
}

func TestNewMemoryStorageStartsEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	if store.GetBool(options.BoolAutosave) {
		t.Fatalf("expected false bool slot")
	}
	if store.GetInt(options.IntEmailPos) != 0 {
		t.Fatalf("expected zero int slot")
	}
	if _, ok := store.GetStr(options.StrMuttCommand); ok {
		t.Fatalf("expected unset string slot")
	}
}

func TestSetStrReplacesPreviousValue(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	store.SetStr(options.StrPrintCommand, "lpr")
	store.SetStr(options.StrPrintCommand, "lp -d office")
	store.SetStr(options.StrPrintCommand, "lp -d office")

	got, ok := store.GetStr(options.StrPrintCommand)
	if !ok || got != "lp -d office" {
		t.Fatalf("expected replaced value, got %q (set=%v)", got, ok)
	}

	store.SetStr(options.StrPrintCommand, "")
	got, ok = store.GetStr(options.StrPrintCommand)
	if !ok || got != "" {
		t.Fatalf("expected empty but set value, got %q (set=%v)", got, ok)
	}
}

func TestResetStringsClearsOnlyStrings(t *testing.T) {
	t.Parallel()

	store := NewWithDefaults(options.Default())
	store.SetInt(options.IntExtraPos, 80)

	store.ResetStrings()
	store.ResetStrings()

	for opt := options.StrOpt(0); opt < options.StrOpt(options.StrCount); opt++ {
		if v, ok := store.GetStr(opt); ok {
			t.Fatalf("expected string slot %d to be unset, got %q", opt, v)
		}
	}
	if !store.GetBool(options.BoolAutosave) {
		t.Fatalf("expected bool slots to survive reset")
	}
	if store.GetInt(options.IntExtraPos) != 80 {
		t.Fatalf("expected int slots to survive reset")
	}
}

func TestOutOfRangeSlotsPanic(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	calls := map[string]func(){
		"GetBool": func() { store.GetBool(options.BoolOpt(options.BoolCount)) },
		"SetInt":  func() { store.SetInt(options.IntOpt(-1), 1) },
		"GetStr":  func() { store.GetStr(options.StrOpt(options.StrCount)) },
		"SetStr":  func() { store.SetStr(options.StrOpt(options.StrCount+3), "x") },
	}

	for name, call := range calls {
		call := call
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected %s to panic", name)
				}
			}()
			call()
		})
	}
}

func TestValueReportsUnsetStrings(t *testing.T) {
	t.Parallel()

	reg := options.MustNew(options.StringUnset("pager", options.StrExtraColumn))
	store := NewWithDefaults(reg)
	desc, _ := reg.Lookup("pager")

	if v, ok := store.Value(desc); ok || v != nil {
		t.Fatalf("expected unset value, got %v (set=%v)", v, ok)
	}
}

func TestMemoryStorageConcurrentReads(t *testing.T) {
	store := NewWithDefaults(options.Default())
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(offset int) {
			defer wg.Done()
			store.SetStr(options.StrWWWCommand, fmt.Sprintf("browser-%d", offset))
		}(i)

		go func() {
			defer wg.Done()
			if _, ok := store.GetStr(options.StrWWWCommand); !ok {
				t.Errorf("expected www_command to stay set")
			}
		}()
	}

	wg.Wait()
}
