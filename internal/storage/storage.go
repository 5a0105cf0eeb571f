package storage

import (
	"fmt"
	"strings"
	"sync"

	"github.com/eugenenazirov/rcopts/internal/options"
)

// Storage provides typed access to the option tables.
type Storage interface {
	options.Setter
	GetBool(opt options.BoolOpt) bool
	GetInt(opt options.IntOpt) int
	GetStr(opt options.StrOpt) (string, bool)
	ResetStrings()
}

// MemoryStorage keeps the boolean, integer and string tables in memory and
// guards access with a RWMutex. String slots own their values and may be unset.
type MemoryStorage struct {
	mu    sync.RWMutex
	bools [options.BoolCount]bool
	ints  [options.IntCount]int
	strs  [options.StrCount]*string
}

// NewMemoryStorage returns empty tables: false, zero and unset strings.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// NewWithDefaults returns tables populated with the defaults declared in reg.
func NewWithDefaults(reg *options.Registry) *MemoryStorage {
	s := NewMemoryStorage()
	reg.ApplyDefaults(s)
	return s
}

// GetBool returns the value of a boolean slot.
func (s *MemoryStorage) GetBool(opt options.BoolOpt) bool {
	mustValid(opt.Valid(), "bool", int(opt))

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bools[opt]
}

// GetInt returns the value of an integer slot.
func (s *MemoryStorage) GetInt(opt options.IntOpt) int {
	mustValid(opt.Valid(), "int", int(opt))

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ints[opt]
}

// GetStr returns the value of a string slot and whether it is set.
func (s *MemoryStorage) GetStr(opt options.StrOpt) (string, bool) {
	mustValid(opt.Valid(), "string", int(opt))

	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.strs[opt]; p != nil {
		return *p, true
	}
	return "", false
}

// SetBool overwrites a boolean slot.
func (s *MemoryStorage) SetBool(opt options.BoolOpt, value bool) {
	mustValid(opt.Valid(), "bool", int(opt))

	s.mu.Lock()
	s.bools[opt] = value
	s.mu.Unlock()
}

// SetInt overwrites an integer slot.
func (s *MemoryStorage) SetInt(opt options.IntOpt, value int) {
	mustValid(opt.Valid(), "int", int(opt))

	s.mu.Lock()
	s.ints[opt] = value
	s.mu.Unlock()
}

// SetStr drops the previous value of a string slot and stores a private copy of value.
func (s *MemoryStorage) SetStr(opt options.StrOpt, value string) {
	mustValid(opt.Valid(), "string", int(opt))

	owned := strings.Clone(value)
	s.mu.Lock()
	s.strs[opt] = &owned
	s.mu.Unlock()
}

// ResetStrings releases every string slot. Boolean and integer slots keep their values.
func (s *MemoryStorage) ResetStrings() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.strs {
		s.strs[i] = nil
	}
}

// Value reads the slot described by d. The second result is false only for
// an unset string slot.
func (s *MemoryStorage) Value(d *options.Descriptor) (any, bool) {
	switch d.Kind {
	case options.KindBool:
		return s.GetBool(d.BoolSlot()), true
	case options.KindInt:
		return s.GetInt(d.IntSlot()), true
	default:
		v, ok := s.GetStr(d.StrSlot())
		if !ok {
			return nil, false
		}
		return v, true
	}
}

func mustValid(ok bool, kind string, slot int) {
	if !ok {
		panic(fmt.Sprintf("storage: %s slot %d out of range", kind, slot))
	}
}
