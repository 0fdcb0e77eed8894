// Package symbols provides the symbol table for labels and constants.
package symbols

import (
	"github.com/retroenv/retrogolib/set"
)

// Table maps case-sensitive symbol names to 16-bit values. A symbol can be
// defined only once and is never removed.
type Table struct {
	items map[string]uint16
	used  set.Set[string]
}

// New creates a new symbol table.
func New() *Table {
	return &Table{
		items: make(map[string]uint16),
		used:  set.New[string](),
	}
}

// Add defines the symbol with the given value. It returns true without
// changing the table if the symbol already existed.
func (t *Table) Add(name string, value uint16) bool {
	if _, ok := t.items[name]; ok {
		return true
	}
	t.items[name] = value
	return false
}

// Get returns the value of the symbol and marks it as used.
func (t *Table) Get(name string) (uint16, bool) {
	value, ok := t.items[name]
	if ok {
		t.used.Add(name)
	}
	return value, ok
}

// Len returns the number of defined symbols.
func (t *Table) Len() int {
	return len(t.items)
}

// Unused returns the sorted names of all symbols that were never read.
func (t *Table) Unused() []string {
	unused := set.New[string]()
	for name := range t.items {
		if !t.used.Contains(name) {
			unused.Add(name)
		}
	}
	return set.Sorted(unused)
}
