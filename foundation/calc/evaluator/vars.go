// File: vars.go
// Title: Variable Table
// Description: The identifier to value mapping an evaluator reads from and
//              assigns into.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.1.0: Initial variable table

package evaluator

import (
	"sort"
)

// Vars maps identifiers to their values. The zero value is not usable;
// create tables with NewVars. A Vars must not be used by more than one
// goroutine at a time.
type Vars struct {
	values map[string]int64
}

// NewVars creates an empty variable table
func NewVars() *Vars {
	return &Vars{values: make(map[string]int64)}
}

// Get returns the value bound to name
func (v *Vars) Get(name string) (int64, bool) {
	value, ok := v.values[name]
	return value, ok
}

// Set binds name to value, replacing any previous binding
func (v *Vars) Set(name string, value int64) {
	v.values[name] = value
}

// Len returns the number of bindings
func (v *Vars) Len() int {
	return len(v.values)
}

// Names returns the bound identifiers in sorted order
func (v *Vars) Names() []string {
	names := make([]string, 0, len(v.values))
	for name := range v.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of all bindings
func (v *Vars) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}
