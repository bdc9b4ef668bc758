// Package model implements an observable key/value store of primitive
// fields.
//
// Every Set compares the new value with the stored one and, when they
// differ, calls the registered ChangeFunc synchronously before Set
// returns. Equal writes are stored silently.
package model

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotPrimitive is returned by Set for values that cannot be displayed
// as a single field (nil, structs, slices, maps, pointers, ...).
var ErrNotPrimitive = errors.New("model: value is not a primitive")

// Value is a field value: anything whose kind is bool, string, an
// integer or a float.
type Value = any

// ChangeFunc receives the field name, the previous value (nil if the
// field was never set) and the new value.
type ChangeFunc func(field string, old, new Value)

// Model is an observable field store.
//
// The lock is never held while the ChangeFunc runs, so the callback may
// read or write the model. A write made from inside the callback is
// notified before the outer Set returns.
type Model struct {
	mu       sync.RWMutex
	fields   map[string]Value
	onChange ChangeFunc
}

// New creates an empty model. onChange may be nil.
func New(onChange ChangeFunc) *Model {
	return &Model{
		fields:   make(map[string]Value),
		onChange: onChange,
	}
}

// Get returns the value of field and whether it was ever set.
func (m *Model) Get(field string) (Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.fields[field]
	return v, ok
}

// Set stores value under field and notifies if it changed.
func (m *Model) Set(field string, value Value) error {
	if !IsPrimitive(value) {
		return fmt.Errorf("%w: %s=%T", ErrNotPrimitive, field, value)
	}

	m.mu.Lock()
	old := m.fields[field]
	m.fields[field] = value
	notify := m.onChange
	m.mu.Unlock()

	// Interface comparison: dynamic type and value must both match,
	// so int(5) and int64(5) are different values.
	if value != old && notify != nil {
		notify(field, old, value)
	}
	return nil
}

// String returns the display form of field, or "" if it is unset.
func (m *Model) String(field string) string {
	v, ok := m.Get(field)
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// IsPrimitive reports whether v can be stored in a Model: its kind
// must be bool, string, an integer or a float. Named types such as
// time.Month qualify.
func IsPrimitive(v Value) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
