// Package backend defines the key/value settings store that generated
// accessor code talks to.
//
// The store is deliberately untyped: keys are strings and values are
// variant.Value. Generated code layers the typed surface on top. The
// package also ships MemoryStore, an in-process implementation used in
// tests and as a reference for real backends.
package backend

import "gsettings-codegen/variant"

// Store is the capability set expected from a settings backend.
type Store interface {
	// Value returns the current value for key, or the zero Value if the
	// key is unknown.
	Value(key string) variant.Value

	// SetValue writes a value and reports whether the write was applied.
	// Writes to unknown keys, read-only keys, or with a mismatched
	// signature return false.
	SetValue(key string, v variant.Value) bool

	// Writable reports whether the key accepts writes.
	Writable(key string) bool

	// Subscribe registers fn to run after every applied write to key.
	// The returned function cancels the subscription.
	Subscribe(key string, fn func(variant.Value)) (cancel func())

	// Bind keeps target's property in sync with the key. The current
	// value is pushed immediately; later store writes follow. If target
	// also implements Notifier the binding is two-way.
	Bind(key string, target Binder, property string) (cancel func())

	// CreateAction returns a stateful action wrapping the key.
	CreateAction(key string) *Action
}

// Binder is an object with named settable properties, the target side of
// Store.Bind.
type Binder interface {
	Property(name string) variant.Value
	SetProperty(name string, v variant.Value)
}

// Notifier is implemented by Binder targets that can report property
// changes, enabling the target-to-store direction of a binding.
type Notifier interface {
	ConnectPropertyChanged(name string, fn func(variant.Value)) (cancel func())
}

// Action is a stateful action bound to one key. Activating it writes the
// parameter to the store; its state tracks the stored value.
type Action struct {
	name  string
	key   string
	store Store
}

// Name returns the action name (the key name).
func (a *Action) Name() string { return a.name }

// Enabled reports whether activation can succeed.
func (a *Action) Enabled() bool { return a.store.Writable(a.key) }

// State returns the current stored value.
func (a *Action) State() variant.Value { return a.store.Value(a.key) }

// Activate writes the parameter to the store. For "b" keys a zero
// parameter toggles the current value.
func (a *Action) Activate(param variant.Value) bool {
	if param.IsZero() {
		cur := a.store.Value(a.key)
		if cur.Signature() != variant.SigBool {
			return false
		}

		return a.store.SetValue(a.key, variant.BoolValue(!cur.Bool()))
	}

	return a.store.SetValue(a.key, param)
}
