package variant

// Marshaler is implemented by custom accessor types that can render
// themselves as a settings value. Types named in define directives must
// implement it to be usable as argument types.
type Marshaler interface {
	ToVariant() Value
}

// Unmarshaler is implemented by custom accessor types that can load
// themselves from a settings value. Types named in define directives
// must implement it (on their pointer) to be usable as return types.
type Unmarshaler interface {
	FromVariant(Value) error
}
