package variant

import "slices"

// Supported signatures.
const (
	SigBool    = "b"
	SigInt32   = "i"
	SigUint32  = "u"
	SigInt64   = "x"
	SigUint64  = "t"
	SigDouble  = "d"
	SigString  = "s"
	SigStrv    = "as"
	SigIntPair = "(ii)"
)

// IntPair is the in-memory shape of a "(ii)" tuple value.
type IntPair struct {
	X int32
	Y int32
}

// Value is a typed settings value. The zero Value has an empty signature
// and is returned for unknown keys.
type Value struct {
	sig  string
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	sv   []string
	pair IntPair
}

// BoolValue returns a "b" value.
func BoolValue(b bool) Value { return Value{sig: SigBool, b: b} }

// Int32Value returns an "i" value.
func Int32Value(v int32) Value { return Value{sig: SigInt32, i: int64(v)} }

// Uint32Value returns a "u" value.
func Uint32Value(v uint32) Value { return Value{sig: SigUint32, u: uint64(v)} }

// Int64Value returns an "x" value.
func Int64Value(v int64) Value { return Value{sig: SigInt64, i: v} }

// Uint64Value returns a "t" value.
func Uint64Value(v uint64) Value { return Value{sig: SigUint64, u: v} }

// DoubleValue returns a "d" value.
func DoubleValue(v float64) Value { return Value{sig: SigDouble, f: v} }

// StringValue returns an "s" value.
func StringValue(v string) Value { return Value{sig: SigString, s: v} }

// StrvValue returns an "as" value. The slice is copied so the Value owns
// its payload.
func StrvValue(v []string) Value {
	return Value{sig: SigStrv, sv: slices.Clone(v)}
}

// IntPairValue returns a "(ii)" value.
func IntPairValue(x, y int32) Value {
	return Value{sig: SigIntPair, pair: IntPair{X: x, Y: y}}
}

// Signature returns the value's signature, or "" for the zero Value.
func (v Value) Signature() string { return v.sig }

// IsZero reports whether the value is the zero Value.
func (v Value) IsZero() bool { return v.sig == "" }

// Bool returns the payload of a "b" value.
func (v Value) Bool() bool { return v.b }

// Int32 returns the payload of an "i" value.
func (v Value) Int32() int32 { return int32(v.i) }

// Uint32 returns the payload of a "u" value.
func (v Value) Uint32() uint32 { return uint32(v.u) }

// Int64 returns the payload of an "x" value.
func (v Value) Int64() int64 { return v.i }

// Uint64 returns the payload of a "t" value.
func (v Value) Uint64() uint64 { return v.u }

// Double returns the payload of a "d" value.
func (v Value) Double() float64 { return v.f }

// Str returns the payload of an "s" value.
func (v Value) Str() string { return v.s }

// Strv returns a copy of the payload of an "as" value.
func (v Value) Strv() []string { return slices.Clone(v.sv) }

// IntPair returns the payload of a "(ii)" value.
func (v Value) IntPair() IntPair { return v.pair }

// Equal reports whether two values have the same signature and payload.
func (v Value) Equal(other Value) bool {
	if v.sig != other.sig {
		return false
	}

	switch v.sig {
	case SigBool:
		return v.b == other.b
	case SigInt32, SigInt64:
		return v.i == other.i
	case SigUint32, SigUint64:
		return v.u == other.u
	case SigDouble:
		return v.f == other.f
	case SigString:
		return v.s == other.s
	case SigStrv:
		return slices.Equal(v.sv, other.sv)
	case SigIntPair:
		return v.pair == other.pair
	default:
		return v.sig == other.sig
	}
}
