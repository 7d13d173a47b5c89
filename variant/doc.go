// Package variant provides the typed value representation shared between
// the settings backend and generated accessor code.
//
// A Value carries one of the supported GVariant signatures
// (b, i, u, x, t, d, s, as, (ii)) together with its payload, and
// round-trips losslessly through the GVariant text encoding used for
// schema defaults.
package variant
