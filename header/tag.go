package header

import "fmt"

// Tag is the capability a concrete tag enumeration must offer to be usable
// as the type parameter of Header[T]. The core never needs to know the
// actual tag values, only that they can be compared and printed.
type Tag interface {
	comparable
	fmt.Stringer
}

// TagSet is the bidirectional mapping between wire tag numbers and a
// concrete tag enumeration T. Header[T]'s Parse/Write/FromEntries all take
// a TagSet[T] explicitly, rather than requiring T itself to carry
// conversion methods — Go's type parameters have no equivalent of Rust's
// num::FromPrimitive dispatched on the type alone.
type TagSet[T Tag] interface {
	// FromUint32 resolves a wire tag number to T. ok is false for unknown
	// tag numbers.
	FromUint32(raw uint32) (tag T, ok bool)
	// ToUint32 is the inverse of FromUint32; it must be total over T.
	ToUint32(tag T) uint32
	// TypeName names the enumeration for diagnostics (InvalidTagError,
	// InvalidTagDataTypeError).
	TypeName() string
}
