package header

import "encoding/binary"

// DataType is the wire type code stored in an index entry's directory
// record.
type DataType uint32

// The ten RPM data flavors, in their wire-format order.
const (
	TypeNull        DataType = 0
	TypeChar        DataType = 1
	TypeInt8        DataType = 2
	TypeInt16       DataType = 3
	TypeInt32       DataType = 4
	TypeInt64       DataType = 5
	TypeStringTag   DataType = 6
	TypeBin         DataType = 7
	TypeStringArray DataType = 8
	TypeI18NString  DataType = 9
)

// IndexData is the closed set of value flavors an IndexEntry can carry. It
// is a tagged union modeled as a Go interface with exactly ten concrete
// implementations; dispatch is by type switch, never by adding methods to
// grow the set further.
type IndexData interface {
	// wireType returns the DataType wire code for this variant.
	wireType() DataType
	// NumItems returns the logical item count: array length for the
	// homogeneous variants, 1 for StringTag, 0 for Null, byte length for
	// Bin/Char.
	NumItems() uint32
	// append serializes the value onto the end of store, inserting
	// whatever alignment padding its type requires first, and returns the
	// grown store along with the number of padding bytes that were
	// inserted before the real data.
	append(store []byte) ([]byte, int)
	// String names the variant for diagnostics (UnexpectedTagDataTypeError
	// messages).
	String() string
}

// WireType exposes the wire type code for an IndexData value; it is used
// by IndexEntry when serializing the directory record.
func WireType(d IndexData) DataType { return d.wireType() }

// NullData is the empty data flavor.
type NullData struct{}

func (NullData) wireType() DataType            { return TypeNull }
func (NullData) NumItems() uint32              { return 0 }
func (NullData) append(s []byte) ([]byte, int) { return s, 0 }
func (NullData) String() string                { return "Null" }

// CharData holds raw, unaligned single-byte characters.
type CharData []byte

func (d CharData) wireType() DataType { return TypeChar }
func (d CharData) NumItems() uint32   { return uint32(len(d)) }
func (d CharData) append(s []byte) ([]byte, int) {
	return append(s, d...), 0
}
func (CharData) String() string { return "Char" }

// Int8Data holds signed 8-bit integers, unaligned.
type Int8Data []int8

func (d Int8Data) wireType() DataType { return TypeInt8 }
func (d Int8Data) NumItems() uint32   { return uint32(len(d)) }
func (d Int8Data) append(s []byte) ([]byte, int) {
	for _, v := range d {
		s = append(s, byte(v))
	}
	return s, 0
}
func (Int8Data) String() string { return "i8" }

// Int16Data holds signed 16-bit big-endian integers, 2-byte aligned.
type Int16Data []int16

func (d Int16Data) wireType() DataType { return TypeInt16 }
func (d Int16Data) NumItems() uint32   { return uint32(len(d)) }
func (d Int16Data) append(s []byte) ([]byte, int) {
	pad := 0
	if len(s)%2 != 0 {
		s = append(s, 0)
		pad = 1
	}
	for _, v := range d {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(v))
		s = append(s, b[:]...)
	}
	return s, pad
}
func (Int16Data) String() string { return "i16" }

// Int32Data holds signed 32-bit big-endian integers, 4-byte aligned.
type Int32Data []int32

func (d Int32Data) wireType() DataType { return TypeInt32 }
func (d Int32Data) NumItems() uint32   { return uint32(len(d)) }
func (d Int32Data) append(s []byte) ([]byte, int) {
	pad := 0
	for len(s)%4 != 0 {
		s = append(s, 0)
		pad++
	}
	for _, v := range d {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		s = append(s, b[:]...)
	}
	return s, pad
}
func (Int32Data) String() string { return "i32" }

// Int64Data holds signed 64-bit big-endian integers, 8-byte aligned.
type Int64Data []int64

func (d Int64Data) wireType() DataType { return TypeInt64 }
func (d Int64Data) NumItems() uint32   { return uint32(len(d)) }
func (d Int64Data) append(s []byte) ([]byte, int) {
	pad := 0
	for len(s)%8 != 0 {
		s = append(s, 0)
		pad++
	}
	for _, v := range d {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v))
		s = append(s, b[:]...)
	}
	return s, pad
}
func (Int64Data) String() string { return "i64" }

// StringData holds a single NUL-terminated string. NumItems is always 1.
type StringData string

func (d StringData) wireType() DataType { return TypeStringTag }
func (StringData) NumItems() uint32     { return 1 }
func (d StringData) append(s []byte) ([]byte, int) {
	s = append(s, []byte(d)...)
	s = append(s, 0)
	return s, 0
}
func (StringData) String() string { return "String" }

// BinData holds an opaque, unaligned byte blob.
type BinData []byte

func (d BinData) wireType() DataType { return TypeBin }
func (d BinData) NumItems() uint32   { return uint32(len(d)) }
func (d BinData) append(s []byte) ([]byte, int) {
	return append(s, d...), 0
}
func (BinData) String() string { return "Bin" }

// StringArrayData holds a sequence of NUL-terminated strings, concatenated.
type StringArrayData []string

func (d StringArrayData) wireType() DataType { return TypeStringArray }
func (d StringArrayData) NumItems() uint32   { return uint32(len(d)) }
func (d StringArrayData) append(s []byte) ([]byte, int) {
	for _, v := range d {
		s = append(s, []byte(v)...)
		s = append(s, 0)
	}
	return s, 0
}
func (StringArrayData) String() string { return "StringArray" }

// I18NStringData holds a sequence of NUL-terminated, locale-indexed
// strings, concatenated. Encoding is identical to StringArrayData; the two
// variants differ only in how I18NString's Parse loop advances through the
// store (see Header.Parse), a deliberately preserved quirk of the source
// this was ported from.
type I18NStringData []string

func (d I18NStringData) wireType() DataType { return TypeI18NString }
func (d I18NStringData) NumItems() uint32   { return uint32(len(d)) }
func (d I18NStringData) append(s []byte) ([]byte, int) {
	for _, v := range d {
		s = append(s, []byte(v)...)
		s = append(s, 0)
	}
	return s, 0
}
func (I18NStringData) String() string { return "I18NString" }

// emptyIndexData returns the zero-value skeleton variant for a wire type
// code, used by IndexEntry.parse before the store is located. ok is false
// for unrecognized codes.
func emptyIndexData(dt DataType) (IndexData, bool) {
	switch dt {
	case TypeNull:
		return NullData{}, true
	case TypeChar:
		return CharData(nil), true
	case TypeInt8:
		return Int8Data(nil), true
	case TypeInt16:
		return Int16Data(nil), true
	case TypeInt32:
		return Int32Data(nil), true
	case TypeInt64:
		return Int64Data(nil), true
	case TypeStringTag:
		return StringData(""), true
	case TypeBin:
		return BinData(nil), true
	case TypeStringArray:
		return StringArrayData(nil), true
	case TypeI18NString:
		return I18NStringData(nil), true
	default:
		return nil, false
	}
}

// AsString, AsBinary, AsInt32, AsInt32Array, AsInt64 and AsStringArray back
// the typed accessors in package rpmtag; they live here (rather than as
// IndexData methods) so the interface itself stays minimal and closed.

func AsString(d IndexData) (string, bool) {
	s, ok := d.(StringData)
	return string(s), ok
}

func AsBinary(d IndexData) ([]byte, bool) {
	b, ok := d.(BinData)
	return []byte(b), ok
}

func AsInt32(d IndexData) (int32, bool) {
	a, ok := d.(Int32Data)
	if !ok || len(a) == 0 {
		return 0, false
	}
	return a[0], true
}

func AsInt32Array(d IndexData) ([]int32, bool) {
	a, ok := d.(Int32Data)
	if !ok {
		return nil, false
	}
	return []int32(a), true
}

func AsInt64(d IndexData) (int64, bool) {
	a, ok := d.(Int64Data)
	if !ok || len(a) == 0 {
		return 0, false
	}
	return a[0], true
}

// AsStringArray handles both StringArrayData and I18NStringData, since
// accessors don't need to distinguish them once parsed.
func AsStringArray(d IndexData) ([]string, bool) {
	switch v := d.(type) {
	case StringArrayData:
		return []string(v), true
	case I18NStringData:
		return []string(v), true
	default:
		return nil, false
	}
}
