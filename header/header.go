// Package header implements the CORE of the RPM tagged-record header
// format: a lossless binary codec and in-memory model for the fixed
// preamble, entry directory, and typed data store that make up both an
// RPM signature header and an RPM main (index) header.
//
// The package is generic over the tag enumeration (see Tag and TagSet) so
// it has no notion of any specific RPM tag number; package rpmtag supplies
// the concrete enumerations and the typed accessors built on top of this
// codec.
package header

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Header is the assembled structure: an IndexHeader, the ordered entries
// it describes, and the raw store bytes they point into.
type Header[T Tag] struct {
	IndexHeader IndexHeader
	Entries     []IndexEntry[T]
	Store       []byte
}

// Parse reads one full header (preamble, directory, and store) from r.
func Parse[T Tag](r io.Reader, tags TagSet[T]) (*Header[T], error) {
	var preamble [IndexHeaderSize]byte
	if _, err := io.ReadFull(r, preamble[:]); err != nil {
		return nil, errors.Wrap(err, "read index header preamble")
	}
	ih, err := ParseIndexHeader(preamble[:])
	if err != nil {
		return nil, err
	}

	body := make([]byte, int(ih.NumEntries)*IndexEntrySize+int(ih.HeaderSize))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, errors.Wrap(err, "read header directory and store")
	}

	raws := make([]rawDirectoryEntry[T], 0, ih.NumEntries)
	buf := body
	for i := uint32(0); i < ih.NumEntries; i++ {
		before := len(buf)
		raw, rest, err := parseIndexEntry(buf, tags)
		if err != nil {
			return nil, err
		}
		if before-len(rest) != IndexEntrySize {
			panic("index entry parser must consume exactly 16 bytes")
		}
		raws = append(raws, raw)
		buf = rest
	}
	if len(buf) != int(ih.HeaderSize) {
		panic("header store length mismatch after parsing directory")
	}
	store := append([]byte(nil), buf...)

	entries := make([]IndexEntry[T], len(raws))
	for i, raw := range raws {
		data, err := fillIndexData(raw, store)
		if err != nil {
			return nil, err
		}
		entries[i] = IndexEntry[T]{
			Tag:      raw.tag,
			Data:     data,
			Offset:   raw.offset,
			NumItems: raw.numItems,
		}
	}

	return &Header[T]{IndexHeader: ih, Entries: entries, Store: store}, nil
}

// fillIndexData materializes the IndexData for one directory record, given
// the already-located store.
func fillIndexData[T Tag](raw rawDirectoryEntry[T], store []byte) (IndexData, error) {
	if raw.offset < 0 || int(raw.offset) > len(store) {
		return nil, errors.Errorf("tag %v: offset %d is outside the %d-byte store", raw.tag, raw.offset, len(store))
	}
	remaining := store[raw.offset:]
	// Minimum wire bytes per item; string arrays need at least the NUL.
	width := map[DataType]uint64{TypeChar: 1, TypeInt8: 1, TypeBin: 1, TypeInt16: 2, TypeInt32: 4, TypeInt64: 8, TypeStringArray: 1, TypeI18NString: 1}[raw.dataType]
	if width*uint64(raw.numItems) > uint64(len(remaining)) {
		return nil, errors.Errorf("tag %v: %d items of type %d overrun the store", raw.tag, raw.numItems, raw.dataType)
	}
	switch raw.dataType {
	case TypeNull:
		return NullData{}, nil
	case TypeChar:
		return CharData(append([]byte(nil), remaining[:raw.numItems]...)), nil
	case TypeInt8:
		out := make(Int8Data, raw.numItems)
		for i := range out {
			out[i] = int8(remaining[i])
		}
		return out, nil
	case TypeInt16:
		out := make(Int16Data, raw.numItems)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(remaining[i*2:]))
		}
		return out, nil
	case TypeInt32:
		out := make(Int32Data, raw.numItems)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(remaining[i*4:]))
		}
		return out, nil
	case TypeInt64:
		out := make(Int64Data, raw.numItems)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(remaining[i*8:]))
		}
		return out, nil
	case TypeStringTag:
		end := bytes.IndexByte(remaining, 0)
		if end < 0 {
			end = len(remaining)
		}
		return StringData(decodeLossy(remaining[:end])), nil
	case TypeBin:
		return BinData(append([]byte(nil), remaining[:raw.numItems]...)), nil
	case TypeStringArray:
		out := make(StringArrayData, 0, raw.numItems)
		for i := uint32(0); i < raw.numItems; i++ {
			end := bytes.IndexByte(remaining, 0)
			if end < 0 {
				end = len(remaining)
			}
			out = append(out, decodeLossy(remaining[:end]))
			// Advance past the value AND the NUL separator.
			if end < len(remaining) {
				end++
			}
			remaining = remaining[end:]
		}
		return out, nil
	case TypeI18NString:
		out := make(I18NStringData, 0, raw.numItems)
		for i := uint32(0); i < raw.numItems; i++ {
			end := bytes.IndexByte(remaining, 0)
			if end < 0 {
				end = len(remaining)
			}
			out = append(out, decodeLossy(remaining[:end]))
			// Deliberately preserved quirk: unlike StringArray, this
			// advances only to the NUL, not past it. See SPEC_FULL.md §9.
			remaining = remaining[end:]
		}
		return out, nil
	default:
		panic("unreachable: emptyIndexData already validated the type code")
	}
}

// Write emits the header (preamble, directory, store) to w in full.
func (h *Header[T]) Write(w io.Writer, tags TagSet[T]) error {
	if err := h.IndexHeader.Write(w); err != nil {
		return err
	}
	for _, e := range h.Entries {
		if err := e.writeIndex(w, tags); err != nil {
			return errors.Wrap(err, "write index entry")
		}
	}
	_, err := w.Write(h.Store)
	return errors.Wrap(err, "write header store")
}

// CreateRegionTag builds the self-describing region sentinel entry: a Bin
// blob whose payload is itself a well-formed 16-byte directory record
// pointing back at the start of the directory. recordsCount is the number
// of "real" (non-sentinel) entries; offset is where the sentinel's payload
// will live in the store.
func CreateRegionTag[T Tag](tag T, recordsCount int32, offset int32, tags TagSet[T]) IndexEntry[T] {
	backPointer := IndexEntry[T]{
		Tag:      tag,
		Offset:   -IndexEntrySize * (recordsCount + 1),
		Data:     BinData(nil),
		NumItems: IndexEntrySize,
	}
	var payload bytes.Buffer
	if err := backPointer.writeIndex(&payload, tags); err != nil {
		panic(err) // bytes.Buffer never fails to write
	}
	return NewIndexEntry(tag, offset, BinData(payload.Bytes()))
}

// FromEntries builds a valid Header from a set of "real" entries and a
// region sentinel tag: it computes each entry's store offset and
// per-type alignment padding, then prepends the region sentinel.
func FromEntries[T Tag](entries []IndexEntry[T], regionTag T, tags TagSet[T]) *Header[T] {
	records := append([]IndexEntry[T](nil), entries...)
	var store []byte
	for i := range records {
		offset := len(store)
		grown, alignment := records[i].Data.append(store)
		store = grown
		records[i].Offset = int32(offset + alignment)
	}

	sentinel := CreateRegionTag(regionTag, int32(len(records)), int32(len(store)), tags)
	store, _ = sentinel.Data.append(store)

	all := make([]IndexEntry[T], 0, len(records)+1)
	all = append(all, sentinel)
	all = append(all, records...)

	return &Header[T]{
		IndexHeader: NewIndexHeader(uint32(len(all)), uint32(len(store))),
		Entries:     all,
		Store:       store,
	}
}

// FindEntry performs a linear scan for the first entry whose tag equals
// tag.
func (h *Header[T]) FindEntry(tag T) (*IndexEntry[T], bool) {
	for i := range h.Entries {
		if h.Entries[i].Tag == tag {
			return &h.Entries[i], true
		}
	}
	return nil, false
}

// decodeLossy decodes b as UTF-8, substituting U+FFFD for invalid bytes
// rather than rejecting the input. RPM headers in the wild contain
// non-UTF-8 bytes in string fields.
func decodeLossy(b []byte) string {
	return string(bytes.ToValidUTF8(b, "�"))
}
