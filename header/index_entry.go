package header

import (
	"encoding/binary"
	"io"
)

// IndexEntrySize is the fixed size, in bytes, of a directory record.
const IndexEntrySize = 16

// IndexEntry is a single directory record plus its resolved data: the tag
// (of enumeration T), the data, the store offset, and the item count.
type IndexEntry[T Tag] struct {
	Tag      T
	Data     IndexData
	Offset   int32
	NumItems uint32
}

// NewIndexEntry builds an entry whose NumItems is derived from data.
func NewIndexEntry[T Tag](tag T, offset int32, data IndexData) IndexEntry[T] {
	return IndexEntry[T]{
		Tag:      tag,
		Data:     data,
		Offset:   offset,
		NumItems: data.NumItems(),
	}
}

// rawDirectoryEntry is the skeleton parsed from the 16-byte directory
// record, before the store has been located and the real IndexData
// materialized.
type rawDirectoryEntry[T Tag] struct {
	tag      T
	dataType DataType
	offset   int32
	numItems uint32
}

// parseIndexEntry parses one 16-byte directory record from the front of
// buf and returns the remainder.
func parseIndexEntry[T Tag](buf []byte, tags TagSet[T]) (rawDirectoryEntry[T], []byte, error) {
	rawTag := binary.BigEndian.Uint32(buf[0:4])
	tag, ok := tags.FromUint32(rawTag)
	if !ok {
		return rawDirectoryEntry[T]{}, nil, &InvalidTagError{RawTag: rawTag, StoreType: tags.TypeName()}
	}
	rawDataType := binary.BigEndian.Uint32(buf[4:8])
	if _, ok := emptyIndexData(DataType(rawDataType)); !ok {
		return rawDirectoryEntry[T]{}, nil, &InvalidTagDataTypeError{RawDataType: rawDataType, StoreType: tags.TypeName()}
	}
	offset := int32(binary.BigEndian.Uint32(buf[8:12]))
	numItems := binary.BigEndian.Uint32(buf[12:16])
	return rawDirectoryEntry[T]{
		tag:      tag,
		dataType: DataType(rawDataType),
		offset:   offset,
		numItems: numItems,
	}, buf[IndexEntrySize:], nil
}

// writeIndex serializes the 16-byte directory record for e to w.
func (e IndexEntry[T]) writeIndex(w io.Writer, tags TagSet[T]) error {
	var buf [IndexEntrySize]byte
	binary.BigEndian.PutUint32(buf[0:4], tags.ToUint32(e.Tag))
	binary.BigEndian.PutUint32(buf[4:8], uint32(e.Data.wireType()))
	binary.BigEndian.PutUint32(buf[8:12], uint32(e.Offset))
	binary.BigEndian.PutUint32(buf[12:16], e.NumItems)
	n, err := w.Write(buf[:])
	if err != nil {
		return err
	}
	if n != IndexEntrySize {
		panic("index entry write must write exactly 16 bytes")
	}
	return nil
}
