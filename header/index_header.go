package header

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// IndexHeaderSize is the fixed size, in bytes, of the IndexHeader preamble.
const IndexHeaderSize = 16

// headerMagic is the first two bytes of every RPM header preamble. The
// third byte (0xe8) is the format's own constant and is never checked on
// parse, matching the source this was ported from.
var headerMagic = [2]byte{0x8e, 0xad}

const headerVersion = 1

// IndexHeader is the 16-byte fixed preamble that precedes every RPM
// header's entry directory and store.
type IndexHeader struct {
	Magic      [3]byte
	Version    uint8
	NumEntries uint32
	// HeaderSize is the length, in bytes, of the store that follows the
	// entry directory. It excludes the 16-byte preamble and the
	// 16*NumEntries directory bytes.
	HeaderSize uint32
}

// NewIndexHeader builds an IndexHeader with the canonical magic/version.
func NewIndexHeader(numEntries, headerSize uint32) IndexHeader {
	return IndexHeader{
		Magic:      [3]byte{headerMagic[0], headerMagic[1], 0xe8},
		Version:    headerVersion,
		NumEntries: numEntries,
		HeaderSize: headerSize,
	}
}

// ParseIndexHeader parses the fixed 16-byte preamble from buf, which must
// be exactly 16 bytes.
func ParseIndexHeader(buf []byte) (IndexHeader, error) {
	if len(buf) != IndexHeaderSize {
		return IndexHeader{}, errors.Errorf("index header: expected %d bytes, got %d", IndexHeaderSize, len(buf))
	}
	var magic [3]byte
	copy(magic[:], buf[0:3])
	for i := 0; i < 2; i++ {
		if magic[i] != headerMagic[i] {
			return IndexHeader{}, &InvalidMagicError{
				Expected:      headerMagic[i],
				Actual:        magic[i],
				CompleteInput: append([]byte(nil), buf...),
			}
		}
	}
	version := buf[3]
	if version != headerVersion {
		return IndexHeader{}, &UnsupportedHeaderVersionError{Version: version}
	}
	// buf[4:8] is reserved and discarded.
	numEntries := binary.BigEndian.Uint32(buf[8:12])
	headerSize := binary.BigEndian.Uint32(buf[12:16])
	return IndexHeader{
		Magic:      magic,
		Version:    version,
		NumEntries: numEntries,
		HeaderSize: headerSize,
	}, nil
}

// Write emits the 16-byte preamble to w, big-endian throughout.
func (h IndexHeader) Write(w io.Writer) error {
	var buf [IndexHeaderSize]byte
	copy(buf[0:3], h.Magic[:])
	buf[3] = h.Version
	// buf[4:8] stays zero (reserved).
	binary.BigEndian.PutUint32(buf[8:12], h.NumEntries)
	binary.BigEndian.PutUint32(buf[12:16], h.HeaderSize)
	_, err := w.Write(buf[:])
	return errors.Wrap(err, "write index header")
}
