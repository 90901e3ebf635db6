package header

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIndexHeaderRoundTrip(t *testing.T) {
	h := NewIndexHeader(3, 128)
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf))
	require.Equal(t, IndexHeaderSize, buf.Len())

	parsed, err := ParseIndexHeader(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestParseIndexHeaderBadMagic(t *testing.T) {
	buf := make([]byte, IndexHeaderSize)
	copy(buf, []byte{0x00, 0xad, 0xe8, 0x01})
	_, err := ParseIndexHeader(buf)
	require.Error(t, err)

	var magicErr *InvalidMagicError
	require.ErrorAs(t, err, &magicErr)
	require.Equal(t, byte(0x8e), magicErr.Expected)
	require.Equal(t, byte(0x00), magicErr.Actual)
}

func TestParseIndexHeaderBadVersion(t *testing.T) {
	buf := make([]byte, IndexHeaderSize)
	copy(buf, []byte{0x8e, 0xad, 0xe8, 0x02})
	_, err := ParseIndexHeader(buf)
	require.Error(t, err)

	var versionErr *UnsupportedHeaderVersionError
	require.ErrorAs(t, err, &versionErr)
	require.Equal(t, byte(2), versionErr.Version)
}

func TestParseIndexHeaderShortBuffer(t *testing.T) {
	_, err := ParseIndexHeader(make([]byte, 10))
	require.Error(t, err)
}
