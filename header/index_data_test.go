package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexDataAlignment(t *testing.T) {
	// S6: Int8([1]) followed by Int32([0x11223344]) must pad to a 4-byte
	// boundary before the Int32 payload.
	var store []byte
	store, pad := Int8Data{1}.append(store)
	require.Equal(t, 0, pad)
	require.Equal(t, []byte{0x01}, store)

	store, pad = Int32Data{0x11223344}.append(store)
	require.Equal(t, 3, pad)
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x11, 0x22, 0x33, 0x44}, store)
}

func TestIndexDataInt64AfterInt8(t *testing.T) {
	var store []byte
	store, _ = Int8Data{1}.append(store)
	store, pad := Int64Data{2}.append(store)
	require.Equal(t, 7, pad)
	require.Len(t, store, 16)
}

func TestIndexDataStringThenInt32(t *testing.T) {
	var store []byte
	store, _ = StringData("ab").append(store) // "ab\0" = 3 bytes
	store, pad := Int32Data{7}.append(store)
	require.Equal(t, 1, pad)
	require.Len(t, store, 3+1+4)
}

func TestIndexDataNumItems(t *testing.T) {
	require.EqualValues(t, 0, NullData{}.NumItems())
	require.EqualValues(t, 3, CharData{1, 2, 3}.NumItems())
	require.EqualValues(t, 1, StringData("x").NumItems())
	require.EqualValues(t, 2, StringArrayData{"a", "b"}.NumItems())
	require.EqualValues(t, 2, I18NStringData{"a", "b"}.NumItems())
}

func TestEmptyIndexDataWireTypes(t *testing.T) {
	for dt := TypeNull; dt <= TypeI18NString; dt++ {
		d, ok := emptyIndexData(dt)
		require.True(t, ok, "type %d", dt)
		require.Equal(t, dt, d.wireType())
	}
	_, ok := emptyIndexData(DataType(10))
	require.False(t, ok)
}

func TestIndexDataStringArrayEncoding(t *testing.T) {
	var store []byte
	store, pad := StringArrayData{"foo", "bar"}.append(store)
	require.Equal(t, 0, pad)
	require.Equal(t, []byte("foo\x00bar\x00"), store)
}
