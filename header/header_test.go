package header

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// testTag is a tiny tag enumeration used only by this package's own tests,
// standing in for a real RPM tag enumeration (see package rpmtag).
type testTag int32

const (
	testTagRegion testTag = 1
	testTagA      testTag = 2
	testTagB      testTag = 3
	testTagC      testTag = 4
)

func (t testTag) String() string { return fmt.Sprintf("testTag(%d)", int32(t)) }

type testTagSet struct{}

func (testTagSet) FromUint32(raw uint32) (testTag, bool) {
	t := testTag(int32(raw))
	switch t {
	case testTagRegion, testTagA, testTagB, testTagC:
		return t, true
	default:
		return 0, false
	}
}
func (testTagSet) ToUint32(t testTag) uint32 { return uint32(int32(t)) }
func (testTagSet) TypeName() string          { return "testTag" }

var testTags testTagSet

func TestFromEntriesThenParseRoundTrip(t *testing.T) {
	entries := []IndexEntry[testTag]{
		NewIndexEntry[testTag](testTagA, 0, Int32Data{7, 8}),
		NewIndexEntry[testTag](testTagB, 0, StringData("hello")),
		NewIndexEntry[testTag](testTagC, 0, StringArrayData{"x", "yz"}),
	}
	h := FromEntries(entries, testTagRegion, testTags)

	require.EqualValues(t, len(h.Entries), h.IndexHeader.NumEntries)
	require.EqualValues(t, len(h.Store), h.IndexHeader.HeaderSize)

	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf, testTags))

	parsed, err := Parse(bytes.NewReader(buf.Bytes()), testTags)
	require.NoError(t, err)

	require.Equal(t, h.IndexHeader, parsed.IndexHeader)
	require.Equal(t, h.Store, parsed.Store)
	require.Equal(t, h.Entries, parsed.Entries)

	var rewritten bytes.Buffer
	require.NoError(t, parsed.Write(&rewritten, testTags))
	require.Equal(t, buf.Bytes(), rewritten.Bytes())
}

func TestFromEntriesRegionSentinel(t *testing.T) {
	entries := []IndexEntry[testTag]{
		NewIndexEntry[testTag](testTagA, 0, Int32Data{1}),
		NewIndexEntry[testTag](testTagB, 0, Int32Data{2}),
	}
	h := FromEntries(entries, testTagRegion, testTags)

	require.Equal(t, testTagRegion, h.Entries[0].Tag)
	require.EqualValues(t, 16, h.Entries[0].NumItems)

	sentinelPayload, ok := h.Entries[0].Data.(BinData)
	require.True(t, ok)
	require.Len(t, sentinelPayload, IndexEntrySize)

	// The sentinel's payload is itself a directory record whose offset is
	// -16*(len(entries)+1).
	raw, _, err := parseIndexEntry(sentinelPayload, testTags)
	require.NoError(t, err)
	require.EqualValues(t, -IndexEntrySize*int32(len(entries)+1), raw.offset)
}

func TestFromEntriesZeroRealEntries(t *testing.T) {
	h := FromEntries([]IndexEntry[testTag]{}, testTagRegion, testTags)
	require.Len(t, h.Entries, 1)
	require.Equal(t, testTagRegion, h.Entries[0].Tag)
}

func TestHeaderFindEntry(t *testing.T) {
	h := FromEntries([]IndexEntry[testTag]{
		NewIndexEntry[testTag](testTagA, 0, StringData("v")),
	}, testTagRegion, testTags)

	e, ok := h.FindEntry(testTagA)
	require.True(t, ok)
	require.Equal(t, StringData("v"), e.Data)

	_, ok = h.FindEntry(testTagC)
	require.False(t, ok)
}

func TestParseNonASCIIStringIsLossy(t *testing.T) {
	entries := []IndexEntry[testTag]{
		NewIndexEntry[testTag](testTagA, 0, StringData("hi\xff\xfe")),
	}
	h := FromEntries(entries, testTagRegion, testTags)
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf, testTags))

	parsed, err := Parse(bytes.NewReader(buf.Bytes()), testTags)
	require.NoError(t, err)
	data, ok := parsed.Entries[1].Data.(StringData)
	require.True(t, ok)
	// The run of invalid bytes decodes to a single U+FFFD.
	require.Equal(t, StringData("hi�"), data)
}

func TestParseInvalidTag(t *testing.T) {
	// Hand-craft a directory record with an unknown tag number.
	entries := []IndexEntry[testTag]{
		NewIndexEntry[testTag](testTagA, 0, Int32Data{1}),
	}
	h := FromEntries(entries, testTagRegion, testTags)
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf, testTags))
	raw := buf.Bytes()

	// The second directory record (first real entry) starts right after
	// the preamble and the sentinel's own 16-byte record.
	offset := IndexHeaderSize + IndexEntrySize
	raw[offset+3] = 0x63 // corrupt the low byte of the tag number to 99

	_, err := Parse(bytes.NewReader(raw), testTags)
	require.Error(t, err)
	var tagErr *InvalidTagError
	require.ErrorAs(t, err, &tagErr)
}

func TestI18NStringVsStringArrayNULHandling(t *testing.T) {
	// Both encode identically; the distinction is purely in how Parse
	// advances through the store (see header.go fillIndexData).
	entries := []IndexEntry[testTag]{
		NewIndexEntry[testTag](testTagA, 0, StringArrayData{"a", "b"}),
		NewIndexEntry[testTag](testTagB, 0, I18NStringData{"a", "b"}),
	}
	h := FromEntries(entries, testTagRegion, testTags)
	var buf bytes.Buffer
	require.NoError(t, h.Write(&buf, testTags))

	parsed, err := Parse(bytes.NewReader(buf.Bytes()), testTags)
	require.NoError(t, err)

	sa, ok := parsed.Entries[1].Data.(StringArrayData)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, []string(sa))

	// I18NString advances only to the NUL, not past it, so a second element
	// encoded right after the first's terminator is never reached: this is
	// the nom::take_till quirk fillIndexData's TypeI18NString case preserves.
	i18n, ok := parsed.Entries[2].Data.(I18NStringData)
	require.True(t, ok)
	require.Equal(t, []string{"a", ""}, []string(i18n))
}
