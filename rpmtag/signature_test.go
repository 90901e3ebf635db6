package rpmtag

import (
	"bytes"
	"testing"

	"github.com/rpmkit/rpmheader/header"
	"github.com/stretchr/testify/require"
)

// TestSignatureHeaderBuild is scenario S1 from the spec.
func TestSignatureHeaderBuild(t *testing.T) {
	size := int32(209348)
	md5sum := bytes.Repeat([]byte{0x16}, 16)
	sha1 := "5A884F0CB41EC3DA6D6E7FC2F6AB9DECA8826E8D"
	rsaHeader := []byte("111222333444")
	rsaHeaderAndArchive := []byte("7777888899990000")

	truth := header.FromEntries([]header.IndexEntry[IndexSignatureTag]{
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_SIZE, 0, header.Int32Data{size}),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_MD5, 0, header.BinData(md5sum)),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_SHA1, 0, header.StringData(sha1)),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_RSA, 0, header.BinData(rsaHeader)),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_PGP, 0, header.BinData(rsaHeaderAndArchive)),
	}, HEADER_SIGNATURES, IndexSignatureTags)

	built, err := NewSignatureHeader(size, md5sum, sha1, rsaHeader, rsaHeaderAndArchive)
	require.NoError(t, err)
	require.Equal(t, truth, built)
}

func TestSignatureHeaderBuilderIncomplete(t *testing.T) {
	_, err := NewSignatureHeaderBuilder().Build(10)
	require.ErrorIs(t, err, ErrSignatureBuilderIncomplete)

	_, err = NewSignatureHeaderBuilder().AddDigest("sha1", []byte{1}).Build(10)
	require.ErrorIs(t, err, ErrSignatureBuilderIncomplete)

	_, err = NewSignatureHeaderBuilder().AddSignature([]byte{1}, []byte{2}).Build(10)
	require.ErrorIs(t, err, ErrSignatureBuilderIncomplete)
}

func TestParseWriteSignatureAlignment(t *testing.T) {
	h, err := NewSignatureHeader(42, []byte{1, 2, 3, 4}, "abc", []byte("rh"), []byte("rha"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSignature(h, &buf))
	require.Zero(t, buf.Len()%8, "signature header must be padded to a multiple of 8 bytes")

	parsed, err := ParseSignature(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	var rewritten bytes.Buffer
	require.NoError(t, WriteSignature(parsed, &rewritten))
	require.Equal(t, buf.Bytes(), rewritten.Bytes())
}
