package rpmtag

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/rpmkit/rpmheader/header"
)

// signaturePadding is the write-side counterpart of ParseSignature's
// discard: both round the header+store length up to a multiple of 8.
func signaturePadding(headerSize uint32) int {
	return int((8 - headerSize%8) % 8)
}

// ParseSignature parses a signature header and then discards the 0-7
// trailing zero bytes that realign the overall stream to an 8-byte
// boundary.
func ParseSignature(r io.Reader) (*header.Header[IndexSignatureTag], error) {
	h, err := header.Parse(r, IndexSignatureTags)
	if err != nil {
		return nil, err
	}
	if pad := signaturePadding(h.IndexHeader.HeaderSize); pad > 0 {
		discard := make([]byte, pad)
		if _, err := io.ReadFull(r, discard); err != nil {
			return nil, errors.Wrap(err, "discard signature header alignment padding")
		}
	}
	return h, nil
}

// WriteSignature writes a signature header and then emits the 0-7 zero
// bytes needed to realign the overall stream to an 8-byte boundary.
func WriteSignature(h *header.Header[IndexSignatureTag], w io.Writer) error {
	if err := h.Write(w, IndexSignatureTags); err != nil {
		return err
	}
	if pad := signaturePadding(h.IndexHeader.HeaderSize); pad > 0 {
		if _, err := w.Write(make([]byte, pad)); err != nil {
			return errors.Wrap(err, "write signature header alignment padding")
		}
	}
	return nil
}

// ErrSignatureBuilderIncomplete is returned by SignatureHeaderBuilder.Build
// when either AddDigest or AddSignature has not yet been called. Go has no
// phantom types to enforce this at compile time, so it is enforced with a
// small runtime state check instead.
var ErrSignatureBuilderIncomplete = errors.New("signature header builder: digest and signature must both be set before Build")

// SignatureHeaderBuilder accumulates the fields of a signature header in a
// stepwise fashion. Use NewSignatureHeaderBuilder, then AddDigest and
// AddSignature (in either order), then Build.
type SignatureHeaderBuilder struct {
	md5                        []byte
	sha1                       string
	rsaSpanningHeader          []byte
	rsaSpanningHeaderAndArchive []byte
	hasDigest                  bool
	hasSignature               bool
}

// NewSignatureHeaderBuilder returns an empty builder.
func NewSignatureHeaderBuilder() *SignatureHeaderBuilder {
	return &SignatureHeaderBuilder{}
}

// AddDigest supplies the SHA1 and MD5 digests of the main header.
func (b *SignatureHeaderBuilder) AddDigest(sha1 string, md5 []byte) *SignatureHeaderBuilder {
	b.sha1 = sha1
	b.md5 = append([]byte(nil), md5...)
	b.hasDigest = true
	return b
}

// AddSignature supplies the RSA/PGP signatures, per RFC 2440, spanning the
// header alone and the header plus archive payload.
func (b *SignatureHeaderBuilder) AddSignature(rsaSpanningHeader, rsaSpanningHeaderAndArchive []byte) *SignatureHeaderBuilder {
	b.rsaSpanningHeader = append([]byte(nil), rsaSpanningHeader...)
	b.rsaSpanningHeaderAndArchive = append([]byte(nil), rsaSpanningHeaderAndArchive...)
	b.hasSignature = true
	return b
}

// Build assembles the signature header. size is the combined size of the
// main header, its store, and the payload.
func (b *SignatureHeaderBuilder) Build(size int32) (*header.Header[IndexSignatureTag], error) {
	if !b.hasDigest || !b.hasSignature {
		return nil, ErrSignatureBuilderIncomplete
	}
	entries := []header.IndexEntry[IndexSignatureTag]{
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_SIZE, 0, header.Int32Data{size}),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_MD5, 0, header.BinData(b.md5)),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_SHA1, 0, header.StringData(b.sha1)),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_RSA, 0, header.BinData(b.rsaSpanningHeader)),
		header.NewIndexEntry[IndexSignatureTag](RPMSIGTAG_PGP, 0, header.BinData(b.rsaSpanningHeaderAndArchive)),
	}
	return header.FromEntries(entries, HEADER_SIGNATURES, IndexSignatureTags), nil
}

// NewSignatureHeader is the one-shot convenience form of
// SignatureHeaderBuilder.
func NewSignatureHeader(size int32, md5sum []byte, sha1 string, rsaSpanningHeader, rsaSpanningHeaderAndArchive []byte) (*header.Header[IndexSignatureTag], error) {
	return NewSignatureHeaderBuilder().
		AddDigest(sha1, md5sum).
		AddSignature(rsaSpanningHeader, rsaSpanningHeaderAndArchive).
		Build(size)
}

// EncodeSignatureHeader is a tiny helper so callers that just want the
// encoded signature header bytes don't need to thread an io.Writer through.
func EncodeSignatureHeader(h *header.Header[IndexSignatureTag]) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSignature(h, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
