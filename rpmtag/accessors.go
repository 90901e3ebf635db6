package rpmtag

import (
	"path"

	"github.com/rpmkit/rpmheader/header"
)

// findEntryOrErr performs a linear scan of h's entries and returns
// TagNotFoundError on miss.
func findEntryOrErr(h *header.Header[IndexTag], tag IndexTag) (*header.IndexEntry[IndexTag], error) {
	e, ok := h.FindEntry(tag)
	if !ok {
		return nil, &TagNotFoundError{Tag: tag.String()}
	}
	return e, nil
}

// GetStringData fetches tag's data as a string, or
// UnexpectedTagDataTypeError if the entry isn't a StringTag.
func GetStringData(h *header.Header[IndexTag], tag IndexTag) (string, error) {
	e, err := findEntryOrErr(h, tag)
	if err != nil {
		return "", err
	}
	s, ok := header.AsString(e.Data)
	if !ok {
		return "", &UnexpectedTagDataTypeError{Expected: "string", Actual: e.Data.String(), Tag: tag.String()}
	}
	return s, nil
}

// GetBinaryData fetches tag's data as a byte slice.
func GetBinaryData(h *header.Header[IndexTag], tag IndexTag) ([]byte, error) {
	e, err := findEntryOrErr(h, tag)
	if err != nil {
		return nil, err
	}
	b, ok := header.AsBinary(e.Data)
	if !ok {
		return nil, &UnexpectedTagDataTypeError{Expected: "binary", Actual: e.Data.String(), Tag: tag.String()}
	}
	return b, nil
}

// GetInt32Data fetches the first element of tag's Int32 data.
func GetInt32Data(h *header.Header[IndexTag], tag IndexTag) (int32, error) {
	e, err := findEntryOrErr(h, tag)
	if err != nil {
		return 0, err
	}
	v, ok := header.AsInt32(e.Data)
	if !ok {
		return 0, &UnexpectedTagDataTypeError{Expected: "i32", Actual: e.Data.String(), Tag: tag.String()}
	}
	return v, nil
}

// GetInt32ArrayData fetches tag's full Int32 array.
func GetInt32ArrayData(h *header.Header[IndexTag], tag IndexTag) ([]int32, error) {
	e, err := findEntryOrErr(h, tag)
	if err != nil {
		return nil, err
	}
	v, ok := header.AsInt32Array(e.Data)
	if !ok {
		return nil, &UnexpectedTagDataTypeError{Expected: "i32 array", Actual: e.Data.String(), Tag: tag.String()}
	}
	return v, nil
}

// GetInt64Data fetches the first element of tag's Int64 data.
func GetInt64Data(h *header.Header[IndexTag], tag IndexTag) (int64, error) {
	e, err := findEntryOrErr(h, tag)
	if err != nil {
		return 0, err
	}
	v, ok := header.AsInt64(e.Data)
	if !ok {
		return 0, &UnexpectedTagDataTypeError{Expected: "i64", Actual: e.Data.String(), Tag: tag.String()}
	}
	return v, nil
}

// GetStringArrayData fetches tag's data as a string slice (StringArray or
// I18NString).
func GetStringArrayData(h *header.Header[IndexTag], tag IndexTag) ([]string, error) {
	e, err := findEntryOrErr(h, tag)
	if err != nil {
		return nil, err
	}
	v, ok := header.AsStringArray(e.Data)
	if !ok {
		return nil, &UnexpectedTagDataTypeError{Expected: "string array", Actual: e.Data.String(), Tag: tag.String()}
	}
	return v, nil
}

// GetPayloadFormat returns RPMTAG_PAYLOADFORMAT.
func GetPayloadFormat(h *header.Header[IndexTag]) (string, error) {
	return GetStringData(h, PayloadFormat)
}

// GetPayloadCompressor returns RPMTAG_PAYLOADCOMPRESSOR.
func GetPayloadCompressor(h *header.Header[IndexTag]) (string, error) {
	return GetStringData(h, PayloadCompressor)
}

// GetFileDigests returns RPMTAG_FILEDIGESTS.
func GetFileDigests(h *header.Header[IndexTag]) ([]string, error) {
	return GetStringArrayData(h, FileDigests)
}

// GetName returns RPMTAG_NAME.
func GetName(h *header.Header[IndexTag]) (string, error) { return GetStringData(h, Name) }

// GetEpoch returns RPMTAG_EPOCH.
func GetEpoch(h *header.Header[IndexTag]) (int32, error) { return GetInt32Data(h, Epoch) }

// GetVersion returns RPMTAG_VERSION.
func GetVersion(h *header.Header[IndexTag]) (string, error) { return GetStringData(h, Version) }

// GetRelease returns RPMTAG_RELEASE.
func GetRelease(h *header.Header[IndexTag]) (string, error) { return GetStringData(h, Release) }

// GetArch returns RPMTAG_ARCH.
func GetArch(h *header.Header[IndexTag]) (string, error) { return GetStringData(h, Arch) }

// GetInstallTime returns RPMTAG_INSTALLTIME.
func GetInstallTime(h *header.Header[IndexTag]) (int64, error) {
	return GetInt64Data(h, InstallTime)
}

// GetFileNames reconstructs the full set of contained file paths from the
// BASENAMES/DIRINDEXES/DIRNAMES triple.
func GetFileNames(h *header.Header[IndexTag]) ([]string, error) {
	base, err := GetStringArrayData(h, BaseNames)
	if err != nil {
		return nil, err
	}
	dirIdx, err := GetInt32ArrayData(h, DirIndexes)
	if err != nil {
		return nil, err
	}
	dirs, err := GetStringArrayData(h, DirNames)
	if err != nil {
		return nil, err
	}

	n := uint32(len(dirs))
	names := make([]string, 0, len(base))
	for i, b := range base {
		idx := uint32(dirIdx[i])
		if idx >= n {
			return nil, &InvalidTagIndexError{Tag: DirIndexes.String(), Index: idx, Bound: n}
		}
		names = append(names, path.Join(dirs[idx], b))
	}
	return names, nil
}
