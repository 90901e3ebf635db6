// Package rpmtag supplies the two concrete tag enumerations used by RPM
// headers (IndexTag for the main index header, IndexSignatureTag for the
// signature header), the signature-header specialization of the generic
// codec in package header, and the typed accessors built on top of it.
package rpmtag

import "fmt"

// IndexTag identifies the semantic meaning of an entry in the main RPM
// index header.
type IndexTag int32

// The subset of RPM's well-known main header tag numbers this module
// reads or writes. Values match the public RPM header tag table.
const (
	HeaderImage      IndexTag = 61
	HeaderSignatures IndexTag = 62
	// HEADER_IMMUTABLE is the region sentinel tag for the main header.
	HEADER_IMMUTABLE   IndexTag = 63
	HeaderRegions      IndexTag = 64
	HeaderI18NTable    IndexTag = 100
	Name               IndexTag = 1000
	Version            IndexTag = 1001
	Release            IndexTag = 1002
	Epoch              IndexTag = 1003
	Summary            IndexTag = 1004
	Description        IndexTag = 1005
	BuildTime          IndexTag = 1006
	BuildHost          IndexTag = 1007
	Size               IndexTag = 1009
	Distribution       IndexTag = 1010
	Vendor             IndexTag = 1011
	License            IndexTag = 1014
	Packager           IndexTag = 1015
	Group              IndexTag = 1016
	URL                IndexTag = 1020
	OS                 IndexTag = 1021
	Arch               IndexTag = 1022
	Prein              IndexTag = 1023
	Postin             IndexTag = 1024
	Preun              IndexTag = 1025
	Postun             IndexTag = 1026
	FileSizes          IndexTag = 1028
	FileModes          IndexTag = 1030
	FileRDevs          IndexTag = 1033
	FileMTimes         IndexTag = 1034
	FileDigests        IndexTag = 1035
	FileLinkTos        IndexTag = 1036
	FileFlags          IndexTag = 1037
	FileUserName       IndexTag = 1039
	FileGroupName      IndexTag = 1040
	SourceRPM          IndexTag = 1044
	FileVerifyFlags    IndexTag = 1045
	ProvideName        IndexTag = 1047
	RequireFlags       IndexTag = 1048
	RequireName        IndexTag = 1049
	RequireVersion     IndexTag = 1050
	ConflictFlags      IndexTag = 1053
	ConflictName       IndexTag = 1054
	ConflictVersion    IndexTag = 1055
	PreinProg          IndexTag = 1085
	PostinProg         IndexTag = 1086
	PreunProg          IndexTag = 1087
	PostunProg         IndexTag = 1088
	ObsoleteName       IndexTag = 1090
	FileINodes         IndexTag = 1096
	FileLangs          IndexTag = 1097
	Prefixes           IndexTag = 1098
	ProvideFlags       IndexTag = 1112
	ProvideVersion     IndexTag = 1113
	ObsoleteFlags      IndexTag = 1114
	ObsoleteVersion    IndexTag = 1115
	DirIndexes         IndexTag = 1116
	BaseNames          IndexTag = 1117
	DirNames           IndexTag = 1118
	PayloadFormat      IndexTag = 1124
	PayloadCompressor  IndexTag = 1125
	PayloadFlags       IndexTag = 1126
	InstallTime        IndexTag = 1008
	FileDigestAlgo     IndexTag = 5011
	RecommendName      IndexTag = 5046
	RecommendVersion   IndexTag = 5047
	RecommendFlags     IndexTag = 5048
	SuggestName        IndexTag = 5049
	SuggestVersion     IndexTag = 5050
	SuggestFlags       IndexTag = 5051
)

// String implements fmt.Stringer; it is also the source of the "tag"
// field in UnexpectedTagDataTypeError/TagNotFoundError messages.
func (t IndexTag) String() string {
	if name, ok := indexTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("IndexTag(%d)", int32(t))
}

var indexTagNames = map[IndexTag]string{
	HeaderImage:        "RPMTAG_HEADERIMAGE",
	HeaderSignatures:   "RPMTAG_HEADERSIGNATURES",
	HEADER_IMMUTABLE:   "RPMTAG_HEADERIMMUTABLE",
	HeaderRegions:      "RPMTAG_HEADERREGIONS",
	HeaderI18NTable:    "RPMTAG_HEADERI18NTABLE",
	Name:               "RPMTAG_NAME",
	Version:            "RPMTAG_VERSION",
	Release:            "RPMTAG_RELEASE",
	Epoch:              "RPMTAG_EPOCH",
	Summary:            "RPMTAG_SUMMARY",
	Description:        "RPMTAG_DESCRIPTION",
	BuildTime:          "RPMTAG_BUILDTIME",
	BuildHost:          "RPMTAG_BUILDHOST",
	Size:               "RPMTAG_SIZE",
	Distribution:       "RPMTAG_DISTRIBUTION",
	Vendor:             "RPMTAG_VENDOR",
	License:            "RPMTAG_LICENSE",
	Packager:           "RPMTAG_PACKAGER",
	Group:              "RPMTAG_GROUP",
	URL:                "RPMTAG_URL",
	OS:                 "RPMTAG_OS",
	Arch:               "RPMTAG_ARCH",
	Prein:              "RPMTAG_PREIN",
	Postin:             "RPMTAG_POSTIN",
	Preun:              "RPMTAG_PREUN",
	Postun:             "RPMTAG_POSTUN",
	FileSizes:          "RPMTAG_FILESIZES",
	FileModes:          "RPMTAG_FILEMODES",
	FileRDevs:          "RPMTAG_FILERDEVS",
	FileMTimes:         "RPMTAG_FILEMTIMES",
	FileDigests:        "RPMTAG_FILEDIGESTS",
	FileLinkTos:        "RPMTAG_FILELINKTOS",
	FileFlags:          "RPMTAG_FILEFLAGS",
	FileUserName:       "RPMTAG_FILEUSERNAME",
	FileGroupName:      "RPMTAG_FILEGROUPNAME",
	SourceRPM:          "RPMTAG_SOURCERPM",
	FileVerifyFlags:    "RPMTAG_FILEVERIFYFLAGS",
	ProvideName:        "RPMTAG_PROVIDENAME",
	RequireFlags:       "RPMTAG_REQUIREFLAGS",
	RequireName:        "RPMTAG_REQUIRENAME",
	RequireVersion:     "RPMTAG_REQUIREVERSION",
	ConflictFlags:      "RPMTAG_CONFLICTFLAGS",
	ConflictName:       "RPMTAG_CONFLICTNAME",
	ConflictVersion:    "RPMTAG_CONFLICTVERSION",
	PreinProg:          "RPMTAG_PREINPROG",
	PostinProg:         "RPMTAG_POSTINPROG",
	PreunProg:          "RPMTAG_PREUNPROG",
	PostunProg:         "RPMTAG_POSTUNPROG",
	ObsoleteName:       "RPMTAG_OBSOLETENAME",
	FileINodes:         "RPMTAG_FILEINODES",
	FileLangs:          "RPMTAG_FILELANGS",
	Prefixes:           "RPMTAG_PREFIXES",
	ProvideFlags:       "RPMTAG_PROVIDEFLAGS",
	ProvideVersion:     "RPMTAG_PROVIDEVERSION",
	ObsoleteFlags:      "RPMTAG_OBSOLETEFLAGS",
	ObsoleteVersion:    "RPMTAG_OBSOLETEVERSION",
	DirIndexes:         "RPMTAG_DIRINDEXES",
	BaseNames:          "RPMTAG_BASENAMES",
	DirNames:           "RPMTAG_DIRNAMES",
	PayloadFormat:      "RPMTAG_PAYLOADFORMAT",
	PayloadCompressor:  "RPMTAG_PAYLOADCOMPRESSOR",
	PayloadFlags:       "RPMTAG_PAYLOADFLAGS",
	InstallTime:        "RPMTAG_INSTALLTIME",
	FileDigestAlgo:     "RPMTAG_FILEDIGESTALGO",
	RecommendName:      "RPMTAG_RECOMMENDNAME",
	RecommendVersion:   "RPMTAG_RECOMMENDVERSION",
	RecommendFlags:     "RPMTAG_RECOMMENDFLAGS",
	SuggestName:        "RPMTAG_SUGGESTNAME",
	SuggestVersion:     "RPMTAG_SUGGESTVERSION",
	SuggestFlags:       "RPMTAG_SUGGESTFLAGS",
}

// indexTagSet implements header.TagSet[IndexTag].
type indexTagSet struct{}

func (indexTagSet) FromUint32(raw uint32) (IndexTag, bool) {
	t := IndexTag(int32(raw))
	_, ok := indexTagNames[t]
	return t, ok
}

func (indexTagSet) ToUint32(t IndexTag) uint32 { return uint32(int32(t)) }

func (indexTagSet) TypeName() string { return "IndexTag" }

// IndexTags is the header.TagSet value for IndexTag.
var IndexTags indexTagSet

// IndexSignatureTag identifies the semantic meaning of an entry in the
// RPM signature header. Signature tags use a separate numbering space
// from IndexTag despite some numeric overlap.
type IndexSignatureTag int32

const (
	// HEADER_SIGNATURES is the region sentinel tag for the signature header.
	HEADER_SIGNATURES IndexSignatureTag = 62
	RPMSIGTAG_SIZE    IndexSignatureTag = 1000
	RPMSIGTAG_RSA     IndexSignatureTag = 268
	RPMSIGTAG_SHA1    IndexSignatureTag = 269
	RPMSIGTAG_PGP     IndexSignatureTag = 1002
	RPMSIGTAG_MD5     IndexSignatureTag = 1004
	RPMSIGTAG_GPG     IndexSignatureTag = 1005
	RPMSIGTAG_PAYLOADSIZE IndexSignatureTag = 1007
	RPMSIGTAG_SHA256  IndexSignatureTag = 273
)

func (t IndexSignatureTag) String() string {
	if name, ok := indexSignatureTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("IndexSignatureTag(%d)", int32(t))
}

var indexSignatureTagNames = map[IndexSignatureTag]string{
	HEADER_SIGNATURES:     "HEADER_SIGNATURES",
	RPMSIGTAG_SIZE:        "RPMSIGTAG_SIZE",
	RPMSIGTAG_RSA:         "RPMSIGTAG_RSA",
	RPMSIGTAG_SHA1:        "RPMSIGTAG_SHA1",
	RPMSIGTAG_PGP:         "RPMSIGTAG_PGP",
	RPMSIGTAG_MD5:         "RPMSIGTAG_MD5",
	RPMSIGTAG_GPG:         "RPMSIGTAG_GPG",
	RPMSIGTAG_PAYLOADSIZE: "RPMSIGTAG_PAYLOADSIZE",
	RPMSIGTAG_SHA256:      "RPMSIGTAG_SHA256",
}

type indexSignatureTagSet struct{}

func (indexSignatureTagSet) FromUint32(raw uint32) (IndexSignatureTag, bool) {
	t := IndexSignatureTag(int32(raw))
	_, ok := indexSignatureTagNames[t]
	return t, ok
}

func (indexSignatureTagSet) ToUint32(t IndexSignatureTag) uint32 { return uint32(int32(t)) }

func (indexSignatureTagSet) TypeName() string { return "IndexSignatureTag" }

// IndexSignatureTags is the header.TagSet value for IndexSignatureTag.
var IndexSignatureTags indexSignatureTagSet
