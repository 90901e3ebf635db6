// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rpmpack packs files to rpm files.
// It is designed to be simple to use and deploy, not requiring any filesystem access
// to create rpm files.
package rpmpack

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	cpio "github.com/cavaliercoder/go-cpio"
	"github.com/pkg/errors"

	"github.com/rpmkit/rpmheader/header"
	"github.com/rpmkit/rpmheader/rpmtag"
)

var (
	// ErrWriteAfterClose is returned when a user calls Write() on a closed rpm.
	ErrWriteAfterClose = errors.New("rpm write after close")
)

// FileType distinguishes regular file entries from bookkeeping-only ones.
type FileType int

const (
	// NormalFile is a file whose body is part of the cpio payload.
	NormalFile FileType = iota
	// GhostFile is declared in the header but has no payload content; rpm
	// expects some other package or process to create it at install time.
	GhostFile

	rpmFileGhostFlag = 1 << 6
)

// RPMMetaData contains meta info about the whole package.
type RPMMetaData struct {
	Name,
	Summary,
	Description,
	Version,
	Release,
	Arch,
	OS,
	Vendor,
	URL,
	Packager,
	Group,
	Licence string
	Epoch      uint32
	BuildTime  time.Time
	Compressor string
	Prefixes   []string
	Provides,
	Obsoletes,
	Suggests,
	Recommends,
	Requires,
	Conflicts Relations
}

// RPMFile contains a particular file's entry and data.
type RPMFile struct {
	Name  string
	Body  []byte
	Mode  uint
	Owner string
	Group string
	MTime uint32
	Type  FileType
}

// RPM holds the state of a particular rpm file. Please use NewRPM to instantiate it.
type RPM struct {
	RPMMetaData
	di          *dirIndex
	payload     *bytes.Buffer
	payloadSize uint
	compressor  *payloadCompressor
	cpio        *cpio.Writer
	basenames   []string
	dirindexes  []uint32
	filesizes   []uint32
	filemodes   []uint16
	fileowners  []string
	filegroups  []string
	filemtimes  []uint32
	filedigests []string
	filelinktos []string
	fileflags   []int32
	closed      bool
	files       map[string]RPMFile
	useDirAllowlist bool
	dirAllowlist    map[string]bool
	prein, postin, preun, postun string
	pgpSigner func([]byte) ([]byte, error)

	header          *header.Header[rpmtag.IndexTag]
	signatureHeader *header.Header[rpmtag.IndexSignatureTag]
}

// NewRPM creates and returns a new RPM struct.
func NewRPM(m RPMMetaData) (*RPM, error) {
	if m.OS == "" {
		m.OS = "linux"
	}
	if m.Compressor == "" {
		m.Compressor = "gzip"
	}

	p := &bytes.Buffer{}
	c, err := newPayloadCompressor(p, m.Compressor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payload compressor")
	}
	rpm := &RPM{
		RPMMetaData: m,
		di:          newDirIndex(),
		payload:     p,
		compressor:  c,
		cpio:        cpio.NewWriter(c),
		files:       make(map[string]RPMFile),
	}
	rpm.ensureSelfProvide()
	return rpm, nil
}

// ensureSelfProvide makes sure the package provides itself at its own
// version, the way rpmbuild implicitly does for every built package.
func (r *RPM) ensureSelfProvide() {
	self := &Relation{Name: r.Name, Version: r.FullVersion(), Sense: SenseEqual}
	for _, p := range r.Provides {
		if p.Name == r.Name {
			return
		}
	}
	r.Provides = append(r.Provides, self)
}

// FullVersion properly combines version and release fields to a version string
func (r *RPM) FullVersion() string {
	if r.Release != "" {
		return fmt.Sprintf("%s-%s", r.Version, r.Release)
	}
	return r.Version
}

// AllowListDirs restricts which explicit directory entries are written to
// the header; files are always written regardless of their parent dir. Keys
// are normalized by trimming any trailing slash, so "/usr/bin" and
// "/usr/bin/" are equivalent.
func (r *RPM) AllowListDirs(allow map[string]bool) {
	r.useDirAllowlist = true
	r.dirAllowlist = make(map[string]bool, len(allow))
	for dir, ok := range allow {
		r.dirAllowlist[strings.TrimSuffix(dir, "/")] = ok
	}
}

// SetPGPSigner installs a callback used at Write time to produce the
// RPMSIGTAG_RSA signature over the main header and the RPMSIGTAG_PGP
// signature over the main header plus payload. Without one, the package is
// written with digest-only signatures (no RPMSIGTAG_RSA or RPMSIGTAG_PGP
// entry).
func (r *RPM) SetPGPSigner(signer func([]byte) ([]byte, error)) {
	r.pgpSigner = signer
}

// AddPrein adds a prein scriptlet
func (r *RPM) AddPrein(s string) { r.prein = s }

// AddPostin adds a postin scriptlet
func (r *RPM) AddPostin(s string) { r.postin = s }

// AddPreun adds a preun scriptlet
func (r *RPM) AddPreun(s string) { r.preun = s }

// AddPostun adds a postun scriptlet
func (r *RPM) AddPostun(s string) { r.postun = s }

// AddFile adds an RPMFile to an existing rpm.
func (r *RPM) AddFile(f RPMFile) {
	if f.Name == "/" { // rpm does not allow the root dir to be included.
		return
	}
	r.files[f.Name] = f
}

// Write closes the rpm and writes the whole rpm to an io.Writer
func (r *RPM) Write(w io.Writer) error {
	if r.closed {
		return ErrWriteAfterClose
	}

	fnames := make([]string, 0, len(r.files))
	for fn := range r.files {
		fnames = append(fnames, fn)
	}
	sort.Strings(fnames)
	for _, fn := range fnames {
		if err := r.writeFile(r.files[fn]); err != nil {
			return errors.Wrapf(err, "failed to write file %q", fn)
		}
	}
	if err := r.cpio.Close(); err != nil {
		return errors.Wrap(err, "failed to close cpio payload")
	}
	if err := r.compressor.Close(); err != nil {
		return errors.Wrap(err, "failed to close payload compressor")
	}

	entries, err := r.indexEntries()
	if err != nil {
		return errors.Wrap(err, "failed to build header entries")
	}
	mainHeader := header.FromEntries(entries, rpmtag.HEADER_IMMUTABLE, rpmtag.IndexTags)

	var hb bytes.Buffer
	if err := mainHeader.Write(&hb, rpmtag.IndexTags); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	sigHeader, err := r.signature(hb.Bytes())
	if err != nil {
		return errors.Wrap(err, "failed to build signature header")
	}

	if _, err := w.Write(lead(r.Name, r.FullVersion())); err != nil {
		return errors.Wrap(err, "failed to write lead")
	}
	if err := rpmtag.WriteSignature(sigHeader, w); err != nil {
		return errors.Wrap(err, "failed to write signature header")
	}
	if _, err := w.Write(hb.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write header body")
	}
	if _, err := w.Write(r.payload.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write payload")
	}

	r.header = mainHeader
	r.signatureHeader = sigHeader
	r.closed = true
	return nil
}

// signature builds the signature header covering the just-written main
// header bytes (and, if a PGP signer was configured, the payload too).
func (r *RPM) signature(headerBytes []byte) (*header.Header[rpmtag.IndexSignatureTag], error) {
	size := int32(len(headerBytes) + r.payload.Len())
	sum := sha256.Sum256(headerBytes)

	entries := []header.IndexEntry[rpmtag.IndexSignatureTag]{
		header.NewIndexEntry[rpmtag.IndexSignatureTag](rpmtag.RPMSIGTAG_SIZE, 0, header.Int32Data{size}),
		header.NewIndexEntry[rpmtag.IndexSignatureTag](rpmtag.RPMSIGTAG_SHA256, 0, header.StringData(fmt.Sprintf("%x", sum))),
		header.NewIndexEntry[rpmtag.IndexSignatureTag](rpmtag.RPMSIGTAG_PAYLOADSIZE, 0, header.Int32Data{int32(r.payloadSize)}),
	}

	if r.pgpSigner != nil {
		spanningHeader, err := r.pgpSigner(headerBytes)
		if err != nil {
			return nil, errors.Wrap(err, "failed to sign header")
		}
		spanningArchive, err := r.pgpSigner(append(append([]byte(nil), headerBytes...), r.payload.Bytes()...))
		if err != nil {
			return nil, errors.Wrap(err, "failed to sign header and payload")
		}
		entries = append(entries,
			header.NewIndexEntry[rpmtag.IndexSignatureTag](rpmtag.RPMSIGTAG_RSA, 0, header.BinData(spanningHeader)),
			header.NewIndexEntry[rpmtag.IndexSignatureTag](rpmtag.RPMSIGTAG_PGP, 0, header.BinData(spanningArchive)),
		)
	}

	return header.FromEntries(entries, rpmtag.HEADER_SIGNATURES, rpmtag.IndexSignatureTags), nil
}

// indexEntries assembles every RPMTAG_* entry for the main header.
func (r *RPM) indexEntries() ([]header.IndexEntry[rpmtag.IndexTag], error) {
	e := []header.IndexEntry[rpmtag.IndexTag]{
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.HeaderI18NTable, 0, header.StringData("C")),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Size, 0, header.Int32Data{int32(r.payloadSize)}),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Name, 0, header.StringData(r.Name)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Version, 0, header.StringData(r.Version)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Release, 0, header.StringData(r.Release)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.PayloadFormat, 0, header.StringData("cpio")),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.PayloadCompressor, 0, header.StringData(r.Compressor)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.PayloadFlags, 0, header.StringData(r.compressor.flags)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.OS, 0, header.StringData(r.OS)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Arch, 0, header.StringData(r.Arch)),
	}

	if r.Description != "" {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Description, 0, header.StringData(r.Description)))
	}
	if r.Summary != "" {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Summary, 0, header.StringData(r.Summary)))
	}
	if r.Group != "" {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Group, 0, header.StringData(r.Group)))
	}
	if r.Vendor != "" {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Vendor, 0, header.StringData(r.Vendor)))
	}
	if r.Licence != "" {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.License, 0, header.StringData(r.Licence)))
	}
	if r.Packager != "" {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Packager, 0, header.StringData(r.Packager)))
	}
	if r.URL != "" {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.URL, 0, header.StringData(r.URL)))
	}
	if r.Epoch != 0 {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Epoch, 0, header.Int32Data{int32(r.Epoch)}))
	}
	if !r.BuildTime.IsZero() {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.BuildTime, 0, header.Int32Data{int32(r.BuildTime.Unix())}))
	}
	if len(r.Prefixes) > 0 {
		e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Prefixes, 0, header.StringArrayData(r.Prefixes)))
	}

	for _, rel := range []struct {
		category relationCategory
		rels     Relations
	}{
		{RequiresCategory, r.Requires},
		{ObsoletesCategory, r.Obsoletes},
		{ConflictsCategory, r.Conflicts},
		{RecommendsCategory, r.Recommends},
		{SuggestsCategory, r.Suggests},
		{ProvidesCategory, r.Provides},
	} {
		relEntries, err := rel.rels.entries(rel.category)
		if err != nil {
			return nil, err
		}
		e = append(e, relEntries...)
	}

	// rpm utilities look for the sourcerpm tag to deduce if this is not a source rpm
	// (if it has a sourcerpm, it is NOT a source rpm).
	e = append(e, header.NewIndexEntry[rpmtag.IndexTag](rpmtag.SourceRPM, 0,
		header.StringData(fmt.Sprintf("%s-%s.src.rpm", r.Name, r.FullVersion()))))

	if r.prein != "" {
		e = append(e,
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Prein, 0, header.StringData(r.prein)),
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.PreinProg, 0, header.StringData("/bin/sh")))
	}
	if r.postin != "" {
		e = append(e,
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Postin, 0, header.StringData(r.postin)),
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.PostinProg, 0, header.StringData("/bin/sh")))
	}
	if r.preun != "" {
		e = append(e,
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Preun, 0, header.StringData(r.preun)),
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.PreunProg, 0, header.StringData("/bin/sh")))
	}
	if r.postun != "" {
		e = append(e,
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.Postun, 0, header.StringData(r.postun)),
			header.NewIndexEntry[rpmtag.IndexTag](rpmtag.PostunProg, 0, header.StringData("/bin/sh")))
	}

	e = append(e, r.fileIndexEntries()...)
	return e, nil
}

func (r *RPM) fileIndexEntries() []header.IndexEntry[rpmtag.IndexTag] {
	n := len(r.dirindexes)
	inodes := make([]int32, n)
	digestAlgo := make([]int32, n)
	verifyFlags := make([]int32, n)
	fileRDevs := make([]int16, n)
	fileLangs := make([]string, n)

	for i := range inodes {
		inodes[i] = int32(i + 1)
		digestAlgo[i] = 8 // SHA256
		verifyFlags[i] = -1
		fileRDevs[i] = 1
	}

	return []header.IndexEntry[rpmtag.IndexTag]{
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.BaseNames, 0, header.StringArrayData(r.basenames)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.DirIndexes, 0, header.Int32Data(toInt32(r.dirindexes))),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.DirNames, 0, header.StringArrayData(r.di.AllDirs())),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileSizes, 0, header.Int32Data(toInt32(r.filesizes))),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileModes, 0, toInt16Data(r.filemodes)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileUserName, 0, header.StringArrayData(r.fileowners)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileGroupName, 0, header.StringArrayData(r.filegroups)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileMTimes, 0, header.Int32Data(toInt32(r.filemtimes))),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileDigests, 0, header.StringArrayData(r.filedigests)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileLinkTos, 0, header.StringArrayData(r.filelinktos)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileINodes, 0, header.Int32Data(inodes)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileDigestAlgo, 0, header.Int32Data(digestAlgo)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileVerifyFlags, 0, header.Int32Data(verifyFlags)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileFlags, 0, header.Int32Data(r.fileflags)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileRDevs, 0, header.Int16Data(fileRDevs)),
		header.NewIndexEntry[rpmtag.IndexTag](rpmtag.FileLangs, 0, header.StringArrayData(fileLangs)),
	}
}

func toInt32(u []uint32) []int32 {
	out := make([]int32, len(u))
	for i, v := range u {
		out[i] = int32(v)
	}
	return out
}

func toInt16Data(u []uint16) header.Int16Data {
	out := make(header.Int16Data, len(u))
	for i, v := range u {
		out[i] = int16(v)
	}
	return out
}

// writeFile writes the file to the indexes and, unless it is a ghost file,
// to the cpio payload.
func (r *RPM) writeFile(f RPMFile) error {
	dir, file := path.Split(f.Name)

	isDir := f.Mode&040000 != 0
	if isDir && r.useDirAllowlist && !r.dirAllowlist[f.Name] {
		return nil
	}

	r.dirindexes = append(r.dirindexes, uint32(r.di.Get(dir)))
	r.basenames = append(r.basenames, file)
	r.fileowners = append(r.fileowners, f.Owner)
	r.filegroups = append(r.filegroups, f.Group)
	r.filemtimes = append(r.filemtimes, f.MTime)

	var flags int32
	if f.Type == GhostFile {
		flags = rpmFileGhostFlag
	}
	r.fileflags = append(r.fileflags, flags)

	links := 1
	switch {
	case isDir:
		r.filesizes = append(r.filesizes, 4096)
		r.filedigests = append(r.filedigests, "")
		r.filelinktos = append(r.filelinktos, "")
		links = 2
	case f.Mode&0120000 == 0120000: // symlink
		r.filesizes = append(r.filesizes, uint32(len(f.Body)))
		r.filedigests = append(r.filedigests, "")
		r.filelinktos = append(r.filelinktos, string(f.Body))
	default: // regular file
		f.Mode |= 0100000
		r.filesizes = append(r.filesizes, uint32(len(f.Body)))
		if f.Type == GhostFile {
			r.filedigests = append(r.filedigests, "")
		} else {
			r.filedigests = append(r.filedigests, fmt.Sprintf("%x", sha256.Sum256(f.Body)))
		}
		r.filelinktos = append(r.filelinktos, "")
	}
	r.filemodes = append(r.filemodes, uint16(f.Mode))

	if f.Type == GhostFile {
		return nil
	}
	return r.writePayload(f, links)
}

func (r *RPM) writePayload(f RPMFile, links int) error {
	hdr := &cpio.Header{
		Name:  f.Name,
		Mode:  cpio.FileMode(f.Mode),
		Size:  int64(len(f.Body)),
		Links: links,
	}
	if err := r.cpio.WriteHeader(hdr); err != nil {
		return errors.Wrap(err, "failed to write payload file header")
	}
	if _, err := r.cpio.Write(f.Body); err != nil {
		return errors.Wrap(err, "failed to write payload file content")
	}
	r.payloadSize += uint(len(f.Body))
	return nil
}
