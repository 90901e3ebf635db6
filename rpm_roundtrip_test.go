package rpmpack

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rpmkit/rpmheader/header"
	"github.com/rpmkit/rpmheader/rpmtag"
)

// parseBuilt strips the 96-byte lead and the signature+main headers from a
// built rpm, the way a real rpm reader would, and returns the main header.
func parseBuilt(t *testing.T, raw []byte) *header.Header[rpmtag.IndexTag] {
	t.Helper()
	buf := bytes.NewReader(raw[96:])
	if _, err := rpmtag.ParseSignature(buf); err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	h, err := header.Parse(buf, rpmtag.IndexTags)
	if err != nil {
		t.Fatalf("header.Parse: %v", err)
	}
	return h
}

func TestWriteThenParseRoundTrip(t *testing.T) {
	r, err := NewRPM(RPMMetaData{
		Name:    "hello",
		Version: "1.0",
		Release: "1",
		Arch:    "x86_64",
	})
	if err != nil {
		t.Fatalf("NewRPM: %v", err)
	}
	r.AddFile(RPMFile{Name: "/usr/bin/hello", Body: []byte("bin"), Mode: 0755})
	r.AddFile(RPMFile{Name: "/usr/share/doc/hello", Mode: 040755})

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	h := parseBuilt(t, buf.Bytes())

	name, err := rpmtag.GetName(h)
	if err != nil || name != "hello" {
		t.Fatalf("GetName() = %q, %v, want hello", name, err)
	}
	version, err := rpmtag.GetVersion(h)
	if err != nil || version != "1.0" {
		t.Fatalf("GetVersion() = %q, %v, want 1.0", version, err)
	}

	names, err := rpmtag.GetFileNames(h)
	if err != nil {
		t.Fatalf("GetFileNames: %v", err)
	}
	want := []string{"/usr/bin/hello", "/usr/share/doc/hello"}
	if d := cmp.Diff(want, names); d != "" {
		t.Errorf("file names differ (want->got):\n%s", d)
	}

	if err := r.VerifyRequiredTags(); err != nil {
		t.Errorf("VerifyRequiredTags: %v", err)
	}
}

func TestWriteSelfProvide(t *testing.T) {
	r, err := NewRPM(RPMMetaData{Name: "hello", Version: "1.0"})
	if err != nil {
		t.Fatalf("NewRPM: %v", err)
	}
	if len(r.Provides) != 1 || r.Provides[0].Name != "hello" || r.Provides[0].Sense != SenseEqual {
		t.Fatalf("expected an implicit self-provide, got %v", r.Provides)
	}
}

func TestAllowListDirsOmitsUnlistedDirs(t *testing.T) {
	r, err := NewRPM(RPMMetaData{Name: "hello", Version: "1.0"})
	if err != nil {
		t.Fatalf("NewRPM: %v", err)
	}
	r.AllowListDirs(map[string]bool{"/usr/bin/": true})
	r.AddFile(RPMFile{Name: "/usr/bin", Mode: 040755})
	r.AddFile(RPMFile{Name: "/usr/share", Mode: 040755})
	r.AddFile(RPMFile{Name: "/usr/bin/hello", Body: []byte("bin"), Mode: 0755})

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if d := cmp.Diff([]string{"bin", "hello"}, r.basenames); d != "" {
		t.Fatalf("basenames differ (want->got):\n%s", d)
	}
}

func TestGhostFileHasNoPayload(t *testing.T) {
	r, err := NewRPM(RPMMetaData{Name: "hello", Version: "1.0"})
	if err != nil {
		t.Fatalf("NewRPM: %v", err)
	}
	r.AddFile(RPMFile{Name: "/var/log/hello.log", Mode: 0644, Type: GhostFile})

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if r.payloadSize != 0 {
		t.Errorf("ghost file should not contribute to payload size, got %d", r.payloadSize)
	}
	if len(r.fileflags) != 1 || r.fileflags[0] != rpmFileGhostFlag {
		t.Errorf("expected ghost flag on file entry, got %v", r.fileflags)
	}
}

func TestZstdCompressor(t *testing.T) {
	r, err := NewRPM(RPMMetaData{Name: "hello", Version: "1.0", Compressor: "zstd"})
	if err != nil {
		t.Fatalf("NewRPM: %v", err)
	}
	r.AddFile(RPMFile{Name: "/usr/bin/hello", Body: []byte("bin"), Mode: 0755})

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	h := parseBuilt(t, buf.Bytes())
	compressor, err := rpmtag.GetPayloadCompressor(h)
	if err != nil || compressor != "zstd" {
		t.Errorf("GetPayloadCompressor() = %q, %v, want zstd", compressor, err)
	}
}
