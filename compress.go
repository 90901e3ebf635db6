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

package rpmpack

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andrew-d/lzma"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// payloadCompressor wraps the io.WriteCloser of a compression codec along
// with the RPMTAG_PAYLOADCOMPRESSOR/RPMTAG_PAYLOADFLAGS values rpm expects
// for that codec.
type payloadCompressor struct {
	w     io.WriteCloser
	name  string
	flags string
}

// newPayloadCompressor returns a payloadCompressor writing to dst, chosen by
// name. Supported names are "gzip" (default), "zstd", "xz" and "lzma".
func newPayloadCompressor(dst io.Writer, name string) (*payloadCompressor, error) {
	switch name {
	case "", "gzip":
		w, err := gzip.NewWriterLevel(dst, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		return &payloadCompressor{w: w, name: "gzip", flags: "9"}, nil
	case "zstd":
		w, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return &payloadCompressor{w: w, name: "zstd", flags: "19"}, nil
	case "xz":
		w, err := xz.NewWriter(dst)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return &payloadCompressor{w: w, name: "xz", flags: "2"}, nil
	case "lzma":
		return &payloadCompressor{w: lzma.NewWriter(dst), name: "lzma", flags: "2"}, nil
	default:
		return nil, fmt.Errorf("unsupported payload compressor %q", name)
	}
}

func (p *payloadCompressor) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p *payloadCompressor) Close() error                { return p.w.Close() }
