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
	"fmt"

	"github.com/pkg/errors"

	"github.com/rpmkit/rpmheader/header"
	"github.com/rpmkit/rpmheader/rpmtag"
)

// ErrNotWritten is returned by VerifyRequiredTags when called before Write.
var ErrNotWritten = errors.New("rpm has not been written yet")

// VerifyRequiredTags checks that a fixed set of required tags is present in
// the headers this RPM was just written with: the signature size, sha256
// and payload size, and the name, version, release, arch, payload format
// and payload compressor. Call it after Write.
func (r *RPM) VerifyRequiredTags() error {
	if r.header == nil || r.signatureHeader == nil {
		return ErrNotWritten
	}
	if err := r.verifySignature(); err != nil {
		return err
	}
	return r.verifyPayload()
}

func (r *RPM) sigEntry(tag rpmtag.IndexSignatureTag) (header.IndexData, error) {
	e, ok := r.signatureHeader.FindEntry(tag)
	if !ok {
		return nil, errors.Errorf("missing required signature tag %s", tag)
	}
	return e.Data, nil
}

func (r *RPM) verifySignature() error {
	if _, err := r.sigEntry(rpmtag.RPMSIGTAG_SIZE); err != nil {
		return errors.Wrap(err, "signature size")
	}
	shaData, err := r.sigEntry(rpmtag.RPMSIGTAG_SHA256)
	if err != nil {
		return errors.Wrap(err, "signature sha256")
	}
	sha256, ok := header.AsString(shaData)
	if !ok || sha256 == "" {
		return errors.New("signature sha256 cannot be empty")
	}
	psData, err := r.sigEntry(rpmtag.RPMSIGTAG_PAYLOADSIZE)
	if err != nil {
		return errors.Wrap(err, "signature payload size")
	}
	payloadSize, ok := header.AsInt32(psData)
	if !ok || payloadSize != int32(r.payloadSize) {
		return errors.New("signature payload size does not match payload size")
	}
	return nil
}

func (r *RPM) verifyPayload() error {
	for _, check := range []struct {
		name string
		fn   func() (string, error)
	}{
		{"rpm name", func() (string, error) { return rpmtag.GetName(r.header) }},
		{"rpm version", func() (string, error) { return rpmtag.GetVersion(r.header) }},
		{"rpm release", func() (string, error) { return rpmtag.GetRelease(r.header) }},
		{"rpm architecture", func() (string, error) { return rpmtag.GetArch(r.header) }},
		{"rpm payload format", func() (string, error) { return rpmtag.GetPayloadFormat(r.header) }},
		{"rpm payload compressor", func() (string, error) { return rpmtag.GetPayloadCompressor(r.header) }},
	} {
		v, err := check.fn()
		if err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
		if v == "" {
			return errors.Errorf("%s cannot be empty", check.name)
		}
	}
	return nil
}
