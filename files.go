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
	"os"
	"path"
	"sort"

	"github.com/pkg/errors"
)

// Opts controls how FromFiles turns filesystem entries into RPMFile entries.
type Opts struct {
	Owner    string
	Group    string
	FileMode uint
	DirMode  uint
	Mtime    uint
}

// FromFiles builds an RPM from a list of filesystem paths, reading each
// file's content and mode from disk unless overridden by opts.
func FromFiles(files []string, md RPMMetaData, opts Opts) (*RPM, error) {
	r, err := NewRPM(md)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	for _, f := range files {
		fi, err := os.Lstat(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %q", f)
		}

		var body []byte
		var mode uint
		switch {
		case fi.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(f)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read link %q", f)
			}
			body = []byte(target)
			mode = 0120000 | uint(fi.Mode().Perm())
		case fi.IsDir():
			mode = opts.DirMode
			if mode == 0 {
				mode = uint(fi.Mode().Perm())
			}
			mode |= 040000
		default:
			mode = opts.FileMode
			if mode == 0 {
				mode = uint(fi.Mode().Perm())
			}
			b, err := os.ReadFile(f)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read %q", f)
			}
			body = b
		}

		r.AddFile(RPMFile{
			Name:  path.Join("/", f),
			Body:  body,
			Mode:  mode,
			Owner: opts.Owner,
			Group: opts.Group,
			MTime: uint32(opts.Mtime),
		})
	}
	return r, nil
}
