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

// dirIndex deduplicates directory names into RPMTAG_DIRINDEXES/RPMTAG_DIRNAMES.
type dirIndex struct {
	m map[string]int32
	l []string
}

func newDirIndex() *dirIndex {
	return &dirIndex{m: make(map[string]int32)}
}

// Get returns the index of dir in the dirnames table, adding it if needed.
func (d *dirIndex) Get(dir string) int32 {
	if idx, ok := d.m[dir]; ok {
		return idx
	}
	idx := int32(len(d.l))
	d.l = append(d.l, dir)
	d.m[dir] = idx
	return idx
}

// AllDirs returns the dirnames table in insertion order.
func (d *dirIndex) AllDirs() []string {
	return d.l
}
